package versions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// ContractVersion entity. Snapshot holds the stored JSON bytes as they are in
// the database so that damaged rows can still be loaded and inspected.
type ContractVersion struct {
	ID              string    `validate:"required,uuid4"`
	ContractID      string    `validate:"required,uuid4"`
	OrganizationID  string    `validate:"required,uuid4"`
	Number          int       `validate:"required,min=1"`
	Snapshot        []byte    `validate:"required"`
	ContentHash     string    `validate:"required,startswith=sha256:"`
	AuthorID        string    `validate:"required,uuid4"`
	Comment         string    `validate:"max=500"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating ContractVersion struct
func (v *ContractVersion) Validate() error {
	return validators.ValidateStruct(v)
}

// Decode parses the stored snapshot. It does not repair damaged content; see Inspect.
func (v *ContractVersion) Decode() (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(v.Snapshot, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot of version %d: %w", v.Number, err)
	}
	return &s, nil
}

// SetSnapshot stores the canonical encoding of s and its hash
func (v *ContractVersion) SetSnapshot(s *Snapshot) error {
	data, err := s.Canonical()
	if err != nil {
		return err
	}
	v.Snapshot = data
	v.ContentHash = HashBytes(data)
	return nil
}
