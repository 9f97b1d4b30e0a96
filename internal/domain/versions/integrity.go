package versions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Snapshot issue kinds reported by Inspect
const (
	IssueInvalidJSON   = "invalid_json"
	IssueDoubleEncoded = "double_encoded"
	IssueMissingKeys   = "missing_keys"
	IssueHashMismatch  = "hash_mismatch"
)

// maxEncodingDepth bounds how many layers of string encoding are unwrapped
const maxEncodingDepth = 4

// ErrUnrepairable is returned by Repair for snapshots that cannot be parsed
var ErrUnrepairable = errors.New("snapshot cannot be repaired")

// Issue is one problem found in a stored snapshot
type Issue struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Inspection is the result of checking one stored snapshot
type Inspection struct {
	Issues []Issue
	// Fields holds the decoded object when the snapshot could be parsed
	Fields map[string]json.RawMessage
	// MissingKeys lists required keys absent from Fields
	MissingKeys []string
}

// Corrupt reports whether any issue was found
func (i *Inspection) Corrupt() bool {
	return len(i.Issues) > 0
}

// Parsable reports whether the content was recovered as a JSON object
func (i *Inspection) Parsable() bool {
	return i.Fields != nil
}

// Has reports whether an issue of kind was found
func (i *Inspection) Has(kind string) bool {
	for _, issue := range i.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

func (i *Inspection) add(kind, detail string) {
	i.Issues = append(i.Issues, Issue{Kind: kind, Detail: detail})
}

// Inspect checks raw snapshot bytes against the stored hash. A snapshot is
// corrupt when it is not valid JSON, when it is a JSON string that itself
// holds JSON, when required keys are missing, or when the hash differs.
func Inspect(raw []byte, contentHash string) *Inspection {
	result := &Inspection{}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		result.add(IssueInvalidJSON, err.Error())
		return result
	}

	data := raw
	for depth := 0; ; depth++ {
		encoded, ok := value.(string)
		if !ok {
			break
		}
		if depth == maxEncodingDepth {
			result.add(IssueInvalidJSON, "too many encoding layers")
			return result
		}
		if depth == 0 {
			result.add(IssueDoubleEncoded, "snapshot is stored as a JSON string")
		}
		data = []byte(encoded)
		if err := json.Unmarshal(data, &value); err != nil {
			result.add(IssueInvalidJSON, fmt.Sprintf("encoded content: %v", err))
			return result
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		result.add(IssueInvalidJSON, "snapshot is not a JSON object")
		return result
	}
	result.Fields = fields

	for _, key := range SnapshotKeys {
		if _, ok := fields[key]; !ok {
			result.MissingKeys = append(result.MissingKeys, key)
		}
	}
	if len(result.MissingKeys) > 0 {
		result.add(IssueMissingKeys, strings.Join(result.MissingKeys, ","))
	}

	snapshot := &Snapshot{}
	for key, value := range fields {
		if err := decodeField(snapshot, key, value); err != nil {
			result.add(IssueInvalidJSON, fmt.Sprintf("field %s: %v", key, err))
			result.Fields = nil
			return result
		}
	}

	// the database may reformat JSON, so compare against the canonical encoding
	if hash, err := snapshot.Hash(); err != nil || hash != contentHash {
		result.add(IssueHashMismatch, fmt.Sprintf("stored %q", contentHash))
	}
	return result
}

// Repair rebuilds a snapshot from an inspection. Missing metadata keys are
// taken from fallback, which is built from the contract row. A missing body
// cannot be recovered.
func Repair(inspection *Inspection, fallback *Snapshot) (*Snapshot, error) {
	if !inspection.Parsable() {
		return nil, fmt.Errorf("%w: %s", ErrUnrepairable, describe(inspection.Issues))
	}
	if _, ok := inspection.Fields["body"]; !ok {
		return nil, fmt.Errorf("%w: body is missing", ErrUnrepairable)
	}

	repaired := *fallback
	repaired.Body = ""
	for key, raw := range inspection.Fields {
		if err := decodeField(&repaired, key, raw); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrUnrepairable, key, err)
		}
	}
	return &repaired, nil
}

func decodeField(s *Snapshot, key string, raw json.RawMessage) error {
	switch key {
	case "title":
		return json.Unmarshal(raw, &s.Title)
	case "counterparty":
		return json.Unmarshal(raw, &s.Counterparty)
	case "body":
		return json.Unmarshal(raw, &s.Body)
	case "value":
		return json.Unmarshal(raw, &s.Value)
	case "currency":
		return json.Unmarshal(raw, &s.Currency)
	case "effective_date":
		return json.Unmarshal(raw, &s.EffectiveDate)
	case "expiry_date":
		return json.Unmarshal(raw, &s.ExpiryDate)
	}
	// unknown keys are dropped
	return nil
}

func describe(issues []Issue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Kind+": "+issue.Detail)
	}
	return strings.Join(parts, "; ")
}
