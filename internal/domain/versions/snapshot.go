package versions

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
)

// HashPrefix marks the algorithm of a ContentHash
const HashPrefix = "sha256:"

// SnapshotKeys are the keys every stored snapshot must carry
var SnapshotKeys = []string{"title", "counterparty", "body", "value", "currency", "effective_date", "expiry_date"}

// Snapshot is the full content of a contract at one version. Dates use the
// YYYY-MM-DD form and are null when unset.
type Snapshot struct {
	Title         string  `json:"title"`
	Counterparty  string  `json:"counterparty"`
	Body          string  `json:"body"`
	Value         int64   `json:"value"`
	Currency      string  `json:"currency"`
	EffectiveDate *string `json:"effective_date"`
	ExpiryDate    *string `json:"expiry_date"`
}

// NewSnapshot captures the metadata of c together with body
func NewSnapshot(c *contracts.Contract, body string) *Snapshot {
	return &Snapshot{
		Title:         c.Title,
		Counterparty:  c.Counterparty,
		Body:          body,
		Value:         c.Value,
		Currency:      c.Currency,
		EffectiveDate: formatDate(c.EffectiveDate),
		ExpiryDate:    formatDate(c.ExpiryDate),
	}
}

// Canonical returns the JSON encoding used for storage and hashing
func (s *Snapshot) Canonical() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Hash returns "sha256:<hex>" over the canonical encoding
func (s *Snapshot) Hash() (string, error) {
	data, err := s.Canonical()
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// HashBytes returns the ContentHash of an already encoded snapshot
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return HashPrefix + hex.EncodeToString(sum[:])
}

// ApplyTo copies the snapshot metadata onto c
func (s *Snapshot) ApplyTo(c *contracts.Contract) error {
	effective, err := parseDate(s.EffectiveDate)
	if err != nil {
		return fmt.Errorf("invalid effective_date: %w", err)
	}
	expiry, err := parseDate(s.ExpiryDate)
	if err != nil {
		return fmt.Errorf("invalid expiry_date: %w", err)
	}
	c.Title = s.Title
	c.Counterparty = s.Counterparty
	c.Value = s.Value
	c.Currency = s.Currency
	c.EffectiveDate = effective
	c.ExpiryDate = expiry
	return nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.DateOnly)
	return &s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FieldChange is one snapshot field that differs between two versions
type FieldChange struct {
	Field string      `json:"field"`
	From  interface{} `json:"from"`
	To    interface{} `json:"to"`
}

// Diff lists the fields whose values differ from a to b, in snapshot key order
func Diff(a, b *Snapshot) []FieldChange {
	changes := []FieldChange{}
	add := func(field string, from, to interface{}) {
		changes = append(changes, FieldChange{Field: field, From: from, To: to})
	}

	if a.Title != b.Title {
		add("title", a.Title, b.Title)
	}
	if a.Counterparty != b.Counterparty {
		add("counterparty", a.Counterparty, b.Counterparty)
	}
	if a.Body != b.Body {
		add("body", a.Body, b.Body)
	}
	if a.Value != b.Value {
		add("value", a.Value, b.Value)
	}
	if a.Currency != b.Currency {
		add("currency", a.Currency, b.Currency)
	}
	if !sameDate(a.EffectiveDate, b.EffectiveDate) {
		add("effective_date", deref(a.EffectiveDate), deref(b.EffectiveDate))
	}
	if !sameDate(a.ExpiryDate, b.ExpiryDate) {
		add("expiry_date", deref(a.ExpiryDate), deref(b.ExpiryDate))
	}
	return changes
}

func sameDate(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
