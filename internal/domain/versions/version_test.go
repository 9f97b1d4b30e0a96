//go:build unit
// +build unit

package versions

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	effective := "2026-01-01"
	return &Snapshot{
		Title:         "Supply Agreement",
		Counterparty:  "Umbrella",
		Body:          "<p>Goods</p>",
		Value:         5000,
		Currency:      "USD",
		EffectiveDate: &effective,
	}
}

func TestSnapshot_Hash(t *testing.T) {
	s := sampleSnapshot()
	h1, err := s.Hash()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h1, HashPrefix))
	assert.Len(t, h1, len(HashPrefix)+64)

	h2, err := sampleSnapshot().Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	s.Body = "<p>Services</p>"
	h3, err := s.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestSnapshot_CanonicalHasAllKeys(t *testing.T) {
	data, err := (&Snapshot{}).Canonical()
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range SnapshotKeys {
		assert.Contains(t, fields, key)
	}
}

func TestSnapshot_CanonicalFieldOrder(t *testing.T) {
	data, err := (&Snapshot{Title: "A", Value: 1}).Canonical()
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"A","counterparty":"","body":"","value":1,"currency":"","effective_date":null,"expiry_date":null}`,
		string(data))
}

func TestNewSnapshot_ApplyTo(t *testing.T) {
	effective := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &contracts.Contract{
		ID:            uuid.NewString(),
		Title:         "Lease",
		Counterparty:  "Hooli",
		Value:         900,
		Currency:      "GBP",
		EffectiveDate: &effective,
	}

	s := NewSnapshot(c, "<p>rent</p>")
	require.NotNil(t, s.EffectiveDate)
	assert.Equal(t, "2026-03-01", *s.EffectiveDate)
	assert.Nil(t, s.ExpiryDate)

	target := &contracts.Contract{}
	require.NoError(t, s.ApplyTo(target))
	assert.Equal(t, "Lease", target.Title)
	assert.Equal(t, int64(900), target.Value)
	require.NotNil(t, target.EffectiveDate)
	assert.True(t, effective.Equal(*target.EffectiveDate))

	bad := "03/01/2026"
	s.ExpiryDate = &bad
	assert.Error(t, s.ApplyTo(target))
}

func TestDiff(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	assert.Empty(t, Diff(a, b))

	b.Title = "Supply Agreement v2"
	b.Value = 6000
	b.EffectiveDate = nil
	changes := Diff(a, b)
	require.Len(t, changes, 3)
	assert.Equal(t, FieldChange{Field: "title", From: "Supply Agreement", To: "Supply Agreement v2"}, changes[0])
	assert.Equal(t, "value", changes[1].Field)
	assert.Equal(t, FieldChange{Field: "effective_date", From: "2026-01-01", To: nil}, changes[2])
}

func TestContractVersion_SetSnapshotAndDecode(t *testing.T) {
	v := &ContractVersion{
		ID:              uuid.NewString(),
		ContractID:      uuid.NewString(),
		OrganizationID:  uuid.NewString(),
		Number:          1,
		AuthorID:        uuid.NewString(),
		DateTimeCreated: time.Now(),
	}
	require.NoError(t, v.SetSnapshot(sampleSnapshot()))
	require.NoError(t, v.Validate())
	assert.Equal(t, HashBytes(v.Snapshot), v.ContentHash)

	decoded, err := v.Decode()
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), decoded)
}
