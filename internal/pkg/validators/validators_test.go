//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Status   string `validate:"required,contractStatus"`
	Role     string `validate:"required,userRole"`
	Currency string `validate:"required,currency"`
	Slug     string `validate:"required,slug"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantErr string
	}{
		{
			name:  "valid",
			input: sample{Status: "draft", Role: "legal", Currency: "EUR", Slug: "acme-corp"},
		},
		{
			name:    "unknown status",
			input:   sample{Status: "pending", Role: "legal", Currency: "EUR", Slug: "acme"},
			wantErr: "Tag: contractStatus",
		},
		{
			name:    "unknown role",
			input:   sample{Status: "draft", Role: "root", Currency: "EUR", Slug: "acme"},
			wantErr: "Tag: userRole",
		},
		{
			name:    "lower-case currency",
			input:   sample{Status: "draft", Role: "viewer", Currency: "eur", Slug: "acme"},
			wantErr: "Tag: currency",
		},
		{
			name:    "slug with trailing dash",
			input:   sample{Status: "draft", Role: "viewer", Currency: "USD", Slug: "acme-"},
			wantErr: "Tag: slug",
		},
		{
			name:    "missing fields",
			input:   sample{},
			wantErr: "Tag: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_RegistersCustomTags(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Var("approved", "contractStatus"))
	assert.Error(t, v.Var("unknown", "contractStatus"))
	assert.NoError(t, v.Var("approver", "userRole"))
	assert.NoError(t, v.Var("GBP", "currency"))
	assert.Error(t, v.Var("Acme", "slug"))
}

func TestValidateStruct_WrapsErrInvalid(t *testing.T) {
	err := ValidateStruct(&sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}
