//go:build unit
// +build unit

package templates

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Render(t *testing.T) {
	tmpl := &Template{Body: "<p>This agreement between {{ party }} and {{counterparty}} starts {{start}}.</p>"}

	out := tmpl.Render(map[string]string{
		"party":        "Acme & Sons",
		"counterparty": "<b>Globex</b>",
	})

	assert.Equal(t, "<p>This agreement between Acme &amp; Sons and &lt;b&gt;Globex&lt;/b&gt; starts {{start}}.</p>", out)
}

func TestExtractVariables(t *testing.T) {
	vars := ExtractVariables("{{a}} {{ b }} {{a}} {{1bad}} {{c_2}}")
	assert.Equal(t, []string{"a", "b", "c_2"}, vars)

	assert.Empty(t, ExtractVariables("no placeholders"))
}

func TestTemplate_Validate(t *testing.T) {
	now := time.Now()
	valid := &Template{
		ID:              uuid.NewString(),
		OrganizationID:  uuid.NewString(),
		Name:            "NDA",
		Body:            "<p>{{party}}</p>",
		Variables:       []string{"party"},
		CreatedBy:       uuid.NewString(),
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	require.NoError(t, valid.Validate())

	missingBody := *valid
	missingBody.Body = ""
	assert.Error(t, missingBody.Validate())

	badID := *valid
	badID.ID = "123"
	assert.Error(t, badID.Validate())
}

func TestTemplateQuery_Validate(t *testing.T) {
	q := NewTemplateQuery()
	q.SortBy = "name"
	q.SortOrder = "desc"
	assert.NoError(t, q.Validate())

	q.SortBy = "body"
	assert.Error(t, q.Validate())
}
