package templates

import (
	"html"
	"regexp"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Template is a reusable contract body with {{placeholder}} variables
type Template struct {
	ID              string   `validate:"required,uuid4"`
	OrganizationID  string   `validate:"required,uuid4"`
	Name            string   `validate:"required,min=1,max=255"`
	Category        string   `validate:"max=100"`
	Body            string   `validate:"required"`
	Variables       []string `validate:"dive,min=1,max=100"`
	Active          bool
	CreatedBy       string    `validate:"required,uuid4"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Template struct
func (t *Template) Validate() error {
	return validators.ValidateStruct(t)
}

// Render substitutes placeholders with HTML-escaped values. Placeholders
// without a value are left as written.
func (t *Template) Render(values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(t.Body, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok {
			return html.EscapeString(v)
		}
		return match
	})
}

// ExtractVariables lists placeholder names in order of first appearance
func ExtractVariables(body string) []string {
	seen := map[string]struct{}{}
	vars := []string{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		vars = append(vars, m[1])
	}
	return vars
}

// TemplateQuery represents filtering and paging parameters for listing templates
type TemplateQuery struct {
	Name      string `validate:"omitempty,max=255"`
	Category  string `validate:"omitempty,max=100"`
	Active    *bool
	Limit     int    `validate:"omitempty,gt=0,lte=500"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=name category date_time_created date_time_updated"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewTemplateQuery creates a TemplateQuery with default values
func NewTemplateQuery() *TemplateQuery {
	return &TemplateQuery{}
}

// Validate for validating TemplateQuery struct
func (q *TemplateQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// TemplateInput carries the writable fields of a template
type TemplateInput struct {
	Name     string `validate:"required,min=1,max=255"`
	Category string `validate:"max=100"`
	Body     string `validate:"required"`
	Active   bool
}

// Validate for validating TemplateInput struct
func (i *TemplateInput) Validate() error {
	return validators.ValidateStruct(i)
}
