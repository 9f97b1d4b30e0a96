// Package sanitizer cleans user-supplied contract and template HTML.
package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpsg-tech/clm-sub005/internal/domain/markup"
)

type ugcSanitizer struct {
	policy *bluemonday.Policy
}

// NewUGCSanitizer returns a Sanitizer over the bluemonday UGC policy. Scripts,
// event handlers and javascript: URLs are removed; formatting and tables stay.
func NewUGCSanitizer() markup.Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return &ugcSanitizer{policy: policy}
}

func (s *ugcSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
