// Package markup declares how user-supplied HTML is cleaned before storage.
package markup

// Sanitizer strips active content from HTML while keeping formatting.
type Sanitizer interface {
	Sanitize(html string) string
}
