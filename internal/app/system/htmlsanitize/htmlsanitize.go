// Package htmlsanitize cleans user-supplied free text before it is stored.
//
// Values are served back as JSON, not HTML, so markup is stripped and the
// remaining text is kept as the client wrote it. Entities are not left
// escaped; consumers that render into HTML must escape on output.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Sanitize removes all tags, dropping the contents of script and style
// elements, and returns the plain text unescaped.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strict().Sanitize(s))
}

// SanitizePtr sanitizes *s in place semantics: nil stays nil, and a value that
// is blank after sanitizing becomes a pointer to the empty string.
func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := strings.TrimSpace(Sanitize(*s))
	return &out
}
