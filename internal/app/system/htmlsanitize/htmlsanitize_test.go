package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	in := "Quarterly access review for all admin accounts"
	if got := htmlsanitize.Sanitize(in); got != in {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Notes</p><script>alert('xss')</script>")
	if got != "Notes" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	in := `<b onclick="alert('xss')">Click</b>`
	got := htmlsanitize.Sanitize(in)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestSanitize_PlainTextRoundTrip(t *testing.T) {
	tests := []string{
		`R&D for Tom's "core" <2 sites`,
		"Risk > appetite & tolerance",
		"café, naïve, 日本語",
		"a < b && c > d",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_StripsMarkupKeepsText(t *testing.T) {
	got := htmlsanitize.Sanitize(`<b>Bold</b> &amp; <a href="javascript:x()">link</a>`)
	if got != "Bold & link" {
		t.Errorf("expected tags stripped and text kept, got %q", got)
	}
}

func TestSanitize_NeverLengthens(t *testing.T) {
	in := strings.Repeat(`&"'<>`, 100)
	if got := htmlsanitize.Sanitize(in); len(got) > len(in) {
		t.Errorf("sanitized length %d exceeds input length %d", len(got), len(in))
	}
}

func TestSanitizePtr(t *testing.T) {
	if htmlsanitize.SanitizePtr(nil) != nil {
		t.Error("nil input should stay nil")
	}

	in := "  <script>x</script>  "
	got := htmlsanitize.SanitizePtr(&in)
	if got == nil || *got != "" {
		t.Errorf("expected pointer to empty string, got %v", got)
	}
}
