package sanitize_test

import (
	"html"
	"strings"
	"testing"

	"go-agency-backend/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	t.Run("Should escape all five metacharacters", func(t *testing.T) {
		got := sanitize.Escape(`<script>alert("x&y")</script>'`)
		assert.Equal(t, "&lt;script&gt;alert(&quot;x&amp;y&quot;)&lt;/script&gt;&#039;", got)
	})

	t.Run("Should not double-escape ampersands in produced entities", func(t *testing.T) {
		got := sanitize.Escape(`&<`)
		assert.Equal(t, "&amp;&lt;", got)
	})

	t.Run("Should leave plain text untouched", func(t *testing.T) {
		assert.Equal(t, "Jo Smith", sanitize.Escape("Jo Smith"))
	})

	t.Run("Escaped output contains no live metacharacters and decodes back", func(t *testing.T) {
		inputs := []string{
			`<script>alert('pwn')</script>`,
			`"quoted" & 'single'`,
			`a < b > c & d`,
		}
		for _, in := range inputs {
			out := sanitize.Escape(in)
			assert.NotContains(t, out, "<")
			assert.NotContains(t, out, ">")
			assert.NotContains(t, out, `"`)
			assert.NotContains(t, out, "'")
			// every remaining & must start an entity
			for i := 0; i < len(out); i++ {
				if out[i] == '&' {
					rest := out[i:]
					assert.True(t,
						strings.HasPrefix(rest, "&amp;") ||
							strings.HasPrefix(rest, "&lt;") ||
							strings.HasPrefix(rest, "&gt;") ||
							strings.HasPrefix(rest, "&quot;") ||
							strings.HasPrefix(rest, "&#039;"),
						"unescaped & in %q", out)
				}
			}
			assert.Equal(t, in, html.UnescapeString(out))
		}
	})
}
