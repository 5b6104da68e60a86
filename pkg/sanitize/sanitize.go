package sanitize

import "strings"

// htmlEscaper replaces the five HTML metacharacters with their entity
// equivalents. The ampersand pair is listed first; strings.Replacer walks the
// input in a single pass, so entities produced by later pairs are never
// re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape makes user-supplied text safe for interpolation into an HTML
// document. It is applied to every field that ends up in the generated email
// body, and never to values used only for pattern matching or rate-limit keys.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
