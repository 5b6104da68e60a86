package spam

import "regexp"

// patterns is the ordered heuristic list run against free-text fields.
// Evaluation stops at the first match.
var patterns = []*regexp.Regexp{
	// common spam vocabulary
	regexp.MustCompile(`(?i)\b(viagra|cialis|casino|lottery|winner|congratulations|claim your prize)\b`),
	// BBCode link markup
	regexp.MustCompile(`(?i)\[url=`),
	// raw HTML anchor tags
	regexp.MustCompile(`(?i)<a\s+href`),
	// links to high-abuse TLDs
	regexp.MustCompile(`(?i)https?://[^\s]+\.(ru|cn|tk|ml|ga|cf)\b`),
}

// Classify reports whether the combined name and message text matches any of
// the configured spam heuristics. It runs against the trimmed, pre-sanitize
// text and never mutates its input.
func Classify(name, message string) bool {
	fullText := name + " " + message
	for _, p := range patterns {
		if p.MatchString(fullText) {
			return true
		}
	}
	return false
}
