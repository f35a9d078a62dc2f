package parse

import "regexp"

var (
	boldRE      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underlineRE = regexp.MustCompile(`__(.*?)__`)
	linkRE      = regexp.MustCompile(`\[(.*?)\]\(https?://[^)]+\)`)
)

// Normalize strips decorative markup from raw broadcast text:
// **bold** and __underline__ markers are removed keeping the inner text, and
// [label](url) constructs are replaced by the label alone. No other characters
// are altered; text without markup passes through unchanged.
func Normalize(text string) string {
	text = boldRE.ReplaceAllString(text, "$1")
	text = underlineRE.ReplaceAllString(text, "$1")
	text = linkRE.ReplaceAllString(text, "$1")
	return text
}
