package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRE matches a signed decimal number with a comma or dot separator.
var numberRE = regexp.MustCompile(`[-+]?\d*[.,]?\d+`)

// parseDecimal converts a numeric token to a float64, accepting either a
// comma or a dot as the decimal separator.
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// splitLines splits text into trimmed non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
