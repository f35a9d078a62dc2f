package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// Section prefixes on floor-update lines.
const (
	floorPrefix   = "Floor Tonnel"
	averagePrefix = "Average Tonnel"
)

var (
	// headRE matches the first line: "<name> <signed delta> TON".
	headRE = regexp.MustCompile(`^(.+?)\s+([-+]?\d*[.,]?\d+)\s*TON`)

	// quadRE matches the four fixed denominations of a section line:
	// "0,50 TON ≈ 2,00 USD ≈ 100 ⭐️ ≈ 150 ₽".
	quadRE = regexp.MustCompile(`([-+]?\d*[.,]?\d+)\s*TON\s*≈\s*([-+]?\d*[.,]?\d+)\s*USD\s*≈\s*([-+]?\d*[.,]?\d+)\s*\S*\s*≈\s*([-+]?\d*[.,]?\d+)`)
)

// Floor parses a live floor-price update. The expected shape is:
//
//	Flying Broom +0.01 TON 📈
//	Floor Tonnel: 0,69 TON ≈ 2,58 USD ≈ 172 ⭐️ ≈ 235 ₽
//	Average Tonnel: 0,71 TON ≈ 2,64 USD ≈ 176 ⭐️ ≈ 241 ₽
//
// Only the first line is mandatory; a missing Floor or Average section leaves
// the corresponding fields nil. Returns false when the first line does not
// match the head shape.
func Floor(text string, date time.Time) (model.PriceObservation, bool) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return model.PriceObservation{}, false
	}

	m := headRE.FindStringSubmatch(lines[0])
	if m == nil {
		return model.PriceObservation{}, false
	}
	name := strings.TrimSpace(m[1])
	delta, err := parseDecimal(m[2])
	if err != nil {
		return model.PriceObservation{}, false
	}

	obs := model.PriceObservation{
		ItemName: name,
		Date:     date,
		DeltaTON: delta,
	}

	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, floorPrefix):
			if q, ok := parseQuad(line); ok {
				obs.Floor = q
			}
		case strings.HasPrefix(line, averagePrefix):
			if q, ok := parseQuad(line); ok {
				obs.Average = q
			}
		}
	}

	return obs, true
}

// parseQuad extracts the four denominations from a section line.
func parseQuad(line string) (*model.QuotedPrice, bool) {
	m := quadRE.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := parseDecimal(m[i+1])
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return &model.QuotedPrice{TON: vals[0], USD: vals[1], Star: vals[2], RUB: vals[3]}, true
}
