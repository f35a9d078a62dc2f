package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// saleMarker identifies a sale notice; it must appear on the first line.
const saleMarker = "Gift Sold"

var (
	// itemNameRE extracts the name before an opening parenthesis,
	// e.g. "Vintage Cigar #17369 (https://...)" -> "Vintage Cigar #17369".
	itemNameRE = regexp.MustCompile(`^(.+?)\s*\(`)

	priceRE = regexp.MustCompile(`Price:\s*([-+]?\d*[.,]?\d+)`)
)

// Sale parses a live sale notice. The expected shape is:
//
//	Gift Sold
//
//	Vintage Cigar #17369 (https://t.me/nft/VintageCigar-1476)
//
//	Price: 5.5 TON
//
// Returns false when the text is not a sale notice: fewer than three
// non-empty lines, missing marker on the first line, or no parseable price.
func Sale(text string, messageID int64, date time.Time) (model.SaleObservation, bool) {
	lines := splitLines(text)
	if len(lines) < 3 {
		return model.SaleObservation{}, false
	}
	if !strings.Contains(lines[0], saleMarker) {
		return model.SaleObservation{}, false
	}

	name := lines[1]
	if m := itemNameRE.FindStringSubmatch(name); m != nil {
		name = m[1]
	}
	name = strings.TrimSpace(name)

	price, ok := findPrice(lines)
	if !ok {
		return model.SaleObservation{}, false
	}

	return model.SaleObservation{
		MessageID: messageID,
		ItemName:  name,
		PriceTON:  price,
		Date:      date,
	}, true
}

// findPrice scans lines for the first "Price: <number>" match.
func findPrice(lines []string) (float64, bool) {
	for _, line := range lines {
		m := priceRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		price, err := parseDecimal(m[1])
		if err != nil {
			continue
		}
		return price, true
	}
	return 0, false
}
