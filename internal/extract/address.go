package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const minAddressLen = 10

var addressLabelRe = regexp.MustCompile(`(?i)address:?\s+([^\n]{10,160})`)

// Address extracts the street address or location text. A labeled
// address/location element wins; an "Address:" prefixed text block is the
// fallback.
func (e *Extractor) Address(d *Document) (string, bool) {
	return firstOf(d, addressFromLabeledElement, addressFromTextPattern)
}

func addressFromLabeledElement(d *Document) (string, bool) {
	var address string
	selector := `[class*="address"], [id*="address"], [class*="location"], [id*="location"]`
	d.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseWhitespace(sel.Text())
		if len(text) > minAddressLen {
			address = text
			return false
		}
		return true
	})
	return address, address != ""
}

func addressFromTextPattern(d *Document) (string, bool) {
	m := addressLabelRe.FindStringSubmatch(d.Text())
	if m == nil {
		return "", false
	}
	address := strings.TrimRight(collapseWhitespace(m[1]), " .,;")
	return address, len(address) > minAddressLen
}
