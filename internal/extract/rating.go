package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var starLabelRe = regexp.MustCompile(`(?i)\b([1-9])\s*[- ]?\s*star`)

// StarRating extracts the hotel class as an integer in [1,5]. A repeated
// star glyph inside a rating widget wins; a labeled "N star" phrase is the
// fallback. Out-of-range counts are discarded, not clamped.
func (e *Extractor) StarRating(d *Document) (int, bool) {
	return firstOf(d, starsFromGlyphs, starsFromLabel)
}

func starsFromGlyphs(d *Document) (int, bool) {
	stars := 0
	d.doc.Find(`[class*="star"], [class*="rating"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if n := strings.Count(sel.Text(), "★"); n > 0 {
			stars = n
			return false
		}
		return true
	})
	return validStars(stars)
}

func starsFromLabel(d *Document) (int, bool) {
	m := starLabelRe.FindStringSubmatch(d.Text())
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return validStars(n)
}

func validStars(n int) (int, bool) {
	if n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}
