package extract

import (
	"regexp"
	"strconv"
)

// reviewRe matches "4.5/5 (123 reviews)" style widgets. Score and count
// come from the same match so the pair cannot be mismatched across widgets.
var reviewRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*/\s*(5|10)\s*\(\s*(\d+)\s*reviews?\s*\)`)

// Reviews extracts the review score on the 5-point scale and the number of
// reviews. Scores reported out of 10 are halved before validation.
func (e *Extractor) Reviews(d *Document) (score float64, count int, ok bool) {
	m := reviewRe.FindStringSubmatch(d.Text())
	if m == nil {
		return 0, 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	if m[2] == "10" {
		score /= 2
	}
	count, err = strconv.Atoi(m[3])
	if err != nil {
		return 0, 0, false
	}
	if score < 0 || score > 5 || count < 0 {
		return 0, 0, false
	}
	return score, count, true
}
