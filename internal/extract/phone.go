package extract

import (
	"regexp"
	"strings"
)

var (
	labeledPhoneRe = regexp.MustCompile(`(?i)(?:tel|phone)[:.]?\s*(\+?[0-9][0-9\s\-().]{7,})`)
	genericPhoneRe = regexp.MustCompile(`\+?[0-9][0-9\s\-().]{9,}[0-9]`)
)

// Phone extracts a loosely normalized phone number. tel: anchors win;
// labeled or international-looking patterns in the visible text are the
// fallback.
func (e *Extractor) Phone(d *Document) (string, bool) {
	return firstOf(d, phoneFromTelAnchor, phoneFromText)
}

func phoneFromTelAnchor(d *Document) (string, bool) {
	href, ok := d.doc.Find(`a[href^="tel:"]`).First().Attr("href")
	if !ok {
		return "", false
	}
	phone := normalizePhone(strings.TrimPrefix(href, "tel:"))
	return phone, phone != ""
}

func phoneFromText(d *Document) (string, bool) {
	text := d.Text()
	if m := labeledPhoneRe.FindStringSubmatch(text); m != nil {
		if phone := normalizePhone(m[1]); digitCount(phone) >= 8 {
			return phone, true
		}
	}
	if m := genericPhoneRe.FindString(text); m != "" {
		if phone := normalizePhone(m); digitCount(phone) >= 10 {
			return phone, true
		}
	}
	return "", false
}

// normalizePhone keeps digits and common separators, collapsing runs of
// whitespace. It deliberately does not reformat into E.164.
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '+', r == '-', r == '(', r == ')':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(' ')
		}
	}
	return collapseWhitespace(b.String())
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
