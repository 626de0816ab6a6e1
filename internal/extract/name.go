package extract

import "strings"

// Name extracts the hotel name. The primary heading wins; the page title,
// stripped of the site suffix, is the fallback.
func (e *Extractor) Name(d *Document) (string, bool) {
	return firstOf(d, nameFromHeading, e.nameFromTitle)
}

func nameFromHeading(d *Document) (string, bool) {
	name := collapseWhitespace(d.doc.Find("h1").First().Text())
	return name, name != ""
}

func (e *Extractor) nameFromTitle(d *Document) (string, bool) {
	title := collapseWhitespace(d.doc.Find("title").First().Text())
	if title == "" {
		return "", false
	}
	for _, suffix := range e.TitleSuffixes {
		if idx := strings.Index(title, suffix); idx > 0 {
			title = title[:idx]
			break
		}
	}
	title = strings.TrimSpace(title)
	return title, title != ""
}
