package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Website extracts the hotel's official site: the first external anchor
// whose host is neither the listing site itself nor on the denylist of
// social networks and booking aggregators. Most hotels have none, so an
// empty result is a valid outcome.
func (e *Extractor) Website(d *Document) (string, bool) {
	var website string
	d.doc.Find(`a[href^="http"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return true
		}
		host := canonicalHost(u.Hostname())
		if host == "" || host == canonicalHost(d.base.Hostname()) {
			return true
		}
		if e.isDenylisted(host) {
			return true
		}
		website = u.String()
		return false
	})
	return website, website != ""
}

func (e *Extractor) isDenylisted(host string) bool {
	for _, denied := range e.WebsiteDenylist {
		if host == denied || strings.HasSuffix(host, "."+denied) {
			return true
		}
	}
	return false
}

func canonicalHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
