package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// LinkDiscoverer walks the paginated listing and collects the set of
// unique detail-page URLs. Detail links are anchors whose path contains
// the configured marker but is not the listing root itself, which also
// filters out the pagination links.
type LinkDiscoverer struct {
	fetcher  Fetcher
	marker   string
	maxPages int
	logger   *zap.Logger
}

// NewLinkDiscoverer builds a discoverer bounded by maxPages.
func NewLinkDiscoverer(fetcher Fetcher, marker string, maxPages int, logger *zap.Logger) *LinkDiscoverer {
	return &LinkDiscoverer{
		fetcher:  fetcher,
		marker:   marker,
		maxPages: maxPages,
		logger:   logger,
	}
}

// Discover fetches listing pages starting at listingRoot until a page
// yields no previously-unseen links or the page ceiling is reached.
// Returned URLs are normalized, deduplicated, and in insertion order.
// Only an unreachable root page is an error; a later page failing to
// fetch ends discovery with what was found so far.
func (d *LinkDiscoverer) Discover(ctx context.Context, listingRoot string) ([]string, error) {
	root, err := url.Parse(listingRoot)
	if err != nil {
		return nil, fmt.Errorf("parse listing root: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string

	for pageNum := 1; pageNum <= d.maxPages; pageNum++ {
		pageURL := listingPageURL(root, pageNum)
		page, failure := d.fetcher.Fetch(ctx, pageURL)
		if failure != nil {
			if pageNum == 1 {
				return nil, fmt.Errorf("listing root unreachable: %w", failure)
			}
			d.logger.Warn("Listing page fetch failed; ending discovery",
				zap.String("url", pageURL),
				zap.Error(failure),
			)
			break
		}

		found, err := d.extractDetailLinks(root, page.Body)
		if err != nil {
			d.logger.Warn("Listing page parse failed; ending discovery",
				zap.String("url", pageURL),
				zap.Error(err),
			)
			break
		}

		newLinks := 0
		for _, link := range found {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
			newLinks++
		}

		d.logger.Info("Listing page processed",
			zap.Int("page", pageNum),
			zap.Int("new_links", newLinks),
			zap.Int("total_links", len(links)),
		)
		if newLinks == 0 {
			break
		}
	}

	return links, nil
}

func (d *LinkDiscoverer) extractDetailLinks(root *url.URL, body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	rootPath := trimPath(root.Path)
	var found []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved, err := ResolveRef(root, href)
		if err != nil {
			return
		}
		if !d.isDetailLink(root, rootPath, resolved) {
			return
		}
		normalized, err := NormalizeURL(resolved.String())
		if err != nil {
			return
		}
		found = append(found, normalized)
	})
	return found, nil
}

func (d *LinkDiscoverer) isDetailLink(root *url.URL, rootPath string, candidate *url.URL) bool {
	if !sameHost(root, candidate) {
		return false
	}
	path := trimPath(candidate.Path)
	if path == rootPath {
		// Listing root and its pagination variants.
		return false
	}
	return containsPathMarker(candidate.Path, d.marker)
}
