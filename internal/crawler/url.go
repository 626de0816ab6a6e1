package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a URL so the visit set and cache key space do
// not hold duplicates. It lowercases the scheme and host, removes default
// ports, drops fragments, and sorts query parameters.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ResolveRef resolves href against base, returning an absolute URL.
func ResolveRef(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, fmt.Errorf("parse href: %w", err)
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}
	return resolved, nil
}

// listingPageURL returns the URL for page n of a paginated listing.
// Page 1 is the root itself; later pages carry a page query parameter.
func listingPageURL(root *url.URL, n int) string {
	if n <= 1 {
		return root.String()
	}
	u := *root
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", n))
	u.RawQuery = q.Encode()
	return u.String()
}

func trimPath(p string) string {
	return strings.Trim(p, "/")
}

func sameHost(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Hostname(), b.Hostname())
}

func containsPathMarker(path, marker string) bool {
	return strings.Contains(strings.ToLower(path), strings.ToLower(marker))
}
