// Package cache provides URL-keyed page caches so repeat runs skip the
// network. A cache entry carries the raw body and status with no expiry:
// the cache is a performance optimization, not a freshness guarantee.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var invalidFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// safeBasename derives a filesystem-safe, collision-resistant name for a
// URL: sanitized host and path plus a hash prefix.
func safeBasename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return hashURL(raw)
	}
	host := invalidFilenameChars.ReplaceAllString(u.Hostname(), "_")
	p := strings.Trim(u.EscapedPath(), "/")
	if p == "" {
		p = "root"
	}
	p = invalidFilenameChars.ReplaceAllString(p, "_")
	if len(p) > 120 {
		p = p[:120]
	}
	hash := hashURL(raw)[:16]
	return fmt.Sprintf("%s_%s_%s", host, p, hash)
}

func hashURL(raw string) string {
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
