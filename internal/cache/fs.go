package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// entryMeta is the sidecar JSON written next to each cached body.
type entryMeta struct {
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FS is a filesystem-backed page cache. Bodies live in one file per URL
// with a sidecar metadata JSON. A missing or unreadable entry is a miss,
// never an error.
type FS struct {
	dir    string
	logger *zap.Logger
}

// NewFS creates the cache directory if needed.
func NewFS(dir string, logger *zap.Logger) (*FS, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &FS{dir: dir, logger: logger}, nil
}

// Get returns the cached body and status for rawURL, or ok=false on miss.
func (c *FS) Get(_ context.Context, rawURL string) ([]byte, int, bool) {
	base := safeBasename(rawURL)
	metaRaw, err := os.ReadFile(c.metaPath(base))
	if err != nil {
		return nil, 0, false
	}
	var meta entryMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		c.logger.Debug("Discarding unreadable cache meta", zap.String("url", rawURL), zap.Error(err))
		return nil, 0, false
	}
	body, err := os.ReadFile(c.bodyPath(base))
	if err != nil {
		return nil, 0, false
	}
	return body, meta.Status, true
}

// Put stores the body and status under rawURL, overwriting any prior entry.
func (c *FS) Put(_ context.Context, rawURL string, status int, body []byte) error {
	base := safeBasename(rawURL)
	if err := os.WriteFile(c.bodyPath(base), body, 0o600); err != nil {
		return fmt.Errorf("write cache body: %w", err)
	}
	meta := entryMeta{URL: rawURL, Status: status, FetchedAt: time.Now().UTC()}
	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache meta: %w", err)
	}
	if err := os.WriteFile(c.metaPath(base), payload, 0o600); err != nil {
		return fmt.Errorf("write cache meta: %w", err)
	}
	return nil
}

func (c *FS) bodyPath(base string) string {
	return filepath.Join(c.dir, base+".html")
}

func (c *FS) metaPath(base string) string {
	return filepath.Join(c.dir, base+".json")
}
