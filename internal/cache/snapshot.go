// Package cache persists workspace analysis results between runs so that
// unchanged scripts are not rescanned.
//
// Each scanned root gets <cache root>/<PathKey(root)>/index.json. Entries
// are keyed by content hash and language id, so a renamed file keeps its
// cached result.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jbang-lens/internal/anchor"
)

const (
	defaultCacheRoot = "tmp/.jbang-lens"
	indexFileName    = "index.json"

	// FormatVersion is bumped whenever the scan rules change the result of
	// analysing identical content.
	FormatVersion = "1"
)

// Snapshot is the on-disk form of the analysis cache.
type Snapshot struct {
	FormatVersion string                   `json:"formatVersion"`
	Created       string                   `json:"created"`
	Root          string                   `json:"root,omitempty"`
	Entries       map[string]anchor.Result `json:"entries"`
}

// NewSnapshot returns an empty snapshot stamped with the current time.
func NewSnapshot(root string) *Snapshot {
	return &Snapshot{
		FormatVersion: FormatVersion,
		Created:       time.Now().UTC().Format(time.RFC3339),
		Root:          root,
		Entries:       map[string]anchor.Result{},
	}
}

// Key builds the entry key for content hash h analysed as languageID.
func Key(h, languageID string) string {
	return h + ":" + languageID
}

// PathKey names the cache subdirectory of a scanned root: the first 12 hex
// digits of the SHA-256 of its absolute path.
func PathKey(abs string) string {
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:])[:12]
}

// Dir is the snapshot directory for the scan root srcAbs under baseTmp, or
// under "tmp/.jbang-lens" when baseTmp is empty.
func Dir(baseTmp, srcAbs string) string {
	root := baseTmp
	if root == "" {
		root = defaultCacheRoot
	}
	return filepath.Join(root, PathKey(srcAbs))
}

// Load reads <dir>/index.json. A missing index, or one written under another
// FormatVersion, returns (nil, nil).
func Load(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", indexFileName, err)
	}
	if s.FormatVersion != FormatVersion {
		return nil, nil
	}
	if s.Entries == nil {
		s.Entries = map[string]anchor.Result{}
	}
	return &s, nil
}

// Save replaces <dir>/index.json with s. The encoded snapshot is synced to a
// sibling temp file and renamed over the index.
func Save(dir string, s *Snapshot) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+indexFileName+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(s); err != nil {
		return fmt.Errorf("encode %s: %w", indexFileName, err)
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filepath.Join(dir, indexFileName))
}

// Clear drops every cached result under dir. An empty dir is a no-op.
func Clear(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
