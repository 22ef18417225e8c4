// Package fs stores markdown snapshots of fetched pages on disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vcfolio"
)

// Ensure FileStore implements vcfolio.PageStore at compile time.
var _ vcfolio.PageStore = (*FileStore)(nil)

// FileStore implements vcfolio.PageStore with atomic update semantics.
// Pages are saved under dir.tmp and renamed to dir on Commit, so an
// aborted run leaves no snapshot directory behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore writing snapshots under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) tempDir() string {
	return s.dir + ".tmp"
}

// Save writes page to the pending snapshot directory.
func (s *FileStore) Save(_ context.Context, page *vcfolio.Page) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return vcfolio.Errorf(vcfolio.EINTERNAL, "failed to create snapshot directory: %v", err)
	}
	if err := os.WriteFile(fullPath, []byte(FormatPage(page)), 0o644); err != nil {
		return vcfolio.Errorf(vcfolio.EINTERNAL, "failed to write snapshot: %v", err)
	}
	return nil
}

// Commit replaces the snapshot directory with the pending one.
func (s *FileStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.dir)
}

// Abort discards pending snapshots.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a snapshot-relative file path. Company
// pages come from many hosts within one run, so the host leads the path.
// Example: https://acme.example/about/ → acme.example/about/index.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", vcfolio.Errorf(vcfolio.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", vcfolio.Errorf(vcfolio.EINVALID, "page URL %q has no host", rawURL)
	}

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		path = "index.md"
	case strings.HasSuffix(path, "/"):
		path += "index.md"
	default:
		path += ".md"
	}

	return filepath.Join(u.Host, filepath.FromSlash(path)), nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *vcfolio.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\nfetched: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}
