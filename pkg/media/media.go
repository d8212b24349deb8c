// Package media stores uploaded images on local disk and resolves stored
// filenames to public URLs.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is the public path stored files are served under.
const URLPrefix = "/storage/"

var (
	// ErrUnsupportedType is returned when an upload is not an accepted image type.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge is returned when an upload exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrEmpty is returned for zero-length uploads.
	ErrEmpty = errors.New("file is empty")
)

var allowedTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/x-icon",
	"image/vnd.microsoft.icon",
}

// URL resolves a stored filename to the path it is served from. Values that
// already start with "http" or "/" are returned unchanged.
func URL(filename string) string {
	if filename == "" || strings.HasPrefix(filename, "http") || strings.HasPrefix(filename, "/") {
		return filename
	}
	return URLPrefix + filename
}

// Store writes uploads under a root directory.
type Store struct {
	root     string
	maxBytes int64
}

// NewStore creates the root directory if needed.
func NewStore(root string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &Store{root: root, maxBytes: maxBytes}, nil
}

// Save sniffs and stores r, returning the generated filename. name is the
// client-supplied filename and only used in error messages.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload %q: %w", name, err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: %q exceeds %d bytes", ErrTooLarge, name, s.maxBytes)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: %q is %s", ErrUnsupportedType, name, mt.String())
	}

	filename := uuid.NewString() + mt.Extension()

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, filename)); err != nil {
		return "", fmt.Errorf("moving upload into place: %w", err)
	}

	return filename, nil
}

// Handler serves stored files. Mount it at URLPrefix with the prefix stripped.
// Directory listings are not served.
func (s *Store) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") || strings.HasPrefix(filepath.Base(r.URL.Path), ".") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	})
}
