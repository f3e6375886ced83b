// Package attachment materializes picked or downloaded files under the app's
// storage root so their absolute paths can be recorded in a client's or
// case's file list.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/JustJay7/smartlawyer/pkg/logger"
)

// DefaultMaxSize caps an attachment when the store is given no limit.
const DefaultMaxSize int64 = 25 << 20

var (
	ErrTooLarge       = errors.New("attachment exceeds the size limit")
	ErrUnsupportedURL = errors.New("only http and https urls can be downloaded")
)

type Kind string

const (
	Document Kind = "document"
	Image    Kind = "image"
)

// Attachment is a file saved under the storage root.
type Attachment struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Store writes attachments into <root>/documents and <root>/images.
type Store struct {
	root    string
	maxSize int64
	logger  *logger.Logger
	client  *http.Client
	now     func() time.Time
}

// NewStore returns a store rooted at root accepting files of at most maxSize
// bytes. A non-positive maxSize means DefaultMaxSize.
func NewStore(root string, maxSize int64, logger *logger.Logger) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{
		root:    root,
		maxSize: maxSize,
		logger:  logger.With("component", "attachment"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		now: time.Now,
	}
}

// Root returns the absolute storage root.
func (s *Store) Root() string {
	abs, err := filepath.Abs(s.root)
	if err != nil {
		return s.root
	}
	return abs
}

// Save copies r into the store. The kind is sniffed from the content, not
// taken from originalName. Content longer than the size limit fails with
// ErrTooLarge and leaves nothing behind.
func (s *Store) Save(ctx context.Context, r io.Reader, originalName string) (Attachment, error) {
	if err := ctx.Err(); err != nil {
		return Attachment{}, err
	}

	root := s.Root()
	if err := os.MkdirAll(root, 0755); err != nil {
		return Attachment{}, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(root, ".upload-*")
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	// One byte past the limit is enough to tell an oversized file.
	size, err := io.Copy(tmp, io.LimitReader(r, s.maxSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to save file: %w", err)
	}
	if size > s.maxSize {
		s.logger.Warn("Attachment rejected", "name", originalName, "limit", s.maxSize)
		return Attachment{}, ErrTooLarge
	}

	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to detect file type: %w", err)
	}

	kind, ext := classify(mtype)
	dir := filepath.Join(root, string(kind)+"s")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Attachment{}, fmt.Errorf("failed to create directory: %w", err)
	}

	name := s.fileName(originalName, ext)
	fullPath := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, fullPath); err != nil {
		return Attachment{}, fmt.Errorf("failed to move file: %w", err)
	}

	s.logger.Info("Attachment saved",
		"path", fullPath,
		"kind", kind,
		"mime", mtype.String(),
		"size", size)

	return Attachment{
		Path:     fullPath,
		Name:     name,
		Kind:     kind,
		MIMEType: mtype.String(),
		Size:     size,
	}, nil
}

// Download fetches an http or https url and saves the body like Save.
func (s *Store) Download(ctx context.Context, url string) (Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to create request: %w", err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return Attachment{}, ErrUnsupportedURL
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Attachment{}, fmt.Errorf("bad status: %s", resp.Status)
	}
	if resp.ContentLength > s.maxSize {
		return Attachment{}, ErrTooLarge
	}

	return s.Save(ctx, resp.Body, filepath.Base(req.URL.Path))
}

// Owns reports whether path lies inside the storage root.
func (s *Store) Owns(path string) bool {
	rel, err := filepath.Rel(s.Root(), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Remove deletes a saved file. A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove attachment", "path", path, "error", err)
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func classify(mtype *mimetype.MIME) (Kind, string) {
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Document, ".pdf"
	}
	if mtype.Is("image/jpeg") {
		return Image, ".jpg"
	}
	return Image, ".png"
}

func (s *Store) fileName(originalName, ext string) string {
	stamp := s.now().Format("20060102_150405")
	id := uuid.NewString()[:8]
	base := sanitize(originalName)
	if base == "" {
		return fmt.Sprintf("%s_%s%s", stamp, id, ext)
	}
	return fmt.Sprintf("%s_%s_%s%s", stamp, id, base, ext)
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Join(strings.Fields(name), "_")
}
