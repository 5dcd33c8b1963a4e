// Package local implements the upload provider on the local filesystem. It
// exists for development and tests, where no cloud provider is configured.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recruitment-backend/internal/storage/upload"
)

// Store writes résumés under a base directory.
type Store struct {
	baseDir string
	now     func() time.Time
}

// New creates a local store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// Kind names the variant.
func (s *Store) Kind() string { return "local" }

// Upload writes the bytes to disk and returns a file path reference.
func (s *Store) Upload(ctx context.Context, req upload.Request) (upload.FileRef, error) {
	if err := ctx.Err(); err != nil {
		return upload.FileRef{}, err
	}

	name := fmt.Sprintf("%s_%d_%s", req.CandidateSlug, s.now().Unix(), req.FileName)
	dir := filepath.Join(s.baseDir, "curriculos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return upload.FileRef{}, fmt.Errorf("local: mkdir: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, req.Data, 0o644); err != nil {
		return upload.FileRef{}, fmt.Errorf("local: write file: %w", err)
	}

	return upload.FileRef{URL: "file://" + fullPath, ID: name}, nil
}

var _ upload.Provider = (*Store)(nil)
