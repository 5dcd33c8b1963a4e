// Package upload defines the storage-provider capability the submission
// pipeline uploads résumés through. Variants live in subpackages; each one
// turns raw bytes into a shareable link.
package upload

import (
	"context"
	"errors"
	"fmt"
)

// Provider uploads a file and resolves a link for it.
type Provider interface {
	// Upload stores the bytes under a name derived from the candidate and
	// returns a shareable URL. It is called at most once per submission.
	Upload(ctx context.Context, req Request) (FileRef, error)
	// Kind names the variant for logs and diagnostics.
	Kind() string
}

// Request carries one validated upload.
type Request struct {
	Data          []byte
	FileName      string
	MimeType      string
	CandidateSlug string
}

// FileRef is the provider's resolved reference for a stored file.
type FileRef struct {
	URL string
	ID  string
}

// Sentinel kinds for provider failures. Wrap with %w so callers can
// errors.Is them.
var (
	// ErrUnavailable means the variant is missing credentials or target
	// configuration and cannot attempt an upload.
	ErrUnavailable = errors.New("storage provider unavailable")
	// ErrRejected means the provider answered with a non-success status.
	ErrRejected = errors.New("storage provider rejected upload")
	// ErrMalformedResponse means the provider answered but not in the
	// expected shape.
	ErrMalformedResponse = errors.New("storage provider response malformed")
)

// Rejected builds an ErrRejected carrying the provider status and body.
func Rejected(kind string, status int, body string) error {
	if len(body) > 512 {
		body = body[:512]
	}
	return fmt.Errorf("%s: status %d: %s: %w", kind, status, body, ErrRejected)
}
