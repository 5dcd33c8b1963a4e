// Package drive implements the upload provider on Google Drive. Files are
// created under a configured folder or shared drive and opened to
// anyone-with-the-link readers.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"recruitment-backend/internal/storage/upload"
)

// Store uploads résumés to Google Drive.
type Store struct {
	svc *driveapi.Service

	folderID      string
	sharedDriveID string

	now func() time.Time
}

// New builds a Drive-backed provider. serviceAccountJSON is the service
// account key; folderID and sharedDriveID configure the target (at least one
// is required, folderID wins as the direct parent when both are set).
// Extra client options override the default authentication, which lets tests
// point the service at a fake endpoint.
func New(ctx context.Context, serviceAccountJSON, folderID, sharedDriveID string, opts ...option.ClientOption) (*Store, error) {
	if folderID == "" && sharedDriveID == "" {
		return nil, fmt.Errorf("drive: no target folder or shared drive configured: %w", upload.ErrUnavailable)
	}

	if len(opts) == 0 {
		if serviceAccountJSON == "" {
			return nil, fmt.Errorf("drive: service account key not configured: %w", upload.ErrUnavailable)
		}
		jwtCfg, err := google.JWTConfigFromJSON([]byte(serviceAccountJSON), driveapi.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("drive: parse service account key: %w", upload.ErrUnavailable)
		}
		opts = []option.ClientOption{option.WithTokenSource(jwtCfg.TokenSource(ctx))}
	}

	svc, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: build service: %w", err)
	}

	return &Store{
		svc:           svc,
		folderID:      folderID,
		sharedDriveID: sharedDriveID,
		now:           time.Now,
	}, nil
}

// Kind names the variant.
func (s *Store) Kind() string { return "drive" }

// Upload creates the file, grants anyone-with-link read access, and returns
// the view link. When a shared drive is configured, the supportsAllDrives
// capability flag goes on both the create and the permission grant; Drive
// fails the call it is missing from.
func (s *Store) Upload(ctx context.Context, req upload.Request) (upload.FileRef, error) {
	parent := s.folderID
	if parent == "" {
		parent = s.sharedDriveID
	}

	name := fmt.Sprintf("%s_%d_%s", req.CandidateSlug, s.now().Unix(), req.FileName)

	create := s.svc.Files.Create(&driveapi.File{
		Name:     name,
		Parents:  []string{parent},
		MimeType: req.MimeType,
	}).
		Media(bytes.NewReader(req.Data), googleapi.ContentType(req.MimeType)).
		Fields("id", "webViewLink").
		Context(ctx)
	if s.sharedDriveID != "" {
		create = create.SupportsAllDrives(true)
	}

	created, err := create.Do()
	if err != nil {
		return upload.FileRef{}, classify("drive", err)
	}
	if created.Id == "" {
		return upload.FileRef{}, fmt.Errorf("drive: create returned no file id: %w", upload.ErrMalformedResponse)
	}

	grant := s.svc.Permissions.Create(created.Id, &driveapi.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx)
	if s.sharedDriveID != "" {
		grant = grant.SupportsAllDrives(true)
	}
	if _, err := grant.Do(); err != nil {
		return upload.FileRef{}, classify("drive", err)
	}

	url := created.WebViewLink
	if url == "" {
		url = fmt.Sprintf("https://drive.google.com/file/d/%s/view", created.Id)
	}
	return upload.FileRef{URL: url, ID: created.Id}, nil
}

func classify(kind string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return upload.Rejected(kind, gerr.Code, gerr.Message)
	}
	return fmt.Errorf("%s: %w", kind, err)
}

var _ upload.Provider = (*Store)(nil)
