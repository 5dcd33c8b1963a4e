// Package cloudinary implements the upload provider on Cloudinary's
// unsigned upload endpoint. The payload travels base64-encoded; the
// resolved secure URL is repaired from the image path segment to the raw
// one and tagged with an attachment flag so downloads keep the original
// filename.
package cloudinary

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"recruitment-backend/internal/storage/upload"
)

const defaultUploadBase = "https://api.cloudinary.com/v1_1"

// Store uploads résumés to Cloudinary.
type Store struct {
	cloudName    string
	uploadPreset string

	uploadBase string
	httpClient *http.Client
}

// New builds a Cloudinary-backed provider for an unsigned upload preset.
func New(cloudName, uploadPreset string) (*Store, error) {
	if cloudName == "" || uploadPreset == "" {
		return nil, fmt.Errorf("cloudinary: cloud name or upload preset not configured: %w", upload.ErrUnavailable)
	}
	return &Store{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		uploadBase:   defaultUploadBase,
		httpClient:   http.DefaultClient,
	}, nil
}

// Kind names the variant.
func (s *Store) Kind() string { return "cloudinary" }

// Upload posts the base64 payload with a caller-chosen public id and
// resolves the secure URL.
func (s *Store) Upload(ctx context.Context, req upload.Request) (upload.FileRef, error) {
	publicID := fmt.Sprintf("curriculos/%s_%s", req.CandidateSlug, uuid.NewString())

	form := url.Values{}
	form.Set("file", fmt.Sprintf("data:%s;base64,%s", req.MimeType, base64.StdEncoding.EncodeToString(req.Data)))
	form.Set("upload_preset", s.uploadPreset)
	form.Set("public_id", publicID)

	endpoint := fmt.Sprintf("%s/%s/auto/upload", s.uploadBase, s.cloudName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return upload.FileRef{}, fmt.Errorf("cloudinary: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return upload.FileRef{}, fmt.Errorf("cloudinary: upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return upload.FileRef{}, fmt.Errorf("cloudinary: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return upload.FileRef{}, upload.Rejected("cloudinary", resp.StatusCode, string(body))
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.Unmarshal(body, &uploaded); err != nil || uploaded.SecureURL == "" {
		return upload.FileRef{}, fmt.Errorf("cloudinary: response has no secure_url: %w", upload.ErrMalformedResponse)
	}

	return upload.FileRef{
		URL: repairURL(uploaded.SecureURL, req.FileName),
		ID:  uploaded.PublicID,
	}, nil
}

// repairURL moves an asset Cloudinary filed under the image path onto the
// raw path and appends the attachment flag with the human-readable filename,
// so a browser download keeps the right name and extension.
func repairURL(secureURL, fileName string) string {
	repaired := strings.Replace(secureURL, "/image/upload/", "/raw/upload/", 1)

	parsed, err := url.Parse(repaired)
	if err != nil {
		return repaired
	}
	q := parsed.Query()
	q.Set("fl_attachment", fileName)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

var _ upload.Provider = (*Store)(nil)
