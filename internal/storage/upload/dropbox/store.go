// Package dropbox implements the upload provider on the Dropbox HTTP API:
// content upload, shared-link creation (reusing an existing link on
// conflict), and a direct-download link rewrite.
package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/oauth2"

	"recruitment-backend/internal/storage/upload"
)

const (
	defaultAPIBase     = "https://api.dropboxapi.com"
	defaultContentBase = "https://content.dropboxapi.com"
	defaultTokenURL    = "https://api.dropboxapi.com/oauth2/token"
)

// Store uploads résumés to Dropbox.
type Store struct {
	clientID     string
	clientSecret string
	refreshToken string
	folder       string

	apiBase     string
	contentBase string
	tokenURL    string
	httpClient  *http.Client
	now         func() time.Time
}

// New builds a Dropbox-backed provider. folder is the remote directory the
// résumés land in, e.g. "/curriculos".
func New(clientID, clientSecret, refreshToken, folder string) (*Store, error) {
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("dropbox: oauth2 credentials not configured: %w", upload.ErrUnavailable)
	}
	if folder == "" {
		folder = "/curriculos"
	}
	if !strings.HasPrefix(folder, "/") {
		folder = "/" + folder
	}
	return &Store{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		folder:       strings.TrimSuffix(folder, "/"),
		apiBase:      defaultAPIBase,
		contentBase:  defaultContentBase,
		tokenURL:     defaultTokenURL,
		httpClient:   http.DefaultClient,
		now:          time.Now,
	}, nil
}

// Kind names the variant.
func (s *Store) Kind() string { return "dropbox" }

// Upload stores the bytes under a candidate+timestamp path and resolves a
// public link, rewritten to force direct download.
func (s *Store) Upload(ctx context.Context, req upload.Request) (upload.FileRef, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return upload.FileRef{}, err
	}

	path := fmt.Sprintf("%s/%s_%d_%s", s.folder, req.CandidateSlug, s.now().Unix(), req.FileName)

	stored, err := s.uploadContent(ctx, token, path, req)
	if err != nil {
		return upload.FileRef{}, err
	}

	link, err := s.sharedLink(ctx, token, stored)
	if err != nil {
		return upload.FileRef{}, err
	}

	return upload.FileRef{URL: forceDownload(link), ID: stored}, nil
}

// accessToken exchanges the long-lived refresh token for a short-lived
// access token. The token is deliberately not cached across requests: it may
// be rotated out-of-band and each submission is self-contained.
func (s *Store) accessToken(ctx context.Context) (string, error) {
	cfg := oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: s.tokenURL},
	}
	if s.httpClient != http.DefaultClient {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}
	token, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: s.refreshToken}).Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return "", upload.Rejected("dropbox token refresh", rerr.Response.StatusCode, string(rerr.Body))
		}
		return "", fmt.Errorf("dropbox token refresh: %w", err)
	}
	return token.AccessToken, nil
}

func (s *Store) uploadContent(ctx context.Context, token, path string, req upload.Request) (string, error) {
	arg, err := apiArgJSON(map[string]any{
		"path":       path,
		"mode":       "add",
		"autorename": true,
		"mute":       true,
	})
	if err != nil {
		return "", fmt.Errorf("dropbox: marshal upload arg: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.contentBase+"/2/files/upload", bytes.NewReader(req.Data))
	if err != nil {
		return "", fmt.Errorf("dropbox: build upload request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Dropbox-API-Arg", arg)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	status, body, err := s.do(httpReq)
	if err != nil {
		return "", fmt.Errorf("dropbox: upload: %w", err)
	}
	if status != http.StatusOK {
		return "", upload.Rejected("dropbox upload", status, string(body))
	}

	var stored struct {
		PathDisplay string `json:"path_display"`
	}
	if err := json.Unmarshal(body, &stored); err != nil || stored.PathDisplay == "" {
		return "", fmt.Errorf("dropbox: upload response has no path: %w", upload.ErrMalformedResponse)
	}
	return stored.PathDisplay, nil
}

// sharedLink requests a public link for path. A conflict means the path
// already has one; the existing link is listed and reused instead of
// failing the submission.
func (s *Store) sharedLink(ctx context.Context, token, path string) (string, error) {
	status, body, err := s.rpc(ctx, token, "/2/sharing/create_shared_link_with_settings", map[string]any{
		"path": path,
	})
	if err != nil {
		return "", fmt.Errorf("dropbox: create shared link: %w", err)
	}

	if status == http.StatusOK {
		var created struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(body, &created); err != nil || created.URL == "" {
			return "", fmt.Errorf("dropbox: shared link response has no url: %w", upload.ErrMalformedResponse)
		}
		return created.URL, nil
	}

	if status == http.StatusConflict && strings.Contains(string(body), "shared_link_already_exists") {
		return s.existingLink(ctx, token, path)
	}

	return "", upload.Rejected("dropbox shared link", status, string(body))
}

func (s *Store) existingLink(ctx context.Context, token, path string) (string, error) {
	status, body, err := s.rpc(ctx, token, "/2/sharing/list_shared_links", map[string]any{
		"path":        path,
		"direct_only": true,
	})
	if err != nil {
		return "", fmt.Errorf("dropbox: list shared links: %w", err)
	}
	if status != http.StatusOK {
		return "", upload.Rejected("dropbox list shared links", status, string(body))
	}

	var listed struct {
		Links []struct {
			URL string `json:"url"`
		} `json:"links"`
	}
	if err := json.Unmarshal(body, &listed); err != nil || len(listed.Links) == 0 || listed.Links[0].URL == "" {
		return "", fmt.Errorf("dropbox: no existing link for %s: %w", path, upload.ErrMalformedResponse)
	}
	return listed.Links[0].URL, nil
}

func (s *Store) rpc(ctx context.Context, token, endpoint string, arg map[string]any) (int, []byte, error) {
	payload, err := json.Marshal(arg)
	if err != nil {
		return 0, nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	return s.do(httpReq)
}

func (s *Store) do(req *http.Request) (int, []byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// apiArgJSON marshals v for the Dropbox-API-Arg header, which only accepts
// ASCII: every rune outside 0x20-0x7E is emitted as a \uXXXX escape, with
// surrogate pairs for runes beyond the basic plane. Accented filenames are
// common here, so the raw UTF-8 bytes json.Marshal leaves in place would get
// the whole request rejected.
func apiArgJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range string(raw) {
		switch {
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String(), nil
}

// forceDownload rewrites the preview link (?dl=0) into a direct download.
func forceDownload(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := parsed.Query()
	q.Set("dl", "1")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

var _ upload.Provider = (*Store)(nil)
