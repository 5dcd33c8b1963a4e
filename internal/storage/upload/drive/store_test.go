package drive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/option"

	"recruitment-backend/internal/storage/upload"
)

func newTestStore(t *testing.T, srvURL, folderID, sharedDriveID string) *Store {
	t.Helper()
	store, err := New(context.Background(), "", folderID, sharedDriveID,
		option.WithEndpoint(srvURL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	store.now = func() time.Time { return time.Unix(1700000000, 0) }
	return store
}

func TestUploadCreatesFileAndGrantsPermission(t *testing.T) {
	var createFlag, grantFlag []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/upload/drive/v3/files":
			createFlag = r.URL.Query()["supportsAllDrives"]
			json.NewEncoder(w).Encode(map[string]string{
				"id":          "abc123",
				"webViewLink": "https://drive.google.com/file/d/abc123/view",
			})
		case r.URL.Path == "/files/abc123/permissions":
			grantFlag = r.URL.Query()["supportsAllDrives"]
			json.NewEncoder(w).Encode(map[string]string{"id": "perm1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := newTestStore(t, srv.URL, "sub-folder", "shared-drive-id")

	ref, err := store.Upload(context.Background(), upload.Request{
		Data:          []byte("%PDF-1.4"),
		FileName:      "curriculo.pdf",
		MimeType:      "application/pdf",
		CandidateSlug: "Maria_Silva",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ref.URL != "https://drive.google.com/file/d/abc123/view" {
		t.Fatalf("unexpected url %s", ref.URL)
	}

	// The shared-drive capability flag must ride on both calls.
	if len(createFlag) != 1 || createFlag[0] != "true" {
		t.Fatalf("create missing supportsAllDrives, got %v", createFlag)
	}
	if len(grantFlag) != 1 || grantFlag[0] != "true" {
		t.Fatalf("permission grant missing supportsAllDrives, got %v", grantFlag)
	}
}

func TestUploadWithoutSharedDriveOmitsFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Has("supportsAllDrives") {
			t.Errorf("supportsAllDrives set on %s without a shared drive", r.URL.Path)
		}
		switch {
		case r.URL.Path == "/upload/drive/v3/files":
			json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
		case r.URL.Path == "/files/abc123/permissions":
			json.NewEncoder(w).Encode(map[string]string{"id": "perm1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := newTestStore(t, srv.URL, "plain-folder", "")

	ref, err := store.Upload(context.Background(), upload.Request{
		Data:          []byte("x"),
		FileName:      "cv.doc",
		MimeType:      "application/msword",
		CandidateSlug: "Ana",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	// Without a webViewLink in the response the link is derived from the id.
	if ref.URL != "https://drive.google.com/file/d/abc123/view" {
		t.Fatalf("unexpected url %s", ref.URL)
	}
}

func TestUploadClassifiesProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "insufficient permissions"},
		})
	}))
	defer srv.Close()

	store := newTestStore(t, srv.URL, "folder", "")

	_, err := store.Upload(context.Background(), upload.Request{
		Data:     []byte("x"),
		FileName: "cv.pdf",
		MimeType: "application/pdf",
	})
	if !errors.Is(err, upload.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestNewRequiresTargetAndCredentials(t *testing.T) {
	if _, err := New(context.Background(), "", "", ""); !errors.Is(err, upload.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without target, got %v", err)
	}
	if _, err := New(context.Background(), "", "folder", ""); !errors.Is(err, upload.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without credentials, got %v", err)
	}
}
