package cloudinary

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recruitment-backend/internal/storage/upload"
)

func newTestStore(t *testing.T, srv *httptest.Server) *Store {
	t.Helper()
	store, err := New("demo-cloud", "unsigned-preset")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	store.uploadBase = srv.URL
	store.httpClient = srv.Client()
	return store
}

func TestUploadPostsBase64AndRepairsURL(t *testing.T) {
	raw := []byte("%PDF-1.4 fake")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo-cloud/auto/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		file := r.Form.Get("file")
		wantPrefix := "data:application/pdf;base64,"
		if !strings.HasPrefix(file, wantPrefix) {
			t.Errorf("file field should carry a data URI, got %.40s", file)
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(file, wantPrefix))
		if err != nil || string(decoded) != string(raw) {
			t.Errorf("payload did not round-trip")
		}
		if got := r.Form.Get("upload_preset"); got != "unsigned-preset" {
			t.Errorf("upload_preset = %q", got)
		}
		if got := r.Form.Get("public_id"); !strings.HasPrefix(got, "curriculos/Maria_Silva_") {
			t.Errorf("public_id = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo-cloud/image/upload/v1/curriculos/x.pdf",
			"public_id":  "curriculos/x",
		})
	}))
	defer srv.Close()

	store := newTestStore(t, srv)

	ref, err := store.Upload(context.Background(), upload.Request{
		Data:          raw,
		FileName:      "curriculo.pdf",
		MimeType:      "application/pdf",
		CandidateSlug: "Maria_Silva",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(ref.URL, "/raw/upload/") {
		t.Fatalf("expected raw path repair, got %s", ref.URL)
	}
	if !strings.Contains(ref.URL, "fl_attachment=curriculo.pdf") {
		t.Fatalf("expected attachment flag with filename, got %s", ref.URL)
	}
}

func TestUploadClassifiesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	store := newTestStore(t, srv)

	_, err := store.Upload(context.Background(), upload.Request{Data: []byte("x"), FileName: "cv.pdf"})
	if !errors.Is(err, upload.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "Upload preset not found") {
		t.Fatalf("rejection should carry provider body, got %v", err)
	}
}

func TestUploadClassifiesMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	store := newTestStore(t, srv)

	_, err := store.Upload(context.Background(), upload.Request{Data: []byte("x"), FileName: "cv.pdf"})
	if !errors.Is(err, upload.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New("", "preset"); !errors.Is(err, upload.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := New("cloud", ""); !errors.Is(err, upload.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
