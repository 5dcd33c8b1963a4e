package local

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"recruitment-backend/internal/storage/upload"
)

func TestUploadWritesFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }

	ref, err := store.Upload(context.Background(), upload.Request{
		Data:          []byte("conteudo"),
		FileName:      "curriculo.pdf",
		CandidateSlug: "Maria_Silva",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	path := strings.TrimPrefix(ref.URL, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "conteudo" {
		t.Fatalf("stored bytes = %q", data)
	}
	if !strings.Contains(path, "Maria_Silva_1700000000_curriculo.pdf") {
		t.Fatalf("unexpected path %s", path)
	}
}

func TestUploadHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := New(t.TempDir())
	if _, err := store.Upload(ctx, upload.Request{Data: []byte("x"), FileName: "cv.pdf"}); err == nil {
		t.Fatalf("expected context error")
	}
}
