package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestLocalStorage(t *testing.T, chunkSize int) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(&LocalConfig{
		Dir:       t.TempDir(),
		ChunkSize: chunkSize,
	})
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}
	return s
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		chunkSize int
		payload   []byte
	}{
		{
			name:      "payload smaller than one chunk",
			chunkSize: 64,
			payload:   []byte("short resume"),
		},
		{
			name:      "payload spanning several chunks",
			chunkSize: 16,
			payload:   bytes.Repeat([]byte("abcdefgh"), 20),
		},
		{
			name:      "payload exactly one chunk",
			chunkSize: 32,
			payload:   bytes.Repeat([]byte("x"), 32),
		},
		{
			name:      "empty payload",
			chunkSize: 32,
			payload:   []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestLocalStorage(t, tt.chunkSize)

			key := "resumes/test-object"
			err := s.Upload(ctx, key, bytes.NewReader(tt.payload), int64(len(tt.payload)), "application/pdf")
			if err != nil {
				t.Fatalf("upload failed: %v", err)
			}

			reader, err := s.Download(ctx, key)
			if err != nil {
				t.Fatalf("download failed: %v", err)
			}
			defer reader.Close()

			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(got), len(tt.payload))
			}
		})
	}
}

func TestLocalStorage_ChunkLayout(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t, 10)

	payload := bytes.Repeat([]byte("0123456789"), 3)
	payload = append(payload, []byte("tail")...) // 34 bytes, 4 chunks

	key := "resumes/chunked"
	if err := s.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/pdf"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	dir := filepath.Join(s.dir, "resumes", "chunked")
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, fmt.Sprintf("chunk_%06d", i))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected chunk file %d: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "chunk_000004")); !os.IsNotExist(err) {
		t.Error("expected exactly 4 chunks")
	}
	if _, err := os.Stat(filepath.Join(dir, manifestName)); err != nil {
		t.Errorf("expected manifest: %v", err)
	}
}

func TestLocalStorage_SizeMismatch(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t, 32)

	payload := []byte("actual bytes")
	err := s.Upload(ctx, "resumes/mismatch", bytes.NewReader(payload), int64(len(payload))+5, "application/pdf")
	if err == nil {
		t.Fatal("expected size mismatch error")
	}

	// A failed upload must not leave a readable object behind
	exists, err := s.Exists(ctx, "resumes/mismatch")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("expected no object after failed upload")
	}
}

func TestLocalStorage_DeleteAndExists(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t, 32)

	key := "resumes/to-delete"
	if err := s.Upload(ctx, key, bytes.NewReader([]byte("data")), 4, "application/pdf"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	exists, err := s.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatal("expected object to exist after upload")
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err = s.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("expected object to be gone after delete")
	}

	if _, err := s.Download(ctx, key); err == nil {
		t.Error("expected download of deleted object to fail")
	}
}

func TestLocalStorage_RejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t, 32)

	for _, key := range []string{"", "../escape", "/absolute/key"} {
		if err := s.Upload(ctx, key, bytes.NewReader(nil), 0, ""); err == nil {
			t.Errorf("expected upload with key %q to fail", key)
		}
		if _, err := s.Download(ctx, key); err == nil {
			t.Errorf("expected download with key %q to fail", key)
		}
	}
}
