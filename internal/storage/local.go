package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultChunkSize suits resumes of a few hundred kilobytes to a few
// megabytes.
const DefaultChunkSize = 256 * 1024

// LocalStorage implements ObjectStorage on the local filesystem. Each object
// is a directory holding fixed-size chunk files plus a manifest; the
// manifest is written last and acts as the commit marker.
type LocalStorage struct {
	dir       string
	chunkSize int
}

// LocalConfig holds configuration for the local filesystem backend
type LocalConfig struct {
	Dir       string
	ChunkSize int
}

// localManifest describes a stored object and its chunk layout
type localManifest struct {
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	ChunkSize   int    `json:"chunk_size"`
	Chunks      int    `json:"chunks"`
}

const manifestName = "manifest.json"

// NewLocalStorage creates a local filesystem storage backend rooted at
// cfg.Dir.
func NewLocalStorage(cfg *LocalConfig) (*LocalStorage, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local storage dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &LocalStorage{
		dir:       cfg.Dir,
		chunkSize: chunkSize,
	}, nil
}

// objectDir resolves the directory for a key, rejecting path escapes
func (s *LocalStorage) objectDir(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

func chunkName(i int) string {
	return fmt.Sprintf("chunk_%06d", i)
}

// Upload stores an object as chunk files plus a manifest
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dir, err := s.objectDir(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	var written int64
	chunks := 0
	buf := make([]byte, s.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			_ = os.RemoveAll(dir)
			return err
		}

		n, readErr := io.ReadFull(reader, buf)
		if n > 0 {
			path := filepath.Join(dir, chunkName(chunks))
			if err := os.WriteFile(path, buf[:n], 0644); err != nil {
				_ = os.RemoveAll(dir)
				return fmt.Errorf("failed to write chunk %d: %w", chunks, err)
			}
			written += int64(n)
			chunks++
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			_ = os.RemoveAll(dir)
			return fmt.Errorf("failed to read upload stream: %w", readErr)
		}
	}

	if size >= 0 && written != size {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("upload size mismatch: declared %d, wrote %d", size, written)
	}

	manifest := localManifest{
		Size:        written,
		ContentType: contentType,
		ChunkSize:   s.chunkSize,
		Chunks:      chunks,
	}
	data, err := json.Marshal(&manifest)
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), data, 0644); err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// multiFileReader concatenates chunk files and closes them all on Close
type multiFileReader struct {
	io.Reader
	files []*os.File
}

func (m *multiFileReader) Close() error {
	var firstErr error
	for _, f := range m.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Download opens an object for reading by concatenating its chunks
func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	dir, err := s.objectDir(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %q not found", key)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest localManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	files := make([]*os.File, 0, manifest.Chunks)
	readers := make([]io.Reader, 0, manifest.Chunks)
	for i := 0; i < manifest.Chunks; i++ {
		f, err := os.Open(filepath.Join(dir, chunkName(i)))
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to open chunk %d: %w", i, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}

	return &multiFileReader{
		Reader: io.MultiReader(readers...),
		files:  files,
	}, nil
}

// Delete removes an object and all of its chunks
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	dir, err := s.objectDir(key)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists checks whether an object's manifest is present
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	dir, err := s.objectDir(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(filepath.Join(dir, manifestName)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat manifest: %w", err)
	}
	return true, nil
}
