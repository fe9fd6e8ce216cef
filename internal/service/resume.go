package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/nithin2k5/Arbeit/internal/storage"
)

// allowedResumeTypes are the only content types accepted for resume uploads.
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ResumeMetadata is the sidecar record stored next to each resume blob.
type ResumeMetadata struct {
	OwnerID      string    `json:"owner_id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ResumeService stores resume attachments in the configured blob backend.
// Blob references are opaque; validation helpers are exposed here but
// enforcement belongs to the submission orchestrator.
type ResumeService struct {
	storage   storage.ObjectStorage
	maxSizeMB int64
}

// ResumeConfig holds configuration for the resume service
type ResumeConfig struct {
	MaxSizeMB int64
}

// NewResumeService creates a new resume service.
// Parameters:
//   - objectStorage: blob backend for payloads and sidecar metadata.
//   - cfg: upload limits.
// Returns:
//   - *ResumeService: initialized service.
func NewResumeService(objectStorage storage.ObjectStorage, cfg *ResumeConfig) *ResumeService {
	maxSizeMB := cfg.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &ResumeService{
		storage:   objectStorage,
		maxSizeMB: maxSizeMB,
	}
}

// IsAllowedContentType reports whether the declared content type is an
// accepted resume format (PDF, legacy Word, Office-XML Word).
func (s *ResumeService) IsAllowedContentType(contentType string) bool {
	return allowedResumeTypes[contentType]
}

// WithinSizeLimit reports whether a payload of the given size fits the
// configured maximum.
func (s *ResumeService) WithinSizeLimit(size int64) bool {
	return size > 0 && size <= s.maxSizeMB*1024*1024
}

// MaxSizeMB returns the configured upload limit in megabytes.
func (s *ResumeService) MaxSizeMB() int64 {
	return s.maxSizeMB
}

func payloadKey(blobRef string) string {
	return "resumes/" + blobRef
}

func metadataKey(blobRef string) string {
	return "resumes/" + blobRef + ".meta"
}

// Store persists resume bytes and sidecar metadata, returning an opaque
// blob reference. The payload is written first so a torn write never leaves
// metadata pointing at nothing.
func (s *ResumeService) Store(ctx context.Context, data []byte, ownerID, originalName, contentType string) (string, error) {
	blobRef := uuid.New().String()

	if err := s.storage.Upload(ctx, payloadKey(blobRef), bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("failed to store resume payload: %w", err)
	}

	meta := ResumeMetadata{
		OwnerID:      ownerID,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         int64(len(data)),
		UploadedAt:   time.Now(),
	}
	encoded, err := json.Marshal(&meta)
	if err != nil {
		s.rollbackPayload(ctx, blobRef)
		return "", fmt.Errorf("failed to encode resume metadata: %w", err)
	}

	if err := s.storage.Upload(ctx, metadataKey(blobRef), bytes.NewReader(encoded), int64(len(encoded)), "application/json"); err != nil {
		s.rollbackPayload(ctx, blobRef)
		return "", fmt.Errorf("failed to store resume metadata: %w", err)
	}

	return blobRef, nil
}

func (s *ResumeService) rollbackPayload(ctx context.Context, blobRef string) {
	_ = s.storage.Delete(ctx, payloadKey(blobRef))
}

// Read retrieves the resume payload and its metadata for a blob reference.
func (s *ResumeService) Read(ctx context.Context, blobRef string) ([]byte, *ResumeMetadata, error) {
	reader, err := s.storage.Download(ctx, payloadKey(blobRef))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read resume payload: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read resume payload: %w", err)
	}

	meta, err := s.readMetadata(ctx, blobRef)
	if err != nil {
		return nil, nil, err
	}

	return data, meta, nil
}

func (s *ResumeService) readMetadata(ctx context.Context, blobRef string) (*ResumeMetadata, error) {
	reader, err := s.storage.Download(ctx, metadataKey(blobRef))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume metadata: %w", err)
	}
	defer reader.Close()

	encoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume metadata: %w", err)
	}

	var meta ResumeMetadata
	if err := json.Unmarshal(encoded, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode resume metadata: %w", err)
	}
	return &meta, nil
}

// Delete removes a resume payload and its metadata.
func (s *ResumeService) Delete(ctx context.Context, blobRef string) error {
	if err := s.storage.Delete(ctx, payloadKey(blobRef)); err != nil {
		return fmt.Errorf("failed to delete resume payload: %w", err)
	}
	if err := s.storage.Delete(ctx, metadataKey(blobRef)); err != nil {
		return fmt.Errorf("failed to delete resume metadata: %w", err)
	}
	return nil
}

// Exists checks whether a blob reference resolves to a stored resume.
func (s *ResumeService) Exists(ctx context.Context, blobRef string) (bool, error) {
	return s.storage.Exists(ctx, payloadKey(blobRef))
}
