package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ScannerService analyzes resume content with the generative model, either
// from caller-supplied free text or from a stored PDF attachment.
type ScannerService struct {
	gemini *GeminiService
}

// NewScannerService creates a new scanner service.
func NewScannerService(gemini *GeminiService) *ScannerService {
	return &ScannerService{gemini: gemini}
}

// AnalyzeText runs the analysis prompt over free-text resume content.
func (s *ScannerService) AnalyzeText(ctx context.Context, resumeText string) (string, error) {
	return s.gemini.AnalyzeResume(ctx, resumeText)
}

// AnalyzeFile extracts plain text from a stored resume and analyzes it.
// Only PDF attachments are supported; Word documents return
// ErrResumeNotAnalyzable.
func (s *ScannerService) AnalyzeFile(ctx context.Context, data []byte, fileName string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return "", ErrResumeNotAnalyzable
	}

	text, err := ExtractPDFText(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable text in resume")
	}

	return s.gemini.AnalyzeResume(ctx, text)
}

// ExtractPDFText pulls the plain text out of a PDF document.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	return buf.String(), nil
}
