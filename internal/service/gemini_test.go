package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiStub(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGeminiService(&GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-pro",
		BaseURL: server.URL,
	})
}

func geminiReply(text string) []byte {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, _ := json.Marshal(body)
	return data
}

func TestGeminiService_AnalyzeResume(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	svc := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiReply("ATS Score: 85/100"))
	})

	analysis, err := svc.AnalyzeResume(context.Background(), "Ada Lovelace, analytical engine programmer")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis != "ATS Score: 85/100" {
		t.Errorf("unexpected analysis text %q", analysis)
	}

	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatal("expected a single-part prompt")
	}
	if !strings.Contains(gotBody.Contents[0].Parts[0].Text, "analytical engine programmer") {
		t.Error("expected resume text to be embedded in the prompt")
	}
}

func TestGeminiService_GenerateRoadmap_DefaultsSkills(t *testing.T) {
	var gotBody geminiRequest

	svc := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiReply("Phase 1: fundamentals"))
	})

	if _, err := svc.GenerateRoadmap(context.Background(), "Site Reliability Engineer", ""); err != nil {
		t.Fatalf("roadmap failed: %v", err)
	}

	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Site Reliability Engineer") {
		t.Error("expected dream role in prompt")
	}
	if !strings.Contains(prompt, "No prior experience") {
		t.Error("expected empty skills to default to a placeholder")
	}
}

func TestGeminiService_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
			},
			wantErr: "HTTP 429",
		},
		{
			name: "api error in 200 body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"error":{"code":400,"message":"invalid request","status":"INVALID_ARGUMENT"}}`))
			},
			wantErr: "invalid request",
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"candidates":[]}`))
			},
			wantErr: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := geminiStub(t, tt.handler)

			_, err := svc.AnalyzeResume(context.Background(), "resume text")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestScannerService_AnalyzeFileRequiresPDF(t *testing.T) {
	svc := NewScannerService(geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiReply("analysis"))
	}))

	_, err := svc.AnalyzeFile(context.Background(), []byte("not a pdf"), "resume.docx")
	if !errors.Is(err, ErrResumeNotAnalyzable) {
		t.Fatalf("expected ErrResumeNotAnalyzable, got %v", err)
	}
}
