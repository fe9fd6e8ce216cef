package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nithin2k5/Arbeit/internal/prompts"
)

// GeminiService sends string-templated prompts to the Gemini generateContent
// API and relays the unstructured text back. Calls are timeout-bounded so a
// stalled model response cannot pin a serving worker indefinitely.
type GeminiService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewGeminiService creates a new Gemini client wrapper.
// Parameters:
//   - cfg: API key, model, and endpoint settings.
// Returns:
//   - *GeminiService: initialized client wrapper.
func NewGeminiService(cfg *GeminiConfig) *GeminiService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("x-goog-api-key", cfg.APIKey)
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-pro"
	}

	return &GeminiService{
		client:   client,
		model:    model,
		endpoint: fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, model),
	}
}

// GetModel returns the model name being used.
func (s *GeminiService) GetModel() string {
	return s.model
}

// Gemini generateContent API request/response structures
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// AnalyzeResume runs the ATS-style analysis prompt over free-text resume
// content.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - resumeText: plain resume text to analyze.
// Returns:
//   - string: unstructured analysis text from the model.
//   - error: non-nil if the API request fails.
func (s *GeminiService) AnalyzeResume(ctx context.Context, resumeText string) (string, error) {
	return s.generateContent(ctx, fmt.Sprintf(prompts.ResumeAnalysis, resumeText))
}

// GenerateRoadmap produces a career roadmap for a target role.
func (s *GeminiService) GenerateRoadmap(ctx context.Context, dreamRole, currentSkills string) (string, error) {
	if currentSkills == "" {
		currentSkills = "No prior experience"
	}
	return s.generateContent(ctx, fmt.Sprintf(prompts.CareerRoadmap, dreamRole, currentSkills))
}

// GenerateProjectPlan produces a phased plan for a described project.
func (s *GeminiService) GenerateProjectPlan(ctx context.Context, title, description string) (string, error) {
	return s.generateContent(ctx, fmt.Sprintf(prompts.ProjectPlan, title, description))
}

func (s *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	var resp geminiResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("Gemini API returned error: %s", errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s", resp.Error.Message)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini API (status: %d)", httpResp.StatusCode())
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	return text, nil
}
