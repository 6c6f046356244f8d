package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-autopilot/internal/config"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

// GeminiDrafter is the opt-in LLM cover-letter backend. It implements the
// same DrafterInterface as TemplateDrafter; selection happens at wiring time
// via GEMINI_API_KEY, so the default path stays fully deterministic.
type GeminiDrafter struct {
	Client         *genai.Client
	Model          string
	MaxRetries     int
	BaseDelay      time.Duration
	RequestTimeout time.Duration
}

func NewGeminiDrafter(ctx context.Context) (*GeminiDrafter, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiDrafter{
		Client:         client,
		Model:          geminiConfig.Model,
		MaxRetries:     3,
		BaseDelay:      time.Second,
		RequestTimeout: 90 * time.Second,
	}, nil
}

func (d *GeminiDrafter) DraftCoverLetter(ctx context.Context, req DraftRequest) (string, error) {
	prompt := fmt.Sprintf(`
You are drafting a short cover letter for a job application.

Company: %s
Role: %s
Track: %s
Strongest resume bullet: %s
Skills matching the job description: %s

Write an opening, a body referencing the bullet above, and a closing asking
for a short screen. Return STRICTLY JSON with this schema:
{"cover_letter": "<the full letter>"}
`, req.Company, req.Role, req.Track, req.LeadBullet, strings.Join(req.MatchedSkills, ", "))

	timeoutCtx, cancel := context.WithTimeout(ctx, d.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	var lastErr error
	for attempt := 0; attempt <= d.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(d.BaseDelay * time.Duration(attempt)):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := d.Client.Models.GenerateContent(timeoutCtx, d.Model, genai.Text(prompt), genConfig)
		if err != nil {
			lastErr = err
			if !isRetryableError(err) {
				return "", fmt.Errorf("draft cover letter failed: %w", err)
			}
			continue
		}

		letter := gjson.Get(result.Text(), "cover_letter").String()
		if strings.TrimSpace(letter) == "" {
			return "", fmt.Errorf("drafter returned no cover_letter field")
		}
		return letter, nil
	}
	return "", fmt.Errorf("max retries (%d) exceeded for DraftCoverLetter: %w", d.MaxRetries, lastErr)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "EOF")
}
