// Package remote implements the AI collaborator interfaces against the
// hosted transcription/content service over plain JSON HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/pkg/ai"
)

type Provider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

var (
	_ ai.TranscriptionProvider = &Provider{}
	_ ai.ContentProvider       = &Provider{}
)

func NewProvider(baseURL, apiKey string) *Provider {
	return &Provider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type transcribeRequest struct {
	Audio    string `json:"audio"` // base64
	MimeType string `json:"mime_type"`
}

type transcribeResponse struct {
	Transcript string                   `json:"transcript"`
	Summary    string                   `json:"summary"`
	Extraction *entity.ExtractionResult `json:"extraction"`
}

type contentResponse struct {
	Sections []entity.DocumentSection `json:"sections"`
}

// --- Interface Implementation ---

func (p *Provider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*ai.TranscriptionResponse, error) {
	reqPayload := transcribeRequest{
		Audio:    base64.StdEncoding.EncodeToString(audio),
		MimeType: mimeType,
	}

	body, err := p.post(ctx, "/v1/transcribe", reqPayload)
	if err != nil {
		return nil, err
	}

	var resp transcribeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal transcribe response: %w", err)
	}

	return &ai.TranscriptionResponse{
		Transcript: resp.Transcript,
		Summary:    resp.Summary,
		Extraction: resp.Extraction,
	}, nil
}

func (p *Provider) GenerateContent(ctx context.Context, req *ai.ContentRequest) ([]entity.DocumentSection, error) {
	body, err := p.post(ctx, "/v1/generate-content", req)
	if err != nil {
		return nil, err
	}

	var resp contentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal content response: %w", err)
	}
	return resp.Sections, nil
}

func (p *Provider) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai service request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai service error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}
