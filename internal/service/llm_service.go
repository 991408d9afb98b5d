package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tenders-ai/internal/models"
	"tenders-ai/pkg/config"

	"go.uber.org/zap"
)

// SupportedMIMETypes is the attachment allow-list. Files of other types
// are dropped at selection time, not at send time.
var SupportedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
	"text/plain",
	"text/csv",
	"text/markdown",
}

var supportedMIME = func() map[string]bool {
	set := make(map[string]bool, len(SupportedMIMETypes))
	for _, t := range SupportedMIMETypes {
		set[t] = true
	}
	return set
}()

// FilterSupportedFiles silently drops pending files whose MIME type is not
// on the allow-list.
func FilterSupportedFiles(files []models.PendingFile) []models.PendingFile {
	out := make([]models.PendingFile, 0, len(files))
	for _, f := range files {
		if supportedMIME[f.MIMEType] {
			out = append(out, f)
		}
	}
	return out
}

// GeneratePart is one content part of an outbound request: either literal
// text or inline binary data.
type GeneratePart struct {
	Text       string
	InlineData *InlineData
}

type InlineData struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest is one complete model invocation.
type GenerateRequest struct {
	SystemInstruction string
	Parts             []GeneratePart
}

// Generator produces one assistant reply for one request.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}

// LLMService talks to the Gemini generateContent REST API.
type LLMService struct {
	config     *config.GeminiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLLMService(cfg *config.GeminiConfig, logger *zap.Logger) *LLMService {
	return &LLMService{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Wire format of the generateContent endpoint.
type generateContentRequest struct {
	SystemInstruction *wireContent  `json:"system_instruction,omitempty"`
	Contents          []wireContent `json:"contents"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inline_data,omitempty"`
}

type wireInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one request and returns the reply text. A missing API key
// is a hard failure surfaced through the same error path as network
// failures.
func (s *LLMService) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if s.config.APIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	parts := make([]wirePart, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.InlineData != nil {
			parts = append(parts, wirePart{InlineData: &wireInlineData{
				MIMEType: p.InlineData.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
			}})
			continue
		}
		parts = append(parts, wirePart{Text: p.Text})
	}

	body := generateContentRequest{
		Contents: []wireContent{{Role: "user", Parts: parts}},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &wireContent{Parts: []wirePart{{Text: req.SystemInstruction}}}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.config.BaseURL, s.config.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.config.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	var text strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	s.logger.Debug("Model reply received",
		zap.String("model", s.config.Model),
		zap.Int("text_length", text.Len()),
	)
	return text.String(), nil
}

// BuildSystemInstruction embeds the company profile and, when a tender is
// bound to the conversation, that tender's title and summary.
func BuildSystemInstruction(profile models.Profile, tender *models.Tender) string {
	profileContext := fmt.Sprintf("Kontekst podjetja: Ime=%s, Industrija=%s, Cilji=%s",
		orNA(profile.CompanyName), orNA(profile.Industry), orNA(profile.MainGoals))

	tenderContext := ""
	if tender != nil {
		tenderContext = fmt.Sprintf("\n--- Priložen razpis: %s ---\n%s\n--- Konec razpisa ---", tender.Title, tender.Summary)
	}

	return "You are Tenders.AI, an expert assistant for public funding tenders in Slovenia. " +
		"Provide concise, helpful, and accurate advice. Use the provided company and tender context to tailor your answers. " +
		"Always reply in Slovenian. " + profileContext + " " + tenderContext
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
