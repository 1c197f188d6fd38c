// Package llm provides the Gemini fallback adapter.
// Clean Architecture: Adapter implementing ports.GenerationService.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	// Generation parameters are fixed: conversational, not deterministic.
	temperature     = 0.7
	maxOutputTokens = 512

	// Context digest uses at most the first N stored entries.
	maxContextEntries = 5

	persona = "You are Mohur AI, a friendly and concise assistant. " +
		"Answer the user's question helpfully. If the knowledge base excerpt " +
		"below is relevant, prefer it over your own knowledge."
)

// GeminiAdapter calls the Gemini generateContent API. Without an API key it
// reports itself unconfigured and never attempts a network call. All
// provider failures are converted into Generation outcomes; no retry is
// attempted.
type GeminiAdapter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewGeminiAdapter creates a Gemini adapter. An empty apiKey disables the
// fallback without disabling the service.
func NewGeminiAdapter(apiKey, model string, timeout time.Duration) *GeminiAdapter {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiAdapter{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier for health reporting.
func (a *GeminiAdapter) Name() string { return "gemini" }

// Configured reports whether an API key is present.
func (a *GeminiAdapter) Configured() bool { return a.apiKey != "" }

// geminiRequest is the generateContent API request.
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the generateContent API response.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate answers the question with a context digest built from the first
// stored knowledge entries. It returns an explicit Generation value; the
// raw provider error never leaves this adapter.
func (a *GeminiAdapter) Generate(ctx context.Context, question string, contextEntries []entities.KnowledgeEntry) entities.Generation {
	if !a.Configured() {
		return entities.Generation{Outcome: entities.GenerationUnavailable}
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: a.systemInstruction(contextEntries)}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: question}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return failed("marshaling request: %v", err)
	}

	// The key goes in a header, not the URL: transport errors embed the
	// URL and end up in logs.
	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return failed("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return failed("calling Gemini: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failed("Gemini returned status %d", resp.StatusCode)
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return failed("decoding response: %v", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return failed("empty response from Gemini")
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return failed("blank candidate text from Gemini")
	}
	return entities.Generation{Text: text, Outcome: entities.GenerationOK}
}

// systemInstruction combines the persona framing with the context digest.
func (a *GeminiAdapter) systemInstruction(contextEntries []entities.KnowledgeEntry) string {
	if len(contextEntries) > maxContextEntries {
		contextEntries = contextEntries[:maxContextEntries]
	}

	var sb strings.Builder
	sb.WriteString(persona)
	if len(contextEntries) > 0 {
		sb.WriteString("\n\nKnowledge base excerpt:\n")
		for _, e := range contextEntries {
			sb.WriteString("- ")
			sb.WriteString(e.Question)
			sb.WriteString(": ")
			sb.WriteString(e.Answer)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func failed(format string, args ...any) entities.Generation {
	return entities.Generation{
		Outcome: entities.GenerationFailed,
		Reason:  fmt.Sprintf(format, args...),
	}
}
