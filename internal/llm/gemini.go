package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const geminiAPI = "https://generativelanguage.googleapis.com"

// Gemini calls the Gemini generateContent API.
type Gemini struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewGemini creates a new Gemini API client.
func NewGemini(apiKey, model string, timeout time.Duration) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		url:    geminiAPI,
		client: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// Chat sends the conversation with a JSON response schema.
func (g *Gemini) Chat(ctx context.Context, req Request) (*Response, error) {
	contents := make([]geminiContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	genConfig := map[string]any{"responseMimeType": "application/json"}
	if req.Schema != nil {
		genConfig["responseSchema"] = geminiSchema(req.Schema)
	}
	reqBody := map[string]any{
		"systemInstruction": geminiContent{Parts: []geminiPart{{Text: req.System}}},
		"contents":          contents,
		"generationConfig":  genConfig,
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.url, url.PathEscape(g.model))
	respBody, err := postJSON(ctx, g.client, "gemini", endpoint, map[string]string{
		"x-goog-api-key": g.apiKey,
	}, reqBody)
	if err != nil {
		return nil, err
	}

	var result struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var text strings.Builder
	for _, c := range result.Candidates {
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%w: gemini returned empty content", ErrBadResponse)
	}

	return &Response{
		Content:    text.String(),
		Provider:   "gemini",
		Model:      g.model,
		TokensUsed: result.UsageMetadata.TotalTokenCount,
	}, nil
}

// geminiSchema rewrites a JSON schema into the OpenAPI subset Gemini
// accepts: upper-case type names and no additionalProperties.
func geminiSchema(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		switch k {
		case "additionalProperties":
			continue
		case "type":
			if s, ok := v.(string); ok {
				v = strings.ToUpper(s)
			}
		case "items":
			if m, ok := v.(map[string]any); ok {
				v = geminiSchema(m)
			}
		case "properties":
			if props, ok := v.(map[string]any); ok {
				conv := make(map[string]any, len(props))
				for name, p := range props {
					if m, ok := p.(map[string]any); ok {
						conv[name] = geminiSchema(m)
					} else {
						conv[name] = p
					}
				}
				v = conv
			}
		}
		out[k] = v
	}
	return out
}
