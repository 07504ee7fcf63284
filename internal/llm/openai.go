package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const openAIAPI = "https://api.openai.com/v1/responses"

// OpenAI calls the OpenAI Responses API.
type OpenAI struct {
	apiKey string
	model  string
	effort string
	url    string
	client *http.Client
}

// NewOpenAI creates a new OpenAI API client. effort is the reasoning effort
// and may be empty.
func NewOpenAI(apiKey, model, effort string, timeout time.Duration) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		effort: effort,
		url:    openAIAPI,
		client: &http.Client{Timeout: timeout},
	}
}

// Chat sends the conversation to the Responses API with structured output.
func (o *OpenAI) Chat(ctx context.Context, req Request) (*Response, error) {
	input := make([]map[string]string, 0, len(req.Messages)+1)
	input = append(input, map[string]string{"role": "system", "content": req.System})
	for _, m := range req.Messages {
		input = append(input, map[string]string{"role": m.Role, "content": m.Content})
	}

	reqBody := map[string]any{
		"model": o.model,
		"input": input,
	}
	if o.effort != "" {
		reqBody["reasoning"] = map[string]string{"effort": o.effort}
	}
	if req.Schema != nil {
		reqBody["text"] = map[string]any{
			"format": map[string]any{
				"type":   "json_schema",
				"name":   "pet_response",
				"schema": req.Schema,
			},
		}
	}

	respBody, err := postJSON(ctx, o.client, "openai", o.url, map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}, reqBody)
	if err != nil {
		return nil, err
	}

	var result struct {
		Output []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	text := ""
	for _, out := range result.Output {
		if out.Type != "message" {
			continue
		}
		for _, c := range out.Content {
			if c.Type == "output_text" {
				text += c.Text
			}
		}
	}

	return &Response{
		Content:    text,
		Provider:   "openai",
		Model:      o.model,
		TokensUsed: result.Usage.InputTokens + result.Usage.OutputTokens,
	}, nil
}
