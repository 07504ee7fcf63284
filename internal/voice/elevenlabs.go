// Package voice proxies text-to-speech, speech-to-text, and sound effect
// requests to ElevenLabs.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lazypower/petd/internal/config"
)

// ErrEmptyInput is returned for blank text, prompts, or audio.
var ErrEmptyInput = errors.New("empty input")

// APIError is a non-200 answer from ElevenLabs.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs api status %d: %s", e.Status, e.Body)
}

// detailStatus extracts detail.status from an ElevenLabs error body.
func (e *APIError) detailStatus() string {
	var body struct {
		Detail struct {
			Status string `json:"status"`
		} `json:"detail"`
	}
	if json.Unmarshal([]byte(e.Body), &body) != nil {
		return ""
	}
	return body.Detail.Status
}

// ElevenLabs is an ElevenLabs API client.
type ElevenLabs struct {
	cfg    config.VoiceConfig
	client *http.Client
}

// New creates a client. It fails when no API key is configured.
func New(cfg config.VoiceConfig) (*ElevenLabs, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("voice requires ELEVENLABS_API_KEY or config")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &ElevenLabs{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// TextToSpeech renders text with the configured voice. If that voice no
// longer exists, it retries once with the fallback voice.
func (e *ElevenLabs) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text", ErrEmptyInput)
	}

	audio, err := e.tts(ctx, e.cfg.VoiceID, text)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.detailStatus() == "voice_not_found" &&
		e.cfg.FallbackVoiceID != "" && e.cfg.FallbackVoiceID != e.cfg.VoiceID {
		slog.Info("tts: voice not found, using fallback", "voice_id", e.cfg.VoiceID, "fallback", e.cfg.FallbackVoiceID)
		return e.tts(ctx, e.cfg.FallbackVoiceID, text)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("tts", "voice_id", e.cfg.VoiceID, "bytes", len(audio))
	return audio, nil
}

func (e *ElevenLabs) tts(ctx context.Context, voiceID, text string) ([]byte, error) {
	u := fmt.Sprintf("%s/v1/text-to-speech/%s", e.cfg.BaseURL, url.PathEscape(voiceID))
	if e.cfg.TTSFormat != "" {
		u += "?output_format=" + url.QueryEscape(e.cfg.TTSFormat)
	}
	body := map[string]string{"text": text}
	if e.cfg.TTSModel != "" {
		body["model_id"] = e.cfg.TTSModel
	}
	return e.postJSON(ctx, u, body)
}

// SoundEffect generates a sound effect from a text prompt.
func (e *ElevenLabs) SoundEffect(ctx context.Context, prompt string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: sound effect prompt", ErrEmptyInput)
	}
	audio, err := e.postJSON(ctx, e.cfg.BaseURL+"/v1/sound-generation", map[string]string{"text": prompt})
	if err != nil {
		return nil, err
	}
	slog.Info("sfx", "prompt", prompt, "bytes", len(audio))
	return audio, nil
}

// SpeechToText transcribes audio. filename defaults to audio.webm and only
// serves as a format hint.
func (e *ElevenLabs) SpeechToText(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: audio", ErrEmptyInput)
	}
	if filename == "" {
		filename = "audio.webm"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	fields := map[string]string{
		"model_id":         e.cfg.STTModel,
		"language_code":    e.cfg.STTLanguage,
		"diarize":          "false",
		"tag_audio_events": "false",
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	respBody, err := e.do(ctx, e.cfg.BaseURL+"/v1/speech-to-text", mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	var result struct {
		Text       string `json:"text"`
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	text := result.Text
	if text == "" {
		text = result.Transcript
	}
	if text == "" {
		return "", fmt.Errorf("unable to parse speech-to-text response")
	}
	return text, nil
}

func (e *ElevenLabs) postJSON(ctx context.Context, u string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return e.do(ctx, u, "application/json", bytes.NewReader(payload))
}

func (e *ElevenLabs) do(ctx context.Context, u, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
