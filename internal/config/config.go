package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all petd configuration. Values come from defaults, then an
// optional YAML file, then environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Pet      PetConfig      `yaml:"pet"`
	LLM      LLMConfig      `yaml:"llm"`
	Voice    VoiceConfig    `yaml:"voice"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Bind string `yaml:"bind" env:"PETD_BIND"`
	Port int    `yaml:"port" env:"PETD_PORT"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"PETD_DB"`
}

type PetConfig struct {
	Name string `yaml:"name" env:"PETD_PET_NAME"`
}

type LLMConfig struct {
	// Provider is "openai", "anthropic", "gemini" or "ollama".
	Provider        string `yaml:"provider" env:"LLM_PROVIDER"`
	OpenAIKey       string `yaml:"openai_key" env:"OPENAI_API_KEY"`
	OpenAIModel     string `yaml:"openai_model" env:"OPENAI_MODEL"`
	ReasoningEffort string `yaml:"reasoning_effort" env:"OPENAI_REASONING_EFFORT"`
	AnthropicKey    string `yaml:"anthropic_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model" env:"ANTHROPIC_MODEL"`
	GeminiKey       string `yaml:"gemini_key" env:"GEMINI_API_KEY"`
	GeminiModel     string `yaml:"gemini_model" env:"GEMINI_MODEL"`
	OllamaURL       string `yaml:"ollama_url" env:"OLLAMA_URL"`
	OllamaModel     string `yaml:"ollama_model" env:"OLLAMA_MODEL"`

	// Animations are the videos the model may pick. AnimationsFile, when
	// set, replaces them with the contents of a catalog file.
	Animations     []Animation `yaml:"animations" env:"PETD_ANIMATIONS"`
	AnimationsFile string      `yaml:"animations_file" env:"PETD_ANIMATIONS_FILE"`

	// Timeout is the per-request limit in seconds.
	Timeout int `yaml:"timeout" env:"PETD_LLM_TIMEOUT"`
}

type VoiceConfig struct {
	APIKey          string `yaml:"api_key" env:"ELEVENLABS_API_KEY"`
	BaseURL         string `yaml:"base_url" env:"ELEVENLABS_BASE_URL"`
	VoiceID         string `yaml:"voice_id" env:"ELEVENLABS_VOICE_ID"`
	FallbackVoiceID string `yaml:"fallback_voice_id" env:"ELEVENLABS_FALLBACK_VOICE_ID"`
	TTSModel        string `yaml:"tts_model" env:"ELEVENLABS_TTS_MODEL"`
	TTSFormat       string `yaml:"tts_format" env:"ELEVENLABS_TTS_FORMAT"`
	STTModel        string `yaml:"stt_model" env:"ELEVENLABS_STT_MODEL"`
	STTLanguage     string `yaml:"stt_language" env:"ELEVENLABS_STT_LANGUAGE"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"PETD_LOG_LEVEL"` // debug, info, warn, error
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 8000,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Pet: PetConfig{
			Name: "Tom",
		},
		LLM: LLMConfig{
			Provider:        "openai",
			OpenAIModel:     "gpt-5",
			ReasoningEffort: "medium",
			AnthropicModel:  "claude-haiku-4-5-20251001",
			GeminiModel:     "gemini-2.5-flash",
			OllamaURL:       "http://localhost:11434",
			OllamaModel:     "llama3.2",
			Animations: []Animation{
				{Video: "chilling_cat.webm", Description: "relaxed cat lounging, good default"},
			},
			Timeout: 60,
		},
		Voice: VoiceConfig{
			BaseURL:         "https://api.elevenlabs.io",
			VoiceID:         "ucLUcBEXNVEmKfy5PhkX",
			FallbackVoiceID: "JBFqnCBsd6RMkjVDRZzb",
			TTSModel:        "eleven_multilingual_v2",
			TTSFormat:       "mp3_44100_128",
			STTModel:        "scribe_v2",
			STTLanguage:     "eng",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or the file does not exist), and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.LLM.AnimationsFile != "" {
		anims, err := LoadAnimations(cfg.LLM.AnimationsFile)
		if err != nil {
			return cfg, err
		}
		cfg.LLM.Animations = anims
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
