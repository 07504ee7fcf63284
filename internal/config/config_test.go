package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Equal(t, Default().Voice.TTSModel, cfg.Voice.TTSModel)
	assert.Equal(t, "127.0.0.1:8000", cfg.ListenAddr())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
pet:
  name: Kit
llm:
  provider: ollama
  animations:
    - happy_cat.webm
    - video: sleepy_cat.webm
      description: curled up asleep
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Bind)
	assert.Equal(t, "Kit", cfg.Pet.Name)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, []Animation{
		{Video: "happy_cat.webm"},
		{Video: "sleepy_cat.webm", Description: "curled up asleep"},
	}, cfg.LLM.Animations)
	assert.Equal(t, "gpt-5", cfg.LLM.OpenAIModel)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := writeFile(t, "server:\n  port: 9090\nllm:\n  provider: ollama\n")
	t.Setenv("PETD_PORT", "7000")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("PETD_ANIMATIONS", "a.webm=jumping,b.webm")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.AnthropicKey)
	assert.Equal(t, "g-test", cfg.LLM.GeminiKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, []Animation{
		{Video: "a.webm", Description: "jumping"},
		{Video: "b.webm"},
	}, cfg.LLM.Animations)
}

func TestLoadAnimationsFile(t *testing.T) {
	anims := filepath.Join(t.TempDir(), "cat_videos.json")
	require.NoError(t, os.WriteFile(anims, []byte(`{"cats":[
		{"video":"chilling_cat.webm","description":"lounging"},
		{"video":"","description":"broken entry"},
		{"video":"eating_cat.webm","description":"munching kibble"}
	]}`), 0o644))
	t.Setenv("PETD_ANIMATIONS_FILE", anims)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []Animation{
		{Video: "chilling_cat.webm", Description: "lounging"},
		{Video: "eating_cat.webm", Description: "munching kibble"},
	}, cfg.LLM.Animations)
	assert.Equal(t, []string{"chilling_cat.webm", "eating_cat.webm"}, Videos(cfg.LLM.Animations))
}

func TestLoadAnimationsFileMissing(t *testing.T) {
	t.Setenv("PETD_ANIMATIONS_FILE", filepath.Join(t.TempDir(), "nope.json"))
	_, err := Load("")
	assert.Error(t, err)
}

func TestAnimationUnmarshalTextRejectsEmpty(t *testing.T) {
	var a Animation
	assert.Error(t, a.UnmarshalText([]byte("=no video")))
}

func TestLoadBadYAML(t *testing.T) {
	path := writeFile(t, "server: [not, a, map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("PETD_PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, LogConfig{Level: in}.SlogLevel(), in)
	}
}
