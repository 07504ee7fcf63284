package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Animation is a video the chat model may pick, with a hint of when it
// fits.
type Animation struct {
	Video       string `yaml:"video" json:"video"`
	Description string `yaml:"description" json:"description"`
}

// UnmarshalText parses "video" or "video=description". It lets a plain
// YAML string or a PETD_ANIMATIONS entry stand in for the full form.
func (a *Animation) UnmarshalText(text []byte) error {
	video, desc, _ := strings.Cut(string(text), "=")
	a.Video = strings.TrimSpace(video)
	a.Description = strings.TrimSpace(desc)
	if a.Video == "" {
		return fmt.Errorf("animation %q has no video name", text)
	}
	return nil
}

// LoadAnimations reads an animation catalog file of the form
// {"cats": [{"video": "...", "description": "..."}]}. Entries without a
// video are skipped.
func LoadAnimations(path string) ([]Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animations %s: %w", path, err)
	}
	var file struct {
		Cats []Animation `json:"cats"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing animations %s: %w", path, err)
	}

	anims := make([]Animation, 0, len(file.Cats))
	for _, a := range file.Cats {
		if a.Video != "" {
			anims = append(anims, a)
		}
	}
	return anims, nil
}

// Videos returns just the file names.
func Videos(anims []Animation) []string {
	out := make([]string, len(anims))
	for i, a := range anims {
		out[i] = a.Video
	}
	return out
}
