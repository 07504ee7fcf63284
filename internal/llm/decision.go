package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lazypower/petd/internal/config"
	"github.com/lazypower/petd/internal/pet"
)

// Moods the model may report.
var moods = []string{"happy", "neutral", "sad", "angry", "tired"}

// ActionNone means the model chose not to act.
const ActionNone = "none"

// Equip is the model's cosmetic choice.
type Equip struct {
	HatID        string `json:"hat_id,omitempty"`
	BackgroundID string `json:"background_id,omitempty"`
}

// ChatResult is the structured reply of the pet.
type ChatResult struct {
	Reply     string `json:"reply"`
	Mood      string `json:"mood"`
	Action    string `json:"action"`
	Equip     *Equip `json:"equip,omitempty"`
	Animation string `json:"animation,omitempty"`
	SFXPrompt string `json:"sfx_prompt,omitempty"`
}

// ItemIDs returns the equip choices as a list, skipping empty ones.
func (r *ChatResult) ItemIDs() []string {
	if r.Equip == nil {
		return nil
	}
	var ids []string
	for _, id := range []string{r.Equip.HatID, r.Equip.BackgroundID} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Companion turns a conversation into a ChatResult for the pet.
type Companion struct {
	client     Client
	catalog    *pet.Catalog
	animations []config.Animation
	videos     []string
}

// NewCompanion creates a Companion. animations lists the videos the model
// may pick from.
func NewCompanion(client Client, catalog *pet.Catalog, animations []config.Animation) *Companion {
	return &Companion{
		client:     client,
		catalog:    catalog,
		animations: animations,
		videos:     config.Videos(animations),
	}
}

// Reply asks the model how the pet responds to msgs given its current
// state p.
func (c *Companion) Reply(ctx context.Context, p *pet.Profile, msgs []Message) (*ChatResult, error) {
	hats := c.catalog.IDsOfType(pet.SlotHat)
	backgrounds := c.catalog.IDsOfType(pet.SlotBackground)

	req := Request{
		System:   SystemPrompt(p, hats, backgrounds, c.animations),
		Messages: normalizeRoles(msgs),
		Schema:   responseSchema(),
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		slog.Warn("chat failed", "request_id", reqID, "error", err)
		return nil, err
	}
	slog.Info("chat", "request_id", reqID, "provider", resp.Provider, "model", resp.Model,
		"tokens", resp.TokensUsed, "took", time.Since(start).Round(time.Millisecond))

	result, err := ParseResult(resp.Content)
	if err != nil {
		slog.Warn("chat parse failure", "request_id", reqID, "raw", resp.Content)
		return nil, err
	}
	result.Animation = NormalizeAnimation(result.Animation, c.videos)
	return result, nil
}

// ParseResult decodes the model output. Text around the JSON object is
// tolerated; unknown moods and actions fall back to neutral and none.
func ParseResult(text string) (*ChatResult, error) {
	var r ChatResult
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		obj, ok := extractJSON(text)
		if !ok {
			return nil, fmt.Errorf("%w: no JSON object found", ErrBadResponse)
		}
		if err := json.Unmarshal([]byte(obj), &r); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}

	if strings.TrimSpace(r.Reply) == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrBadResponse)
	}
	if !slices.Contains(moods, r.Mood) {
		r.Mood = "neutral"
	}
	if r.Action != ActionNone {
		if _, err := pet.ParseAction(r.Action); err != nil {
			r.Action = ActionNone
		}
	}
	if r.Equip != nil && r.Equip.HatID == "" && r.Equip.BackgroundID == "" {
		r.Equip = nil
	}
	return &r, nil
}

// extractJSON returns the outermost {...} span of text.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// NormalizeAnimation maps the model's pick onto an allowed file name.
// ".mp4" picks fall back to the ".webm" twin, bare names get ".webm".
// Anything else not in allowed becomes empty.
func NormalizeAnimation(selection string, allowed []string) string {
	if selection == "" {
		return ""
	}
	if slices.Contains(allowed, selection) {
		return selection
	}
	if base, ok := strings.CutSuffix(selection, ".mp4"); ok {
		if slices.Contains(allowed, base+".webm") {
			return base + ".webm"
		}
	}
	if !strings.Contains(selection, ".") && slices.Contains(allowed, selection+".webm") {
		return selection + ".webm"
	}
	return ""
}

// normalizeRoles maps every non-user role onto "assistant" and drops empty
// turns.
func normalizeRoles(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" || m.Role == "system" {
			continue
		}
		role := "assistant"
		if m.Role == "user" {
			role = "user"
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	return out
}

func responseSchema() map[string]any {
	actions := []string{ActionNone}
	for _, a := range pet.Actions() {
		actions = append(actions, string(a))
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply":  map[string]any{"type": "string"},
			"mood":   map[string]any{"type": "string", "enum": moods},
			"action": map[string]any{"type": "string", "enum": actions},
			"equip": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"hat_id":        map[string]any{"type": "string"},
					"background_id": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
			"animation":  map[string]any{"type": "string"},
			"sfx_prompt": map[string]any{"type": "string"},
		},
		"required":             []string{"reply", "mood", "action"},
		"additionalProperties": false,
	}
}
