package llm

import (
	"fmt"
	"strings"

	"github.com/lazypower/petd/internal/config"
	"github.com/lazypower/petd/internal/pet"
)

// SystemPrompt describes the pet, its current stats, and the choices the
// model may make.
func SystemPrompt(p *pet.Profile, hats, backgrounds []string, animations []config.Animation) string {
	return fmt.Sprintf(`You are %s the cat in a virtual pet game. Keep replies short, playful, and kind.
You MUST respond in JSON that matches the provided schema.
Pick a mood, an action, and an optional equip item based on the user's message.
Choose an animation that fits the mood and action; if unsure leave it empty.
If the user asks to change a hat or background, select from the allowed ids.
If unsure, use action "none" and mood "neutral".
All stats are on a 0-100 scale. Hunger is how full you are: higher hunger means less hungry.
Higher energy, hygiene, and fun are better. Mood is 0-100 where higher is happier.
Current stats: hunger=%.0f, energy=%.0f, hygiene=%.0f, fun=%.0f, mood=%.0f.
Allowed hat_ids: %s. Allowed background_ids: %s.
Allowed animations: %s.`,
		p.Name,
		p.Hunger, p.Energy, p.Hygiene, p.Fun, p.Mood,
		listOrNone(hats), listOrNone(backgrounds), describeAnimations(animations),
	)
}

// ActionFeedbackMessage asks the pet to react to a care action.
func ActionFeedbackMessage(action pet.Action) Message {
	return Message{
		Role:    "user",
		Content: fmt.Sprintf("I just did %q for you. React to it in one or two sentences. Use action \"none\".", action),
	}
}

// ReminderMessage asks the pet to nudge the player about its neediest stat.
func ReminderMessage(p *pet.Profile) Message {
	stat, value := lowestStat(p)
	return Message{
		Role: "user",
		Content: fmt.Sprintf("I have not checked on you in a while. Your lowest stat is %s at %.0f. "+
			"Gently remind me what you need. Use action \"none\".", stat, value),
	}
}

func lowestStat(p *pet.Profile) (string, float64) {
	stats := []struct {
		name  string
		value float64
	}{
		{"hunger", p.Hunger},
		{"energy", p.Energy},
		{"hygiene", p.Hygiene},
		{"fun", p.Fun},
	}
	low := stats[0]
	for _, s := range stats[1:] {
		if s.value < low.value {
			low = s
		}
	}
	return low.name, low.value
}

// describeAnimations renders "video (description)" entries so the model
// can tell which clip suits the reply.
func describeAnimations(anims []config.Animation) string {
	if len(anims) == 0 {
		return "none"
	}
	parts := make([]string, len(anims))
	for i, a := range anims {
		parts[i] = a.Video
		if a.Description != "" {
			parts[i] += " (" + a.Description + ")"
		}
	}
	return strings.Join(parts, "; ")
}

func listOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
