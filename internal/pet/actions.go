package pet

import "fmt"

// Action is one of the care actions a player can take.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionSleep Action = "sleep"
	ActionClean Action = "clean"
	ActionPlay  Action = "play"
)

// Every action pays the same reward.
const (
	actionXP    = 12
	actionCoins = 6
)

type statDelta struct {
	hunger, energy, hygiene, fun float64
}

var actionDeltas = map[Action]statDelta{
	ActionFeed:  {hunger: 30, hygiene: -2},
	ActionSleep: {energy: 40, hunger: -8},
	ActionClean: {hygiene: 35, fun: -5},
	ActionPlay:  {fun: 35, energy: -10, hunger: -5},
}

// Actions lists the known actions in display order.
func Actions() []Action {
	return []Action{ActionFeed, ActionSleep, ActionClean, ActionPlay}
}

// ParseAction validates s as an action name.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := actionDeltas[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// ApplyAction applies a care action to already-decayed stats and grants
// the action reward.
func ApplyAction(p *Profile, a Action) error {
	d, ok := actionDeltas[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}

	p.Hunger = Clamp(p.Hunger + d.hunger)
	p.Energy = Clamp(p.Energy + d.energy)
	p.Hygiene = Clamp(p.Hygiene + d.hygiene)
	p.Fun = Clamp(p.Fun + d.fun)
	p.grant(actionCoins, actionXP)
	return nil
}
