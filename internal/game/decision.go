package game

import (
	"context"
	"errors"
	"time"

	"github.com/lazypower/petd/internal/pet"
)

// ActionNone is the decision action that leaves stats alone.
const ActionNone = "none"

// Decision is a state change requested by the chat model.
type Decision struct {
	Action string
	// Equip lists item ids to put on. Ids not in the catalog are skipped.
	Equip []string
}

// ApplyDecision applies a chat decision in one load, decay, mutate, save
// step. The model's choices are advisory: an unknown action, an unknown
// item, or an item the pet cannot afford is logged and skipped rather than
// failing the request.
func (s *Service) ApplyDecision(ctx context.Context, d Decision, now time.Time) (*pet.Profile, error) {
	return s.update(ctx, "decision", now, func(p *pet.Profile) error {
		if d.Action != "" && d.Action != ActionNone {
			a, err := pet.ParseAction(d.Action)
			if err != nil {
				s.log.Info("decision: skipping action", "action", d.Action, "error", err)
			} else if err := pet.ApplyAction(p, a); err != nil {
				return err
			}
		}

		for _, id := range d.Equip {
			if id == "" {
				continue
			}
			if err := s.wear(p, id); err != nil {
				if !pet.IsValidation(err) {
					return err
				}
				s.log.Info("decision: skipping item", "item", id, "error", err)
			}
		}
		return nil
	})
}

// wear equips an owned item or buys an unowned one, which equips it.
func (s *Service) wear(p *pet.Profile, id string) error {
	err := pet.EquipItem(p, s.catalog, id)
	if errors.Is(err, pet.ErrItemNotOwned) {
		return pet.BuyItem(p, s.catalog, id)
	}
	return err
}
