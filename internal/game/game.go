// Package game exposes the pet's entry points. Each one loads the profile,
// applies decay up to the supplied time, runs its mutation, and persists
// the result. Calls are serialized so concurrent requests cannot lose
// each other's updates.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lazypower/petd/internal/pet"
)

// ProfileStore persists the singleton profile.
type ProfileStore interface {
	LoadOrCreateProfile(ctx context.Context, name string, now time.Time) (*pet.Profile, error)
	SaveProfile(ctx context.Context, p *pet.Profile) error
}

// Service applies player requests to the stored profile.
type Service struct {
	mu      sync.Mutex
	store   ProfileStore
	catalog *pet.Catalog
	name    string
	log     *slog.Logger
}

// New creates a Service. name is used only when the profile is first
// created.
func New(store ProfileStore, catalog *pet.Catalog, name string) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		name:    name,
		log:     slog.Default().With("component", "game"),
	}
}

// Catalog returns the shop catalog.
func (s *Service) Catalog() *pet.Catalog {
	return s.catalog
}

// Fetch returns the profile after decay. Decay is saved, so this is not a
// pure read.
func (s *Service) Fetch(ctx context.Context, now time.Time) (*pet.Profile, error) {
	return s.update(ctx, "fetch", now, nil)
}

// Act applies a care action.
func (s *Service) Act(ctx context.Context, action string, now time.Time) (*pet.Profile, error) {
	a, err := pet.ParseAction(action)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, "act", now, func(p *pet.Profile) error {
		return pet.ApplyAction(p, a)
	})
}

// Buy purchases and equips an item.
func (s *Service) Buy(ctx context.Context, itemID string, now time.Time) (*pet.Profile, error) {
	return s.update(ctx, "buy", now, func(p *pet.Profile) error {
		return pet.BuyItem(p, s.catalog, itemID)
	})
}

// Equip equips an owned item.
func (s *Service) Equip(ctx context.Context, itemID string, now time.Time) (*pet.Profile, error) {
	return s.update(ctx, "equip", now, func(p *pet.Profile) error {
		return pet.EquipItem(p, s.catalog, itemID)
	})
}

// SubmitMinigame grants the reward for a minigame round. durationMS may be
// nil.
func (s *Service) SubmitMinigame(ctx context.Context, score int, durationMS *int, now time.Time) (*pet.Profile, error) {
	return s.update(ctx, "minigame", now, func(p *pet.Profile) error {
		pet.ApplyMinigame(p, score, durationMS)
		return nil
	})
}

// update runs the load, decay, mutate, save sequence under the lock. A
// failed mutation saves nothing and returns the error unchanged.
func (s *Service) update(ctx context.Context, op string, now time.Time, mutate func(*pet.Profile) error) (*pet.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.LoadOrCreateProfile(ctx, s.name, now)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	pet.ApplyDecay(p, now)

	if mutate != nil {
		if err := mutate(p); err != nil {
			s.log.Debug("mutation rejected", "op", op, "error", err)
			return nil, err
		}
	}

	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.log.Debug("profile updated", "op", op, "coins", p.Coins, "xp", p.XP, "mood", p.Mood)
	return p.Clone(), nil
}
