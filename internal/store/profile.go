package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lazypower/petd/internal/pet"
)

// profileRow is the storage shape of pet.Profile. The inventory lives in
// JSON columns; nothing outside this file sees the encoded form.
type profileRow struct {
	ID            int     `db:"id"`
	Name          string  `db:"name"`
	Coins         int     `db:"coins"`
	Level         int     `db:"level"`
	XP            int     `db:"xp"`
	Hunger        float64 `db:"hunger"`
	Energy        float64 `db:"energy"`
	Hygiene       float64 `db:"hygiene"`
	Fun           float64 `db:"fun"`
	Mood          float64 `db:"mood"`
	LastUpdated   string  `db:"last_updated"`
	OwnedItems    string  `db:"owned_items"`
	EquippedItems string  `db:"equipped_items"`
}

const profileColumns = `id, name, coins, level, xp, hunger, energy, hygiene, fun, mood,
	last_updated, owned_items, equipped_items`

func encodeProfile(p *pet.Profile) (profileRow, error) {
	owned := p.OwnedItems
	if owned == nil {
		owned = []string{}
	}
	equipped := p.EquippedItems
	if equipped == nil {
		equipped = map[string]string{}
	}
	ownedJSON, err := json.Marshal(owned)
	if err != nil {
		return profileRow{}, fmt.Errorf("encode owned items: %w", err)
	}
	equippedJSON, err := json.Marshal(equipped)
	if err != nil {
		return profileRow{}, fmt.Errorf("encode equipped items: %w", err)
	}
	return profileRow{
		ID:            p.ID,
		Name:          p.Name,
		Coins:         p.Coins,
		Level:         p.Level,
		XP:            p.XP,
		Hunger:        p.Hunger,
		Energy:        p.Energy,
		Hygiene:       p.Hygiene,
		Fun:           p.Fun,
		Mood:          p.Mood,
		LastUpdated:   p.LastUpdated.UTC().Format(time.RFC3339Nano),
		OwnedItems:    string(ownedJSON),
		EquippedItems: string(equippedJSON),
	}, nil
}

func (r profileRow) decode() (*pet.Profile, error) {
	lastUpdated, err := time.Parse(time.RFC3339Nano, r.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("parse last_updated %q: %w", r.LastUpdated, err)
	}
	p := &pet.Profile{
		ID:            r.ID,
		Name:          r.Name,
		Coins:         r.Coins,
		Level:         r.Level,
		XP:            r.XP,
		Hunger:        r.Hunger,
		Energy:        r.Energy,
		Hygiene:       r.Hygiene,
		Fun:           r.Fun,
		Mood:          r.Mood,
		LastUpdated:   lastUpdated.UTC(),
		OwnedItems:    []string{},
		EquippedItems: map[string]string{},
	}
	if err := json.Unmarshal([]byte(r.OwnedItems), &p.OwnedItems); err != nil {
		return nil, fmt.Errorf("decode owned items: %w", err)
	}
	if err := json.Unmarshal([]byte(r.EquippedItems), &p.EquippedItems); err != nil {
		return nil, fmt.Errorf("decode equipped items: %w", err)
	}
	if p.OwnedItems == nil {
		p.OwnedItems = []string{}
	}
	if p.EquippedItems == nil {
		p.EquippedItems = map[string]string{}
	}
	return p, nil
}

// GetProfile returns the stored profile, or nil if none exists yet.
func (db *DB) GetProfile(ctx context.Context) (*pet.Profile, error) {
	var row profileRow
	err := db.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profile WHERE id = ?`, pet.ProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return row.decode()
}

// LoadOrCreateProfile returns the stored profile, creating and persisting
// one with the starting stats if the table is empty.
func (db *DB) LoadOrCreateProfile(ctx context.Context, name string, now time.Time) (*pet.Profile, error) {
	p, err := db.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	p = pet.NewProfile(name, now)
	if err := db.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes the full snapshot, replacing any prior state.
func (db *DB) SaveProfile(ctx context.Context, p *pet.Profile) error {
	row, err := encodeProfile(p)
	if err != nil {
		return err
	}
	_, err = db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO profile (`+profileColumns+`)
		VALUES (:id, :name, :coins, :level, :xp, :hunger, :energy, :hygiene, :fun, :mood,
			:last_updated, :owned_items, :equipped_items)
	`, row)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
