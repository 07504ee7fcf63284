// Package pet implements the virtual pet's state model: bounded stats,
// time-based decay, care actions, minigame rewards, and the shop inventory
// rules. Everything here is pure; callers supply the current time and
// handle persistence.
package pet

import (
	"maps"
	"slices"
	"time"
)

// ProfileID is the identity of the one and only profile.
const ProfileID = 1

// Defaults for a freshly created profile.
const (
	DefaultName    = "Tom"
	DefaultCoins   = 120
	DefaultHunger  = 75.0
	DefaultEnergy  = 75.0
	DefaultHygiene = 80.0
	DefaultFun     = 70.0
)

// Profile is the persisted state of the pet.
type Profile struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Coins         int               `json:"coins"`
	Level         int               `json:"level"`
	XP            int               `json:"xp"`
	Hunger        float64           `json:"hunger"`
	Energy        float64           `json:"energy"`
	Hygiene       float64           `json:"hygiene"`
	Fun           float64           `json:"fun"`
	Mood          float64           `json:"mood"`
	LastUpdated   time.Time         `json:"last_updated"`
	OwnedItems    []string          `json:"owned_items"`
	EquippedItems map[string]string `json:"equipped_items"`
}

// NewProfile returns a profile with the starting stats, created at now.
func NewProfile(name string, now time.Time) *Profile {
	if name == "" {
		name = DefaultName
	}
	p := &Profile{
		ID:            ProfileID,
		Name:          name,
		Coins:         DefaultCoins,
		Hunger:        DefaultHunger,
		Energy:        DefaultEnergy,
		Hygiene:       DefaultHygiene,
		Fun:           DefaultFun,
		LastUpdated:   now.UTC(),
		OwnedItems:    []string{},
		EquippedItems: map[string]string{},
	}
	p.refresh()
	return p
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	c.OwnedItems = slices.Clone(p.OwnedItems)
	if c.OwnedItems == nil {
		c.OwnedItems = []string{}
	}
	c.EquippedItems = maps.Clone(p.EquippedItems)
	if c.EquippedItems == nil {
		c.EquippedItems = map[string]string{}
	}
	return &c
}

// Owns reports whether itemID is in the inventory.
func (p *Profile) Owns(itemID string) bool {
	return slices.Contains(p.OwnedItems, itemID)
}

// Equipped returns the item id equipped in slot, if any.
func (p *Profile) Equipped(slot string) (string, bool) {
	id, ok := p.EquippedItems[slot]
	return id, ok
}

// refresh recomputes the derived fields.
func (p *Profile) refresh() {
	p.Level = LevelForXP(p.XP)
	p.Mood = ComputeMood(p)
}
