package pet

import (
	"fmt"
	"slices"
)

// ShopItem is a purchasable cosmetic. Type doubles as the equip slot.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Price       int    `json:"price"`
	AssetURL    string `json:"asset_url"`
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
}

// Equip slots used by the default catalog.
const (
	SlotHat        = "hat"
	SlotBackground = "background"
)

// Catalog is a read-only registry of shop items.
type Catalog struct {
	items []ShopItem
	byID  map[string]ShopItem
}

// NewCatalog validates items and builds a catalog. Ids must be unique and
// non-empty, every item needs a type, and prices cannot be negative.
func NewCatalog(items []ShopItem) (*Catalog, error) {
	c := &Catalog{
		items: slices.Clone(items),
		byID:  make(map[string]ShopItem, len(items)),
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %d: empty id", i)
		}
		if it.Type == "" {
			return nil, fmt.Errorf("catalog item %q: empty type", it.ID)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("catalog item %q: negative price %d", it.ID, it.Price)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog item %q: duplicate id", it.ID)
		}
		c.byID[it.ID] = it
	}
	return c, nil
}

// Items returns the catalog in its fixed order.
func (c *Catalog) Items() []ShopItem {
	return slices.Clone(c.items)
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (ShopItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// IDsOfType lists the ids of every item in slot, in catalog order.
func (c *Catalog) IDsOfType(slot string) []string {
	var ids []string
	for _, it := range c.items {
		if it.Type == slot {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

const twemoji = "https://cdn.jsdelivr.net/gh/twitter/twemoji@14.0.2/assets/72x72/"

var defaultItems = []ShopItem{
	{
		ID:          "hat_cap",
		Name:        "Sky Cap",
		Type:        SlotHat,
		Price:       50,
		AssetURL:    twemoji + "1f9e2.png",
		IconURL:     twemoji + "1f9e2.png",
		Description: "A cool cap for your pet.",
	},
	{
		ID:          "hat_top",
		Name:        "Top Hat",
		Type:        SlotHat,
		Price:       80,
		AssetURL:    twemoji + "1f3a9.png",
		IconURL:     twemoji + "1f3a9.png",
		Description: "Fancy vibes for hackathon demo.",
	},
	{
		ID:          "bg_sunset",
		Name:        "Sunset Yard",
		Type:        SlotBackground,
		Price:       120,
		AssetURL:    "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=1200&q=80",
		IconURL:     "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=600&q=60",
		Description: "Warm sunset background.",
	},
}

// DefaultCatalog returns the built-in shop.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems)
	if err != nil {
		panic("pet: invalid default catalog: " + err.Error())
	}
	return c
}
