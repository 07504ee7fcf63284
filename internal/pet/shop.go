package pet

import "fmt"

// BuyItem purchases itemID and equips it in its slot. Buying something
// already owned is a silent no-op: no charge and no error.
func BuyItem(p *Profile, c *Catalog, itemID string) error {
	item, ok := c.Lookup(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, itemID)
	}
	if p.Owns(itemID) {
		p.refresh()
		return nil
	}
	if p.Coins < item.Price {
		return fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, itemID, item.Price, p.Coins)
	}

	p.Coins -= item.Price
	p.OwnedItems = append(p.OwnedItems, itemID)
	p.equip(item)
	p.refresh()
	return nil
}

// EquipItem puts an owned item into its slot, replacing whatever was there.
// Slots cannot be emptied once filled.
func EquipItem(p *Profile, c *Catalog, itemID string) error {
	item, ok := c.Lookup(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, itemID)
	}
	if !p.Owns(itemID) {
		return fmt.Errorf("%w: %q", ErrItemNotOwned, itemID)
	}

	p.equip(item)
	p.refresh()
	return nil
}

func (p *Profile) equip(item ShopItem) {
	if p.EquippedItems == nil {
		p.EquippedItems = map[string]string{}
	}
	p.EquippedItems[item.Type] = item.ID
}
