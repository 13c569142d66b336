package game

// Item flags.
const (
	ItemWeapon uint32 = 1 << iota
	ItemAmmo
	ItemArmor
	ItemKey
	ItemPowerup
	ItemHealth
)

var itemDefs = []Item{
	{ClassName: "item_armor_body", PickupName: "Body Armor", Flags: ItemArmor},
	{ClassName: "item_armor_jacket", PickupName: "Jacket Armor", Flags: ItemArmor},
	{ClassName: "weapon_blaster", PickupName: "Blaster", Flags: ItemWeapon},
	{ClassName: "weapon_shotgun", PickupName: "Shotgun", Quantity: 1, Flags: ItemWeapon},
	{ClassName: "weapon_machinegun", PickupName: "Machinegun", Quantity: 1, Flags: ItemWeapon},
	{ClassName: "ammo_shells", PickupName: "Shells", Quantity: 10, Flags: ItemAmmo},
	{ClassName: "ammo_bullets", PickupName: "Bullets", Quantity: 50, Flags: ItemAmmo},
	{ClassName: "item_health", PickupName: "Health", Quantity: 10, Flags: ItemHealth},
	{ClassName: "item_quad", PickupName: "Quad Damage", Quantity: 60, Flags: ItemPowerup},
	{ClassName: "key_data_cd", PickupName: "Data CD", Flags: ItemKey},
	{ClassName: "key_blue_key", PickupName: "Blue Key", Flags: ItemKey},
}

// DefaultItems returns a fresh copy of the item table with indices assigned.
func DefaultItems() []Item {
	items := make([]Item, len(itemDefs))
	copy(items, itemDefs)
	for i := range items {
		items[i].Index = i
	}
	return items
}

// FindItem returns the item with the given classname, or nil.
func (s *Session) FindItem(className string) *Item {
	for i := range s.Items {
		if s.Items[i].ClassName == className {
			return &s.Items[i]
		}
	}
	return nil
}
