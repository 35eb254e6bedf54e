package model

// ItemID uniquely identifies a shop item
type ItemID string

// ShopItem is a purchasable cosmetic. The catalog is read-only at runtime;
// changes to it are a deployment concern, not an operation.
type ShopItem struct {
	ID          ItemID
	DisplayName string
	Price       int // positive
	Slot        SlotType
	AccentColor string
}
