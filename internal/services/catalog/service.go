package catalog

import (
	"github.com/megahubnet/portal/internal/model"
)

// Service is the read-only shop catalog. Items are fixed at construction;
// there is no mutation surface.
type Service struct {
	items []model.ShopItem
	byID  map[model.ItemID]model.ShopItem
}

// New creates a catalog from the given item set
func New(items []model.ShopItem) *Service {
	byID := make(map[model.ItemID]model.ShopItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Service{
		items: items,
		byID:  byID,
	}
}

// NewDefault creates a catalog with the stock item set
func NewDefault() *Service {
	return New(DefaultItems())
}

// Find returns the item with the given id
func (s *Service) Find(id model.ItemID) (model.ShopItem, error) {
	item, ok := s.byID[id]
	if !ok {
		return model.ShopItem{}, model.ErrUnknownItem
	}
	return item, nil
}

// All returns every item in catalog order
func (s *Service) All() []model.ShopItem {
	out := make([]model.ShopItem, len(s.items))
	copy(out, s.items)
	return out
}

// BySlot returns the items belonging to a slot type
func (s *Service) BySlot(slot model.SlotType) []model.ShopItem {
	var out []model.ShopItem
	for _, item := range s.items {
		if item.Slot == slot {
			out = append(out, item)
		}
	}
	return out
}

// DefaultItems returns the stock cosmetic catalog
func DefaultItems() []model.ShopItem {
	return []model.ShopItem{
		{ID: "frame-neon", DisplayName: "Neon Frame", Price: 500, Slot: model.SlotFrame, AccentColor: "#22d3ee"},
		{ID: "frame-gold", DisplayName: "Gold Frame", Price: 2500, Slot: model.SlotFrame, AccentColor: "#fbbf24"},
		{ID: "glow-blue", DisplayName: "Azure Glow", Price: 800, Slot: model.SlotGlow, AccentColor: "#3b82f6"},
		{ID: "glow-red", DisplayName: "Crimson Glow", Price: 800, Slot: model.SlotGlow, AccentColor: "#ef4444"},
		{ID: "badge-pioneer", DisplayName: "Pioneer Badge", Price: 1200, Slot: model.SlotBadge, AccentColor: "#a855f7"},
	}
}
