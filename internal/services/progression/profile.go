package progression

import (
	"context"
	"log/slog"

	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/storage"
)

// defaultProfile returns the documented first-run state
func defaultProfile(cfg Config) *model.Profile {
	return &model.Profile{
		Nickname:  cfg.DefaultNickname,
		Currency:  cfg.StartingCurrency,
		Inventory: []model.ItemID{},
		Equipped:  map[model.SlotType]model.ItemID{},
		Settings:  model.DefaultSettings(),
	}
}

// loadProfile builds the profile from the store, falling back per field to
// first-run defaults. Absent keys are first-run, malformed values fall back
// silently; neither is an error.
func loadProfile(ctx context.Context, store storage.Store, cat *catalog.Service, cfg Config, logger *slog.Logger) *model.Profile {
	p := defaultProfile(cfg)

	p.Nickname, _ = storage.GetString(ctx, store, storage.KeyNickname, p.Nickname)
	p.Experience, _ = storage.GetInt(ctx, store, storage.KeyExperience, p.Experience)
	p.Currency, _ = storage.GetInt(ctx, store, storage.KeyCurrency, p.Currency)
	p.LastLoginDate, _ = storage.GetString(ctx, store, storage.KeyLastLoginDate, "")
	p.LoginStreak, _ = storage.GetInt(ctx, store, storage.KeyLoginStreak, 0)

	if !storage.GetJSON(ctx, store, storage.KeyInventory, &p.Inventory) {
		p.Inventory = []model.ItemID{}
	}
	if !storage.GetJSON(ctx, store, storage.KeyEquipped, &p.Equipped) {
		p.Equipped = map[model.SlotType]model.ItemID{}
	}
	if !storage.GetJSON(ctx, store, storage.KeySettings, &p.Settings) {
		p.Settings = model.DefaultSettings()
	}

	// Negative counters cannot arise from engine operations; a corrupt or
	// hand-edited store falls back to defaults
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.Currency < 0 {
		p.Currency = cfg.StartingCurrency
	}
	if p.Nickname == "" {
		p.Nickname = cfg.DefaultNickname
	}

	// Equipped entries must reference owned items of the matching slot
	for slot, id := range p.Equipped {
		if id == "" {
			delete(p.Equipped, slot)
			continue
		}
		item, err := cat.Find(id)
		if err != nil || item.Slot != slot || !p.Owns(id) {
			logger.Warn("dropping inconsistent equipped item",
				slog.String("slot", string(slot)),
				slog.String("item", string(id)))
			delete(p.Equipped, slot)
		}
	}

	return p
}
