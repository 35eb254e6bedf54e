package progression

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/storage"
)

// Engine owns the player's economic and identity state. All mutations go
// through it: each operation validates its preconditions, applies the
// change, writes the affected fields through to storage, then notifies
// observers synchronously. A failed precondition leaves state unchanged.
//
// Storage write failures are non-fatal: the in-memory profile stays
// authoritative for the rest of the session.
type Engine struct {
	mu      sync.Mutex
	store   storage.Store
	catalog *catalog.Service
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger

	profile   *model.Profile
	observers []func(model.Event)
	degraded  bool
}

// New creates the engine and loads the profile from the store, installing
// first-run defaults for any absent field.
func New(store storage.Store, cat *catalog.Service, clk clock.Clock, cfg Config, logger *slog.Logger) *Engine {
	logger = logger.With(slog.String("component", "progression"))
	return &Engine{
		store:   store,
		catalog: cat,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
		profile: loadProfile(context.Background(), store, cat, cfg, logger),
	}
}

// Subscribe registers an observer for engine events. Observers are invoked
// synchronously, in registration order, after each successful mutation.
func (e *Engine) Subscribe(fn func(model.Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Profile returns a copy of the current state safe for readers to hold
func (e *Engine) Profile() *model.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Clone()
}

// Level returns the derived player level
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Level(e.cfg.LevelDivisor)
}

// Config returns the engine's economy constants
func (e *Engine) Config() Config {
	return e.cfg
}

// EarnCurrency adds to the balance. It never fails for positive amounts.
func (e *Engine) EarnCurrency(ctx context.Context, amount int) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	e.mu.Lock()
	e.profile.Currency += amount
	e.persistInt(ctx, storage.KeyCurrency, e.profile.Currency)
	ev := e.event(model.EventCurrencyEarned, model.CurrencyPayload{
		Amount:  amount,
		Balance: e.profile.Currency,
	})
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// SpendCurrency deducts from the balance, rejecting (not clamping) a spend
// that would take it negative.
func (e *Engine) SpendCurrency(ctx context.Context, amount int) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	e.mu.Lock()
	if amount > e.profile.Currency {
		e.mu.Unlock()
		return model.ErrInsufficientFunds
	}
	e.profile.Currency -= amount
	e.persistInt(ctx, storage.KeyCurrency, e.profile.Currency)
	ev := e.event(model.EventCurrencySpent, model.CurrencyPayload{
		Amount:  amount,
		Balance: e.profile.Currency,
	})
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// EarnExperience adds to the experience counter. Level is derived on read,
// never stored.
func (e *Engine) EarnExperience(ctx context.Context, amount int) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	e.mu.Lock()
	e.profile.Experience += amount
	e.persistInt(ctx, storage.KeyExperience, e.profile.Experience)
	ev := e.event(model.EventExperienceEarned, model.ExperiencePayload{
		Amount:     amount,
		Experience: e.profile.Experience,
		Level:      e.profile.Level(e.cfg.LevelDivisor),
	})
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// PurchaseItem buys a catalog item: deducts its price, adds it to the
// inventory and auto-equips it into its slot. Re-purchasing an owned item
// is rejected, so at most one deduction can ever occur per item.
func (e *Engine) PurchaseItem(ctx context.Context, id model.ItemID) error {
	item, err := e.catalog.Find(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.profile.Owns(id) {
		e.mu.Unlock()
		return model.ErrAlreadyOwned
	}
	if item.Price > e.profile.Currency {
		e.mu.Unlock()
		return model.ErrInsufficientFunds
	}

	e.profile.Currency -= item.Price
	e.profile.Inventory = append(e.profile.Inventory, id)
	e.profile.Equipped[item.Slot] = id

	e.persistInt(ctx, storage.KeyCurrency, e.profile.Currency)
	e.persistJSON(ctx, storage.KeyInventory, e.profile.Inventory)
	e.persistJSON(ctx, storage.KeyEquipped, e.profile.Equipped)

	purchased := e.event(model.EventItemPurchased, model.ItemPayload{
		ItemID: id,
		Slot:   item.Slot,
		Price:  item.Price,
	})
	equipped := e.event(model.EventItemEquipped, model.ItemPayload{
		ItemID: id,
		Slot:   item.Slot,
	})
	e.mu.Unlock()

	e.emit(purchased)
	e.emit(equipped)
	return nil
}

// ToggleEquip equips an owned item into its slot, or unequips it if it is
// already equipped there. Ownership is the only precondition: an id the
// catalog has never heard of is just another item the player does not own.
func (e *Engine) ToggleEquip(ctx context.Context, id model.ItemID) error {
	e.mu.Lock()
	if !e.profile.Owns(id) {
		e.mu.Unlock()
		return model.ErrNotOwned
	}

	item, err := e.catalog.Find(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	var ev model.Event
	if e.profile.Equipped[item.Slot] == id {
		delete(e.profile.Equipped, item.Slot)
		ev = e.event(model.EventItemUnequipped, model.ItemPayload{ItemID: id, Slot: item.Slot})
	} else {
		e.profile.Equipped[item.Slot] = id
		ev = e.event(model.EventItemEquipped, model.ItemPayload{ItemID: id, Slot: item.Slot})
	}
	e.persistJSON(ctx, storage.KeyEquipped, e.profile.Equipped)
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// ApplyDailyBonus grants the once-per-calendar-day login bonus and returns
// the amount granted, or 0 when it has already been granted today. The
// streak increments when the previous grant was exactly yesterday and
// resets to 1 otherwise.
func (e *Engine) ApplyDailyBonus(ctx context.Context) (int, error) {
	now := e.clock.Now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	e.mu.Lock()
	if e.profile.LastLoginDate == today {
		e.mu.Unlock()
		return 0, nil
	}

	if e.profile.LastLoginDate == yesterday {
		e.profile.LoginStreak++
	} else {
		e.profile.LoginStreak = 1
	}
	e.profile.LastLoginDate = today

	granted := e.cfg.DailyBaseBonus + e.profile.LoginStreak*e.cfg.DailyStreakBonus
	e.profile.Currency += granted

	e.persistInt(ctx, storage.KeyCurrency, e.profile.Currency)
	e.persistString(ctx, storage.KeyLastLoginDate, e.profile.LastLoginDate)
	e.persistInt(ctx, storage.KeyLoginStreak, e.profile.LoginStreak)

	ev := e.event(model.EventDailyBonusGranted, model.DailyBonusPayload{
		Granted: granted,
		Streak:  e.profile.LoginStreak,
	})
	e.mu.Unlock()

	e.emit(ev)
	return granted, nil
}

// SetNickname updates the player's display name
func (e *Engine) SetNickname(ctx context.Context, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return model.ErrEmptyNickname
	}

	e.mu.Lock()
	e.profile.Nickname = nickname
	e.persistString(ctx, storage.KeyNickname, nickname)
	ev := e.event(model.EventNicknameChanged, model.NicknamePayload{Nickname: nickname})
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// UpdateSetting writes through a recognized setting. Unknown keys are
// rejected, as are out-of-domain values.
func (e *Engine) UpdateSetting(ctx context.Context, key string, value any) error {
	e.mu.Lock()

	next := e.profile.Settings
	switch key {
	case "sound":
		b, ok := asBool(value)
		if !ok {
			e.mu.Unlock()
			return model.ErrInvalidSettingValue
		}
		next.Sound = b
	case "volume":
		n, ok := asInt(value)
		if !ok || n < 0 || n > 100 {
			e.mu.Unlock()
			return model.ErrInvalidSettingValue
		}
		next.Volume = n
	case "theme":
		s, ok := value.(string)
		if !ok || (s != model.ThemeDark && s != model.ThemeLight) {
			e.mu.Unlock()
			return model.ErrInvalidSettingValue
		}
		next.Theme = s
	case "effects":
		b, ok := asBool(value)
		if !ok {
			e.mu.Unlock()
			return model.ErrInvalidSettingValue
		}
		next.Effects = b
	case "season":
		s, ok := value.(string)
		if !ok || s == "" {
			e.mu.Unlock()
			return model.ErrInvalidSettingValue
		}
		next.Season = s
	default:
		e.mu.Unlock()
		return model.ErrUnknownSetting
	}

	e.profile.Settings = next
	e.persistJSON(ctx, storage.KeySettings, e.profile.Settings)
	ev := e.event(model.EventSettingUpdated, model.SettingPayload{
		Key:      key,
		Settings: e.profile.Settings,
	})
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// Reset clears all persisted state and reinstalls first-run defaults.
// Irreversible.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	if err := e.store.Clear(ctx); err != nil {
		e.noteStorageFailure(err)
	}
	e.profile = defaultProfile(e.cfg)
	e.degraded = false
	ev := e.event(model.EventProfileReset, nil)
	e.mu.Unlock()

	e.emit(ev)
	return nil
}

// event builds an Event stamped with the engine clock. Callers hold e.mu.
func (e *Engine) event(t model.EventType, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: e.clock.Now(),
		Payload:   payload,
	}
}

// emit delivers an event to all observers. Called outside e.mu so that
// observers may read back through the engine.
func (e *Engine) emit(ev model.Event) {
	e.mu.Lock()
	observers := make([]func(model.Event), len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

// Persistence helpers. Write failures degrade to memory-only state for the
// session; they are logged once and never surfaced to the caller.

func (e *Engine) persistString(ctx context.Context, key, value string) {
	if err := storage.SetString(ctx, e.store, key, value); err != nil {
		e.noteStorageFailure(err)
	}
}

func (e *Engine) persistInt(ctx context.Context, key string, value int) {
	if err := storage.SetInt(ctx, e.store, key, value); err != nil {
		e.noteStorageFailure(err)
	}
}

func (e *Engine) persistJSON(ctx context.Context, key string, value any) {
	if err := storage.SetJSON(ctx, e.store, key, value); err != nil {
		e.noteStorageFailure(err)
	}
}

func (e *Engine) noteStorageFailure(err error) {
	if !e.degraded {
		e.degraded = true
		e.logger.Warn("storage unavailable, continuing with in-memory state",
			slog.String("error", err.Error()))
	}
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt accepts native ints and the float64 form JSON decoding produces
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
