package progression

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/megahubnet/portal/internal/dependencies/mocks"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/storage"
	"github.com/megahubnet/portal/internal/storage/memory"
	"github.com/megahubnet/portal/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	storage *memory.Storage
	catalog *catalog.Service
	clock   *mocks.MockClock
	engine  *Engine
	ctx     context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.storage = memory.New()
	s.catalog = catalog.NewDefault()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.engine = New(s.storage, s.catalog, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// reload builds a second engine over the same store, simulating a restart
func (s *EngineSuite) reload() *Engine {
	return New(s.storage, s.catalog, s.clock, DefaultConfig(), testutil.NopLogger())
}

// First-run defaults

func (s *EngineSuite) TestFirstRunDefaults() {
	p := s.engine.Profile()

	s.Equal("Guest_Player", p.Nickname)
	s.Equal(1500, p.Currency)
	s.Equal(0, p.Experience)
	s.Empty(p.Inventory)
	s.Empty(p.Equipped)
	s.Equal(model.DefaultSettings(), p.Settings)
	s.Equal(1, s.engine.Level())
}

// Currency

func (s *EngineSuite) TestEarnCurrencyAddsToBalance() {
	err := s.engine.EarnCurrency(s.ctx, 250)
	s.Require().NoError(err)

	s.Equal(1750, s.engine.Profile().Currency)
}

func (s *EngineSuite) TestEarnCurrencyRejectsNonPositive() {
	s.ErrorIs(s.engine.EarnCurrency(s.ctx, 0), model.ErrInvalidAmount)
	s.ErrorIs(s.engine.EarnCurrency(s.ctx, -10), model.ErrInvalidAmount)
	s.Equal(1500, s.engine.Profile().Currency)
}

func (s *EngineSuite) TestSpendCurrencyDeducts() {
	err := s.engine.SpendCurrency(s.ctx, 400)
	s.Require().NoError(err)

	s.Equal(1100, s.engine.Profile().Currency)
}

func (s *EngineSuite) TestSpendCurrencyRejectsOverdraft() {
	err := s.engine.SpendCurrency(s.ctx, 1501)
	s.ErrorIs(err, model.ErrInsufficientFunds)

	// Balance untouched, not clamped
	s.Equal(1500, s.engine.Profile().Currency)
}

func (s *EngineSuite) TestSpendCurrencyExactBalanceSucceeds() {
	err := s.engine.SpendCurrency(s.ctx, 1500)
	s.Require().NoError(err)

	s.Equal(0, s.engine.Profile().Currency)
}

// Experience and level

func (s *EngineSuite) TestLevelDerivedFromExperience() {
	s.Equal(1, s.engine.Level())

	s.Require().NoError(s.engine.EarnExperience(s.ctx, 499))
	s.Equal(1, s.engine.Level())

	s.Require().NoError(s.engine.EarnExperience(s.ctx, 1))
	s.Equal(2, s.engine.Level())

	s.Require().NoError(s.engine.EarnExperience(s.ctx, 1000))
	s.Equal(4, s.engine.Level())
}

// Purchases

func (s *EngineSuite) TestPurchaseDeductsAndAutoEquips() {
	err := s.engine.PurchaseItem(s.ctx, "glow-blue")
	s.Require().NoError(err)

	p := s.engine.Profile()
	s.Equal(700, p.Currency)
	s.True(p.Owns("glow-blue"))
	s.Equal(model.ItemID("glow-blue"), p.EquippedIn(model.SlotGlow))
}

func (s *EngineSuite) TestPurchaseRejectsUnaffordable() {
	// frame-gold costs 2500, starting balance is 1500
	err := s.engine.PurchaseItem(s.ctx, "frame-gold")
	s.ErrorIs(err, model.ErrInsufficientFunds)

	p := s.engine.Profile()
	s.Equal(1500, p.Currency)
	s.False(p.Owns("frame-gold"))
	s.Empty(p.Equipped)
}

func (s *EngineSuite) TestPurchaseRejectsUnknownItem() {
	err := s.engine.PurchaseItem(s.ctx, "frame-diamond")
	s.ErrorIs(err, model.ErrUnknownItem)
}

func (s *EngineSuite) TestPurchaseRejectsAlreadyOwned() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "frame-neon"))
	balance := s.engine.Profile().Currency

	err := s.engine.PurchaseItem(s.ctx, "frame-neon")
	s.ErrorIs(err, model.ErrAlreadyOwned)

	// No double deduction
	s.Equal(balance, s.engine.Profile().Currency)
	s.Len(s.engine.Profile().Inventory, 1)
}

func (s *EngineSuite) TestPurchaseReplacesEquippedInSlot() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "frame-neon"))
	s.Require().NoError(s.engine.EarnCurrency(s.ctx, 5000))
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "frame-gold"))

	p := s.engine.Profile()
	s.Equal(model.ItemID("frame-gold"), p.EquippedIn(model.SlotFrame))
	s.True(p.Owns("frame-neon"))
}

// Equip toggling

func (s *EngineSuite) TestToggleEquipUnequipsAndReequips() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "glow-red"))
	s.Equal(model.ItemID("glow-red"), s.engine.Profile().EquippedIn(model.SlotGlow))

	s.Require().NoError(s.engine.ToggleEquip(s.ctx, "glow-red"))
	s.Equal(model.ItemID(""), s.engine.Profile().EquippedIn(model.SlotGlow))

	s.Require().NoError(s.engine.ToggleEquip(s.ctx, "glow-red"))
	s.Equal(model.ItemID("glow-red"), s.engine.Profile().EquippedIn(model.SlotGlow))
}

func (s *EngineSuite) TestToggleEquipRejectsUnowned() {
	err := s.engine.ToggleEquip(s.ctx, "badge-pioneer")
	s.ErrorIs(err, model.ErrNotOwned)
}

func (s *EngineSuite) TestToggleEquipUncataloguedIDIsUnowned() {
	// An id the catalog has never carried cannot be owned either
	err := s.engine.ToggleEquip(s.ctx, "hat-of-wonder")
	s.ErrorIs(err, model.ErrNotOwned)
}

func (s *EngineSuite) TestToggleEquipSwitchesWithinSlot() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "glow-blue"))
	s.Require().NoError(s.engine.EarnCurrency(s.ctx, 800))
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "glow-red"))

	s.Require().NoError(s.engine.ToggleEquip(s.ctx, "glow-blue"))
	p := s.engine.Profile()
	s.Equal(model.ItemID("glow-blue"), p.EquippedIn(model.SlotGlow))
	s.True(p.Owns("glow-red"))
}

// Daily bonus

func (s *EngineSuite) TestDailyBonusFirstClaim() {
	granted, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)

	s.Equal(200, granted) // 150 base + 1*50 streak
	p := s.engine.Profile()
	s.Equal(1700, p.Currency)
	s.Equal(1, p.LoginStreak)
	s.Equal("2024-01-01", p.LastLoginDate)
}

func (s *EngineSuite) TestDailyBonusIdempotentWithinDay() {
	_, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)
	balance := s.engine.Profile().Currency

	// Same calendar day, hours later
	s.clock.Advance(6 * time.Hour)
	granted, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)

	s.Equal(0, granted)
	s.Equal(balance, s.engine.Profile().Currency)
	s.Equal(1, s.engine.Profile().LoginStreak)
}

func (s *EngineSuite) TestDailyBonusConsecutiveDaysGrowStreak() {
	_, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)
	granted, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)
	s.Equal(250, granted) // 150 + 2*50
	s.Equal(2, s.engine.Profile().LoginStreak)

	s.clock.Advance(24 * time.Hour)
	granted, err = s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)
	s.Equal(300, granted)
	s.Equal(3, s.engine.Profile().LoginStreak)
}

func (s *EngineSuite) TestDailyBonusMissedDayResetsStreak() {
	_, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)
	s.clock.Advance(24 * time.Hour)
	_, err = s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.engine.Profile().LoginStreak)

	// Skip a day
	s.clock.Advance(48 * time.Hour)
	granted, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)

	s.Equal(200, granted)
	s.Equal(1, s.engine.Profile().LoginStreak)
}

// Nickname

func (s *EngineSuite) TestSetNicknameTrimsWhitespace() {
	err := s.engine.SetNickname(s.ctx, "  NeonRider  ")
	s.Require().NoError(err)

	s.Equal("NeonRider", s.engine.Profile().Nickname)
}

func (s *EngineSuite) TestSetNicknameRejectsEmpty() {
	s.ErrorIs(s.engine.SetNickname(s.ctx, ""), model.ErrEmptyNickname)
	s.ErrorIs(s.engine.SetNickname(s.ctx, "   "), model.ErrEmptyNickname)
	s.Equal("Guest_Player", s.engine.Profile().Nickname)
}

// Settings

func (s *EngineSuite) TestUpdateSettingVolume() {
	err := s.engine.UpdateSetting(s.ctx, "volume", 80)
	s.Require().NoError(err)
	s.Equal(80, s.engine.Profile().Settings.Volume)
}

func (s *EngineSuite) TestUpdateSettingVolumeAcceptsJSONNumber() {
	err := s.engine.UpdateSetting(s.ctx, "volume", float64(30))
	s.Require().NoError(err)
	s.Equal(30, s.engine.Profile().Settings.Volume)
}

func (s *EngineSuite) TestUpdateSettingVolumeRange() {
	s.ErrorIs(s.engine.UpdateSetting(s.ctx, "volume", -1), model.ErrInvalidSettingValue)
	s.ErrorIs(s.engine.UpdateSetting(s.ctx, "volume", 101), model.ErrInvalidSettingValue)
	s.Equal(50, s.engine.Profile().Settings.Volume)
}

func (s *EngineSuite) TestUpdateSettingTheme() {
	err := s.engine.UpdateSetting(s.ctx, "theme", "light")
	s.Require().NoError(err)
	s.Equal(model.ThemeLight, s.engine.Profile().Settings.Theme)

	s.ErrorIs(s.engine.UpdateSetting(s.ctx, "theme", "neon"), model.ErrInvalidSettingValue)
}

func (s *EngineSuite) TestUpdateSettingRejectsUnknownKey() {
	err := s.engine.UpdateSetting(s.ctx, "brightness", 10)
	s.ErrorIs(err, model.ErrUnknownSetting)
}

func (s *EngineSuite) TestUpdateSettingRejectsWrongType() {
	err := s.engine.UpdateSetting(s.ctx, "sound", "loud")
	s.ErrorIs(err, model.ErrInvalidSettingValue)
	s.True(s.engine.Profile().Settings.Sound)
}

// Reset

func (s *EngineSuite) TestResetRestoresDefaults() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "glow-blue"))
	s.Require().NoError(s.engine.EarnExperience(s.ctx, 1200))
	s.Require().NoError(s.engine.SetNickname(s.ctx, "NeonRider"))

	s.Require().NoError(s.engine.Reset(s.ctx))

	p := s.engine.Profile()
	s.Equal("Guest_Player", p.Nickname)
	s.Equal(1500, p.Currency)
	s.Equal(0, p.Experience)
	s.Empty(p.Inventory)
	s.Empty(p.Equipped)
}

func (s *EngineSuite) TestResetClearsPersistedState() {
	s.Require().NoError(s.engine.EarnCurrency(s.ctx, 999))
	s.Require().NoError(s.engine.Reset(s.ctx))

	reloaded := s.reload()
	s.Equal(1500, reloaded.Profile().Currency)
}

// Persistence round trips

func (s *EngineSuite) TestStateSurvivesReload() {
	s.Require().NoError(s.engine.SetNickname(s.ctx, "NeonRider"))
	s.Require().NoError(s.engine.EarnExperience(s.ctx, 750))
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "frame-neon"))
	s.Require().NoError(s.engine.UpdateSetting(s.ctx, "volume", 25))
	_, err := s.engine.ApplyDailyBonus(s.ctx)
	s.Require().NoError(err)

	reloaded := s.reload()
	p := reloaded.Profile()

	s.Equal("NeonRider", p.Nickname)
	s.Equal(750, p.Experience)
	s.True(p.Owns("frame-neon"))
	s.Equal(model.ItemID("frame-neon"), p.EquippedIn(model.SlotFrame))
	s.Equal(25, p.Settings.Volume)
	s.Equal(1, p.LoginStreak)
	s.Equal("2024-01-01", p.LastLoginDate)
}

func (s *EngineSuite) TestReloadDropsInconsistentEquipped() {
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "glow-blue"))

	// Corrupt the store: equip an item that is not owned
	err := s.storage.Set(s.ctx, storage.KeyEquipped, []byte(`{"glow":"glow-red"}`))
	s.Require().NoError(err)

	reloaded := s.reload()
	s.Empty(reloaded.Profile().Equipped)
}

func (s *EngineSuite) TestMalformedStoredValueFallsBack() {
	err := s.storage.Set(s.ctx, storage.KeyCurrency, []byte("not-a-number"))
	s.Require().NoError(err)

	reloaded := s.reload()
	s.Equal(1500, reloaded.Profile().Currency)
}

// Events

func (s *EngineSuite) TestObserversReceiveEvents() {
	var events []model.Event
	s.engine.Subscribe(func(ev model.Event) {
		events = append(events, ev)
	})

	s.Require().NoError(s.engine.EarnCurrency(s.ctx, 100))
	s.Require().NoError(s.engine.PurchaseItem(s.ctx, "badge-pioneer"))

	s.Require().Len(events, 3)
	s.Equal(model.EventCurrencyEarned, events[0].Type)
	s.Equal(model.EventItemPurchased, events[1].Type)
	s.Equal(model.EventItemEquipped, events[2].Type)

	payload, ok := events[0].Payload.(model.CurrencyPayload)
	s.Require().True(ok)
	s.Equal(100, payload.Amount)
	s.Equal(1600, payload.Balance)
}

func (s *EngineSuite) TestFailedOperationEmitsNothing() {
	count := 0
	s.engine.Subscribe(func(model.Event) { count++ })

	_ = s.engine.SpendCurrency(s.ctx, 99999)
	_ = s.engine.PurchaseItem(s.ctx, "frame-gold")
	_ = s.engine.SetNickname(s.ctx, "")

	s.Equal(0, count)
}

func (s *EngineSuite) TestObserverCanReadBackThroughEngine() {
	var seen int
	s.engine.Subscribe(func(model.Event) {
		seen = s.engine.Profile().Currency
	})

	s.Require().NoError(s.engine.EarnCurrency(s.ctx, 50))
	s.Equal(1550, seen)
}

// Storage degradation

// failingStore reads fine but rejects every write, simulating a backend
// that has become unavailable mid-session
type failingStore struct {
	storage.Store
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("storage unavailable")
}

func (s *EngineSuite) TestUnavailableStorageDegradesToMemory() {
	engine := New(&failingStore{Store: memory.New()}, s.catalog, s.clock,
		DefaultConfig(), testutil.NopLogger())

	// Mutations succeed despite every persist failing
	s.Require().NoError(engine.EarnCurrency(s.ctx, 100))
	s.Require().NoError(engine.PurchaseItem(s.ctx, "glow-blue"))
	s.Require().NoError(engine.SetNickname(s.ctx, "Ephemeral"))

	// In-memory state stays authoritative for the session
	p := engine.Profile()
	s.Equal(800, p.Currency)
	s.Equal([]model.ItemID{"glow-blue"}, p.Inventory)
	s.Equal("Ephemeral", p.Nickname)

	// Observers still fire on the memory-only mutations
	count := 0
	engine.Subscribe(func(model.Event) { count++ })
	s.Require().NoError(engine.EarnExperience(s.ctx, 50))
	s.Equal(1, count)
}
