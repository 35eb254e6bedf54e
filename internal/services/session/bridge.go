package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/services/progression"
)

// Snapshot is the read-only profile view handed to presentation code
type Snapshot struct {
	Nickname   string
	Currency   int
	Experience int
	Level      int
	Equipped   map[model.SlotType]model.ItemID
}

// Notifier receives fire-and-forget toast messages. Implementations are
// presentation concerns (SSE broadcast, TUI status line); the default
// discards them so call sites never branch on presence.
type Notifier interface {
	Notify(message string)
}

// NopNotifier discards all messages
type NopNotifier struct{}

func (NopNotifier) Notify(message string) {}

// Bridge synchronizes engine state into presentation layers. Subscribers
// are called synchronously after each successful engine mutation, replacing
// any polling. Presentation code never touches storage directly.
type Bridge struct {
	engine   *progression.Engine
	catalog  *catalog.Service
	notifier Notifier
	logger   *slog.Logger

	mu     sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// New creates the bridge and hooks it into the engine's event stream
func New(engine *progression.Engine, cat *catalog.Service, notifier Notifier, logger *slog.Logger) *Bridge {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	b := &Bridge{
		engine:   engine,
		catalog:  cat,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "session")),
		subs:     make(map[int]func(Snapshot)),
	}
	engine.Subscribe(b.onEvent)
	return b
}

// CurrentProfile returns the presentation snapshot of the profile
func (b *Bridge) CurrentProfile() Snapshot {
	p := b.engine.Profile()
	return Snapshot{
		Nickname:   p.Nickname,
		Currency:   p.Currency,
		Experience: p.Experience,
		Level:      p.Level(b.engine.Config().LevelDivisor),
		Equipped:   p.Equipped,
	}
}

// Subscribe registers a presentation observer and returns its unsubscribe
// function. The observer immediately receives the current snapshot.
func (b *Bridge) Subscribe(fn func(Snapshot)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	fn(b.CurrentProfile())

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Notify forwards a transient toast message to the presentation layer
func (b *Bridge) Notify(message string) {
	b.notifier.Notify(message)
}

// onEvent fans an engine mutation out to subscribers and converts the
// events that warrant a toast into one
func (b *Bridge) onEvent(ev model.Event) {
	snapshot := b.CurrentProfile()

	b.mu.Lock()
	subs := make([]func(Snapshot), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}

	if msg := b.toastFor(ev); msg != "" {
		b.notifier.Notify(msg)
	}
}

func (b *Bridge) toastFor(ev model.Event) string {
	switch ev.Type {
	case model.EventCurrencyEarned:
		p, ok := ev.Payload.(model.CurrencyPayload)
		if !ok {
			return ""
		}
		return fmt.Sprintf("+%d Credits!", p.Amount)
	case model.EventExperienceEarned:
		p, ok := ev.Payload.(model.ExperiencePayload)
		if !ok {
			return ""
		}
		return fmt.Sprintf("+%d XP!", p.Amount)
	case model.EventDailyBonusGranted:
		p, ok := ev.Payload.(model.DailyBonusPayload)
		if !ok {
			return ""
		}
		return fmt.Sprintf("Daily Bonus: %d Credits! (day %d)", p.Granted, p.Streak)
	case model.EventItemPurchased:
		return "Purchase Successful!"
	case model.EventItemEquipped:
		return b.itemName(ev) + " Equipped"
	case model.EventItemUnequipped:
		return "Unequipped"
	case model.EventProfileReset:
		return "Profile Reset"
	default:
		return ""
	}
}

func (b *Bridge) itemName(ev model.Event) string {
	p, ok := ev.Payload.(model.ItemPayload)
	if !ok {
		return "Item"
	}
	item, err := b.catalog.Find(p.ItemID)
	if err != nil {
		return "Item"
	}
	return item.DisplayName
}
