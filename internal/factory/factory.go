package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/games/registry"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/arena"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/services/progression"
	"github.com/megahubnet/portal/internal/services/session"
	"github.com/megahubnet/portal/internal/storage"
	"github.com/megahubnet/portal/internal/storage/memory"
	redisstorage "github.com/megahubnet/portal/internal/storage/redis"
	sqlitestorage "github.com/megahubnet/portal/internal/storage/sqlite"
	"github.com/megahubnet/portal/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalog      *catalog.Service
	Engine       *progression.Engine
	Session      *session.Bridge
	ArenaService *arena.Service
	Runner       *games.Runner
	Hub          *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ProgressionConfig holds progression tuning (optional)
	// If zero value, defaults to progression.DefaultConfig()
	ProgressionConfig progression.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	progCfg := cfg.ProgressionConfig
	if progCfg.LevelDivisor == 0 {
		progCfg = progression.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, progCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, progCfg progression.Config, logger *slog.Logger) *App {
	cat := catalog.NewDefault()
	engine := progression.New(store, cat, clk, progCfg, logger)
	hub := sse.NewHub(logger)
	bridge := session.New(engine, cat, sseNotifier{hub}, logger)
	transport := arena.NewSimulated(arena.DefaultSimulatedConfig(), clk)
	arenaService := arena.NewService(transport, clk, rnd, arena.DefaultConfig(), logger)
	runner := games.NewRunner(engine, clk, games.DefaultRewardPolicy(), logger)

	// Mirror profile and chat activity onto the event stream
	bridge.Subscribe(func(snap session.Snapshot) {
		hub.BroadcastJSON(sse.EventProfile, snap)
	})
	arenaService.Subscribe(func(ev model.Event) {
		if ev.Type == model.EventChatMessage {
			hub.BroadcastJSON(sse.EventChat, ev.Payload)
		}
	})

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		Catalog:      cat,
		Engine:       engine,
		Session:      bridge,
		ArenaService: arenaService,
		Runner:       runner,
		Hub:          hub,
	}
}

// GameDeps returns the dependency bundle game variants draw from
func (a *App) GameDeps() registry.Deps {
	return registry.Deps{
		Clock:  a.Clock,
		Random: a.Random,
		Cues:   games.NopCues{},
	}
}

// sseNotifier pushes session toasts onto the event stream
type sseNotifier struct {
	hub *sse.Hub
}

func (n sseNotifier) Notify(message string) {
	n.hub.BroadcastJSON(sse.EventToast, map[string]string{"message": message})
}
