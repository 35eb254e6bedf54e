package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/megahubnet/portal/internal/api/handler"
	"github.com/megahubnet/portal/internal/api/middleware"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/games/registry"
	"github.com/megahubnet/portal/internal/services/arena"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/services/progression"
	"github.com/megahubnet/portal/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Engine       *progression.Engine
	Catalog      *catalog.Service
	ArenaService *arena.Service
	Runner       *games.Runner
	GameDeps     registry.Deps
	Hub          *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	profileHandler := handler.NewProfileHandler(cfg.Engine)
	shopHandler := handler.NewShopHandler(cfg.Engine, cfg.Catalog)
	gamesHandler := handler.NewGamesHandler(cfg.Runner, cfg.GameDeps, cfg.Hub)
	arenaHandler := handler.NewArenaHandler(cfg.ArenaService, cfg.Engine)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Profile routes
	api.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/profile/nickname", profileHandler.SetNickname).Methods(http.MethodPut)
	api.HandleFunc("/profile/settings/{key}", profileHandler.UpdateSetting).Methods(http.MethodPut)
	api.HandleFunc("/profile/daily-bonus", profileHandler.DailyBonus).Methods(http.MethodPost)
	api.HandleFunc("/profile/reset", profileHandler.Reset).Methods(http.MethodPost)

	// Shop routes
	api.HandleFunc("/shop/items", shopHandler.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/shop/purchase", shopHandler.Purchase).Methods(http.MethodPost)
	api.HandleFunc("/shop/equip", shopHandler.Equip).Methods(http.MethodPost)

	// Game routes
	api.HandleFunc("/games", gamesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/start", gamesHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/games/input", gamesHandler.Input).Methods(http.MethodPost)
	api.HandleFunc("/games/stop", gamesHandler.Stop).Methods(http.MethodPost)

	// Arena routes
	api.HandleFunc("/arena/rooms", arenaHandler.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/arena/rooms", arenaHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/arena/join", arenaHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/arena/quickplay", arenaHandler.QuickPlay).Methods(http.MethodPost)
	api.HandleFunc("/arena/leave", arenaHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/arena/chat", arenaHandler.Chat).Methods(http.MethodPost)

	// Event stream
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
