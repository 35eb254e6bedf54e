package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/megahubnet/portal/internal/api/request"
	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/games/registry"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/web/sse"
)

// GamesHandler handles game lifecycle endpoints. Active runs render into a
// frame buffer that is streamed to SSE clients at the game's tick rate.
type GamesHandler struct {
	runner *games.Runner
	deps   registry.Deps
	hub    *sse.Hub
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(runner *games.Runner, deps registry.Deps, hub *sse.Hub) *GamesHandler {
	return &GamesHandler{
		runner: runner,
		deps:   deps,
		hub:    hub,
	}
}

// List handles GET /api/v1/games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	descriptors := registry.List(h.deps)
	out := make([]response.GameInfo, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, response.GameInfoFromDescriptor(d))
	}
	response.JSON(w, http.StatusOK, out)
}

// Start handles POST /api/v1/games/start
func (h *GamesHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id := model.GameID(req.GameID)
	g, err := registry.New(id, h.deps)
	if err != nil {
		WriteError(w, err)
		return
	}

	width, height := registry.FrameSize(id)
	frame := games.NewFrame(width, height)

	// The run outlives the request: net/http cancels r.Context() as soon
	// as this handler returns, but the scheduler keeps ticking until the
	// game ends or /games/stop is called.
	runCtx := context.WithoutCancel(r.Context())
	runID := h.runner.Start(runCtx, g, frame, func(result model.GameResult) {
		h.hub.BroadcastJSON(sse.EventGameOver, response.GameResultFromModel(result))
	})

	go h.streamFrames(runID, frame, g.Descriptor().TickPeriod)

	response.JSON(w, http.StatusCreated, response.StartedGame{
		RunID:  runID,
		Width:  width,
		Height: height,
	})
}

// Input handles POST /api/v1/games/input
func (h *GamesHandler) Input(w http.ResponseWriter, r *http.Request) {
	if !h.runner.Active() {
		WriteError(w, model.ErrNoActiveGame)
		return
	}

	var req request.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	ev, err := parseInput(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.runner.Input(ev)
	response.NoContent(w)
}

// Stop handles POST /api/v1/games/stop
func (h *GamesHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if !h.runner.Active() {
		WriteError(w, model.ErrNoActiveGame)
		return
	}
	h.runner.Stop()
	response.NoContent(w)
}

// streamFrames pushes frame snapshots to SSE clients until the run ends.
// A final snapshot is sent after the run so clients see the end state.
func (h *GamesHandler) streamFrames(runID string, frame *games.Frame, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for range ticker.C {
		cells := frame.Snapshot()
		h.hub.BroadcastJSON(sse.EventFrame, map[string]any{
			"run_id": runID,
			"cells":  cells,
		})
		if h.runner.ActiveID() != runID {
			return
		}
	}
}

func parseInput(req request.InputRequest) (games.Input, error) {
	switch req.Kind {
	case "direction":
		dir, ok := parseDirection(req.Dir)
		if !ok {
			return games.Input{}, NewInvalidRequestError("unknown direction")
		}
		return games.Input{Kind: games.InputDirection, Dir: dir}, nil
	case "rune":
		runes := []rune(req.Rune)
		if len(runes) != 1 {
			return games.Input{}, NewInvalidRequestError("rune must be a single character")
		}
		return games.Input{Kind: games.InputRune, Rune: runes[0]}, nil
	case "backspace":
		return games.Input{Kind: games.InputBackspace}, nil
	case "click":
		return games.Input{Kind: games.InputClick, X: req.X, Y: req.Y}, nil
	default:
		return games.Input{}, NewInvalidRequestError("unknown input kind")
	}
}

func parseDirection(s string) (games.Direction, bool) {
	switch s {
	case "up":
		return games.DirUp, true
	case "down":
		return games.DirDown, true
	case "left":
		return games.DirLeft, true
	case "right":
		return games.DirRight, true
	default:
		return games.DirUp, false
	}
}
