package handler

import (
	"encoding/json"
	"net/http"

	"github.com/megahubnet/portal/internal/api/request"
	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/arena"
	"github.com/megahubnet/portal/internal/services/progression"
)

// ArenaHandler handles multiplayer hub endpoints
type ArenaHandler struct {
	arena  *arena.Service
	engine *progression.Engine
}

// NewArenaHandler creates a new arena handler
func NewArenaHandler(arenaService *arena.Service, engine *progression.Engine) *ArenaHandler {
	return &ArenaHandler{
		arena:  arenaService,
		engine: engine,
	}
}

// ListRooms handles GET /api/v1/arena/rooms
func (h *ArenaHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.arena.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, response.RoomFromModel(room))
	}
	response.JSON(w, http.StatusOK, out)
}

// Join handles POST /api/v1/arena/join
func (h *ArenaHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	room, err := h.arena.JoinRoom(r.Context(), model.RoomCode(req.Code))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinedRoom{
		Room:   response.RoomFromModel(room),
		Roster: h.arena.Roster(),
	})
}

// Create handles POST /api/v1/arena/rooms
func (h *ArenaHandler) Create(w http.ResponseWriter, r *http.Request) {
	room, err := h.arena.CreateRoom(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.JoinedRoom{
		Room:   response.RoomFromModel(room),
		Roster: h.arena.Roster(),
	})
}

// QuickPlay handles POST /api/v1/arena/quickplay
func (h *ArenaHandler) QuickPlay(w http.ResponseWriter, r *http.Request) {
	room, err := h.arena.QuickPlay(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.JoinedRoom{
		Room:   response.RoomFromModel(room),
		Roster: h.arena.Roster(),
	})
}

// Leave handles POST /api/v1/arena/leave
func (h *ArenaHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.arena.Leave()
	response.NoContent(w)
}

// Chat handles POST /api/v1/arena/chat
func (h *ArenaHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	nickname := h.engine.Profile().Nickname
	if err := h.arena.Send(r.Context(), nickname, req.Text); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
