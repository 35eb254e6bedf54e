package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/megahubnet/portal/internal/api/request"
	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/services/progression"
)

// ProfileHandler handles profile and settings endpoints
type ProfileHandler struct {
	engine *progression.Engine
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(engine *progression.Engine) *ProfileHandler {
	return &ProfileHandler{
		engine: engine,
	}
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.ProfileFromModel(p, h.engine.Config().LevelDivisor))
}

// SetNickname handles PUT /api/v1/profile/nickname
func (h *ProfileHandler) SetNickname(w http.ResponseWriter, r *http.Request) {
	var req request.NicknameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.engine.SetNickname(r.Context(), req.Nickname); err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.ProfileFromModel(p, h.engine.Config().LevelDivisor))
}

// UpdateSetting handles PUT /api/v1/profile/settings/{key}
func (h *ProfileHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req request.SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.engine.UpdateSetting(r.Context(), key, req.Value); err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.SettingsFromModel(p.Settings))
}

// DailyBonus handles POST /api/v1/profile/daily-bonus
func (h *ProfileHandler) DailyBonus(w http.ResponseWriter, r *http.Request) {
	granted, err := h.engine.ApplyDailyBonus(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.DailyBonus{
		Granted: granted,
		Streak:  p.LoginStreak,
	})
}

// Reset handles POST /api/v1/profile/reset
func (h *ProfileHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.ProfileFromModel(p, h.engine.Config().LevelDivisor))
}
