package handler

import (
	"encoding/json"
	"net/http"

	"github.com/megahubnet/portal/internal/api/request"
	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/services/progression"
)

// ShopHandler handles catalog and purchase endpoints
type ShopHandler struct {
	engine  *progression.Engine
	catalog *catalog.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(engine *progression.Engine, cat *catalog.Service) *ShopHandler {
	return &ShopHandler{
		engine:  engine,
		catalog: cat,
	}
}

// ListItems handles GET /api/v1/shop/items
func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	p := h.engine.Profile()
	items := h.catalog.All()
	out := make([]response.ShopItem, 0, len(items))
	for _, item := range items {
		out = append(out, response.ShopItemFromModel(item, p))
	}
	response.JSON(w, http.StatusOK, out)
}

// Purchase handles POST /api/v1/shop/purchase
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("item_id is required"))
		return
	}

	if err := h.engine.PurchaseItem(r.Context(), model.ItemID(req.ItemID)); err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.ProfileFromModel(p, h.engine.Config().LevelDivisor))
}

// Equip handles POST /api/v1/shop/equip
func (h *ShopHandler) Equip(w http.ResponseWriter, r *http.Request) {
	var req request.EquipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("item_id is required"))
		return
	}

	if err := h.engine.ToggleEquip(r.Context(), model.ItemID(req.ItemID)); err != nil {
		WriteError(w, err)
		return
	}

	p := h.engine.Profile()
	response.JSON(w, http.StatusOK, response.ProfileFromModel(p, h.engine.Config().LevelDivisor))
}
