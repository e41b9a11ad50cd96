// Package handlers provides the HTTP handlers of the planner API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/pkg/errors"
)

// PlannerHandlers wires the planner use cases to HTTP
type PlannerHandlers struct {
	service inbound.PlannerService
	logger  *zap.Logger
}

// NewPlannerHandlers creates the planner API handlers
func NewPlannerHandlers(service inbound.PlannerService, logger *zap.Logger) *PlannerHandlers {
	return &PlannerHandlers{service: service, logger: logger.Named("planner-api")}
}

type generateRequest struct {
	Profile string `json:"profile"`
	Seed    int64  `json:"seed,omitempty"`
}

type optimizeRequest struct {
	Profile      string  `json:"profile"`
	CalMaxDaily  float64 `json:"cal_max_daily,omitempty"`
	ProtMinDaily float64 `json:"prot_min_daily,omitempty"`
}

// GenerateMenu handles POST /api/v1/menus
func (h *PlannerHandlers) GenerateMenu(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	profile, err := recipe.ParseProfile(req.Profile)
	if err != nil {
		h.writeError(w, errors.NewUnknownProfileError(req.Profile))
		return
	}

	dto, svcErr := h.service.GenerateMenu(r.Context(), inbound.GenerateMenuCommand{
		Profile: profile,
		Seed:    req.Seed,
	})
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// OptimizeMenu handles POST /api/v1/menus/optimize
func (h *PlannerHandlers) OptimizeMenu(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	profile, err := recipe.ParseProfile(req.Profile)
	if err != nil {
		h.writeError(w, errors.NewUnknownProfileError(req.Profile))
		return
	}

	dto, svcErr := h.service.OptimizeMenu(r.Context(), inbound.OptimizeMenuCommand{
		Profile:      profile,
		CalMaxDaily:  req.CalMaxDaily,
		ProtMinDaily: req.ProtMinDaily,
	})
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// GetMenu handles GET /api/v1/menus/{menuID}
func (h *PlannerHandlers) GetMenu(w http.ResponseWriter, r *http.Request) {
	menuID, err := h.menuID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	dto, svcErr := h.service.GetMenu(r.Context(), menuID)
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// SubstituteSlot handles POST /api/v1/menus/{menuID}/slots/{slot}/substitute
func (h *PlannerHandlers) SubstituteSlot(w http.ResponseWriter, r *http.Request) {
	menuID, err := h.menuID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	slot, err := h.slotIndex(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, svcErr := h.service.SubstituteSlot(r.Context(), inbound.SubstituteSlotCommand{
		MenuID: menuID,
		Slot:   slot,
	})
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// SlotDetails handles GET /api/v1/menus/{menuID}/slots/{slot}
func (h *PlannerHandlers) SlotDetails(w http.ResponseWriter, r *http.Request) {
	menuID, err := h.menuID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	slot, err := h.slotIndex(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dto, svcErr := h.service.SlotDetails(r.Context(), menuID, slot)
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// ShoppingList handles GET /api/v1/menus/{menuID}/shopping-list
func (h *PlannerHandlers) ShoppingList(w http.ResponseWriter, r *http.Request) {
	menuID, err := h.menuID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	dto, svcErr := h.service.ShoppingList(r.Context(), menuID)
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// Compare handles POST /api/v1/menus/compare
func (h *PlannerHandlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	profile, err := recipe.ParseProfile(req.Profile)
	if err != nil {
		h.writeError(w, errors.NewUnknownProfileError(req.Profile))
		return
	}

	dto, svcErr := h.service.CompareSelectors(r.Context(), inbound.OptimizeMenuCommand{
		Profile:      profile,
		CalMaxDaily:  req.CalMaxDaily,
		ProtMinDaily: req.ProtMinDaily,
	})
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

func (h *PlannerHandlers) menuID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "menuID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("invalid menu ID")
	}
	return id, nil
}

func (h *PlannerHandlers) slotIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "slot")
	slot, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid slot index")
	}
	return slot, nil
}

func (h *PlannerHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *PlannerHandlers) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.writeJSON(w, appErr.StatusCode(), map[string]interface{}{"error": appErr})
		return
	}
	h.logger.Error("unhandled error", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]string{"code": "INTERNAL_ERROR", "message": "An unexpected error occurred"},
	})
}
