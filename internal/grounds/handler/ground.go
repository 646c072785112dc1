package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"groundbook/internal/grounds/service"
	"groundbook/pkg/auth"
	httputil "groundbook/pkg/http"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

type GroundHandler struct {
	service  service.GroundService
	verifier *auth.Verifier
	policy   auth.AuthorizationPolicy
	log      *logger.Logger
}

func NewGroundHandler(service service.GroundService, verifier *auth.Verifier, policy auth.AuthorizationPolicy, log *logger.Logger) *GroundHandler {
	return &GroundHandler{
		service:  service,
		verifier: verifier,
		policy:   policy,
		log:      log,
	}
}

func (h *GroundHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ground model.Ground
	if err := json.NewDecoder(r.Body).Decode(&ground); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &ground); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, ground); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *GroundHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ground, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ground); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *GroundHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	grounds, total, err := h.service.GetAll(r.Context(), r.URL.Query().Get("city"), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, grounds, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *GroundHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.GroundUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *GroundHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/grounds", h.GetAll)
	router.GET("/api/v1/grounds/id/:id", h.GetByID)
	router.POST("/api/v1/grounds", auth.RequireAdmin(h.verifier, h.policy, h.Create))
	router.PATCH("/api/v1/grounds/id/:id", auth.RequireAdmin(h.verifier, h.policy, h.Update))
}
