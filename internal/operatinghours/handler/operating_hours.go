package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"groundbook/internal/operatinghours/service"
	"groundbook/pkg/auth"
	apperrors "groundbook/pkg/errors"
	httputil "groundbook/pkg/http"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

type OperatingHoursHandler struct {
	service  service.OperatingHoursService
	verifier *auth.Verifier
	policy   auth.AuthorizationPolicy
	log      *logger.Logger
}

func NewOperatingHoursHandler(service service.OperatingHoursService, verifier *auth.Verifier, policy auth.AuthorizationPolicy, log *logger.Logger) *OperatingHoursHandler {
	return &OperatingHoursHandler{
		service:  service,
		verifier: verifier,
		policy:   policy,
		log:      log,
	}
}

func (h *OperatingHoursHandler) GetByGround(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rules, err := h.service.GetByGround(r.Context(), ps.ByName("groundId"))
	if err != nil {
		h.writeError(w, "GetByGround", err)
		return
	}

	if err := httputil.WriteSuccess(w, rules); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByGround", "error", err)
	}
}

func (h *OperatingHoursHandler) PutDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dayOfWeek, err := strconv.Atoi(ps.ByName("dayOfWeek"))
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.writeError(w, "PutDay", apperrors.InvalidInput(
			fmt.Sprintf("day_of_week must be 0-6, got: %s", ps.ByName("dayOfWeek"))))
		return
	}

	var rule model.OperatingHoursRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "PutDay", "error", writeErr)
		}
		return
	}
	rule.GroundID = ps.ByName("groundId")
	rule.DayOfWeek = dayOfWeek

	if err := h.service.Upsert(r.Context(), &rule); err != nil {
		h.writeError(w, "PutDay", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OperatingHoursHandler) PutBatch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var rules []*model.OperatingHoursRule
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "PutBatch", "error", writeErr)
		}
		return
	}

	if err := h.service.UpsertBatch(r.Context(), ps.ByName("groundId"), rules); err != nil {
		h.writeError(w, "PutBatch", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OperatingHoursHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *OperatingHoursHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/operating-hours/ground/:groundId", auth.Authenticate(h.verifier, h.GetByGround))
	router.PUT("/api/v1/operating-hours/ground/:groundId/day/:dayOfWeek", auth.RequireAdmin(h.verifier, h.policy, h.PutDay))
	router.PUT("/api/v1/operating-hours/ground/:groundId/batch", auth.RequireAdmin(h.verifier, h.policy, h.PutBatch))
}
