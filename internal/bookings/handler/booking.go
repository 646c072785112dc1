package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"groundbook/internal/bookings/service"
	"groundbook/pkg/auth"
	apperrors "groundbook/pkg/errors"
	httputil "groundbook/pkg/http"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

type BookingHandler struct {
	service  service.BookingService
	verifier *auth.Verifier
	policy   auth.AuthorizationPolicy
	log      *logger.Logger
}

func NewBookingHandler(service service.BookingService, verifier *auth.Verifier, policy auth.AuthorizationPolicy, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		verifier: verifier,
		policy:   policy,
		log:      log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.Book(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, bookings); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "GetByID", apperrors.Unauthorized("Authentication required"))
		return
	}

	booking, err := h.service.GetByID(r.Context(), identity, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "GetMine", apperrors.Unauthorized("Authentication required"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	bookings, total, err := h.service.GetMine(r.Context(), identity, limit, offset)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetMine", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Cancel", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.service.Cancel(r.Context(), identity, ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", auth.Authenticate(h.verifier, h.Create))
	router.GET("/api/v1/bookings/me", auth.Authenticate(h.verifier, h.GetMine))
	router.GET("/api/v1/bookings/id/:id", auth.Authenticate(h.verifier, h.GetByID))
	router.DELETE("/api/v1/bookings/id/:id", auth.Authenticate(h.verifier, h.Cancel))
	router.GET("/api/v1/admin/bookings", auth.RequireAdmin(h.verifier, h.policy, h.GetAll))
}
