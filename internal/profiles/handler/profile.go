package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"groundbook/internal/profiles/service"
	"groundbook/pkg/auth"
	apperrors "groundbook/pkg/errors"
	httputil "groundbook/pkg/http"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

// ProfileResponse echoes the token email alongside the stored contact
// details; email lives in the identity provider, not in the profile store.
type ProfileResponse struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type ProfileHandler struct {
	service  service.ProfileService
	verifier *auth.Verifier
	log      *logger.Logger
}

func NewProfileHandler(service service.ProfileService, verifier *auth.Verifier, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Get", apperrors.Unauthorized("Authentication required"))
		return
	}

	profile, err := h.service.Get(r.Context(), identity)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, ProfileResponse{
		Name:      profile.Name,
		Phone:     profile.Phone,
		Email:     identity.Email,
		UpdatedAt: profile.UpdatedAt,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Put", apperrors.Unauthorized("Authentication required"))
		return
	}

	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Put", "error", writeErr)
		}
		return
	}

	saved, err := h.service.Put(r.Context(), identity, &profile)
	if err != nil {
		h.writeError(w, "Put", err)
		return
	}

	if err := httputil.WriteSuccess(w, ProfileResponse{
		Name:      saved.Name,
		Phone:     saved.Phone,
		Email:     identity.Email,
		UpdatedAt: saved.UpdatedAt,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Put", "error", err)
	}
}

func (h *ProfileHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *ProfileHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/profile", auth.Authenticate(h.verifier, h.Get))
	router.PUT("/api/v1/profile", auth.Authenticate(h.verifier, h.Put))
}
