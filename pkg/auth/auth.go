package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "groundbook/pkg/errors"
	httputil "groundbook/pkg/http"
	"groundbook/pkg/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

type contextKey string

const identityKey contextKey = "identity"

// Claims mirrors the token shape issued by the identity provider. Subject
// carries the opaque user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens and extracts the caller identity. The
// booking core never inspects credentials beyond this point.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Identity{}, apperrors.Unauthorized("Invalid or expired authentication token")
	}
	if claims.Subject == "" {
		return model.Identity{}, apperrors.Unauthorized("Token is missing a subject")
	}

	return model.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		Admin:  claims.Admin,
	}, nil
}

// Authenticate wraps a route with bearer-token verification and stores the
// resulting identity in the request context.
func Authenticate(v *Verifier, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication token missing"))
			return
		}

		identity, err := v.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			_ = httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin additionally gates the route on the authorization policy.
func RequireAdmin(v *Verifier, policy AuthorizationPolicy, next httprouter.Handle) httprouter.Handle {
	return Authenticate(v, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || !policy.IsAdmin(r.Context(), identity) {
			_ = httputil.WriteError(w, apperrors.Forbidden("Admin privileges required"))
			return
		}
		next(w, r, ps)
	})
}

func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity, for tests
// and internal callers.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
