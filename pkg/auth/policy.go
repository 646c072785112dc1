package auth

import (
	"context"
	"strings"

	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

// AuthorizationPolicy is the single narrow interface the rest of the
// system uses to answer "is this caller an admin".
type AuthorizationPolicy interface {
	IsAdmin(ctx context.Context, identity model.Identity) bool
}

// AdminRoster looks up persisted admin grants; backed by the admin_users
// collection.
type AdminRoster interface {
	IsAdminEmail(ctx context.Context, email string) (bool, error)
}

// compositePolicy grants admin when any source agrees: the token's role
// claim, the configured email allowlist, or the persisted roster.
type compositePolicy struct {
	allowlist map[string]struct{}
	roster    AdminRoster
	log       *logger.Logger
}

func NewCompositePolicy(allowlistEmails []string, roster AdminRoster, log *logger.Logger) AuthorizationPolicy {
	allowlist := make(map[string]struct{}, len(allowlistEmails))
	for _, email := range allowlistEmails {
		if normalized := normalizeEmail(email); normalized != "" {
			allowlist[normalized] = struct{}{}
		}
	}
	return &compositePolicy{
		allowlist: allowlist,
		roster:    roster,
		log:       log,
	}
}

func (p *compositePolicy) IsAdmin(ctx context.Context, identity model.Identity) bool {
	if identity.Admin || identity.Role == "admin" {
		return true
	}

	email := normalizeEmail(identity.Email)
	if email == "" {
		return false
	}

	if _, ok := p.allowlist[email]; ok {
		return true
	}

	if p.roster != nil {
		granted, err := p.roster.IsAdminEmail(ctx, email)
		if err != nil {
			p.log.Error("Failed to check admin roster", "email", email, "error", err)
			return false
		}
		return granted
	}

	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
