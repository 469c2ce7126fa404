package auth

import (
	"context"

	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/pkg/logger"
)

// State is the gate's view of a session.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAnonymous       State = "anonymous"
	StateAdmin           State = "admin"
)

// Gate decides whether a session counts as admin. There is exactly one
// allow-list check in the whole service: the session uid equals the
// configured permanent admin uid, or the environment override is set.
// Every mutation path consults this gate rather than re-deriving the
// answer locally.
type Gate struct {
	permanentAdminUID string
	override          bool
}

// NewGate holds no session state of its own; callers project the
// identity of each request through StateFor.
func NewGate(cfg *config.Config) *Gate {
	if cfg.Admin.Override {
		logger.Warnf("admin override is enabled; every signed-in session is treated as admin")
	}
	return &Gate{
		permanentAdminUID: cfg.Admin.PermanentAdminUID,
		override:          cfg.Admin.Override,
	}
}

// StateFor projects an identity onto a gate state. A signed-in but
// non-admin user is a regular visitor, not a separate role.
func (g *Gate) StateFor(id *Identity) State {
	switch {
	case id == nil || id.UID == "":
		return StateUnauthenticated
	case id.Anonymous:
		return StateAnonymous
	case id.UID == g.permanentAdminUID && g.permanentAdminUID != "":
		return StateAdmin
	case g.override:
		return StateAdmin
	default:
		return StateAnonymous
	}
}

// IsAdmin reports whether the identity resolves to StateAdmin.
func (g *Gate) IsAdmin(id *Identity) bool {
	return g.StateFor(id) == StateAdmin
}

// WriteRule builds the store-level write check: reviews accept public
// writes, every other collection requires an admin identity on the
// request context. This backs up the handler-level gate; a request that
// slips past it is still refused here.
func (g *Gate) WriteRule() store.WriteRule {
	return func(ctx context.Context, collection string) error {
		if collection == content.CollectionReviews {
			return nil
		}
		if g.IsAdmin(IdentityFromContext(ctx)) {
			return nil
		}
		return store.ErrPermissionDenied
	}
}
