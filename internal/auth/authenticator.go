package auth

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"

	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/internal/sessions"
	"github.com/editfolio/editfolio-backend/internal/tokens"
	"github.com/editfolio/editfolio-backend/internal/users"
	"github.com/editfolio/editfolio-backend/pkg/logger"
)

// Credentials is what a successful sign-in hands back to the caller.
type Credentials struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Authenticator ties the three sign-in modes (anonymous, pre-provisioned
// token, email/password) to session issuance. Every mode ends the same
// way: a signed session token plus a stored session record.
type Authenticator struct {
	cfg      *config.Config
	users    *users.Service
	sessions *sessions.Service
}

func NewAuthenticator(cfg *config.Config, u *users.Service, s *sessions.Service) *Authenticator {
	return &Authenticator{cfg: cfg, users: u, sessions: s}
}

func (a *Authenticator) issue(ctx context.Context, id Identity) (*Credentials, error) {
	ttl := a.cfg.JWT.SessionTokenTTL
	token, err := tokens.GenerateSessionToken(a.cfg, tokens.SessionClaims{
		UID:       id.UID,
		Email:     id.Email,
		Anonymous: id.Anonymous,
	}, ttl)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.CreateSession(ctx, token, id.UID, id.Email, id.Anonymous, ttl); err != nil {
		return nil, err
	}
	return &Credentials{Token: token, Identity: id}, nil
}

// SignInAnonymously issues a throwaway visitor identity.
func (a *Authenticator) SignInAnonymously(ctx context.Context) (*Credentials, error) {
	return a.issue(ctx, Identity{UID: "anon-" + uuid.NewString(), Anonymous: true})
}

// SignInWithEmail authenticates a credentialed account and issues a session.
func (a *Authenticator) SignInWithEmail(ctx context.Context, email, password string) (*Credentials, error) {
	u, err := a.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.issue(ctx, Identity{UID: u.UID, Email: u.Email})
}

// SignInWithToken honours a pre-provisioned sign-in token. The environment
// may declare one literal token that maps to the permanent admin identity;
// anything else must be a valid signed session token, which is exchanged
// for a fresh session.
func (a *Authenticator) SignInWithToken(ctx context.Context, raw string) (*Credentials, error) {
	if raw == "" {
		return nil, tokens.ErrInvalidToken
	}
	if it := a.cfg.Admin.InitialAuthToken; it != "" &&
		subtle.ConstantTimeCompare([]byte(raw), []byte(it)) == 1 {
		return a.issue(ctx, Identity{UID: a.cfg.Admin.PermanentAdminUID})
	}
	claims, err := tokens.ParseSessionToken(a.cfg, raw)
	if err != nil {
		return nil, err
	}
	return a.issue(ctx, Identity{UID: claims.UID, Email: claims.Email, Anonymous: claims.Anonymous})
}

// SignOut revokes the current session and immediately starts a fresh
// anonymous one, so the caller never ends up sessionless.
func (a *Authenticator) SignOut(ctx context.Context, token string) (*Credentials, error) {
	if token != "" {
		if err := a.sessions.Revoke(ctx, token); err != nil {
			logger.Warnf("failed to revoke session: %v", err)
		}
	}
	return a.SignInAnonymously(ctx)
}

// Resolve maps a bearer token to an identity. An unknown, expired or
// malformed token resolves to nil rather than an error; the gate treats
// nil as unauthenticated.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	if _, err := tokens.ParseSessionToken(a.cfg, token); err != nil {
		return nil, nil
	}
	sess, err := a.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return &Identity{UID: sess.UID, Email: sess.Email, Anonymous: sess.Anonymous}, nil
}
