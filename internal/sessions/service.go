package sessions

import (
	"context"
	"time"
)

// Service wraps repository operations with session lifecycle logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// CreateSession persists a session for the given signed token.
func (s *Service) CreateSession(ctx context.Context, token, uid, email string, anonymous bool, ttl time.Duration) error {
	sess := &Session{
		Token:     token,
		UID:       uid,
		Email:     email,
		Anonymous: anonymous,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	return s.repo.Create(ctx, sess)
}

// Validate returns the session if the token is known and not expired, nil
// otherwise. Expired sessions are cleaned up on sight.
func (s *Service) Validate(ctx context.Context, token string) (*Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}
	return sess, nil
}

// Revoke removes a session; the token stops resolving immediately.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}
