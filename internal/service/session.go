package service

import (
	"context"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
)

// SessionService lists and revokes server-side sessions. Nothing is cached.
type SessionService struct {
	api domain.SessionAPI
}

func NewSessionService(api domain.SessionAPI) *SessionService {
	return &SessionService{api: api}
}

func (s *SessionService) ListSessions(ctx context.Context, token string) result.Result[[]domain.RemoteSession] {
	return s.api.ListSessions(ctx, token)
}

func (s *SessionService) DeleteSession(ctx context.Context, id int64, token string) result.Result[bool] {
	return s.api.DeleteSession(ctx, id, token)
}
