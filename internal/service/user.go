package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
)

// UserService administers remote accounts. Fetched users are cached with
// their session columns left alone.
type UserService struct {
	users  domain.UserRepository
	api    domain.UserAPI
	logger *slog.Logger
}

func NewUserService(users domain.UserRepository, api domain.UserAPI, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: users, api: api, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, token string) result.Result[[]domain.User] {
	return s.api.ListUsers(ctx, token)
}

func (s *UserService) GetUser(ctx context.Context, id int64, token string) result.Result[domain.User] {
	return s.cacheDetails(ctx, s.api.GetUser(ctx, id, token))
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, user domain.User, token string) result.Result[domain.User] {
	return s.cacheDetails(ctx, s.api.UpdateUser(ctx, id, user, token))
}

// DeleteUser deletes an account remotely and drops its local record, unless
// that record holds the current session.
func (s *UserService) DeleteUser(ctx context.Context, id int64, token string) result.Result[bool] {
	res := s.api.DeleteUser(ctx, id, token)
	if !res.IsSuccess() {
		return res
	}

	current, err := s.users.GetLoggedIn(ctx)
	if err == nil && current.ID == id {
		s.logger.Warn("deleted account holds the local session, keeping record", "id", id)
		return res
	}

	if err := s.users.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return storageError[bool](err)
	}
	return res
}

func (s *UserService) cacheDetails(ctx context.Context, res result.Result[domain.User]) result.Result[domain.User] {
	if !res.IsSuccess() {
		return res
	}
	user := res.Data()
	if err := s.users.UpsertDetails(ctx, &user); err != nil {
		// The remote answer stands; the cache is best effort here.
		s.logger.Warn("cache user details", "id", user.ID, "error", err)
	}
	return res
}
