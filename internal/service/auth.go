// Package service holds the client-side business logic: the auth session
// reconciler and the cache-first resource services.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/observe"
	"github.com/msomdec/edunova/internal/result"
)

// MsgNoToken is returned when an operation needs a session token and none exists.
const MsgNoToken = "no token available"

const verifyRecordID = 999

// AuthServiceOptions configures an AuthService.
type AuthServiceOptions struct {
	Users domain.UserRepository
	API   domain.AuthAPI
	// OfflineMode skips the network entirely and simulates every auth call.
	OfflineMode bool
	// MockFallback retries a failed remote login or register with the simulation.
	MockFallback bool
	Offline      OfflineOptions
	Logger       *slog.Logger
}

// AuthService owns the local session. It is the only writer of the token and
// logged-in columns of the user store, and keeps at most one user logged in.
type AuthService struct {
	users        domain.UserRepository
	api          domain.AuthAPI
	offline      *OfflineAuthenticator
	offlineMode  bool
	mockFallback bool
	logger       *slog.Logger

	refreshGroup singleflight.Group
	sessions     observe.Feed[*domain.User]
}

// NewAuthService creates an AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:        opts.Users,
		api:          opts.API,
		offline:      NewOfflineAuthenticator(opts.Users, opts.Offline, logger),
		offlineMode:  opts.OfflineMode,
		mockFallback: opts.MockFallback,
		logger:       logger,
	}
}

// Login authenticates against the API, or the simulation in offline mode.
func (s *AuthService) Login(ctx context.Context, email, password string) result.Result[domain.AuthPayload] {
	res := s.authenticate(ctx, "login",
		func() result.Result[domain.AuthPayload] { return s.api.Login(ctx, email, password) },
		func() result.Result[domain.AuthPayload] { return s.offline.Login(ctx, email, password) },
	)
	s.notify(ctx)
	return res
}

// Register creates an account through the API, or the simulation in offline mode.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) result.Result[domain.AuthPayload] {
	res := s.authenticate(ctx, "register",
		func() result.Result[domain.AuthPayload] {
			return s.api.Register(ctx, firstName, lastName, email, password)
		},
		func() result.Result[domain.AuthPayload] {
			return s.offline.Register(ctx, firstName, lastName, email, password)
		},
	)
	s.notify(ctx)
	return res
}

func (s *AuthService) authenticate(ctx context.Context, op string, remote, simulate func() result.Result[domain.AuthPayload]) result.Result[domain.AuthPayload] {
	if s.offlineMode || s.api == nil {
		return simulate()
	}

	res := remote()
	switch res.State() {
	case result.StateSuccess:
		payload := res.Data()
		if !payload.Authenticated() {
			s.logger.Info(op+" rejected by server", "message", payload.Message)
			return res
		}
		if err := s.storeSession(ctx, payload); err != nil {
			return storageError[domain.AuthPayload](err)
		}
		return res

	case result.StateError:
		s.logger.Warn(op+" failed", "kind", res.Kind(), "error", res.Message())
		if s.mockFallback {
			s.logger.Info("falling back to offline " + op)
			return simulate()
		}
	}
	return res
}

// storeSession logs everyone out and then writes the authenticated user. The
// two writes are sequential, not transactional.
func (s *AuthService) storeSession(ctx context.Context, payload domain.AuthPayload) error {
	user := *payload.User
	user.AuthToken = payload.Token
	user.IsLoggedIn = true

	if err := s.users.LogoutAll(ctx); err != nil {
		return err
	}
	return s.users.Upsert(ctx, &user)
}

// Logout ends the session. The remote call is best effort; the local session
// is always cleared.
func (s *AuthService) Logout(ctx context.Context) result.Result[bool] {
	if token, ok := s.AuthToken(ctx); ok && !s.offlineMode && s.api != nil {
		if res := s.api.Logout(ctx, token); res.IsError() {
			s.logger.Warn("remote logout failed", "error", res.Message())
		}
	}

	if err := s.users.LogoutAll(ctx); err != nil {
		s.logger.Error("local logout failed", "error", err)
		return storageError[bool](err)
	}
	s.notify(ctx)
	return result.Success(true)
}

// LoggedInUser returns the current session user, or nil.
func (s *AuthService) LoggedInUser(ctx context.Context) *domain.User {
	user, err := s.users.GetLoggedIn(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("read logged-in user", "error", err)
		}
		return nil
	}
	return user
}

func (s *AuthService) IsLoggedIn(ctx context.Context) bool {
	return s.LoggedInUser(ctx) != nil
}

// AuthToken returns the token of the current session, if any.
func (s *AuthService) AuthToken(ctx context.Context) (string, bool) {
	user := s.LoggedInUser(ctx)
	if user == nil || user.AuthToken == "" {
		return "", false
	}
	return user.AuthToken, true
}

// RefreshToken exchanges the current token for a new one. Only the token
// column changes on success; a remote failure ends the session. Concurrent
// callers share one refresh.
func (s *AuthService) RefreshToken(ctx context.Context) result.Result[domain.AuthPayload] {
	user := s.LoggedInUser(ctx)
	if user == nil || user.AuthToken == "" {
		return result.Error[domain.AuthPayload](result.KindNotFound, MsgNoToken)
	}

	v, _, _ := s.refreshGroup.Do(strconv.FormatInt(user.ID, 10), func() (any, error) {
		return s.refresh(ctx, user), nil
	})
	return v.(result.Result[domain.AuthPayload])
}

func (s *AuthService) refresh(ctx context.Context, user *domain.User) result.Result[domain.AuthPayload] {
	if s.offlineMode || s.api == nil {
		res := s.offline.Refresh(ctx, user)
		s.notify(ctx)
		return res
	}

	res := s.api.RefreshToken(ctx, user.AuthToken)
	switch res.State() {
	case result.StateSuccess:
		if p := res.Data(); p.Success && p.Token != "" {
			if err := s.users.UpdateAuthToken(ctx, user.ID, p.Token); err != nil {
				return storageError[domain.AuthPayload](err)
			}
			s.notify(ctx)
		}
	case result.StateError:
		s.logger.Warn("token refresh failed, ending session", "error", res.Message())
		s.Logout(ctx)
	}
	return res
}

// Subscribe registers fn to receive the logged-in user (or nil) after every
// operation that may change the session.
func (s *AuthService) Subscribe(fn func(*domain.User)) (unsubscribe func()) {
	return s.sessions.Subscribe(fn)
}

func (s *AuthService) notify(ctx context.Context) {
	if s.sessions.Len() == 0 {
		return
	}
	s.sessions.Publish(s.LoggedInUser(ctx))
}

// ClearSessions logs every local user out without deleting any account.
func (s *AuthService) ClearSessions(ctx context.Context) error {
	if err := s.users.LogoutAll(ctx); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// ForgetLocalUsers deletes every stored account, ending any session.
func (s *AuthService) ForgetLocalUsers(ctx context.Context) error {
	if err := s.users.DeleteAll(ctx); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// ListLocalUsers returns every stored user. Store failures yield an empty list.
func (s *AuthService) ListLocalUsers(ctx context.Context) []domain.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("list local users", "error", err)
		return nil
	}
	return users
}

// VerifyStore round-trips a throwaway record through the user store.
func (s *AuthService) VerifyStore(ctx context.Context) result.Result[bool] {
	now := time.Now().UTC().Format(time.RFC3339)
	rec := &domain.User{
		ID:         verifyRecordID,
		FirstName:  "Store",
		LastName:   "Check",
		Email:      "store-check-" + strconv.FormatInt(time.Now().UnixNano(), 10) + "@edunova.local",
		Role:       domain.RoleStudent,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.users.Upsert(ctx, rec); err != nil {
		return storageError[bool](err)
	}
	got, err := s.users.GetByID(ctx, verifyRecordID)
	if err != nil {
		return storageError[bool](err)
	}
	if err := s.users.Delete(ctx, verifyRecordID); err != nil {
		return storageError[bool](err)
	}
	if got.Email != rec.Email {
		return result.Error[bool](result.KindStorage, "local store returned a different record")
	}
	return result.Success(true)
}
