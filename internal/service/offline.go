package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
)

// Messages of the simulated auth path, shown verbatim by front ends.
const (
	MsgEmailTaken         = "Email déjà utilisé"
	MsgInvalidCredentials = "Email ou mot de passe incorrect"
	MsgOfflineLogin       = "Connexion hors ligne réussie"
	MsgTestLogin          = "Connexion test réussie"
	MsgOfflineRegister    = "Inscription hors ligne réussie"
	MsgOfflineRefresh     = "Jeton hors ligne renouvelé"
	MsgSaveFailed         = "Erreur de sauvegarde en base de données"
)

const (
	offlineLoginTokenPrefix    = "offline-login-token-"
	offlineRegisterTokenPrefix = "offline-token-"
)

// Default offline test credential.
const (
	DefaultTestEmail    = "test@edunova.com"
	DefaultTestPassword = "password123"
	DefaultTestToken    = "mock-jwt-token-123456789"
	testUserID          = 1
)

// OfflineOptions configures the simulated auth path.
type OfflineOptions struct {
	TestEmail    string
	TestPassword string
	TestToken    string
	// Now is the clock used for timestamps and generated ids. Defaults to time.Now.
	Now func() time.Time
}

func (o OfflineOptions) withDefaults() OfflineOptions {
	if o.TestEmail == "" {
		o.TestEmail = DefaultTestEmail
	}
	if o.TestPassword == "" {
		o.TestPassword = DefaultTestPassword
	}
	if o.TestToken == "" {
		o.TestToken = DefaultTestToken
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// OfflineAuthenticator simulates the auth endpoints against the local user
// store. Every outcome is deterministic except for generated tokens and ids.
type OfflineAuthenticator struct {
	users  domain.UserRepository
	opts   OfflineOptions
	logger *slog.Logger

	mu     sync.Mutex
	lastID int64
}

// NewOfflineAuthenticator creates an OfflineAuthenticator.
func NewOfflineAuthenticator(users domain.UserRepository, opts OfflineOptions, logger *slog.Logger) *OfflineAuthenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &OfflineAuthenticator{users: users, opts: opts.withDefaults(), logger: logger}
}

// Login signs in a locally known email with any password, or the configured
// test credential. Anything else is a failed payload, not an error.
func (o *OfflineAuthenticator) Login(ctx context.Context, email, password string) result.Result[domain.AuthPayload] {
	existing, err := o.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		token := offlineLoginTokenPrefix + uuid.NewString()
		if err := o.users.LogoutAll(ctx); err != nil {
			return storageError[domain.AuthPayload](err)
		}
		if err := o.users.UpdateAuthToken(ctx, existing.ID, token); err != nil {
			return storageError[domain.AuthPayload](err)
		}
		existing.AuthToken = token
		existing.IsLoggedIn = true
		o.logger.Info("offline login", "email", email)
		return result.Success(domain.AuthPayload{Success: true, Message: MsgOfflineLogin, User: existing, Token: token})

	case !errors.Is(err, domain.ErrNotFound):
		return storageError[domain.AuthPayload](err)
	}

	if email != o.opts.TestEmail || password != o.opts.TestPassword {
		o.logger.Info("offline login rejected", "email", email)
		return result.Success(domain.AuthPayload{Success: false, Message: MsgInvalidCredentials})
	}

	now := o.timestamp()
	user := &domain.User{
		ID:         testUserID,
		FirstName:  "Test",
		LastName:   "User",
		Email:      o.opts.TestEmail,
		Role:       domain.RoleStudent,
		IsVerified: true,
		AuthToken:  o.opts.TestToken,
		IsLoggedIn: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := o.users.LogoutAll(ctx); err != nil {
		return storageError[domain.AuthPayload](err)
	}
	if err := o.users.Upsert(ctx, user); err != nil {
		return storageError[domain.AuthPayload](err)
	}
	o.logger.Info("offline login with test credential", "email", email)
	return result.Success(domain.AuthPayload{Success: true, Message: MsgTestLogin, User: user, Token: user.AuthToken})
}

// Register creates a logged-in local account unless the email is taken.
func (o *OfflineAuthenticator) Register(ctx context.Context, firstName, lastName, email, password string) result.Result[domain.AuthPayload] {
	_, err := o.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		o.logger.Info("offline register rejected, email in use", "email", email)
		return result.Success(domain.AuthPayload{Success: false, Message: MsgEmailTaken})
	case !errors.Is(err, domain.ErrNotFound):
		return storageError[domain.AuthPayload](err)
	}

	now := o.timestamp()
	user := &domain.User{
		ID:         o.nextID(),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Role:       domain.RoleStudent,
		IsVerified: true,
		AuthToken:  offlineRegisterTokenPrefix + uuid.NewString(),
		IsLoggedIn: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := o.users.LogoutAll(ctx); err != nil {
		return storageError[domain.AuthPayload](err)
	}
	if err := o.users.Upsert(ctx, user); err != nil {
		return storageError[domain.AuthPayload](err)
	}

	saved, err := o.users.GetByEmail(ctx, email)
	if err != nil {
		o.logger.Error("registered user missing after insert", "email", email, "error", err)
		return result.Error[domain.AuthPayload](result.KindStorage, MsgSaveFailed)
	}

	o.logger.Info("offline register", "email", email, "id", saved.ID)
	return result.Success(domain.AuthPayload{Success: true, Message: MsgOfflineRegister, User: saved, Token: saved.AuthToken})
}

// Refresh mints a new offline token for the given logged-in user.
func (o *OfflineAuthenticator) Refresh(ctx context.Context, user *domain.User) result.Result[domain.AuthPayload] {
	token := offlineLoginTokenPrefix + uuid.NewString()
	if err := o.users.UpdateAuthToken(ctx, user.ID, token); err != nil {
		return storageError[domain.AuthPayload](err)
	}
	refreshed := *user
	refreshed.AuthToken = token
	refreshed.IsLoggedIn = true
	return result.Success(domain.AuthPayload{Success: true, Message: MsgOfflineRefresh, User: &refreshed, Token: token})
}

func (o *OfflineAuthenticator) timestamp() string {
	return o.opts.Now().UTC().Format(time.RFC3339)
}

// nextID returns a millisecond clock reading, bumped so that ids stay unique
// within the process even when two accounts are created in the same millisecond.
func (o *OfflineAuthenticator) nextID() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.opts.Now().UnixMilli()
	if id <= o.lastID {
		id = o.lastID + 1
	}
	o.lastID = id
	return id
}

func storageError[T any](err error) result.Result[T] {
	return result.Errorf[T](result.KindStorage, "local store error: %v", err)
}
