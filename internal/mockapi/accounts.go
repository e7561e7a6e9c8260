package mockapi

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
)

// Account is a seeded or registered backend user.
type Account struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

type account struct {
	user         wire.User
	passwordHash []byte
}

// accounts holds users and their sessions, and signs the bearer tokens.
// Every token carries its session id, so revoking the session revokes the token.
type accounts struct {
	mu         sync.Mutex
	users      map[int64]*account
	sessions   map[int64]wire.Session
	nextUserID int64
	nextSessID int64

	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
	now        func() time.Time
}

func newAccounts(jwtSecret string, bcryptCost int, tokenTTL time.Duration, now func() time.Time) *accounts {
	return &accounts{
		users:      make(map[int64]*account),
		sessions:   make(map[int64]wire.Session),
		nextUserID: 1,
		nextSessID: 1,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
		now:        now,
	}
}

// register creates a new user after validating inputs.
func (a *accounts) register(in Account) (wire.User, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return wire.User{}, fmt.Errorf("%w: first name, last name, email and password are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return wire.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.bcryptCost)
	if err != nil {
		return wire.User{}, fmt.Errorf("hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.findByEmailLocked(in.Email) != nil {
		return wire.User{}, domain.ErrDuplicateEmail
	}

	stamp := a.now().UTC().Format(time.RFC3339)
	acc := &account{
		user: wire.User{
			ID:         a.nextUserID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			Role:       string(role),
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  stamp,
			UpdatedAt:  stamp,
		},
		passwordHash: hash,
	}
	a.users[acc.user.ID] = acc
	a.nextUserID++
	return acc.user, nil
}

// login verifies credentials and opens a session.
func (a *accounts) login(email, password string) (wire.User, string, error) {
	a.mu.Lock()
	acc := a.findByEmailLocked(email)
	a.mu.Unlock()

	if acc == nil {
		return wire.User{}, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return wire.User{}, "", domain.ErrUnauthorized
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	acc.user.LastLogin = a.now().UTC().Format(time.RFC3339)
	token, err := a.openSessionLocked(acc.user.ID)
	if err != nil {
		return wire.User{}, "", err
	}
	return acc.user, token, nil
}

// issue opens a session for an existing user, as register and refresh do.
func (a *accounts) issue(userID int64) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.users[userID]; !ok {
		return "", domain.ErrNotFound
	}
	return a.openSessionLocked(userID)
}

func (a *accounts) openSessionLocked(userID int64) (string, error) {
	now := a.now()
	exp := now.Add(a.tokenTTL)
	sessID := a.nextSessID

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"sid": sessID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}

	a.sessions[sessID] = wire.Session{ID: sessID, UserID: userID, Token: token, ExpiresAt: exp.UTC().Format(time.RFC3339)}
	a.nextSessID++
	return token, nil
}

// validate parses a bearer token and returns the user and session it belongs to.
func (a *accounts) validate(tokenString string) (wire.User, int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return wire.User{}, 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return wire.User{}, 0, domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return wire.User{}, 0, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return wire.User{}, 0, domain.ErrUnauthorized
	}
	sid, ok := claims["sid"].(float64)
	if !ok {
		return wire.User{}, 0, domain.ErrUnauthorized
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	sess, ok := a.sessions[int64(sid)]
	if !ok || sess.Token != tokenString {
		return wire.User{}, 0, domain.ErrUnauthorized
	}
	acc, ok := a.users[userID]
	if !ok {
		return wire.User{}, 0, domain.ErrUnauthorized
	}
	return acc.user, sess.ID, nil
}

func (a *accounts) revoke(sessionID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sessions[sessionID]
	delete(a.sessions, sessionID)
	return ok
}

func (a *accounts) session(id int64) (wire.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[id]
	return s, ok
}

// listSessions returns every session, or only those of userID when it is non-zero.
func (a *accounts) listSessions(userID int64) []wire.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]wire.Session, 0, len(a.sessions))
	for _, s := range a.sessions {
		if userID == 0 || s.UserID == userID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(x, y wire.Session) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

func (a *accounts) get(id int64) (wire.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.users[id]
	if !ok {
		return wire.User{}, domain.ErrNotFound
	}
	return acc.user, nil
}

func (a *accounts) list() []wire.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]wire.User, 0, len(a.users))
	for _, acc := range a.users {
		out = append(out, acc.user)
	}
	slices.SortFunc(out, func(x, y wire.User) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

// update applies the editable fields of patch to user id.
func (a *accounts) update(id int64, patch wire.User) (wire.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.users[id]
	if !ok {
		return wire.User{}, domain.ErrNotFound
	}
	if patch.Email != "" && patch.Email != acc.user.Email {
		if other := a.findByEmailLocked(patch.Email); other != nil {
			return wire.User{}, domain.ErrDuplicateEmail
		}
		acc.user.Email = patch.Email
	}
	if patch.FirstName != "" {
		acc.user.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		acc.user.LastName = patch.LastName
	}
	if patch.Role != "" {
		acc.user.Role = patch.Role
	}
	acc.user.IsVerified = patch.IsVerified
	acc.user.UpdatedAt = a.now().UTC().Format(time.RFC3339)
	return acc.user, nil
}

// remove deletes a user and every session it holds.
func (a *accounts) remove(id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(a.users, id)
	for sid, s := range a.sessions {
		if s.UserID == id {
			delete(a.sessions, sid)
		}
	}
	return nil
}

func (a *accounts) findByEmailLocked(email string) *account {
	for _, acc := range a.users {
		if acc.user.Email == email {
			return acc
		}
	}
	return nil
}
