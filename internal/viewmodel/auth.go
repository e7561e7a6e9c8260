package viewmodel

import (
	"context"
	"strings"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

// AuthState is the snapshot published by AuthViewModel.
type AuthState struct {
	// User is the logged-in user, kept current through the session feed.
	User *domain.User
	// Login and Register hold the payload of the last completed attempt. A
	// payload with Success=false is a rejection, not an error.
	Login        *domain.AuthPayload
	Register     *domain.AuthPayload
	Loading      bool
	ErrorMessage string
}

// AuthViewModel binds the AuthService to a front end.
type AuthViewModel struct {
	auth        *service.AuthService
	b           binding[AuthState]
	unsubscribe func()
}

// NewAuthViewModel loads the current session and follows its changes until
// Close is called.
func NewAuthViewModel(ctx context.Context, auth *service.AuthService) *AuthViewModel {
	vm := &AuthViewModel{auth: auth}
	vm.b.state.User = auth.LoggedInUser(ctx)
	vm.unsubscribe = auth.Subscribe(func(u *domain.User) {
		vm.b.update(func(s *AuthState) { s.User = u })
	})
	return vm
}

// Close stops following the session feed.
func (vm *AuthViewModel) Close() {
	vm.unsubscribe()
}

func (vm *AuthViewModel) State() AuthState { return vm.b.snapshot() }

// Subscribe registers fn to receive every new state.
func (vm *AuthViewModel) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	return vm.b.subscribe(fn)
}

func (vm *AuthViewModel) begin() {
	vm.b.update(func(s *AuthState) {
		s.Loading = true
		s.ErrorMessage = ""
	})
}

// Login authenticates with the trimmed email.
func (vm *AuthViewModel) Login(ctx context.Context, email, password string) AuthState {
	vm.begin()
	res := vm.auth.Login(ctx, strings.TrimSpace(email), password)
	vm.b.update(func(s *AuthState) {
		s.Loading = false
		s.Login = vm.settle(s, res)
	})
	return vm.State()
}

// Register creates an account with trimmed names and email.
func (vm *AuthViewModel) Register(ctx context.Context, firstName, lastName, email, password string) AuthState {
	vm.begin()
	res := vm.auth.Register(ctx,
		strings.TrimSpace(firstName),
		strings.TrimSpace(lastName),
		strings.TrimSpace(email),
		password)
	vm.b.update(func(s *AuthState) {
		s.Loading = false
		s.Register = vm.settle(s, res)
	})
	return vm.State()
}

func (vm *AuthViewModel) settle(s *AuthState, res result.Result[domain.AuthPayload]) *domain.AuthPayload {
	switch res.State() {
	case result.StateSuccess:
		p := res.Data()
		return &p
	case result.StateError:
		s.ErrorMessage = res.Message()
	}
	return nil
}

// Logout ends the session and resets the attempt state.
func (vm *AuthViewModel) Logout(ctx context.Context) AuthState {
	vm.b.update(func(s *AuthState) { s.Loading = true })
	res := vm.auth.Logout(ctx)
	vm.b.update(func(s *AuthState) {
		s.Loading = false
		if res.IsError() {
			s.ErrorMessage = res.Message()
			return
		}
		clearAttempts(s)
	})
	return vm.State()
}

// CheckAuthStatus reports whether a session exists, resetting the attempt
// state when it does not.
func (vm *AuthViewModel) CheckAuthStatus(ctx context.Context) bool {
	if vm.auth.IsLoggedIn(ctx) {
		return true
	}
	vm.b.update(clearAttempts)
	return false
}

// RefreshToken renews the session token. A failed refresh logs out and
// leaves the failure message in the state.
func (vm *AuthViewModel) RefreshToken(ctx context.Context) AuthState {
	res := vm.auth.RefreshToken(ctx)
	if !res.IsError() {
		return vm.State()
	}
	vm.Logout(ctx)
	vm.b.update(func(s *AuthState) { s.ErrorMessage = res.Message() })
	return vm.State()
}

func (vm *AuthViewModel) ClearError() {
	vm.b.update(func(s *AuthState) { s.ErrorMessage = "" })
}

func (vm *AuthViewModel) ClearAllStates() {
	vm.b.update(clearAttempts)
}

// ClearAllSessions logs every local account out.
func (vm *AuthViewModel) ClearAllSessions(ctx context.Context) error {
	err := vm.auth.ClearSessions(ctx)
	vm.b.update(clearAttempts)
	return err
}

func clearAttempts(s *AuthState) {
	s.Login = nil
	s.Register = nil
	s.ErrorMessage = ""
}
