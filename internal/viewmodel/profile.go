package viewmodel

import (
	"context"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

// ProfileState is the snapshot published by ProfileViewModel.
type ProfileState struct {
	// Profile is the profile last read or updated.
	Profile      *domain.Profile
	Profiles     []domain.Profile
	Loading      bool
	ErrorMessage string
}

// ProfileViewModel binds the ProfileService to a front end.
type ProfileViewModel struct {
	auth     *service.AuthService
	profiles *service.ProfileService
	b        binding[ProfileState]
}

func NewProfileViewModel(auth *service.AuthService, profiles *service.ProfileService) *ProfileViewModel {
	return &ProfileViewModel{auth: auth, profiles: profiles}
}

func (vm *ProfileViewModel) State() ProfileState { return vm.b.snapshot() }

func (vm *ProfileViewModel) Subscribe(fn func(ProfileState)) (unsubscribe func()) {
	return vm.b.subscribe(fn)
}

func (vm *ProfileViewModel) begin(ctx context.Context) (string, bool) {
	token, ok := vm.auth.AuthToken(ctx)
	vm.b.update(func(s *ProfileState) {
		s.ErrorMessage = ""
		s.Loading = ok
		if !ok {
			s.ErrorMessage = MsgMissingToken
		}
	})
	return token, ok
}

func finishProfile[T any](vm *ProfileViewModel, res result.Result[T], onSuccess func(*ProfileState, T)) ProfileState {
	vm.b.update(func(s *ProfileState) {
		s.Loading = false
		switch res.State() {
		case result.StateSuccess:
			onSuccess(s, res.Data())
		case result.StateError:
			s.ErrorMessage = res.Message()
		}
	})
	return vm.State()
}

func setProfile(s *ProfileState, p domain.Profile) { s.Profile = &p }

// GetProfile loads the profile of the logged-in user.
func (vm *ProfileViewModel) GetProfile(ctx context.Context) ProfileState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishProfile(vm, vm.profiles.GetProfile(ctx, token), setProfile)
}

func (vm *ProfileViewModel) UpdateProfile(ctx context.Context, in domain.ProfileInput) ProfileState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishProfile(vm, vm.profiles.UpdateProfile(ctx, in, token), setProfile)
}

// FetchProfiles loads every profile, from the cache unless force is set.
func (vm *ProfileViewModel) FetchProfiles(ctx context.Context, force bool) ProfileState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishProfile(vm, vm.profiles.FetchProfiles(ctx, token, force), func(s *ProfileState, ps []domain.Profile) {
		s.Profiles = ps
	})
}

func (vm *ProfileViewModel) GetProfileByID(ctx context.Context, id int64) ProfileState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishProfile(vm, vm.profiles.GetProfileByID(ctx, id, token), setProfile)
}

func (vm *ProfileViewModel) ClearError() {
	vm.b.update(func(s *ProfileState) { s.ErrorMessage = "" })
}
