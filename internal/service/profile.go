package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
)

// ProfileService serves profiles from the local cache, refreshing it from the API.
type ProfileService struct {
	profiles domain.ProfileRepository
	api      domain.ProfileAPI
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(profiles domain.ProfileRepository, api domain.ProfileAPI, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{profiles: profiles, api: api, logger: logger}
}

// FetchProfiles returns every profile, cache first unless force is set.
func (s *ProfileService) FetchProfiles(ctx context.Context, token string, force bool) result.Result[[]domain.Profile] {
	return cachedList(ctx, s.logger, "profiles", force,
		s.profiles.List,
		func() result.Result[[]domain.Profile] { return s.api.ListProfiles(ctx, token) },
		func(ctx context.Context, ps []domain.Profile) error {
			return s.profiles.ReplaceAll(ctx, markSynced(ps, func(p *domain.Profile) { p.Synced = true }))
		},
		s.markStale,
	)
}

// GetProfileByID returns a cached profile, or fetches and caches it.
func (s *ProfileService) GetProfileByID(ctx context.Context, id int64, token string) result.Result[domain.Profile] {
	cached, err := s.profiles.GetByID(ctx, id)
	if err == nil {
		return result.Success(*cached)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("read profile cache", "id", id, "error", err)
	}

	res := s.api.GetProfileByID(ctx, id, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

// GetProfile fetches the caller's own profile and caches it.
func (s *ProfileService) GetProfile(ctx context.Context, token string) result.Result[domain.Profile] {
	res := s.api.GetProfile(ctx, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

// UpdateProfile updates the caller's profile remotely and caches the result.
func (s *ProfileService) UpdateProfile(ctx context.Context, in domain.ProfileInput, token string) result.Result[domain.Profile] {
	if in.Age != nil && *in.Age < 0 {
		return result.Error[domain.Profile](result.KindValidation, "age must not be negative")
	}
	res := s.api.UpdateProfile(ctx, in, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

func (s *ProfileService) CachedProfiles(ctx context.Context) result.Result[[]domain.Profile] {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return storageError[[]domain.Profile](err)
	}
	return result.Success(profiles)
}

func (s *ProfileService) CachedProfilesByRole(ctx context.Context, role string) result.Result[[]domain.Profile] {
	profiles, err := s.profiles.ListByRole(ctx, role)
	if err != nil {
		return storageError[[]domain.Profile](err)
	}
	return result.Success(profiles)
}

// ClearCache drops every cached profile.
func (s *ProfileService) ClearCache(ctx context.Context) error {
	if err := s.profiles.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("profile cache cleared")
	return nil
}

func (s *ProfileService) markStale(ctx context.Context, profiles []domain.Profile) []domain.Profile {
	for i := range profiles {
		if !profiles[i].Synced {
			continue
		}
		profiles[i].Synced = false
		if err := s.profiles.SetSynced(ctx, profiles[i].ID, false); err != nil {
			s.logger.Error("flag stale profile", "id", profiles[i].ID, "error", err)
		}
	}
	return profiles
}

func (s *ProfileService) store(ctx context.Context, p domain.Profile) result.Result[domain.Profile] {
	p.Synced = true
	if err := s.profiles.Upsert(ctx, &p); err != nil {
		return storageError[domain.Profile](err)
	}
	return result.Success(p)
}
