// Package app wires the local store, the API client and the services into one
// container owned by the caller.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/msomdec/edunova/internal/config"
	"github.com/msomdec/edunova/internal/remote"
	"github.com/msomdec/edunova/internal/repository/sqlite"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

// App holds every long-lived component of the client.
type App struct {
	Config   config.AppConfig
	DB       *sqlite.DB
	API      *remote.Client
	Auth     *service.AuthService
	Courses  *service.CourseService
	Profiles *service.ProfileService
	Users    *service.UserService
	Sessions *service.SessionService

	logger *slog.Logger
}

// New opens and migrates the local store, then builds the services.
func New(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	api, err := remote.New(cfg.API.BaseURL, cfg.API.Timeout, remote.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	db, err := sqlite.New(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:        db.Users(),
		API:          api,
		OfflineMode:  cfg.Auth.OfflineMode,
		MockFallback: cfg.Auth.MockFallback,
		Offline: service.OfflineOptions{
			TestEmail:    cfg.Auth.TestEmail,
			TestPassword: cfg.Auth.TestPassword,
			TestToken:    cfg.Auth.TestToken,
		},
		Logger: logger,
	})

	return &App{
		Config:   cfg,
		DB:       db,
		API:      api,
		Auth:     auth,
		Courses:  service.NewCourseService(db.Courses(), api, logger),
		Profiles: service.NewProfileService(db.Profiles(), api, logger),
		Users:    service.NewUserService(db.Users(), api, logger),
		Sessions: service.NewSessionService(api),
		logger:   logger,
	}, nil
}

// Close releases the local store.
func (a *App) Close() error {
	return a.DB.Close()
}

// SyncReport counts the records held by each cache after Sync. Stale counts
// the rows served from the cache because the backend could not confirm them.
type SyncReport struct {
	Courses       int
	Profiles      int
	StaleCourses  int
	StaleProfiles int
}

// Fresh reports whether every row came from the backend.
func (r SyncReport) Fresh() bool {
	return r.StaleCourses == 0 && r.StaleProfiles == 0
}

// Sync force-refreshes the course and profile caches concurrently with the
// current session token. The first failure is returned. A refresh that fails
// while the cache still holds rows is not an error: those rows are kept,
// flagged unsynced and counted as stale in the report.
func (a *App) Sync(ctx context.Context) (SyncReport, error) {
	token, ok := a.Auth.AuthToken(ctx)
	if !ok {
		return SyncReport{}, &result.Failure{Kind: result.KindNotFound, Message: service.MsgNoToken}
	}

	var report SyncReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := a.Courses.FetchCourses(gctx, token, true)
		if res.IsError() {
			return fmt.Errorf("sync courses: %w", res.Err())
		}
		for _, c := range res.Data() {
			if !c.Synced {
				report.StaleCourses++
			}
		}
		report.Courses = len(res.Data())
		return nil
	})

	g.Go(func() error {
		res := a.Profiles.FetchProfiles(gctx, token, true)
		if res.IsError() {
			return fmt.Errorf("sync profiles: %w", res.Err())
		}
		for _, p := range res.Data() {
			if !p.Synced {
				report.StaleProfiles++
			}
		}
		report.Profiles = len(res.Data())
		return nil
	})

	if err := g.Wait(); err != nil {
		return report, err
	}
	if report.Fresh() {
		a.logger.Info("caches synced", "courses", report.Courses, "profiles", report.Profiles)
	} else {
		a.logger.Warn("caches partly stale after sync",
			"courses", report.Courses, "stale_courses", report.StaleCourses,
			"profiles", report.Profiles, "stale_profiles", report.StaleProfiles)
	}
	return report, nil
}

// ResetCache empties the course and profile caches. With users set, every
// locally stored account is deleted as well, which ends the session.
func (a *App) ResetCache(ctx context.Context, users bool) error {
	if err := a.Courses.ClearCache(ctx); err != nil {
		return fmt.Errorf("clear course cache: %w", err)
	}
	if err := a.Profiles.ClearCache(ctx); err != nil {
		return fmt.Errorf("clear profile cache: %w", err)
	}
	if users {
		if err := a.Auth.ForgetLocalUsers(ctx); err != nil {
			return fmt.Errorf("forget local users: %w", err)
		}
	}
	return nil
}
