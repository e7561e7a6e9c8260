package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
)

// CourseService serves courses from the local cache, refreshing it from the API.
type CourseService struct {
	courses domain.CourseRepository
	api     domain.CourseAPI
	logger  *slog.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(courses domain.CourseRepository, api domain.CourseAPI, logger *slog.Logger) *CourseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseService{courses: courses, api: api, logger: logger}
}

// FetchCourses returns the course list, cache first unless force is set.
func (s *CourseService) FetchCourses(ctx context.Context, token string, force bool) result.Result[[]domain.Course] {
	return cachedList(ctx, s.logger, "courses", force,
		s.courses.List,
		func() result.Result[[]domain.Course] { return s.api.ListCourses(ctx, token) },
		func(ctx context.Context, cs []domain.Course) error {
			return s.courses.ReplaceAll(ctx, markSynced(cs, func(c *domain.Course) { c.Synced = true }))
		},
		s.markStale,
	)
}

// GetCourse returns a cached course, or fetches and caches it.
func (s *CourseService) GetCourse(ctx context.Context, id int64, token string) result.Result[domain.Course] {
	cached, err := s.courses.GetByID(ctx, id)
	if err == nil {
		return result.Success(*cached)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("read course cache", "id", id, "error", err)
	}

	res := s.api.GetCourse(ctx, id, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

// CreateCourse creates a course remotely and caches the server's copy.
func (s *CourseService) CreateCourse(ctx context.Context, in domain.CourseInput, token string) result.Result[domain.Course] {
	if in.Title == "" {
		return result.Error[domain.Course](result.KindValidation, "course title is required")
	}
	res := s.api.CreateCourse(ctx, in, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

// UpdateCourse updates a course remotely and caches the server's copy.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, in domain.CourseInput, token string) result.Result[domain.Course] {
	if in.Title == "" {
		return result.Error[domain.Course](result.KindValidation, "course title is required")
	}
	res := s.api.UpdateCourse(ctx, id, in, token)
	if res.IsSuccess() {
		return s.store(ctx, res.Data())
	}
	return res
}

// DeleteCourse deletes a course remotely, then drops it from the cache.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64, token string) result.Result[bool] {
	res := s.api.DeleteCourse(ctx, id, token)
	if !res.IsSuccess() {
		return res
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return storageError[bool](err)
	}
	return res
}

// FetchCoursesByTeacher fetches a teacher's courses and upserts each one.
// On failure the cached courses of that teacher are served when present.
func (s *CourseService) FetchCoursesByTeacher(ctx context.Context, teacherID int64, token string) result.Result[[]domain.Course] {
	res := s.api.ListCoursesByTeacher(ctx, teacherID, token)
	switch res.State() {
	case result.StateSuccess:
		courses := res.Data()
		for i := range courses {
			courses[i].Synced = true
			if err := s.courses.Upsert(ctx, &courses[i]); err != nil {
				return storageError[[]domain.Course](err)
			}
		}
		return res

	case result.StateError:
		cached, err := s.courses.ListByTeacher(ctx, teacherID)
		if err == nil && len(cached) > 0 {
			s.logger.Warn("serving cached teacher courses", "teacher_id", teacherID, "error", res.Message())
			return result.Success(cached)
		}
	}
	return res
}

func (s *CourseService) CachedCourses(ctx context.Context) result.Result[[]domain.Course] {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return storageError[[]domain.Course](err)
	}
	return result.Success(courses)
}

func (s *CourseService) CachedCoursesByTeacher(ctx context.Context, teacherID int64) result.Result[[]domain.Course] {
	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return storageError[[]domain.Course](err)
	}
	return result.Success(courses)
}

// ClearCache drops every cached course.
func (s *CourseService) ClearCache(ctx context.Context) error {
	if err := s.courses.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("course cache cleared")
	return nil
}

// markStale flags cached courses that a refresh failed to confirm.
func (s *CourseService) markStale(ctx context.Context, courses []domain.Course) []domain.Course {
	for i := range courses {
		if !courses[i].Synced {
			continue
		}
		courses[i].Synced = false
		if err := s.courses.SetSynced(ctx, courses[i].ID, false); err != nil {
			s.logger.Error("flag stale course", "id", courses[i].ID, "error", err)
		}
	}
	return courses
}

func (s *CourseService) store(ctx context.Context, c domain.Course) result.Result[domain.Course] {
	c.Synced = true
	if err := s.courses.Upsert(ctx, &c); err != nil {
		return storageError[domain.Course](err)
	}
	return result.Success(c)
}
