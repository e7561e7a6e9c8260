package viewmodel

import (
	"context"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

const (
	MsgCoursesLoaded        = "Cours chargés avec succès"
	MsgCourseCreated        = "Cours créé avec succès"
	MsgCourseUpdated        = "Cours mis à jour avec succès"
	MsgCourseDeleted        = "Cours supprimé avec succès"
	MsgTeacherCoursesLoaded = "Cours de l'enseignant chargés"
)

// CourseState is the snapshot published by CourseViewModel.
type CourseState struct {
	// Courses mirrors the local cache and is reloaded after every operation.
	Courses []domain.Course
	// TeacherCourses holds the result of the last teacher listing.
	TeacherCourses []domain.Course
	// Course is the course last read, created or updated.
	Course         *domain.Course
	Loading        bool
	ErrorMessage   string
	SuccessMessage string
}

// CourseViewModel binds the CourseService to a front end. Every call uses
// the token of the current session.
type CourseViewModel struct {
	auth    *service.AuthService
	courses *service.CourseService
	b       binding[CourseState]
}

func NewCourseViewModel(ctx context.Context, auth *service.AuthService, courses *service.CourseService) *CourseViewModel {
	vm := &CourseViewModel{auth: auth, courses: courses}
	vm.b.state.Courses = courses.CachedCourses(ctx).Data()
	return vm
}

func (vm *CourseViewModel) State() CourseState { return vm.b.snapshot() }

func (vm *CourseViewModel) Subscribe(fn func(CourseState)) (unsubscribe func()) {
	return vm.b.subscribe(fn)
}

// begin marks the view model busy and returns the session token. Without a
// session it records MsgMissingToken and reports false.
func (vm *CourseViewModel) begin(ctx context.Context) (string, bool) {
	token, ok := vm.auth.AuthToken(ctx)
	vm.b.update(func(s *CourseState) {
		s.ErrorMessage = ""
		s.Loading = ok
		if !ok {
			s.ErrorMessage = MsgMissingToken
		}
	})
	return token, ok
}

func finishCourse[T any](ctx context.Context, vm *CourseViewModel, res result.Result[T], onSuccess func(*CourseState, T)) CourseState {
	cached := vm.courses.CachedCourses(ctx)
	vm.b.update(func(s *CourseState) {
		s.Loading = false
		if cached.IsSuccess() {
			s.Courses = cached.Data()
		}
		switch res.State() {
		case result.StateSuccess:
			onSuccess(s, res.Data())
		case result.StateError:
			s.ErrorMessage = res.Message()
		}
	})
	return vm.State()
}

// FetchCourses loads the course list, from the cache unless force is set.
func (vm *CourseViewModel) FetchCourses(ctx context.Context, force bool) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.FetchCourses(ctx, token, force), func(s *CourseState, _ []domain.Course) {
		s.SuccessMessage = MsgCoursesLoaded
	})
}

func (vm *CourseViewModel) GetCourse(ctx context.Context, id int64) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.GetCourse(ctx, id, token), func(s *CourseState, c domain.Course) {
		s.Course = &c
	})
}

func (vm *CourseViewModel) CreateCourse(ctx context.Context, in domain.CourseInput) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.CreateCourse(ctx, in, token), func(s *CourseState, c domain.Course) {
		s.Course = &c
		s.SuccessMessage = MsgCourseCreated
	})
}

func (vm *CourseViewModel) UpdateCourse(ctx context.Context, id int64, in domain.CourseInput) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.UpdateCourse(ctx, id, in, token), func(s *CourseState, c domain.Course) {
		s.Course = &c
		s.SuccessMessage = MsgCourseUpdated
	})
}

func (vm *CourseViewModel) DeleteCourse(ctx context.Context, id int64) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.DeleteCourse(ctx, id, token), func(s *CourseState, _ bool) {
		if s.Course != nil && s.Course.ID == id {
			s.Course = nil
		}
		s.SuccessMessage = MsgCourseDeleted
	})
}

func (vm *CourseViewModel) FetchCoursesByTeacher(ctx context.Context, teacherID int64) CourseState {
	token, ok := vm.begin(ctx)
	if !ok {
		return vm.State()
	}
	return finishCourse(ctx, vm, vm.courses.FetchCoursesByTeacher(ctx, teacherID, token), func(s *CourseState, cs []domain.Course) {
		s.TeacherCourses = cs
		s.SuccessMessage = MsgTeacherCoursesLoaded
	})
}

// CoursesByTeacher reads the cached courses of one teacher.
func (vm *CourseViewModel) CoursesByTeacher(ctx context.Context, teacherID int64) []domain.Course {
	return vm.courses.CachedCoursesByTeacher(ctx, teacherID).Data()
}

func (vm *CourseViewModel) ClearError() {
	vm.b.update(func(s *CourseState) { s.ErrorMessage = "" })
}

func (vm *CourseViewModel) ClearSuccess() {
	vm.b.update(func(s *CourseState) { s.SuccessMessage = "" })
}

func (vm *CourseViewModel) ClearCourseState() {
	vm.b.update(func(s *CourseState) { s.Course = nil })
}
