package domain

import (
	"context"

	"github.com/msomdec/edunova/internal/result"
)

// The interfaces below describe the EduNova HTTP API as consumed by the
// services. Every method normalizes transport outcomes into a Result and
// never returns a raw error.

// AuthAPI covers the auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) result.Result[AuthPayload]
	Register(ctx context.Context, firstName, lastName, email, password string) result.Result[AuthPayload]
	Logout(ctx context.Context, token string) result.Result[bool]
	RefreshToken(ctx context.Context, token string) result.Result[AuthPayload]
}

// CourseAPI covers the course endpoints.
type CourseAPI interface {
	ListCourses(ctx context.Context, token string) result.Result[[]Course]
	GetCourse(ctx context.Context, id int64, token string) result.Result[Course]
	CreateCourse(ctx context.Context, in CourseInput, token string) result.Result[Course]
	UpdateCourse(ctx context.Context, id int64, in CourseInput, token string) result.Result[Course]
	DeleteCourse(ctx context.Context, id int64, token string) result.Result[bool]
	ListCoursesByTeacher(ctx context.Context, teacherID int64, token string) result.Result[[]Course]
}

// ProfileAPI covers the profile endpoints.
type ProfileAPI interface {
	GetProfile(ctx context.Context, token string) result.Result[Profile]
	UpdateProfile(ctx context.Context, in ProfileInput, token string) result.Result[Profile]
	ListProfiles(ctx context.Context, token string) result.Result[[]Profile]
	GetProfileByID(ctx context.Context, id int64, token string) result.Result[Profile]
}

// UserAPI covers the user administration endpoints.
type UserAPI interface {
	ListUsers(ctx context.Context, token string) result.Result[[]User]
	GetUser(ctx context.Context, id int64, token string) result.Result[User]
	UpdateUser(ctx context.Context, id int64, user User, token string) result.Result[User]
	DeleteUser(ctx context.Context, id int64, token string) result.Result[bool]
}

// SessionAPI covers the server-side session endpoints.
type SessionAPI interface {
	ListSessions(ctx context.Context, token string) result.Result[[]RemoteSession]
	DeleteSession(ctx context.Context, id int64, token string) result.Result[bool]
}
