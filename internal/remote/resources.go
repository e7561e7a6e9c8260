package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
	"github.com/msomdec/edunova/internal/result"
)

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func deleted(struct{}) bool { return true }

// Courses

func (c *Client) ListCourses(ctx context.Context, token string) result.Result[[]domain.Course] {
	res := callEnvelope[[]wire.Course](ctx, c, http.MethodGet, "courses", token, nil, true)
	return result.Map(res, func(cs []wire.Course) []domain.Course { return mapSlice(cs, wire.Course.ToDomain) })
}

func (c *Client) GetCourse(ctx context.Context, id int64, token string) result.Result[domain.Course] {
	res := callEnvelope[wire.Course](ctx, c, http.MethodGet, idPath("courses", id), token, nil, true)
	return result.Map(res, wire.Course.ToDomain)
}

func (c *Client) CreateCourse(ctx context.Context, in domain.CourseInput, token string) result.Result[domain.Course] {
	res := callEnvelope[wire.Course](ctx, c, http.MethodPost, "courses", token, wire.CourseRequestFrom(in), true)
	return result.Map(res, wire.Course.ToDomain)
}

func (c *Client) UpdateCourse(ctx context.Context, id int64, in domain.CourseInput, token string) result.Result[domain.Course] {
	res := callEnvelope[wire.Course](ctx, c, http.MethodPut, idPath("courses", id), token, wire.CourseRequestFrom(in), true)
	return result.Map(res, wire.Course.ToDomain)
}

func (c *Client) DeleteCourse(ctx context.Context, id int64, token string) result.Result[bool] {
	res := callEnvelope[struct{}](ctx, c, http.MethodDelete, idPath("courses", id), token, nil, false)
	return result.Map(res, deleted)
}

func (c *Client) ListCoursesByTeacher(ctx context.Context, teacherID int64, token string) result.Result[[]domain.Course] {
	res := callEnvelope[[]wire.Course](ctx, c, http.MethodGet, idPath("courses/teacher", teacherID), token, nil, true)
	return result.Map(res, func(cs []wire.Course) []domain.Course { return mapSlice(cs, wire.Course.ToDomain) })
}

// Profiles

func (c *Client) GetProfile(ctx context.Context, token string) result.Result[domain.Profile] {
	res := callEnvelope[wire.Profile](ctx, c, http.MethodGet, "profile", token, nil, true)
	return result.Map(res, wire.Profile.ToDomain)
}

func (c *Client) UpdateProfile(ctx context.Context, in domain.ProfileInput, token string) result.Result[domain.Profile] {
	res := callEnvelope[wire.Profile](ctx, c, http.MethodPut, "profile", token, wire.ProfileUpdateFrom(in), true)
	return result.Map(res, wire.Profile.ToDomain)
}

func (c *Client) ListProfiles(ctx context.Context, token string) result.Result[[]domain.Profile] {
	res := callEnvelope[[]wire.Profile](ctx, c, http.MethodGet, "profiles", token, nil, true)
	return result.Map(res, func(ps []wire.Profile) []domain.Profile { return mapSlice(ps, wire.Profile.ToDomain) })
}

func (c *Client) GetProfileByID(ctx context.Context, id int64, token string) result.Result[domain.Profile] {
	res := callEnvelope[wire.Profile](ctx, c, http.MethodGet, idPath("profiles", id), token, nil, true)
	return result.Map(res, wire.Profile.ToDomain)
}

// Users

func (c *Client) ListUsers(ctx context.Context, token string) result.Result[[]domain.User] {
	res := callEnvelope[[]wire.User](ctx, c, http.MethodGet, "users", token, nil, true)
	return result.Map(res, func(us []wire.User) []domain.User { return mapSlice(us, wire.User.ToDomain) })
}

func (c *Client) GetUser(ctx context.Context, id int64, token string) result.Result[domain.User] {
	res := callEnvelope[wire.User](ctx, c, http.MethodGet, idPath("users", id), token, nil, true)
	return result.Map(res, wire.User.ToDomain)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user domain.User, token string) result.Result[domain.User] {
	res := callEnvelope[wire.User](ctx, c, http.MethodPut, idPath("users", id), token, wire.UserFrom(user), true)
	return result.Map(res, wire.User.ToDomain)
}

func (c *Client) DeleteUser(ctx context.Context, id int64, token string) result.Result[bool] {
	res := callEnvelope[struct{}](ctx, c, http.MethodDelete, idPath("users", id), token, nil, false)
	return result.Map(res, deleted)
}

// Sessions

func (c *Client) ListSessions(ctx context.Context, token string) result.Result[[]domain.RemoteSession] {
	res := callEnvelope[[]wire.Session](ctx, c, http.MethodGet, "sessions", token, nil, true)
	return result.Map(res, func(ss []wire.Session) []domain.RemoteSession { return mapSlice(ss, wire.Session.ToDomain) })
}

func (c *Client) DeleteSession(ctx context.Context, id int64, token string) result.Result[bool] {
	res := callEnvelope[struct{}](ctx, c, http.MethodDelete, idPath("sessions", id), token, nil, false)
	return result.Map(res, deleted)
}
