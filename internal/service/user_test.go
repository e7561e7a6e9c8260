package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/mocks"
	"github.com/msomdec/edunova/internal/result"
	"github.com/msomdec/edunova/internal/service"
)

func newUserService(t *testing.T) (*service.UserService, *mocks.MockUserAPI, domain.UserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockUserAPI(ctrl)
	users := newTestDB(t).Users()
	return service.NewUserService(users, api, nil), api, users
}

func TestUserService_GetUserKeepsSessionColumns(t *testing.T) {
	svc, api, users := newUserService(t)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, &domain.User{ID: 3, FirstName: "Old", Email: "me@example.com", AuthToken: "tok", IsLoggedIn: true}))
	api.EXPECT().GetUser(gomock.Any(), int64(3), "tok").
		Return(result.Success(domain.User{ID: 3, FirstName: "New", Email: "me@example.com", Role: domain.RoleTeacher}))

	res := svc.GetUser(ctx, 3, "tok")
	require.True(t, res.IsSuccess())

	stored, err := users.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.FirstName)
	assert.Equal(t, "tok", stored.AuthToken)
	assert.True(t, stored.IsLoggedIn)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc, api, users := newUserService(t)
	ctx := context.Background()
	patch := domain.User{ID: 4, FirstName: "Zoe", Email: "zoe@example.com", Role: domain.RoleAdmin}

	api.EXPECT().UpdateUser(gomock.Any(), int64(4), patch, testToken).Return(result.Success(patch))

	res := svc.UpdateUser(ctx, 4, patch, testToken)
	require.True(t, res.IsSuccess())
	stored, err := users.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
	assert.False(t, stored.IsLoggedIn)
}

func TestUserService_ListUsers(t *testing.T) {
	svc, api, _ := newUserService(t)
	api.EXPECT().ListUsers(gomock.Any(), testToken).
		Return(result.Success([]domain.User{{ID: 1}, {ID: 2}}))

	res := svc.ListUsers(context.Background(), testToken)
	require.True(t, res.IsSuccess())
	assert.Len(t, res.Data(), 2)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, api, users := newUserService(t)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, &domain.User{ID: 1, Email: "me@example.com", AuthToken: "tok", IsLoggedIn: true}))
	require.NoError(t, users.Upsert(ctx, &domain.User{ID: 2, Email: "other@example.com"}))

	api.EXPECT().DeleteUser(gomock.Any(), int64(2), "tok").Return(result.Success(true))
	api.EXPECT().DeleteUser(gomock.Any(), int64(1), "tok").Return(result.Success(true))
	api.EXPECT().DeleteUser(gomock.Any(), int64(77), "tok").Return(result.Success(true))

	require.True(t, svc.DeleteUser(ctx, 2, "tok").IsSuccess())
	_, err := users.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.True(t, svc.DeleteUser(ctx, 1, "tok").IsSuccess())
	_, err = users.GetByID(ctx, 1)
	assert.NoError(t, err, "the session record is kept")

	assert.True(t, svc.DeleteUser(ctx, 77, "tok").IsSuccess(), "unknown local record is fine")
}
