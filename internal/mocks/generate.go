// Package mocks provides gomock implementations of the EduNova API interfaces
// consumed by the services.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockCourseAPI(ctrl)
//	api.EXPECT().ListCourses(gomock.Any(), "token").Return(result.Success(courses))
package mocks

// MockAuthAPI: Login, Register, Logout, RefreshToken
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/msomdec/edunova/internal/domain AuthAPI

// MockCourseAPI: ListCourses, GetCourse, CreateCourse, UpdateCourse, DeleteCourse, ListCoursesByTeacher
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=course_api_mock.go github.com/msomdec/edunova/internal/domain CourseAPI

// MockProfileAPI: GetProfile, UpdateProfile, ListProfiles, GetProfileByID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_api_mock.go github.com/msomdec/edunova/internal/domain ProfileAPI

// MockUserAPI and MockSessionAPI
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_api_mock.go github.com/msomdec/edunova/internal/domain UserAPI,SessionAPI
