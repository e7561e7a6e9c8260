package domain

import "context"

// Course is a course as served by the API and mirrored in the local cache.
type Course struct {
	ID          int64
	Title       string
	Description string
	TeacherID   int64
	CreatedAt   string
	UpdatedAt   string
	Synced      bool // cached copy reflects the last known server state
}

// CourseInput is the body of course create and update requests.
type CourseInput struct {
	Title       string
	Description string
	TeacherID   int64
}

// CourseRepository is the local course cache.
type CourseRepository interface {
	List(ctx context.Context) ([]Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]Course, error)
	GetByID(ctx context.Context, id int64) (*Course, error)
	Upsert(ctx context.Context, course *Course) error
	// ReplaceAll deletes every cached course then inserts the given set.
	ReplaceAll(ctx context.Context, courses []Course) error
	SetSynced(ctx context.Context, id int64, synced bool) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
