package domain

import "context"

const (
	ProfileRoleStudent = "student"
	ProfileRoleTeacher = "teacher"
)

// Study levels used by student profiles.
const (
	LevelL1       = "L1"
	LevelL2       = "L2"
	LevelL3       = "L3"
	LevelM1       = "M1"
	LevelM2       = "M2"
	LevelDoctorat = "Doctorat"
)

// Profile is the extended personal record of a student or teacher.
type Profile struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	Address         *string
	Age             *int
	ProfileImage    *string
	Role            string
	Level           *string
	EnrollmentYear  *int
	Specialty       *string
	YearsExperience *int
	EmailVerifiedAt *string // not cached
	CreatedAt       string
	UpdatedAt       string
	Synced          bool
}

// ProfileInput is the body of a profile update. Nil fields are left unchanged.
type ProfileInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	Address         *string
	Age             *int
	ProfileImage    *string
	Level           *string
	EnrollmentYear  *int
	Specialty       *string
	YearsExperience *int
}

// ProfileRepository is the local profile cache.
type ProfileRepository interface {
	List(ctx context.Context) ([]Profile, error)
	ListByRole(ctx context.Context, role string) ([]Profile, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
	// ReplaceAll deletes every cached profile then inserts the given set.
	ReplaceAll(ctx context.Context, profiles []Profile) error
	SetSynced(ctx context.Context, id int64, synced bool) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
