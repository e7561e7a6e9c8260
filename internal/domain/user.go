package domain

import "context"

// Role is the account role as the backend spells it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "enseignant"
	RoleStudent Role = "etudiant"
)

// User is a locally persisted account. At most one User has IsLoggedIn set;
// that record's AuthToken is the current session.
type User struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Role       Role
	IsVerified bool
	AuthToken  string // empty when logged out
	IsLoggedIn bool
	CreatedAt  string
	UpdatedAt  string
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserRepository defines persistence operations for local users.
type UserRepository interface {
	// GetLoggedIn returns the logged-in user, or ErrNotFound.
	GetLoggedIn(ctx context.Context) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Upsert inserts the user or replaces every column of an existing row with the same ID.
	Upsert(ctx context.Context, user *User) error
	// UpsertDetails inserts or updates account fields, leaving session columns untouched.
	UpsertDetails(ctx context.Context, user *User) error
	// UpdateAuthToken replaces the token of the given user.
	UpdateAuthToken(ctx context.Context, id int64, token string) error
	// LogoutAll clears the token and logged-in flag of every user.
	LogoutAll(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
