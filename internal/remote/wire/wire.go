// Package wire defines the JSON bodies exchanged with the EduNova API.
// Field names are snake_case on the wire and mapped explicitly to the
// domain types, which never carry JSON tags.
package wire

import (
	"encoding/json"

	"github.com/msomdec/edunova/internal/domain"
)

// Envelope wraps every resource response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HasData reports whether the envelope carries a non-null data member.
func (e Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// AuthRequest is the login and register body.
type AuthRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is the unwrapped body of the login, register and refresh endpoints.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

func (r AuthResponse) ToDomain() domain.AuthPayload {
	p := domain.AuthPayload{Success: r.Success, Message: r.Message, Token: r.Token}
	if r.User != nil {
		u := r.User.ToDomain()
		p.User = &u
	}
	return p
}

func AuthResponseFrom(p domain.AuthPayload) AuthResponse {
	r := AuthResponse{Success: p.Success, Message: p.Message, Token: p.Token}
	if p.User != nil {
		u := UserFrom(*p.User)
		r.User = &u
	}
	return r
}

// User is the account representation. Session fields never travel on the wire.
type User struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	LastLogin  string `json:"last_login,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (u User) ToDomain() domain.User {
	return domain.User{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       domain.Role(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func UserFrom(u domain.User) User {
	return User{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       string(u.Role),
		IsActive:   true,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Course is a course resource.
type Course struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TeacherID   int64   `json:"teacher_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToDomain maps a fetched course; it is marked synced since it mirrors the server.
func (c Course) ToDomain() domain.Course {
	out := domain.Course{
		ID:        c.ID,
		Title:     c.Title,
		TeacherID: c.TeacherID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Synced:    true,
	}
	if c.Description != nil {
		out.Description = *c.Description
	}
	return out
}

func CourseFrom(c domain.Course) Course {
	out := Course{ID: c.ID, Title: c.Title, TeacherID: c.TeacherID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	if c.Description != "" {
		d := c.Description
		out.Description = &d
	}
	return out
}

// CourseRequest is the create and update body for courses.
type CourseRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TeacherID   int64   `json:"teacher_id"`
}

func CourseRequestFrom(in domain.CourseInput) CourseRequest {
	req := CourseRequest{Title: in.Title, TeacherID: in.TeacherID}
	if in.Description != "" {
		d := in.Description
		req.Description = &d
	}
	return req
}

func (r CourseRequest) ToDomain() domain.CourseInput {
	in := domain.CourseInput{Title: r.Title, TeacherID: r.TeacherID}
	if r.Description != nil {
		in.Description = *r.Description
	}
	return in
}

// Profile is a profile resource.
type Profile struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Age             *int    `json:"age"`
	ProfileImage    *string `json:"profile_image"`
	Role            string  `json:"role"`
	Level           *string `json:"level"`
	EnrollmentYear  *int    `json:"enrollment_year"`
	Specialty       *string `json:"specialty"`
	YearsExperience *int    `json:"years_experience"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func (p Profile) ToDomain() domain.Profile {
	return domain.Profile{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		Address:         p.Address,
		Age:             p.Age,
		ProfileImage:    p.ProfileImage,
		Role:            p.Role,
		Level:           p.Level,
		EnrollmentYear:  p.EnrollmentYear,
		Specialty:       p.Specialty,
		YearsExperience: p.YearsExperience,
		EmailVerifiedAt: p.EmailVerifiedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Synced:          true,
	}
}

func ProfileFrom(p domain.Profile) Profile {
	return Profile{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		Address:         p.Address,
		Age:             p.Age,
		ProfileImage:    p.ProfileImage,
		Role:            p.Role,
		Level:           p.Level,
		EnrollmentYear:  p.EnrollmentYear,
		Specialty:       p.Specialty,
		YearsExperience: p.YearsExperience,
		EmailVerifiedAt: p.EmailVerifiedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProfileUpdate is the profile update body; absent fields are left unchanged.
type ProfileUpdate struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	Age             *int    `json:"age,omitempty"`
	ProfileImage    *string `json:"profile_image,omitempty"`
	Level           *string `json:"level,omitempty"`
	EnrollmentYear  *int    `json:"enrollment_year,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	YearsExperience *int    `json:"years_experience,omitempty"`
}

func ProfileUpdateFrom(in domain.ProfileInput) ProfileUpdate {
	return ProfileUpdate(in)
}

func (u ProfileUpdate) ToDomain() domain.ProfileInput {
	return domain.ProfileInput(u)
}

// Session is a server-side session.
type Session struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func (s Session) ToDomain() domain.RemoteSession {
	return domain.RemoteSession{ID: s.ID, UserID: s.UserID, Token: s.Token, ExpiresAt: s.ExpiresAt}
}

func SessionFrom(s domain.RemoteSession) Session {
	return Session{ID: s.ID, UserID: s.UserID, Token: s.Token, ExpiresAt: s.ExpiresAt}
}
