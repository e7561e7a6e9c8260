package mockapi

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
)

// catalog holds the course and profile resources.
type catalog struct {
	mu           sync.Mutex
	courses      map[int64]wire.Course
	profiles     map[int64]wire.Profile // keyed by user id
	nextCourseID int64
	now          func() time.Time
}

func newCatalog(now func() time.Time) *catalog {
	return &catalog{
		courses:      make(map[int64]wire.Course),
		profiles:     make(map[int64]wire.Profile),
		nextCourseID: 1,
		now:          now,
	}
}

func (c *catalog) stamp() string { return c.now().UTC().Format(time.RFC3339) }

func (c *catalog) listCourses(teacherID int64) []wire.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]wire.Course, 0, len(c.courses))
	for _, course := range c.courses {
		if teacherID == 0 || course.TeacherID == teacherID {
			out = append(out, course)
		}
	}
	slices.SortFunc(out, func(a, b wire.Course) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (c *catalog) course(id int64) (wire.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[id]
	if !ok {
		return wire.Course{}, domain.ErrNotFound
	}
	return course, nil
}

func (c *catalog) createCourse(req wire.CourseRequest) wire.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.stamp()
	course := wire.Course{
		ID:          c.nextCourseID,
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.courses[course.ID] = course
	c.nextCourseID++
	return course
}

func (c *catalog) updateCourse(id int64, req wire.CourseRequest) (wire.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[id]
	if !ok {
		return wire.Course{}, domain.ErrNotFound
	}
	course.Title = req.Title
	course.Description = req.Description
	if req.TeacherID != 0 {
		course.TeacherID = req.TeacherID
	}
	course.UpdatedAt = c.stamp()
	c.courses[id] = course
	return course, nil
}

func (c *catalog) deleteCourse(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.courses, id)
	return nil
}

// profileFor returns the profile of user, creating it from the account on first use.
func (c *catalog) profileFor(user wire.User) wire.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.profiles[user.ID]; ok {
		return p
	}
	p := wire.Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      profileRole(domain.Role(user.Role)),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	c.profiles[user.ID] = p
	return p
}

func (c *catalog) profile(id int64) (wire.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profiles[id]
	if !ok {
		return wire.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (c *catalog) listProfiles() []wire.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]wire.Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b wire.Profile) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// updateProfile applies the non-nil fields of u to the profile of user.
func (c *catalog) updateProfile(user wire.User, u wire.ProfileUpdate) wire.Profile {
	p := c.profileFor(user)

	c.mu.Lock()
	defer c.mu.Unlock()
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	setIf(&p.Phone, u.Phone)
	setIf(&p.Address, u.Address)
	setIf(&p.Age, u.Age)
	setIf(&p.ProfileImage, u.ProfileImage)
	setIf(&p.Level, u.Level)
	setIf(&p.EnrollmentYear, u.EnrollmentYear)
	setIf(&p.Specialty, u.Specialty)
	setIf(&p.YearsExperience, u.YearsExperience)
	p.UpdatedAt = c.stamp()
	c.profiles[user.ID] = p
	return p
}

func (c *catalog) deleteProfile(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.profiles, id)
}

func setIf[T any](dst **T, v *T) {
	if v != nil {
		cp := *v
		*dst = &cp
	}
}

func profileRole(r domain.Role) string {
	if r == domain.RoleTeacher {
		return domain.ProfileRoleTeacher
	}
	return domain.ProfileRoleStudent
}
