package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/msomdec/edunova/internal/domain"
)

func (c *commandContext) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	w.Flush()
}

func printUser(c *commandContext, u *domain.User) {
	c.printf("#%d %s <%s> role=%s verified=%t\n", u.ID, u.FullName(), u.Email, u.Role, u.IsVerified)
}

func printUsers(c *commandContext, users []domain.User) {
	c.table("ID\tNAME\tEMAIL\tROLE\tLOGGED IN", func(w *tabwriter.Writer) {
		for i := range users {
			u := &users[i]
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.FullName(), u.Email, u.Role, u.IsLoggedIn)
		}
	})
}

func printCourse(c *commandContext, course *domain.Course) {
	if course == nil {
		return
	}
	c.printf("#%d %s (teacher %d)\n", course.ID, course.Title, course.TeacherID)
	if course.Description != "" {
		c.printf("  %s\n", course.Description)
	}
}

func printCourses(c *commandContext, courses []domain.Course) {
	c.table("ID\tTITLE\tTEACHER\tSYNCED", func(w *tabwriter.Writer) {
		for _, cs := range courses {
			fmt.Fprintf(w, "%d\t%s\t%d\t%t\n", cs.ID, cs.Title, cs.TeacherID, cs.Synced)
		}
	})
}

func printProfile(c *commandContext, p *domain.Profile) {
	if p == nil {
		return
	}
	c.printf("#%d %s %s <%s> role=%s\n", p.ID, p.FirstName, p.LastName, p.Email, p.Role)
	opt := func(label string, v *string) {
		if v != nil && *v != "" {
			c.printf("  %s: %s\n", label, *v)
		}
	}
	optInt := func(label string, v *int) {
		if v != nil {
			c.printf("  %s: %d\n", label, *v)
		}
	}
	opt("phone", p.Phone)
	opt("address", p.Address)
	optInt("age", p.Age)
	opt("level", p.Level)
	optInt("enrollment year", p.EnrollmentYear)
	opt("specialty", p.Specialty)
	optInt("years of experience", p.YearsExperience)
}

func printProfiles(c *commandContext, profiles []domain.Profile) {
	c.table("ID\tNAME\tEMAIL\tROLE", func(w *tabwriter.Writer) {
		for _, p := range profiles {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", p.ID, p.FirstName, p.LastName, p.Email, p.Role)
		}
	})
}

func printSessions(c *commandContext, sessions []domain.RemoteSession) {
	c.table("ID\tUSER\tEXPIRES", func(w *tabwriter.Writer) {
		for _, s := range sessions {
			fmt.Fprintf(w, "%d\t%d\t%s\n", s.ID, s.UserID, s.ExpiresAt)
		}
	})
}
