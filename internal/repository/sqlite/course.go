package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/edunova/internal/domain"
)

// CourseRepository implements domain.CourseRepository using SQLite.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new SQLite-backed CourseRepository.
func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db.SqlDB}
}

const courseColumns = `id, title, description, teacher_id, created_at, updated_at, is_synced`

func scanCourse(row rowScanner) (*domain.Course, error) {
	c := &domain.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt, &c.UpdatedAt, &c.Synced); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC, id`)
}

func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]domain.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses WHERE teacher_id = ? ORDER BY created_at DESC, id`, teacherID)
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query course by id: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) Upsert(ctx context.Context, course *domain.Course) error {
	return upsertCourse(ctx, r.db, course)
}

func upsertCourse(ctx context.Context, q queryer, c *domain.Course) error {
	_, err := q.ExecContext(ctx,
		`INSERT OR REPLACE INTO courses (`+courseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.TeacherID, c.CreatedAt, c.UpdatedAt, c.Synced,
	)
	if err != nil {
		return fmt.Errorf("upsert course %d: %w", c.ID, err)
	}
	return nil
}

// ReplaceAll swaps the cache contents for the given set in one transaction,
// so courses deleted upstream disappear locally.
func (r *CourseRepository) ReplaceAll(ctx context.Context, courses []domain.Course) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("delete courses: %w", err)
	}
	for i := range courses {
		if err := upsertCourse(ctx, tx, &courses[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CourseRepository) SetSynced(ctx context.Context, id int64, synced bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE courses SET is_synced = ? WHERE id = ?`, synced, id)
	if err != nil {
		return fmt.Errorf("update course sync status: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a course. Deleting an absent course is not an error.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (r *CourseRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("delete all courses: %w", err)
	}
	return nil
}
