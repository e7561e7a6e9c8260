package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/edunova/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new SQLite-backed ProfileRepository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db.SqlDB}
}

const profileColumns = `id, first_name, last_name, email, phone, address, age, profile_image, role,
	level, enrollment_year, specialty, years_experience, created_at, updated_at, is_synced`

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.Age,
		&p.ProfileImage, &p.Role, &p.Level, &p.EnrollmentYear, &p.Specialty, &p.YearsExperience,
		&p.CreatedAt, &p.UpdatedAt, &p.Synced)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) list(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY first_name ASC, id`)
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role string) ([]domain.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+` FROM profiles WHERE role = ? ORDER BY first_name ASC, id`, role)
}

func (r *ProfileRepository) getOne(ctx context.Context, what, where string, arg any) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query profile by %s: %w", what, err)
	}
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.getOne(ctx, "id", "id = ?", id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, "email", "email = ? ORDER BY id LIMIT 1", email)
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	return upsertProfile(ctx, r.db, profile)
}

func upsertProfile(ctx context.Context, q queryer, p *domain.Profile) error {
	_, err := q.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.Age, p.ProfileImage, p.Role,
		p.Level, p.EnrollmentYear, p.Specialty, p.YearsExperience, p.CreatedAt, p.UpdatedAt, p.Synced,
	)
	if err != nil {
		return fmt.Errorf("upsert profile %d: %w", p.ID, err)
	}
	return nil
}

// ReplaceAll swaps the cache contents for the given set in one transaction.
func (r *ProfileRepository) ReplaceAll(ctx context.Context, profiles []domain.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
		return fmt.Errorf("delete profiles: %w", err)
	}
	for i := range profiles {
		if err := upsertProfile(ctx, tx, &profiles[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ProfileRepository) SetSynced(ctx context.Context, id int64, synced bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET is_synced = ? WHERE id = ?`, synced, id)
	if err != nil {
		return fmt.Errorf("update profile sync status: %w", err)
	}
	return requireAffected(res)
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
		return fmt.Errorf("delete all profiles: %w", err)
	}
	return nil
}
