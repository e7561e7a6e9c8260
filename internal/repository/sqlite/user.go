package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/edunova/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = `id, first_name, last_name, email, role, is_verified, auth_token, is_logged_in, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var token sql.NullString
	var role string
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &role,
		&user.IsVerified, &token, &user.IsLoggedIn, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.AuthToken = token.String
	return user, nil
}

func (r *UserRepository) getOne(ctx context.Context, what, where string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by %s: %w", what, err)
	}
	return user, nil
}

func (r *UserRepository) GetLoggedIn(ctx context.Context) (*domain.User, error) {
	return r.getOne(ctx, "session", "is_logged_in = ? ORDER BY id LIMIT 1", true)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id", "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", "email = ?", email)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Upsert replaces the whole row keyed by ID. A row holding the same email
// under another ID is replaced as well, so the server's identity wins.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.FirstName, user.LastName, user.Email, string(user.Role),
		user.IsVerified, nullString(user.AuthToken), user.IsLoggedIn, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpsertDetails(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, role, is_verified, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   email = excluded.email,
		   role = excluded.role,
		   is_verified = excluded.is_verified,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		user.ID, user.FirstName, user.LastName, user.Email, string(user.Role),
		user.IsVerified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("upsert user details: %w", err)
	}
	return nil
}

// UpdateAuthToken replaces the token and marks the user logged in.
func (r *UserRepository) UpdateAuthToken(ctx context.Context, id int64, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET auth_token = ?, is_logged_in = 1 WHERE id = ?`, token, id)
	if err != nil {
		return fmt.Errorf("update auth token: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) LogoutAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_logged_in = 0, auth_token = NULL`); err != nil {
		return fmt.Errorf("logout all users: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete all users: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
