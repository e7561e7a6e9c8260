package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/edunova/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB is the local store: the user session table and the course/profile caches.
type DB struct {
	SqlDB  *sql.DB
	logger *slog.Logger
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and funnels all access through one connection so
// writes are serialized.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db, logger: slog.Default()}, nil
}

// Migrate applies pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	n, err := migrations.Run(ctx, d.SqlDB, d.logger)
	if err != nil {
		return err
	}
	if n > 0 {
		d.logger.Info("local store migrated", "applied", n)
	}
	return nil
}

// Close releases the database handle.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository { return NewUserRepository(d) }
func (d *DB) Courses() *CourseRepository { return NewCourseRepository(d) }
func (d *DB) Profiles() *ProfileRepository { return NewProfileRepository(d) }

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
