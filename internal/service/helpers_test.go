package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/repository/sqlite"
)

const testToken = "token-abc"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func loggedInCount(t *testing.T, users domain.UserRepository) int {
	t.Helper()
	all, err := users.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, u := range all {
		if u.IsLoggedIn {
			n++
		}
	}
	return n
}

func courseIDs(cs []domain.Course) []int64 {
	ids := make([]int64, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
