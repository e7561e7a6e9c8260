package service

import (
	"context"
	"log/slog"

	"github.com/msomdec/edunova/internal/result"
)

// cachedList implements the cache-first list contract shared by courses and
// profiles. Unless forced, a non-empty cache is returned without touching the
// network. A successful fetch replaces the whole cache; a failed one falls
// back to the cache when it has anything to offer, after stale has flagged
// those rows as unsynced.
func cachedList[T any](
	ctx context.Context,
	logger *slog.Logger,
	what string,
	force bool,
	cached func(context.Context) ([]T, error),
	fetch func() result.Result[[]T],
	replace func(context.Context, []T) error,
	stale func(context.Context, []T) []T,
) result.Result[[]T] {
	local, err := cached(ctx)
	if err != nil {
		logger.Error("read "+what+" cache", "error", err)
	}
	if !force && len(local) > 0 {
		return result.Success(local)
	}

	res := fetch()
	switch res.State() {
	case result.StateSuccess:
		fresh := res.Data()
		if err := replace(ctx, fresh); err != nil {
			logger.Error("replace "+what+" cache", "error", err)
			return storageError[[]T](err)
		}
		return res

	case result.StateError:
		if len(local) > 0 {
			logger.Warn("serving cached "+what+" after fetch failure", "count", len(local), "error", res.Message())
			return result.Success(stale(ctx, local))
		}
	}
	return res
}

func markSynced[T any](items []T, set func(*T)) []T {
	for i := range items {
		set(&items[i])
	}
	return items
}
