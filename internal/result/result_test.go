package result_test

import (
	"errors"
	"testing"

	"github.com/msomdec/edunova/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsLoading(t *testing.T) {
	var r result.Result[int]
	assert.True(t, r.IsLoading())
	assert.NoError(t, r.Err())
}

func TestErrorExposesFailure(t *testing.T) {
	r := result.Error[string](result.KindNetwork, "network connection error: refused")

	require.True(t, r.IsError())
	err := r.Err()
	require.Error(t, err)

	var f *result.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, result.KindNetwork, f.Kind)
	assert.Equal(t, "network connection error: refused", err.Error())
}

func TestMap(t *testing.T) {
	ok := result.Map(result.Success(21), func(v int) int { return v * 2 })
	assert.Equal(t, 42, ok.Data())

	failed := result.Map(result.Error[int](result.KindServer, "boom"), func(v int) string { return "never" })
	assert.True(t, failed.IsError())
	assert.Equal(t, "boom", failed.Message())
	assert.Equal(t, result.KindServer, failed.Kind())

	loading := result.Map(result.Loading[int](), func(v int) bool { return true })
	assert.True(t, loading.IsLoading())
}

func TestRecastPanicsOnSuccess(t *testing.T) {
	assert.Panics(t, func() { result.Recast[string](result.Success(1)) })
}
