package store

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billflow-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "january.csv")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	result := &model.ConversionResult{
		Success:       true,
		SourceTotal:   1414.88,
		ComputedTotal: 1414.88,
		PerfectMatch:  true,
		TotalLines:    9,
	}
	require.NoError(t, s.CompleteRun(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, "january.csv", got.SourceFile)
	require.NotNil(t, got.Result)
	assert.True(t, got.Result.PerfectMatch)
	assert.Equal(t, 9, got.Result.TotalLines)
}

func TestSQLiteStore_FailRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "broken.xlsx")
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, eris.New("unparseable date in row 4")))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "unparseable date")
	assert.Nil(t, got.Result)
}

func TestSQLiteStore_UpdateMissingRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	err := s.CompleteRun(ctx, "no-such-run", &model.ConversionResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = s.FailRun(ctx, "no-such-run", eris.New("boom"))
	require.Error(t, err)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "jan.csv")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "feb.csv")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, a.ID, &model.ConversionResult{Success: true}))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	byFile, err := s.ListRuns(ctx, RunFilter{SourceFile: "feb.csv"})
	require.NoError(t, err)
	require.Len(t, byFile, 1)
	assert.Equal(t, "feb.csv", byFile[0].SourceFile)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
