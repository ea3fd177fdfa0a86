package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	storage, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, storage.Close())
	})

	require.NoError(t, storage.Migrate(context.Background()))

	return storage
}

func testResult(score int) *model.ScoreResult {
	level, color, label := model.LevelForScore(score)
	return &model.ScoreResult{
		Score:      score,
		Level:      level,
		Color:      color,
		Label:      label,
		Confidence: 0.8,
		Metrics: model.SpendMetrics{
			TransactionCount: 42,
			UniqueCategories: 5,
			DateRangeDays:    90,
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	storage := createTestStorage(t)
	ctx := context.Background()

	report := &Report{
		SourceFile:  "q1.csv",
		Industry:    "technology",
		CompanySize: "small",
		Result:      testResult(82),
	}

	id, err := storage.SaveReport(ctx, report)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, report.ID, "assigned ID is written back")

	loaded, err := storage.GetReport(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "q1.csv", loaded.SourceFile)
	assert.Equal(t, "technology", loaded.Industry)
	assert.Equal(t, "small", loaded.CompanySize)
	assert.Equal(t, 82, loaded.Result.Score)
	assert.Equal(t, model.LevelGood, loaded.Result.Level)
	assert.Equal(t, 42, loaded.Result.Metrics.TransactionCount)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestSaveReport_KeepsProvidedID(t *testing.T) {
	storage := createTestStorage(t)
	ctx := context.Background()

	id, err := storage.SaveReport(ctx, &Report{
		ID:     "report-001",
		Result: testResult(55),
	})
	require.NoError(t, err)
	assert.Equal(t, "report-001", id)
}

func TestSaveReport_Invalid(t *testing.T) {
	storage := createTestStorage(t)
	ctx := context.Background()

	_, err := storage.SaveReport(ctx, nil)
	assert.Error(t, err)

	_, err = storage.SaveReport(ctx, &Report{SourceFile: "x.csv"})
	assert.Error(t, err)
}

func TestGetReport_NotFound(t *testing.T) {
	storage := createTestStorage(t)

	_, err := storage.GetReport(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListReports(t *testing.T) {
	storage := createTestStorage(t)
	ctx := context.Background()

	summaries, err := storage.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []int{30, 65, 92} {
		id := string(rune('a' + i))
		_, err := storage.SaveReport(ctx, &Report{
			ID:         id,
			SourceFile: "batch.csv",
			Result:     testResult(score),
		})
		require.NoError(t, err)

		// CURRENT_TIMESTAMP has one-second resolution; pin distinct times.
		_, err = storage.db.ExecContext(ctx,
			`UPDATE reports SET created_at = ? WHERE id = ?`,
			base.Add(time.Duration(i)*time.Minute), id)
		require.NoError(t, err)
	}

	summaries, err = storage.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Newest first.
	assert.Equal(t, 92, summaries[0].Score)
	assert.Equal(t, model.LevelExcellent, summaries[0].Level)
	assert.Equal(t, 30, summaries[2].Score)
	assert.InDelta(t, 0.8, summaries[0].Confidence, 1e-9)
	assert.False(t, summaries[0].Degraded)
}

func TestMigrate_Idempotent(t *testing.T) {
	storage := createTestStorage(t)
	require.NoError(t, storage.Migrate(context.Background()))
}
