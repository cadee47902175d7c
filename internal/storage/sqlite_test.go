package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
)

// Helper function to create a migrated test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "failed to create storage")

	require.NoError(t, store.Migrate(context.Background()), "failed to migrate")
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func createTestBudget(t *testing.T, store *SQLiteStorage, total int64) *model.Budget {
	t.Helper()
	budget, err := store.CreateBudget(context.Background(), &model.Budget{
		ProjectName: "테스트 프로젝트",
		FiscalYear:  2023,
		TotalAmount: total,
	})
	require.NoError(t, err)
	return budget
}

func createTestLine(t *testing.T, store *SQLiteStorage, budgetID int64, category string, allocated int64) *model.BudgetLine {
	t.Helper()
	line, err := store.CreateBudgetLine(context.Background(), &model.BudgetLine{
		BudgetID:        budgetID,
		Category:        category,
		AllocatedAmount: allocated,
	})
	require.NoError(t, err)
	return line
}

func TestSQLiteStorage_CreateBudget(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	assert.NotZero(t, budget.ID)
	assert.False(t, budget.CreatedAt.IsZero())

	got, err := store.GetBudget(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "테스트 프로젝트", got.ProjectName)
	assert.Equal(t, 2023, got.FiscalYear)
	assert.Equal(t, int64(1_000_000), got.TotalAmount)
}

func TestSQLiteStorage_GetBudget_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetBudget(context.Background(), 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_CreateBudgetLine(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	line := createTestLine(t, store, budget.ID, "meeting", 200_000)

	assert.NotZero(t, line.ID)
	assert.Equal(t, int64(0), line.SpentAmount)
	assert.Equal(t, int64(200_000), line.RemainingAmount())

	got, err := store.GetBudgetLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, "meeting", got.Category)
}

func TestSQLiteStorage_CreateBudgetLine_MissingBudget(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.CreateBudgetLine(context.Background(), &model.BudgetLine{
		BudgetID:        9999,
		Category:        "meeting",
		AllocatedAmount: 100_000,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_GetBudgetWithLines(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	createTestLine(t, store, budget.ID, "meeting", 200_000)
	createTestLine(t, store, budget.ID, "refreshments", 100_000)

	got, err := store.GetBudgetWithLines(ctx, budget.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 2)
	assert.Equal(t, int64(300_000), got.TotalAllocated)
	assert.Equal(t, int64(0), got.TotalSpent)
	assert.Equal(t, int64(300_000), got.TotalRemaining)
}

func TestSQLiteStorage_ListBudgets(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := createTestBudget(t, store, 500_000)
	second := createTestBudget(t, store, 800_000)

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	// Newest first.
	assert.Equal(t, second.ID, budgets[0].Budget.ID)
	assert.Equal(t, first.ID, budgets[1].Budget.ID)
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		run  func() error
		name string
	}{
		{
			name: "nil budget",
			run: func() error {
				_, err := store.CreateBudget(ctx, nil)
				return err
			},
		},
		{
			name: "empty project name",
			run: func() error {
				_, err := store.CreateBudget(ctx, &model.Budget{FiscalYear: 2023, TotalAmount: 1000})
				return err
			},
		},
		{
			name: "non-positive total",
			run: func() error {
				_, err := store.CreateBudget(ctx, &model.Budget{ProjectName: "p", FiscalYear: 2023})
				return err
			},
		},
		{
			name: "nil line",
			run: func() error {
				_, err := store.CreateBudgetLine(ctx, nil)
				return err
			},
		},
		{
			name: "line with empty category",
			run: func() error {
				_, err := store.CreateBudgetLine(ctx, &model.BudgetLine{BudgetID: 1, AllocatedAmount: 1000})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.run())
		})
	}
}
