package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
)

func testTransaction(lineID, amount int64) *model.Transaction {
	return &model.Transaction{
		BudgetLineID:  lineID,
		Date:          time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		VendorName:    "고려회관",
		Amount:        amount,
		PaymentMethod: model.PaymentCard,
		ReceiptType:   model.ReceiptCardSlip,
		IsValid:       true,
	}
}

func TestSQLiteStorage_RecordTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	line := createTestLine(t, store, budget.ID, "meeting", 200_000)

	// First spend fits comfortably.
	txn, updated, err := store.RecordTransaction(ctx, testTransaction(line.ID, 150_000))
	require.NoError(t, err)
	assert.NotZero(t, txn.ID)
	assert.Equal(t, int64(150_000), updated.SpentAmount)
	assert.Equal(t, int64(50_000), updated.RemainingAmount())

	// Second spend would push past the allocation and must be rejected
	// without changing the line.
	_, _, err = store.RecordTransaction(ctx, testTransaction(line.ID, 60_000))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBudgetExceeded)

	var exceeded *common.BudgetExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.Equal(t, int64(50_000), exceeded.Remaining)

	after, err := store.GetBudgetLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), after.SpentAmount)

	// A spend that exactly exhausts the remaining amount is allowed.
	_, exhausted, err := store.RecordTransaction(ctx, testTransaction(line.ID, 50_000))
	require.NoError(t, err)
	assert.Equal(t, int64(0), exhausted.RemainingAmount())
	assert.Equal(t, exhausted.AllocatedAmount, exhausted.SpentAmount)
}

func TestSQLiteStorage_RecordTransaction_MissingLine(t *testing.T) {
	store := createTestStorage(t)

	_, _, err := store.RecordTransaction(context.Background(), testTransaction(9999, 1000))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_RecordTransaction_InvariantHolds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	line := createTestLine(t, store, budget.ID, "meals", 100_000)

	amounts := []int64{30_000, 25_000, 40_000, 10_000, 5_000}
	for _, amount := range amounts {
		_, updated, err := store.RecordTransaction(ctx, testTransaction(line.ID, amount))
		if err != nil {
			assert.ErrorIs(t, err, common.ErrBudgetExceeded)
			continue
		}
		// remaining + spent == allocated after every success.
		assert.Equal(t, updated.AllocatedAmount, updated.SpentAmount+updated.RemainingAmount())
		assert.LessOrEqual(t, updated.SpentAmount, updated.AllocatedAmount)
	}
}

func TestSQLiteStorage_GetValidTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	line := createTestLine(t, store, budget.ID, "meeting", 500_000)

	first := testTransaction(line.ID, 100_000)
	first.Date = time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)
	second := testTransaction(line.ID, 50_000)
	second.Date = time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC)

	savedSecond, _, err := store.RecordTransaction(ctx, second)
	require.NoError(t, err)
	_, _, err = store.RecordTransaction(ctx, first)
	require.NoError(t, err)

	txns, err := store.GetValidTransactions(ctx, line.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Ordered by date ascending, not insertion order.
	assert.Equal(t, int64(100_000), txns[0].Amount)
	assert.Equal(t, savedSecond.ID, txns[1].ID)
}

func TestSQLiteStorage_InvalidateTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := createTestBudget(t, store, 1_000_000)
	line := createTestLine(t, store, budget.ID, "meeting", 200_000)

	txn, _, err := store.RecordTransaction(ctx, testTransaction(line.ID, 150_000))
	require.NoError(t, err)

	require.NoError(t, store.InvalidateTransaction(ctx, txn.ID))

	// The spend is released back to the line.
	after, err := store.GetBudgetLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.SpentAmount)
	assert.Equal(t, int64(200_000), after.RemainingAmount())

	// The transaction is excluded from the valid set, not deleted.
	txns, err := store.GetValidTransactions(ctx, line.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)

	// Invalidating twice does not release the amount twice.
	require.NoError(t, store.InvalidateTransaction(ctx, txn.ID))
	again, err := store.GetBudgetLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.SpentAmount)
}

func TestSQLiteStorage_InvalidateTransaction_NotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.InvalidateTransaction(context.Background(), 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
