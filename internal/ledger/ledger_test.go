package ledger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return New(store)
}

func setupBudgetLine(t *testing.T, svc *Service, allocated int64) *model.BudgetLine {
	t.Helper()
	ctx := context.Background()

	budget, err := svc.CreateBudget(ctx, CreateBudgetRequest{
		ProjectName: "연구과제 A",
		FiscalYear:  2023,
		TotalAmount: 1_000_000,
	})
	require.NoError(t, err)

	line, err := svc.CreateBudgetLine(ctx, CreateBudgetLineRequest{
		BudgetID:        budget.ID,
		Category:        "meeting",
		AllocatedAmount: allocated,
	})
	require.NoError(t, err)
	return line
}

func validRequest(lineID, amount int64) RecordTransactionRequest {
	return RecordTransactionRequest{
		LineID:        lineID,
		VendorName:    "고려회관",
		Amount:        amount,
		PaymentMethod: model.PaymentCard,
		ReceiptType:   model.ReceiptCardSlip,
		Date:          "2023-03-15",
	}
}

func TestService_CreateBudget_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateBudgetRequest
	}{
		{name: "missing project name", req: CreateBudgetRequest{FiscalYear: 2023, TotalAmount: 1000}},
		{name: "missing fiscal year", req: CreateBudgetRequest{ProjectName: "p", TotalAmount: 1000}},
		{name: "zero amount", req: CreateBudgetRequest{ProjectName: "p", FiscalYear: 2023}},
		{name: "negative amount", req: CreateBudgetRequest{ProjectName: "p", FiscalYear: 2023, TotalAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBudget(ctx, tt.req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestService_RecordTransaction_Validation(t *testing.T) {
	svc := newTestService(t)
	line := setupBudgetLine(t, svc, 200_000)
	ctx := context.Background()

	tests := []struct {
		mutate func(*RecordTransactionRequest)
		name   string
	}{
		{name: "missing vendor", mutate: func(r *RecordTransactionRequest) { r.VendorName = " " }},
		{name: "zero amount", mutate: func(r *RecordTransactionRequest) { r.Amount = 0 }},
		{name: "negative amount", mutate: func(r *RecordTransactionRequest) { r.Amount = -500 }},
		{name: "unknown payment method", mutate: func(r *RecordTransactionRequest) { r.PaymentMethod = "bitcoin" }},
		{name: "unknown receipt type", mutate: func(r *RecordTransactionRequest) { r.ReceiptType = "photo" }},
		{name: "malformed date", mutate: func(r *RecordTransactionRequest) { r.Date = "15/03/2023" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(line.ID, 10_000)
			tt.mutate(&req)
			_, err := svc.RecordTransaction(ctx, req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestService_RecordTransaction_MissingLine(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RecordTransaction(context.Background(), validRequest(9999, 10_000))
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrBudgetExceeded)
}

func TestService_RecordTransaction_BudgetScenario(t *testing.T) {
	svc := newTestService(t)
	line := setupBudgetLine(t, svc, 200_000)
	ctx := context.Background()

	// 150,000 against 200,000 succeeds.
	result, err := svc.RecordTransaction(ctx, validRequest(line.ID, 150_000))
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), result.RemainingAmount)
	assert.Equal(t, result.Line.AllocatedAmount, result.Line.SpentAmount+result.RemainingAmount)

	// A further 60,000 exceeds the allocation and reports what is left.
	_, err = svc.RecordTransaction(ctx, validRequest(line.ID, 60_000))
	require.ErrorIs(t, err, common.ErrBudgetExceeded)

	var exceeded *common.BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, int64(50_000), exceeded.Remaining)

	// The failed attempt left no trace.
	summary, err := svc.LineSummary(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TransactionCount)
	assert.Equal(t, int64(150_000), summary.TotalSpent)
	assert.Equal(t, int64(50_000), summary.RemainingAmount)
	assert.InDelta(t, 75.0, summary.SpendingRate, 0.01)
}

func TestService_RecordTransaction_DefaultsDateToToday(t *testing.T) {
	svc := newTestService(t)
	line := setupBudgetLine(t, svc, 200_000)

	req := validRequest(line.ID, 10_000)
	req.Date = ""
	result, err := svc.RecordTransaction(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Transaction.Date.IsZero())
}

func TestService_RecordTransaction_Concurrent(t *testing.T) {
	svc := newTestService(t)
	line := setupBudgetLine(t, svc, 200_000)
	ctx := context.Background()

	// Two concurrent 120,000 spends against 200,000: exactly one can win.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordTransaction(ctx, validRequest(line.ID, 120_000))
		}(i)
	}
	wg.Wait()

	var successes, exceeded int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, common.ErrBudgetExceeded)
		exceeded++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, exceeded)

	summary, err := svc.LineSummary(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120_000), summary.TotalSpent)
	assert.LessOrEqual(t, summary.Line.SpentAmount, summary.Line.AllocatedAmount)
}

func TestService_InvalidateTransaction(t *testing.T) {
	svc := newTestService(t)
	line := setupBudgetLine(t, svc, 200_000)
	ctx := context.Background()

	result, err := svc.RecordTransaction(ctx, validRequest(line.ID, 150_000))
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateTransaction(ctx, result.Transaction.ID))

	summary, err := svc.LineSummary(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Equal(t, int64(200_000), summary.RemainingAmount)

	// The released budget is spendable again.
	_, err = svc.RecordTransaction(ctx, validRequest(line.ID, 180_000))
	assert.NoError(t, err)
}

func TestService_ListBudgets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setupBudgetLine(t, svc, 200_000)

	budgets, err := svc.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, int64(200_000), budgets[0].TotalAllocated)
}
