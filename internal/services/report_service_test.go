package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

type fixture struct {
	expenses *ExpenseService
	reports  *ReportService
}

func newFixture(t *testing.T) fixture {
	repo := newRepo(t)
	return fixture{expenses: NewExpenseService(repo), reports: NewReportService(repo)}
}

func (f fixture) category(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.expenses.AddCategory(context.Background(), name)
	require.NoError(t, err)
	return id
}

func (f fixture) expense(t *testing.T, title, amount, date string, categoryID int64) int64 {
	t.Helper()
	m, err := core.ParseAmount(amount)
	require.NoError(t, err)
	id, err := f.expenses.AddExpense(context.Background(), core.Expense{Title: title, Amount: m, Date: date, CategoryID: categoryID})
	require.NoError(t, err)
	return id
}

func (f fixture) budget(t *testing.T, month, limit string) {
	t.Helper()
	m, err := core.ParseAmount(limit)
	require.NoError(t, err)
	_, err = f.expenses.AddBudget(context.Background(), core.Budget{Month: month, Limit: m})
	require.NoError(t, err)
}

func TestReportService_ExpensesOn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	food := f.category(t, "Food")

	id := f.expense(t, "Lunch", "12.5", "2024-03-01", food)

	got, err := f.reports.ExpensesOn(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 1, "added expense appears exactly once")
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Food", got[0].CategoryName)

	got, err = f.reports.ExpensesOn(ctx, "2024-3-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReportService_CategoryTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	food := f.category(t, "Food")
	f.category(t, "Unused")

	f.expense(t, "a", "10.0", "2024-03-01", food)
	f.expense(t, "b", "15.5", "2024-03-02", food)

	totals, err := f.reports.CategoryTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "Food", totals[0].Name)
	assert.Equal(t, "25.5", totals[0].Total.String())
}

func TestReportService_BudgetStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		limit        string
		wantExceeded bool
	}{
		{"over limit", "100", true},
		{"equal to limit is within budget", "110", false},
		{"under limit", "200", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cat := f.category(t, "General")
			f.expense(t, "a", "50", "2024-01-05", cat)
			f.expense(t, "b", "60", "2024-01-20", cat)
			f.budget(t, "2024-01", tt.limit)

			status, err := f.reports.BudgetStatus(ctx, "2024-01")
			require.NoError(t, err)
			assert.True(t, status.HasBudget)
			assert.Equal(t, int64(11000), status.Spent.Cents)
			assert.Equal(t, tt.wantExceeded, status.Exceeded)
		})
	}
}

func TestReportService_BudgetStatus_NoBudget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cat := f.category(t, "General")
	f.expense(t, "a", "50", "2024-01-05", cat)
	f.budget(t, "2024-02", "10")

	status, err := f.reports.BudgetStatus(ctx, "2024-01")
	require.NoError(t, err)
	assert.False(t, status.HasBudget)
	assert.False(t, status.Exceeded)
	assert.Equal(t, int64(5000), status.Spent.Cents)

	empty, err := f.reports.BudgetStatus(ctx, "2024-03")
	require.NoError(t, err)
	assert.False(t, empty.HasBudget)
	assert.Equal(t, int64(0), empty.Spent.Cents)
}

func TestReportService_BudgetStatus_LatestBudgetWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cat := f.category(t, "General")
	f.expense(t, "a", "150", "2024-01-05", cat)
	f.budget(t, "2024-01", "100")
	f.budget(t, "2024-01", "200")

	status, err := f.reports.BudgetStatus(ctx, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), status.Limit.Cents)
	assert.False(t, status.Exceeded)
}

func TestReportService_BudgetStatus_CalendarRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cat := f.category(t, "General")
	f.expense(t, "valid", "10", "2024-01-31", cat)
	f.expense(t, "malformed", "500", "2024-01-5x", cat)
	f.expense(t, "unpadded", "500", "2024-1-05", cat)
	f.budget(t, "2024-01", "20")

	status, err := f.reports.BudgetStatus(ctx, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), status.Spent.Cents)
	assert.False(t, status.Exceeded)
}

func TestReportService_BudgetStatus_InvalidMonth(t *testing.T) {
	f := newFixture(t)

	for _, month := range []string{"2024-1", "2024%", "January"} {
		_, err := f.reports.BudgetStatus(context.Background(), month)
		assert.ErrorIs(t, err, core.ErrInvalidMonth, month)
	}
}

func TestReportService_StorageFailures(t *testing.T) {
	ctx := context.Background()
	reports := NewReportService(failingStore{})

	_, err := reports.ExpensesOn(ctx, "2024-01-01")
	assert.True(t, core.IsStorageFailure(err))

	_, err = reports.CategoryTotals(ctx)
	assert.True(t, core.IsStorageFailure(err))

	_, err = reports.BudgetStatus(ctx, "2024-01")
	assert.True(t, core.IsStorageFailure(err))
}
