package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func TestCategoryTotalLine(t *testing.T) {
	assert.Equal(t, "Food -> 12.5", CategoryTotalLine(core.CategoryTotal{Name: "Food", Total: core.Money{Cents: 1250}}))
	assert.Equal(t, "Rent -> 900.0", CategoryTotalLine(core.CategoryTotal{Name: "Rent", Total: core.Money{Cents: 90000}}))
}

func TestExpenseLine(t *testing.T) {
	e := core.ExpenseView{
		Expense:      core.Expense{ID: 3, Title: "Lunch", Amount: core.Money{Cents: 1250}, Date: "2024-03-01", CategoryID: 1},
		CategoryName: "Food",
	}
	assert.Equal(t, "3 | Lunch | 12.5 | Food", ExpenseLine(e))
}

func TestBudgetLines(t *testing.T) {
	tests := []struct {
		name   string
		status core.BudgetStatus
		want   []string
	}{
		{
			name:   "exceeded",
			status: core.NewBudgetStatus("2024-01", core.Money{Cents: 11000}, core.Money{Cents: 10000}),
			want:   []string{"Spent: 110.0 / Limit: 100.0", BudgetExceeded},
		},
		{
			name:   "equal to limit",
			status: core.NewBudgetStatus("2024-01", core.Money{Cents: 11000}, core.Money{Cents: 11000}),
			want:   []string{"Spent: 110.0 / Limit: 110.0", WithinBudget},
		},
		{
			name:   "no budget",
			status: core.BudgetStatus{Month: "2024-01", Spent: core.Money{Cents: 5000}},
			want:   []string{NoBudget},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetLines(tt.status))
		})
	}
}

func TestWriters(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCategoryTotals(&buf, []core.CategoryTotal{
		{Name: "Food", Total: core.Money{Cents: 2550}},
		{Name: "Travel", Total: core.Money{Cents: 4000}},
	}))
	assert.Equal(t, "\nCATEGORY WISE TOTALS\nFood -> 25.5\nTravel -> 40.0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteExpenses(&buf, []core.ExpenseView{
		{Expense: core.Expense{ID: 1, Title: "Lunch", Amount: core.Money{Cents: 1250}}, CategoryName: "Food"},
	}))
	assert.Equal(t, "1 | Lunch | 12.5 | Food\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBudgetStatus(&buf, core.BudgetStatus{}))
	assert.Equal(t, NoBudget+"\n", buf.String())
}
