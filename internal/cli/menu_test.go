package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func runScript(t *testing.T, script ...string) string {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "menu.db"))
	require.NoError(t, err)
	defer repo.Close()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	menu := NewMenu(in, &out, services.NewExpenseService(repo), services.NewReportService(repo))

	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestMenu_FullSession(t *testing.T) {
	out := runScript(t,
		"7", "Food",
		"1", "Lunch", "12.5", "2024-03-01", "1",
		"5",
		"4", "2024-03-01",
		"8", "2024-03", "10",
		"6", "2024-03",
		"2", "99", "5",
		"2", "1", "5",
		"6", "2024-03",
		"3", "1",
		"3", "1",
		"x",
		"9",
	)

	assert.Contains(t, out, banner)
	assert.Contains(t, out, "Category added with ID 1")
	assert.Contains(t, out, "Categories: 1=Food")
	assert.Contains(t, out, "Expense added successfully!")
	assert.Contains(t, out, "CATEGORY WISE TOTALS\nFood -> 12.5\n")
	assert.Contains(t, out, "1 | Lunch | 12.5 | Food\n")
	assert.Contains(t, out, "Budget set!")
	assert.Contains(t, out, "Spent: 12.5 / Limit: 10.0\nALERT: Monthly budget exceeded!\n")
	assert.Contains(t, out, "Expense updated!")
	assert.Contains(t, out, "Spent: 5.0 / Limit: 10.0\nWithin budget.\n")
	assert.Contains(t, out, "Expense deleted!")
	assert.Equal(t, 2, strings.Count(out, "Expense not found"))
	assert.Contains(t, out, "Invalid Choice!")
}

func TestMenu_RejectsBadInput(t *testing.T) {
	out := runScript(t,
		"1", "Lunch", "abc",
		"1", "Lunch", "5", "2024-3-1", "1",
		"7", "Food",
		"1", "Lunch", "5", "2024-03-01", "42",
		"2", "one",
		"6", "2024-1",
		"8", "2024-01", "0",
		"7", "   ",
		"9",
	)

	assert.Contains(t, out, "No categories yet, add one first (option 7)")
	assert.Contains(t, out, `Invalid amount "abc"`)
	assert.Contains(t, out, "Invalid expense: invalid date, expected YYYY-MM-DD")
	assert.Contains(t, out, "Category not found")
	assert.Contains(t, out, `Invalid ID "one"`)
	assert.Contains(t, out, "invalid month, expected YYYY-MM")
	assert.Contains(t, out, "Invalid budget: budget limit must be positive")
	assert.Contains(t, out, "Invalid category: empty name")
	assert.NotContains(t, out, "Expense added successfully!")
}

func TestMenu_NoBudgetAndEmptySearch(t *testing.T) {
	out := runScript(t,
		"7", "Food",
		"1", "Lunch", "50", "2024-01-05", "1",
		"6", "2024-01",
		"4", "2024-1-5",
		"4", " 2024-01-05",
		"4", "2024-01-05",
	)

	assert.Contains(t, out, "No budget set for this month.")
	assert.Equal(t, 2, strings.Count(out, "No expenses found"))
	assert.Contains(t, out, "1 | Lunch | 50.0 | Food\n")
}

func TestMenu_RejectsOversizedAmounts(t *testing.T) {
	out := runScript(t,
		"7", "Food",
		"1", "Lunch", "12.5", "2024-03-01", "1",
		"2", "1", "100000000000000000",
		"8", "2024-03", "1e20",
		"1", "Dinner", "1e400",
		"4", "2024-03-01",
		"6", "2024-03",
		"9",
	)

	assert.Contains(t, out, `Invalid amount "100000000000000000"`)
	assert.Contains(t, out, `Invalid amount "1e20"`)
	assert.Contains(t, out, `Invalid amount "1e400"`)
	assert.NotContains(t, out, "Expense updated!")
	assert.NotContains(t, out, "Budget set!")
	assert.Contains(t, out, "1 | Lunch | 12.5 | Food\n")
	assert.Contains(t, out, "No budget set for this month.")
}

func TestMenu_StopsReaderAfterExit(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "menu.db"))
	require.NoError(t, err)
	defer repo.Close()

	pr, pw := io.Pipe()
	defer pr.Close()
	go func() {
		for {
			if _, err := io.WriteString(pw, "9\n"); err != nil {
				return
			}
		}
	}()

	var out bytes.Buffer
	menu := NewMenu(pr, &out, services.NewExpenseService(repo), services.NewReportService(repo))
	require.NoError(t, menu.Run(context.Background()))

	closed := make(chan struct{})
	go func() {
		for range menu.lines {
		}
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("input reader still running after the menu exited")
	}
}

func TestMenu_EndOfInputMidPrompt(t *testing.T) {
	out := runScript(t, "1", "Lunch")
	assert.Contains(t, out, "Amount: ")
}

func TestMenu_ContextCancelled(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "menu.db"))
	require.NoError(t, err)
	defer repo.Close()

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	menu := NewMenu(pr, &out, services.NewExpenseService(repo), services.NewReportService(repo))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- menu.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("menu did not stop after cancellation")
	}
}
