// Package report renders aggregation results as the text lines shown to the
// user.
package report

import (
	"fmt"
	"io"

	"fintrack/internal/core"
)

const (
	CategoryTotalsHeader = "CATEGORY WISE TOTALS"
	BudgetExceeded       = "ALERT: Monthly budget exceeded!"
	WithinBudget         = "Within budget."
	NoBudget             = "No budget set for this month."
)

// CategoryTotalLine formats "<name> -> <total>".
func CategoryTotalLine(ct core.CategoryTotal) string {
	return fmt.Sprintf("%s -> %s", ct.Name, ct.Total)
}

// ExpenseLine formats "<id> | <title> | <amount> | <categoryName>".
func ExpenseLine(e core.ExpenseView) string {
	return fmt.Sprintf("%d | %s | %s | %s", e.ID, e.Title, e.Amount, e.CategoryName)
}

// BudgetLines formats the spend summary followed by the alert or the
// within-budget line, or the single no-budget line.
func BudgetLines(s core.BudgetStatus) []string {
	if !s.HasBudget {
		return []string{NoBudget}
	}
	verdict := WithinBudget
	if s.Exceeded {
		verdict = BudgetExceeded
	}
	return []string{
		fmt.Sprintf("Spent: %s / Limit: %s", s.Spent, s.Limit),
		verdict,
	}
}

func WriteCategoryTotals(w io.Writer, totals []core.CategoryTotal) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", CategoryTotalsHeader); err != nil {
		return err
	}
	for _, ct := range totals {
		if _, err := fmt.Fprintln(w, CategoryTotalLine(ct)); err != nil {
			return err
		}
	}
	return nil
}

func WriteExpenses(w io.Writer, expenses []core.ExpenseView) error {
	for _, e := range expenses {
		if _, err := fmt.Fprintln(w, ExpenseLine(e)); err != nil {
			return err
		}
	}
	return nil
}

func WriteBudgetStatus(w io.Writer, s core.BudgetStatus) error {
	for _, line := range BudgetLines(s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
