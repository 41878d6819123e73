package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// ReportStore is the read side of the repository used for aggregation.
type ReportStore interface {
	FindExpensesByDate(ctx context.Context, date string) ([]core.ExpenseView, error)
	CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error)
	SumExpensesBetween(ctx context.Context, first, last string) (core.Money, error)
	LatestBudget(ctx context.Context, month string) (core.Budget, bool, error)
}

// ReportService computes the aggregate views over recorded expenses.
type ReportService struct {
	storage ReportStore
}

func NewReportService(storage ReportStore) *ReportService {
	return &ReportService{storage: storage}
}

// ExpensesOn lists expenses whose date equals date exactly, with category
// names resolved.
func (s *ReportService) ExpensesOn(ctx context.Context, date string) ([]core.ExpenseView, error) {
	expenses, err := s.storage.FindExpensesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find expenses on %s: %w", date, err)
	}

	applog.FromContext(ctx, applog.ComponentReport).DebugContext(ctx, "Expenses by date",
		applog.FieldOperation, applog.OpList,
		applog.FieldDate, date,
		applog.FieldCount, len(expenses))
	return expenses, nil
}

// CategoryTotals sums spend per category; categories without expenses are
// left out.
func (s *ReportService) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	totals, err := s.storage.CategoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}

	applog.FromContext(ctx, applog.ComponentReport).DebugContext(ctx, "Category totals",
		applog.FieldOperation, applog.OpCategoryTotals,
		applog.FieldCount, len(totals))
	return totals, nil
}

// BudgetStatus compares the month's spend against its most recent budget.
// Spend covers expenses dated from the first to the last day of month.
// A month without a budget yields HasBudget == false.
func (s *ReportService) BudgetStatus(ctx context.Context, month string) (core.BudgetStatus, error) {
	first, last, err := core.MonthRange(month)
	if err != nil {
		return core.BudgetStatus{}, err
	}

	spent, err := s.storage.SumExpensesBetween(ctx, first, last)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("budget status %s: %w", month, err)
	}

	budget, found, err := s.storage.LatestBudget(ctx, month)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("budget status %s: %w", month, err)
	}

	status := core.BudgetStatus{Month: month, Spent: spent}
	if found {
		status = core.NewBudgetStatus(month, spent, budget.Limit)
	}

	applog.FromContext(ctx, applog.ComponentReport).DebugContext(ctx, "Budget status",
		applog.FieldOperation, applog.OpBudgetStatus,
		applog.FieldMonth, month,
		applog.FieldAmountCents, spent.Cents,
		"has_budget", status.HasBudget,
		"exceeded", status.Exceeded)
	return status, nil
}
