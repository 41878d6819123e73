package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// ExpenseStore is the subset of the repository the expense service writes to.
type ExpenseStore interface {
	AddExpense(ctx context.Context, e core.Expense) (int64, error)
	UpdateExpenseAmount(ctx context.Context, id int64, amount core.Money) (bool, error)
	DeleteExpense(ctx context.Context, id int64) (bool, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, bool, error)
	AddCategory(ctx context.Context, name string) (int64, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	AddBudget(ctx context.Context, b core.Budget) (int64, error)
	AddSubscription(ctx context.Context, s core.Subscription) (int64, error)
}

// ExpenseService orchestrates the mutating operations on the store.
// Inputs are expected to be validated by the caller.
type ExpenseService struct {
	storage ExpenseStore
}

func NewExpenseService(storage ExpenseStore) *ExpenseService {
	return &ExpenseService{storage: storage}
}

// AddExpense records a new expense and returns its id.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	logger := applog.FromContext(ctx, applog.ComponentExpense)

	id, err := s.storage.AddExpense(ctx, e)
	if err != nil {
		logFailure(ctx, logger, applog.OpCreate, err)
		return 0, fmt.Errorf("add expense: %w", err)
	}

	logger.DebugContext(ctx, "Expense added",
		applog.NewFields().WithOperation(applog.OpCreate).WithExpense(id, e.Amount.Cents, e.Date, e.CategoryID).ToSlice()...)
	return id, nil
}

// UpdateExpenseAmount changes the amount of an existing expense. found is
// false when id does not exist. Out-of-range amounts are rejected before the
// store is touched.
func (s *ExpenseService) UpdateExpenseAmount(ctx context.Context, id int64, amount core.Money) (bool, error) {
	logger := applog.FromContext(ctx, applog.ComponentExpense)

	if err := core.ValidateAmount(amount); err != nil {
		logFailure(ctx, logger, applog.OpUpdate, err)
		return false, fmt.Errorf("update expense %d: %w", id, err)
	}

	found, err := s.storage.UpdateExpenseAmount(ctx, id, amount)
	if err != nil {
		logFailure(ctx, logger, applog.OpUpdate, err)
		return false, fmt.Errorf("update expense %d: %w", id, err)
	}

	logger.DebugContext(ctx, "Expense amount update",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldExpenseID, id,
		applog.FieldFound, found)
	return found, nil
}

// DeleteExpense removes an expense. found is false when id does not exist.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	logger := applog.FromContext(ctx, applog.ComponentExpense)

	found, err := s.storage.DeleteExpense(ctx, id)
	if err != nil {
		logFailure(ctx, logger, applog.OpDelete, err)
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}

	logger.DebugContext(ctx, "Expense delete",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id,
		applog.FieldFound, found)
	return found, nil
}

// GetExpense reads a single expense back.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, bool, error) {
	logger := applog.FromContext(ctx, applog.ComponentExpense)

	e, found, err := s.storage.GetExpense(ctx, id)
	if err != nil {
		logFailure(ctx, logger, applog.OpRead, err)
		return core.Expense{}, false, fmt.Errorf("get expense %d: %w", id, err)
	}

	logger.DebugContext(ctx, "Expense read",
		applog.FieldOperation, applog.OpRead,
		applog.FieldExpenseID, id,
		applog.FieldFound, found)
	return e, found, nil
}

func (s *ExpenseService) AddCategory(ctx context.Context, name string) (int64, error) {
	id, err := s.storage.AddCategory(ctx, name)
	if err != nil {
		logFailure(ctx, applog.FromContext(ctx, applog.ComponentExpense), applog.OpCreate, err)
		return 0, fmt.Errorf("add category: %w", err)
	}
	return id, nil
}

func (s *ExpenseService) ListCategories(ctx context.Context) ([]core.Category, error) {
	cats, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *ExpenseService) AddBudget(ctx context.Context, b core.Budget) (int64, error) {
	id, err := s.storage.AddBudget(ctx, b)
	if err != nil {
		logFailure(ctx, applog.FromContext(ctx, applog.ComponentExpense), applog.OpCreate, err)
		return 0, fmt.Errorf("add budget: %w", err)
	}
	return id, nil
}

func (s *ExpenseService) AddSubscription(ctx context.Context, sub core.Subscription) (int64, error) {
	id, err := s.storage.AddSubscription(ctx, sub)
	if err != nil {
		logFailure(ctx, applog.FromContext(ctx, applog.ComponentExpense), applog.OpCreate, err)
		return 0, fmt.Errorf("add subscription: %w", err)
	}
	return id, nil
}

func logFailure(ctx context.Context, logger *applog.Logger, op string, err error) {
	errorType := applog.ErrorTypeInternal
	switch {
	case core.IsStorageFailure(err):
		errorType = applog.ErrorTypeDatabase
	case errors.Is(err, core.ErrUnknownCategory), errors.Is(err, core.ErrInvalidAmount):
		errorType = applog.ErrorTypeValidation
	}
	logger.ErrorContext(ctx, "Operation failed",
		applog.NewFields().WithOperation(op).WithErrorType(errorType).WithError(err).ToSlice()...)
}
