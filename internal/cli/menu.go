package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

const banner = "========== FINTRACK PRO =========="

// Menu is the interactive text front end. Every choice maps to one service
// call; input is validated here before it reaches the services.
type Menu struct {
	expenses *services.ExpenseService
	reports  *services.ReportService
	out      io.Writer
	lines    <-chan string
	done     chan struct{}
	stopOnce sync.Once
}

// NewMenu starts reading lines from in. Reading happens on its own goroutine
// so that a cancelled context can interrupt a pending prompt. The goroutine
// exits once Run returns, at the latest after the next line arrives.
func NewMenu(in io.Reader, out io.Writer, expenses *services.ExpenseService, reports *services.ReportService) *Menu {
	lines := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	return &Menu{
		expenses: expenses,
		reports:  reports,
		out:      out,
		lines:    lines,
		done:     done,
	}
}

// Run loops over the menu until the user exits, input ends, or ctx is
// cancelled. Only cancellation is returned as an error. A Menu runs once.
func (m *Menu) Run(ctx context.Context) error {
	defer m.stopOnce.Do(func() { close(m.done) })
	logger := applog.FromContext(ctx, applog.ComponentCLI)

	for {
		m.printMenu()
		choice, err := m.prompt(ctx, "Select Option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = m.addExpense(ctx)
		case "2":
			actionErr = m.updateExpense(ctx)
		case "3":
			actionErr = m.deleteExpense(ctx)
		case "4":
			actionErr = m.searchByDate(ctx)
		case "5":
			actionErr = m.categoryTotals(ctx)
		case "6":
			actionErr = m.budgetStatus(ctx)
		case "7":
			actionErr = m.addCategory(ctx)
		case "8":
			actionErr = m.setBudget(ctx)
		case "9":
			return nil
		default:
			m.println("Invalid Choice!")
			continue
		}

		switch {
		case actionErr == nil:
		case errors.Is(actionErr, io.EOF):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case core.IsStorageFailure(actionErr):
			logger.ErrorContext(ctx, "Storage failure", applog.FieldError, actionErr)
			m.println("Storage error: " + actionErr.Error())
		default:
			m.println("Error: " + actionErr.Error())
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\n" + banner)
	m.println("1. Add Expense\n2. Update Expense\n3. Delete Expense")
	m.println("4. Search by Date\n5. Category Analytics\n6. Budget Alert")
	m.println("7. Add Category\n8. Set Budget\n9. Exit")
}

func (m *Menu) addExpense(ctx context.Context) error {
	if err := m.printCategories(ctx); err != nil {
		return err
	}

	title, err := m.prompt(ctx, "Expense Title: ")
	if err != nil {
		return err
	}
	amount, ok, err := m.promptAmount(ctx, "Amount: ")
	if err != nil || !ok {
		return err
	}
	date, err := m.prompt(ctx, "Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	categoryID, ok, err := m.promptID(ctx, "Category ID: ")
	if err != nil || !ok {
		return err
	}

	e := core.Expense{Title: title, Amount: amount, Date: date, CategoryID: categoryID}
	if err := e.Validate(); err != nil {
		m.println("Invalid expense: " + err.Error())
		return nil
	}

	if _, err := m.expenses.AddExpense(ctx, e); err != nil {
		if errors.Is(err, core.ErrUnknownCategory) {
			m.println("Category not found")
			return nil
		}
		return err
	}
	m.println("Expense added successfully!")
	return nil
}

func (m *Menu) updateExpense(ctx context.Context) error {
	id, ok, err := m.promptID(ctx, "Enter Expense ID to update: ")
	if err != nil || !ok {
		return err
	}
	amount, ok, err := m.promptAmount(ctx, "New Amount: ")
	if err != nil || !ok {
		return err
	}

	found, err := m.expenses.UpdateExpenseAmount(ctx, id, amount)
	if err != nil {
		return err
	}
	if !found {
		m.println("Expense not found")
		return nil
	}
	m.println("Expense updated!")
	return nil
}

func (m *Menu) deleteExpense(ctx context.Context) error {
	id, ok, err := m.promptID(ctx, "Enter Expense ID to delete: ")
	if err != nil || !ok {
		return err
	}

	found, err := m.expenses.DeleteExpense(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		m.println("Expense not found")
		return nil
	}
	m.println("Expense deleted!")
	return nil
}

// searchByDate matches the date string exactly, so it is neither validated
// nor trimmed.
func (m *Menu) searchByDate(ctx context.Context) error {
	date, err := m.readLine(ctx, "Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	expenses, err := m.reports.ExpensesOn(ctx, date)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		m.println("No expenses found")
		return nil
	}
	return report.WriteExpenses(m.out, expenses)
}

func (m *Menu) categoryTotals(ctx context.Context) error {
	totals, err := m.reports.CategoryTotals(ctx)
	if err != nil {
		return err
	}
	return report.WriteCategoryTotals(m.out, totals)
}

func (m *Menu) budgetStatus(ctx context.Context) error {
	month, err := m.prompt(ctx, "Enter month (YYYY-MM): ")
	if err != nil {
		return err
	}
	if err := core.ValidateMonth(month); err != nil {
		m.println(err.Error())
		return nil
	}

	status, err := m.reports.BudgetStatus(ctx, month)
	if err != nil {
		return err
	}
	return report.WriteBudgetStatus(m.out, status)
}

func (m *Menu) addCategory(ctx context.Context) error {
	name, err := m.prompt(ctx, "Category Name: ")
	if err != nil {
		return err
	}
	if err := (core.Category{Name: name}).Validate(); err != nil {
		m.println("Invalid category: " + err.Error())
		return nil
	}

	id, err := m.expenses.AddCategory(ctx, name)
	if err != nil {
		return err
	}
	m.println(fmt.Sprintf("Category added with ID %d", id))
	return nil
}

func (m *Menu) setBudget(ctx context.Context) error {
	month, err := m.prompt(ctx, "Month (YYYY-MM): ")
	if err != nil {
		return err
	}
	limit, ok, err := m.promptAmount(ctx, "Limit: ")
	if err != nil || !ok {
		return err
	}

	b := core.Budget{Month: month, Limit: limit}
	if err := b.Validate(); err != nil {
		m.println("Invalid budget: " + err.Error())
		return nil
	}

	if _, err := m.expenses.AddBudget(ctx, b); err != nil {
		return err
	}
	m.println("Budget set!")
	return nil
}

func (m *Menu) printCategories(ctx context.Context) error {
	cats, err := m.expenses.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		m.println("No categories yet, add one first (option 7)")
		return nil
	}
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = fmt.Sprintf("%d=%s", c.ID, c.Name)
	}
	m.println("Categories: " + strings.Join(parts, ", "))
	return nil
}

// prompt writes label and returns the next input line with surrounding
// whitespace removed.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	line, err := m.readLine(ctx, label)
	return strings.TrimSpace(line), err
}

// readLine writes label and returns the next input line as typed.
func (m *Menu) readLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// promptAmount reads a non-negative decimal. ok is false when the input was
// rejected and the user has been told so.
func (m *Menu) promptAmount(ctx context.Context, label string) (core.Money, bool, error) {
	raw, err := m.prompt(ctx, label)
	if err != nil {
		return core.Money{}, false, err
	}
	amount, err := core.ParseAmount(raw)
	if err != nil {
		m.println(fmt.Sprintf("Invalid amount %q", raw))
		return core.Money{}, false, nil
	}
	return amount, true, nil
}

func (m *Menu) promptID(ctx context.Context, label string) (int64, bool, error) {
	raw, err := m.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.println(fmt.Sprintf("Invalid ID %q", raw))
		return 0, false, nil
	}
	return id, true, nil
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
