package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldExpenseID   = "expense_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldMonth       = "month"
	FieldFound       = "found"
	FieldCount       = "count"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentExpense = "expense"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpCreate         = "create"
	OpRead           = "read"
	OpUpdate         = "update"
	OpDelete         = "delete"
	OpList           = "list"
	OpCategoryTotals = "category_totals"
	OpBudgetStatus   = "budget_status"
	OpStartup        = "startup"
	OpShutdown       = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id int64, amountCents int64, date string, categoryID int64) LogFields {
	if id != 0 {
		f[FieldExpenseID] = id
	}
	f[FieldAmountCents] = amountCents
	f[FieldDate] = date
	f[FieldCategoryID] = categoryID
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
