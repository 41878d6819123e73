package core

// CategoryTotal is the summed expense amount for one category name.
type CategoryTotal struct {
	Name  string
	Total Money
}

// BudgetStatus compares the spend for a month against its budget.
// When HasBudget is false, Limit and Exceeded carry no meaning.
type BudgetStatus struct {
	Month     string
	Spent     Money
	Limit     Money
	HasBudget bool
	Exceeded  bool
}

// NewBudgetStatus builds the status for a month where a budget exists.
// Spending exactly the limit is within budget.
func NewBudgetStatus(month string, spent, limit Money) BudgetStatus {
	return BudgetStatus{
		Month:     month,
		Spent:     spent,
		Limit:     limit,
		HasBudget: true,
		Exceeded:  spent.GreaterThan(limit),
	}
}
