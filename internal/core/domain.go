package core

import (
	"errors"
	"strings"
)

type (
	Category struct {
		ID   int64
		Name string
	}

	Expense struct {
		ID         int64
		Title      string
		Amount     Money
		Date       string // YYYY-MM-DD, compared as a string
		CategoryID int64
	}

	// ExpenseView is an Expense with its owning category name resolved.
	ExpenseView struct {
		Expense
		CategoryName string
	}

	Subscription struct {
		ID       int64
		Name     string
		Amount   Money
		NextDate string // YYYY-MM-DD
	}

	Budget struct {
		ID    int64
		Month string // YYYY-MM
		Limit Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("invalid month, expected YYYY-MM")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyName        = errors.New("empty name")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrNonPositiveLimit = errors.New("budget limit must be positive")
)

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if e.CategoryID <= 0 {
		return ErrUnknownCategory
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if err := ValidateMonth(b.Month); err != nil {
		return err
	}
	if b.Limit.Cents <= 0 {
		return ErrNonPositiveLimit
	}
	return ValidateAmount(b.Limit)
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(s.Amount); err != nil {
		return err
	}
	return ValidateDate(s.NextDate)
}
