package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  LedgerType = "income"
	Expense LedgerType = "expense"
)

const (
	BillPlanned BillStatus = "planned"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"
)

const (
	RecurNone      RecurrenceRule = "none"
	RecurWeekly    RecurrenceRule = "weekly"
	RecurMonthly   RecurrenceRule = "monthly"
	RecurQuarterly RecurrenceRule = "quarterly"
	RecurYearly    RecurrenceRule = "yearly"
)

type (
	LedgerType     string
	BillStatus     string
	RecurrenceRule string

	// LedgerItem is one income or expense transaction.
	LedgerItem struct {
		ID       string     `json:"id,omitempty"`
		Type     LedgerType `json:"type"`
		Amount   float64    `json:"amount"`
		Category string     `json:"category,omitempty"`
		Date     Date       `json:"date"`
	}

	// Bill is a payable with an externally assigned status.
	Bill struct {
		ID             string         `json:"id,omitempty"`
		Name           string         `json:"name,omitempty"`
		Amount         float64        `json:"amount"`
		Status         BillStatus     `json:"status"`
		DueDate        Date           `json:"due_date"`
		RecurrenceRule RecurrenceRule `json:"recurrence_rule,omitempty"`
	}

	// Debt is an amortizing liability. InterestRateAPR is a percentage (20 means 20%/year).
	Debt struct {
		ID              string  `json:"id"`
		Creditor        string  `json:"creditor,omitempty"`
		Principal       float64 `json:"principal"`
		MinPayment      float64 `json:"min_payment"`
		InterestRateAPR float64 `json:"interest_rate_apr"`
	}

	Asset struct {
		ID    string  `json:"id,omitempty"`
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	Liability struct {
		ID     string  `json:"id,omitempty"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid ledger type")
	ErrInvalidStatus   = errors.New("invalid bill status")
	ErrInvalidRule     = errors.New("invalid recurrence rule")
	ErrInvalidRate     = errors.New("invalid interest rate")
	ErrEmptyCreditor   = errors.New("empty creditor")
	ErrEmptyName       = errors.New("empty name")
	ErrMissingDueDate  = errors.New("missing due date")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
	ErrNameTooLong     = errors.New("name too long (max 200 characters)")

	// ErrNotFound is returned by stores when a record id does not exist.
	ErrNotFound = errors.New("not found")
)

// Valid reports whether s is one of the three recognised statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillPlanned, BillPaid, BillOverdue:
		return true
	}
	return false
}

func (r RecurrenceRule) Valid() bool {
	switch r {
	case "", RecurNone, RecurWeekly, RecurMonthly, RecurQuarterly, RecurYearly:
		return true
	}
	return false
}

// Recurring reports whether the rule produces more than one occurrence.
func (r RecurrenceRule) Recurring() bool {
	return r != "" && r != RecurNone
}

func validMoney(v float64) bool {
	return v >= 0 && !isInfOrNaN(v)
}

func isInfOrNaN(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func (i LedgerItem) Validate() error {
	if i.Type != Income && i.Type != Expense {
		return ErrInvalidType
	}
	if !validMoney(i.Amount) || i.Amount == 0 {
		return ErrInvalidAmount
	}
	if len(i.Category) > 100 {
		return ErrCategoryTooLong
	}
	return nil
}

func (b Bill) Validate() error {
	if !validMoney(b.Amount) || b.Amount == 0 {
		return ErrInvalidAmount
	}
	if b.Status != "" && !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if b.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if !b.RecurrenceRule.Valid() {
		return ErrInvalidRule
	}
	if len(b.Name) > 200 {
		return ErrNameTooLong
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Creditor) == "" {
		return ErrEmptyCreditor
	}
	if len(d.Creditor) > 200 {
		return ErrNameTooLong
	}
	if !validMoney(d.Principal) || !validMoney(d.MinPayment) {
		return ErrInvalidAmount
	}
	if isInfOrNaN(d.InterestRateAPR) || d.InterestRateAPR < 0 || d.InterestRateAPR > 1000 {
		return ErrInvalidRate
	}
	return nil
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !validMoney(a.Value) {
		return ErrInvalidAmount
	}
	return nil
}

func (l Liability) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if !validMoney(l.Amount) {
		return ErrInvalidAmount
	}
	return nil
}

// NewDate creates a new Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}
