package core

import (
	"strings"
	"time"
)

// Strategy names a debt ordering policy.
type Strategy string

const (
	Snowball  Strategy = "snowball"
	Avalanche Strategy = "avalanche"
)

// ParseStrategy normalises user input. Empty input means avalanche.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Snowball:
		return Snowball, true
	case Avalanche, "":
		return Avalanche, true
	}
	return "", false
}

// PayoffScheduleEntry records the month a debt was retired. TotalPaid is
// cumulative across all debts up to and including that month.
type PayoffScheduleEntry struct {
	ID           string  `json:"id"`
	Creditor     string  `json:"creditor"`
	MonthPaidOff int     `json:"month_paid_off"`
	TotalPaid    float64 `json:"total_paid"`
}

type PayoffPlan struct {
	Strategy       Strategy              `json:"strategy"`
	Schedule       []PayoffScheduleEntry `json:"schedule"`
	TotalMonths    int                   `json:"total_months"`
	TotalPaid      float64               `json:"total_paid"`
	RemainingDebts int                   `json:"remaining_debts"`
}

// Converged reports whether every debt was retired within the horizon.
func (p PayoffPlan) Converged() bool {
	return p.RemainingDebts == 0
}

// SavedPlan is a computed plan persisted for later display. InputHash
// identifies the debt list and extra payment it was computed from.
type SavedPlan struct {
	ID        string     `json:"id"`
	Strategy  Strategy   `json:"strategy"`
	Extra     float64    `json:"extra"`
	InputHash string     `json:"input_hash"`
	Plan      PayoffPlan `json:"plan"`
	CreatedAt time.Time  `json:"created_at"`
}
