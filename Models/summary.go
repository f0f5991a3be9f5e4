package Models

import (
	"gorm.io/gorm"
)

// MonthlySummary is the materialized per-month rollup. One row per calendar
// month, keyed by "YYYY-MM". ClosingBalance = OpeningBalance + Income −
// Expenses; OpeningBalance equals the previous month's ClosingBalance (or 0
// when no previous row exists). The row is recomputed wholesale, never
// patched incrementally.
type MonthlySummary struct {
	gorm.Model
	Month          string  `json:"month" gorm:"not null;uniqueIndex"`
	OpeningBalance float64 `json:"opening_balance" gorm:"not null"`
	Income         float64 `json:"income" gorm:"not null"`
	Expenses       float64 `json:"expenses" gorm:"not null"`
	ClosingBalance float64 `json:"closing_balance" gorm:"not null"`
}
