package Models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a building expense log entry. Independently deletable; the
// monthly rollup picks the change up on its next recompute.
type Expense struct {
	gorm.Model
	Description string    `json:"description" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
}
