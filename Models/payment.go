package Models

import (
	"time"

	"gorm.io/gorm"
)

// Payment marks whether a resident's dues for a month are settled.
// Month is stored canonically as "YYYY-MM"; the (user_id, month) pair is
// unique and upserted, never duplicated.
type Payment struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_month"`
	Month  string `json:"month" gorm:"not null;uniqueIndex:idx_user_month"`
	Paid   bool   `json:"paid" gorm:"not null"`
}

// PaymentTransaction is an append-only income log entry. A positive entry is
// written when a payment flips to paid; a negative, compensating entry is
// written when it flips back to unpaid. Entries are never updated in place.
type PaymentTransaction struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	FlatNumber  string    `json:"flat_number"`
	Amount      float64   `json:"amount" gorm:"not null"`
	PaymentDate time.Time `json:"payment_date" gorm:"not null;index"`
	Description string    `json:"description"`
}
