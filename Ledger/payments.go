package Ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"Hestia/Models"
)

// PaymentInput carries a payment state change for one resident and month.
// Amount falls back to the configured monthly fee when zero.
type PaymentInput struct {
	UserID     uint
	Month      string
	Paid       bool
	Amount     float64
	FlatNumber string
}

// RecordPayment applies a payment state change as one atomic transaction:
// the Payment row is upserted, a ledger entry is appended for the transition
// (positive on unpaid→paid, compensating negative on paid→unpaid), and the
// month's rollup is recomputed. Either all three effects land or none do.
// Re-sending the current state is a no-op apart from the recompute.
func RecordPayment(db *gorm.DB, fee float64, in PaymentInput) (Models.Payment, error) {
	month, err := NormalizeMonth(in.Month)
	if err != nil {
		return Models.Payment{}, err
	}

	amount := in.Amount
	if amount <= 0 {
		amount = fee
	}

	var payment Models.Payment
	err = db.Transaction(func(tx *gorm.DB) error {
		var resident Models.Resident
		if result := tx.First(&resident, in.UserID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return result.Error
		}

		flatNumber := in.FlatNumber
		if flatNumber == "" {
			flatNumber = resident.FlatNumber
		}

		wasPaid := false
		result := tx.Where("user_id = ? AND month = ?", in.UserID, month).First(&payment)
		switch {
		case result.Error == nil:
			wasPaid = payment.Paid
			if err := tx.Model(&payment).Update("paid", in.Paid).Error; err != nil {
				return err
			}
			payment.Paid = in.Paid
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			payment = Models.Payment{UserID: in.UserID, Month: month, Paid: in.Paid}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		default:
			return result.Error
		}

		if in.Paid && !wasPaid {
			entry := Models.PaymentTransaction{
				UserID:      in.UserID,
				FlatNumber:  flatNumber,
				Amount:      amount,
				PaymentDate: paymentDate(month),
				Description: "Maintenance fee",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		if !in.Paid && wasPaid {
			if err := reverseIncome(tx, in.UserID, flatNumber, month, amount); err != nil {
				return err
			}
		}

		// Single-writer rule: the recompute is the only thing that touches
		// the rollup row, inside the same transaction as the ledger append.
		_, err := computeSummary(tx, month)
		return err
	})
	if err != nil {
		return Models.Payment{}, err
	}
	return payment, nil
}

// reverseIncome appends a compensating negative entry for the most recent
// positive income entry of this resident and month, so a paid→unpaid toggle
// nets out in the rollup instead of leaving phantom income behind.
func reverseIncome(tx *gorm.DB, userID uint, flatNumber, month string, fallback float64) error {
	start, end, err := MonthInterval(month)
	if err != nil {
		return err
	}

	amount := fallback
	var last Models.PaymentTransaction
	result := tx.Where("user_id = ? AND payment_date >= ? AND payment_date < ? AND amount > 0",
		userID, start, end).
		Order("created_at DESC").
		First(&last)
	if result.Error == nil {
		amount = last.Amount
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	entry := Models.PaymentTransaction{
		UserID:      userID,
		FlatNumber:  flatNumber,
		Amount:      -amount,
		PaymentDate: paymentDate(month),
		Description: "Maintenance fee reversal",
	}
	return tx.Create(&entry).Error
}

// paymentDate pins ledger entries for a month to its first day, matching how
// payments themselves are keyed.
func paymentDate(month string) time.Time {
	t, _ := ParseMonth(month)
	return t
}

// PaymentsForYear returns the raw paid/unpaid grid for a calendar year,
// ordered by month then resident, for the dashboard's payment matrix.
func PaymentsForYear(db *gorm.DB, year string) ([]Models.Payment, error) {
	var payments []Models.Payment
	if err := db.Where("month LIKE ?", year+"-%").
		Order("month, user_id").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
