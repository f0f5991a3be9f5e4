package Controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Hestia/Ledger"
	"Hestia/Models"
)

// PaymentController handles payment-related API endpoints
type PaymentController struct {
	DB  *gorm.DB
	Fee float64
}

// NewPaymentController creates a new PaymentController. Fee is the fixed
// monthly maintenance amount used when a payment carries no explicit amount.
func NewPaymentController(db *gorm.DB, fee float64) *PaymentController {
	return &PaymentController{DB: db, Fee: fee}
}

// GetPayments retrieves the income transactions for a month
func (c *PaymentController) GetPayments(ctx *fiber.Ctx) error {
	month := ctx.Query("month")
	if month == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
	}

	transactions, err := Ledger.IncomeTransactions(c.DB, month)
	if err != nil {
		if errors.Is(err, Ledger.ErrInvalidMonth) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
		}
		log.Println("Error fetching payments:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(transactions)
}

// GetPaymentStatus retrieves the per-resident paid/unpaid grid for a year
func (c *PaymentController) GetPaymentStatus(ctx *fiber.Ctx) error {
	year := ctx.Query("year")
	if _, err := strconv.Atoi(year); err != nil || len(year) != 4 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Year is required in YYYY format"})
	}

	payments, err := Ledger.PaymentsForYear(c.DB, year)
	if err != nil {
		log.Println("Error fetching payment status:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

type RecordPaymentInput struct {
	UserID     uint    `json:"user_id" validate:"required"`
	Month      string  `json:"month" validate:"required"`
	Paid       bool    `json:"paid"`
	Amount     float64 `json:"amount" validate:"omitempty,gt=0"`
	FlatNumber string  `json:"flat_number"`
}

// RecordPayment inserts or toggles a resident's payment for a month. The
// payment row, the income (or reversal) ledger entry and the recomputed
// rollup land in one transaction.
func (c *PaymentController) RecordPayment(ctx *fiber.Ctx) error {
	var input RecordPaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID and month are required"})
	}

	payment, err := Ledger.RecordPayment(c.DB, c.Fee, Ledger.PaymentInput{
		UserID:     input.UserID,
		Month:      input.Month,
		Paid:       input.Paid,
		Amount:     input.Amount,
		FlatNumber: input.FlatNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, Ledger.ErrInvalidMonth):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month must be in YYYY-MM format"})
		case errors.Is(err, Ledger.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resident not found"})
		default:
			log.Println("Error recording payment:", err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
		}
	}

	return ctx.JSON(payment)
}

type UpdatePaymentInput struct {
	Paid bool `json:"paid"`
}

// UpdatePayment toggles an existing payment by ID, routed through the same
// transactional recorder as RecordPayment so the ledger stays consistent.
func (c *PaymentController) UpdatePayment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.Payment
	if result := c.DB.First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var input UpdatePaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := Ledger.RecordPayment(c.DB, c.Fee, Ledger.PaymentInput{
		UserID: payment.UserID,
		Month:  payment.Month,
		Paid:   input.Paid,
	})
	if err != nil {
		if errors.Is(err, Ledger.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resident not found"})
		}
		log.Println("Error updating payment:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return ctx.JSON(updated)
}
