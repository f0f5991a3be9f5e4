package Controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Hestia/Ledger"
	"Hestia/Models"
)

// ExpenseController handles expense-related API endpoints
type ExpenseController struct {
	DB *gorm.DB
}

// NewExpenseController creates a new ExpenseController
func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

// GetExpenses retrieves all expenses, optionally filtered by month (YYYY-MM),
// newest first
func (c *ExpenseController) GetExpenses(ctx *fiber.Ctx) error {
	query := c.DB.Order("date DESC")

	if month := ctx.Query("month"); month != "" {
		start, end, err := Ledger.MonthInterval(month)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month must be in YYYY-MM format"})
		}
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var expenses []Models.Expense
	if result := query.Find(&expenses); result.Error != nil {
		log.Println("Error fetching expenses:", result.Error)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve expenses"})
	}

	return ctx.JSON(expenses)
}

type CreateExpenseInput struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`
}

// CreateExpense appends a new expense log entry. The rollup is not touched
// here; the next summary recompute picks the entry up.
func (c *ExpenseController) CreateExpense(ctx *fiber.Ctx) error {
	var input CreateExpenseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Description, amount and date are required"})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	expense := Models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		Date:        date,
	}

	if result := c.DB.Create(&expense); result.Error != nil {
		log.Println("Error creating expense:", result.Error)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create expense"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(expense)
}

// DeleteExpense removes an expense by ID and returns the deleted row
func (c *ExpenseController) DeleteExpense(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	var expense Models.Expense
	if result := c.DB.First(&expense, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Expense not found"})
	}

	if result := c.DB.Delete(&expense); result.Error != nil {
		log.Println("Error deleting expense:", result.Error)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete expense"})
	}

	return ctx.JSON(expense)
}
