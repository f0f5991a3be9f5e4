package Controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Hestia/Ledger"
)

// SummaryController handles the monthly financial summary endpoints
type SummaryController struct {
	DB *gorm.DB
}

// NewSummaryController creates a new SummaryController
func NewSummaryController(db *gorm.DB) *SummaryController {
	return &SummaryController{DB: db}
}

// GetSummary recomputes and returns the financial summary for a month,
// including the month's income and expense transactions newest first.
// The recompute persists the rollup row as a side effect, so repeated calls
// return identical output absent intervening writes.
func (c *SummaryController) GetSummary(ctx *fiber.Ctx) error {
	month := ctx.Query("month")
	if month == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
	}

	statement, err := Ledger.MonthStatement(c.DB, month)
	if err != nil {
		if errors.Is(err, Ledger.ErrInvalidMonth) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
		}
		log.Println("Summary error:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	return ctx.JSON(statement)
}

// ExportSummary generates the month's statement as an Excel workbook
func (c *SummaryController) ExportSummary(ctx *fiber.Ctx) error {
	month := ctx.Query("month")
	if month == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
	}

	statement, err := Ledger.MonthStatement(c.DB, month)
	if err != nil {
		if errors.Is(err, Ledger.ErrInvalidMonth) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is required in YYYY-MM format"})
		}
		log.Println("Summary export error:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Statement"
	index, err := file.NewSheet(sheet)
	if err != nil {
		log.Println("Summary export error:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		log.Println("Summary export error:", err)
	}

	headers := map[string]interface{}{
		"A1": "Month", "B1": statement.Month,
		"A2": "Opening Balance", "B2": statement.OpeningBalance,
		"A3": "Total Income", "B3": statement.TotalIncome,
		"A4": "Total Expenses", "B4": statement.TotalExpenses,
		"A5": "Closing Balance", "B5": statement.ClosingBalance,
		"A7": "Kind", "B7": "Date", "C7": "Flat", "D7": "Description", "E7": "Amount",
	}
	for cell, value := range headers {
		file.SetCellValue(sheet, cell, value)
	}

	for i, entry := range statement.Transactions {
		row := i + 8
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Kind)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Date.Format("2006-01-02"))
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.FlatNumber)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Description)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Amount)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		log.Println("Summary export error:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	filename := fmt.Sprintf("statement-%s.xlsx", statement.Month)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}
