package Ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Hestia/Models"
)

// ComputeSummary recomputes the rollup for a month from the ledger entries
// and upserts the result. The recompute is authoritative: it overwrites any
// previous values unconditionally, and it is the only code path that writes
// monthly_summaries. Income is the sum of the month's payment-transaction
// amounts, so compensating (negative) entries net out naturally.
func ComputeSummary(db *gorm.DB, month string) (Models.MonthlySummary, error) {
	if _, err := ParseMonth(month); err != nil {
		return Models.MonthlySummary{}, err
	}
	return computeSummary(db, month)
}

// computeSummary assumes month is already validated. It runs single-statement
// reads plus one upsert, so callers that need atomicity with other writes
// wrap it in their own transaction.
func computeSummary(db *gorm.DB, month string) (Models.MonthlySummary, error) {
	start, end, err := MonthInterval(month)
	if err != nil {
		return Models.MonthlySummary{}, err
	}

	var totalIncome float64
	if err := db.Model(&Models.PaymentTransaction{}).
		Where("payment_date >= ? AND payment_date < ?", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalIncome).Error; err != nil {
		return Models.MonthlySummary{}, err
	}

	var totalExpenses float64
	if err := db.Model(&Models.Expense{}).
		Where("date >= ? AND date < ?", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalExpenses).Error; err != nil {
		return Models.MonthlySummary{}, err
	}

	prevMonth, err := PrevMonth(month)
	if err != nil {
		return Models.MonthlySummary{}, err
	}

	// No previous rollup means this is the first tracked month.
	openingBalance := float64(0)
	var prev Models.MonthlySummary
	result := db.Where("month = ?", prevMonth).First(&prev)
	if result.Error == nil {
		openingBalance = prev.ClosingBalance
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Models.MonthlySummary{}, result.Error
	}

	summary := Models.MonthlySummary{
		Month:          month,
		OpeningBalance: openingBalance,
		Income:         totalIncome,
		Expenses:       totalExpenses,
		ClosingBalance: openingBalance + totalIncome - totalExpenses,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"opening_balance", "income", "expenses", "closing_balance", "updated_at",
		}),
	}).Create(&summary).Error; err != nil {
		return Models.MonthlySummary{}, err
	}

	return summary, nil
}

// StatementEntry is a single income or expense line in a month's statement.
type StatementEntry struct {
	Kind        string    `json:"kind"` // "income" or "expense"
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id,omitempty"`
	FlatNumber  string    `json:"flat_number,omitempty"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Statement is the computed summary for a month plus its ledger entries.
type Statement struct {
	Month          string           `json:"month"`
	OpeningBalance float64          `json:"openingBalance"`
	TotalIncome    float64          `json:"totalIncome"`
	TotalExpenses  float64          `json:"totalExpenses"`
	ClosingBalance float64          `json:"closingBalance"`
	Transactions   []StatementEntry `json:"transactions"`
}

// MonthStatement recomputes a month's rollup and returns it together with the
// month's income and expense transactions merged and sorted by date
// descending. For equal dates income entries come before expense entries.
func MonthStatement(db *gorm.DB, month string) (Statement, error) {
	summary, err := ComputeSummary(db, month)
	if err != nil {
		return Statement{}, err
	}

	start, end, err := MonthInterval(month)
	if err != nil {
		return Statement{}, err
	}

	var incomes []Models.PaymentTransaction
	if err := db.Where("payment_date >= ? AND payment_date < ?", start, end).
		Order("payment_date DESC").
		Find(&incomes).Error; err != nil {
		return Statement{}, err
	}

	var expenses []Models.Expense
	if err := db.Where("date >= ? AND date < ?", start, end).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return Statement{}, err
	}

	entries := mergeEntries(incomes, expenses)

	return Statement{
		Month:          summary.Month,
		OpeningBalance: summary.OpeningBalance,
		TotalIncome:    summary.Income,
		TotalExpenses:  summary.Expenses,
		ClosingBalance: summary.ClosingBalance,
		Transactions:   entries,
	}, nil
}

// mergeEntries merges two lists already sorted by date descending, keeping
// income ahead of expense whenever dates tie.
func mergeEntries(incomes []Models.PaymentTransaction, expenses []Models.Expense) []StatementEntry {
	entries := make([]StatementEntry, 0, len(incomes)+len(expenses))
	i, j := 0, 0
	for i < len(incomes) && j < len(expenses) {
		if !incomes[i].PaymentDate.Before(expenses[j].Date) {
			entries = append(entries, incomeEntry(incomes[i]))
			i++
		} else {
			entries = append(entries, expenseEntry(expenses[j]))
			j++
		}
	}
	for ; i < len(incomes); i++ {
		entries = append(entries, incomeEntry(incomes[i]))
	}
	for ; j < len(expenses); j++ {
		entries = append(entries, expenseEntry(expenses[j]))
	}
	return entries
}

func incomeEntry(t Models.PaymentTransaction) StatementEntry {
	return StatementEntry{
		Kind:        "income",
		ID:          t.ID,
		UserID:      t.UserID,
		FlatNumber:  t.FlatNumber,
		Amount:      t.Amount,
		Date:        t.PaymentDate,
		Description: t.Description,
	}
}

func expenseEntry(e Models.Expense) StatementEntry {
	return StatementEntry{
		Kind:        "expense",
		ID:          e.ID,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
	}
}

// IncomeTransactions returns the month's income log entries, newest first.
func IncomeTransactions(db *gorm.DB, month string) ([]Models.PaymentTransaction, error) {
	start, end, err := MonthInterval(month)
	if err != nil {
		return nil, err
	}
	var transactions []Models.PaymentTransaction
	if err := db.Where("payment_date >= ? AND payment_date < ?", start, end).
		Order("payment_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
