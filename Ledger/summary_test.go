package Ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Hestia/Models"
)

const testFee = 1000

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	return db
}

func seedResident(t *testing.T, db *gorm.DB, name, flat string) uint {
	t.Helper()
	resident := Models.Resident{Name: name, FlatNumber: flat}
	require.NoError(t, db.Create(&resident).Error)
	return resident.ID
}

func seedExpense(t *testing.T, db *gorm.DB, desc string, amount float64, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&Models.Expense{
		Description: desc,
		Amount:      amount,
		Date:        date,
	}).Error)
}

func TestComputeSummaryFirstMonthOpensAtZero(t *testing.T) {
	db := newTestDB(t)

	summary, err := ComputeSummary(db, "2025-01")
	require.NoError(t, err)

	assert.Equal(t, float64(0), summary.OpeningBalance)
	assert.Equal(t, float64(0), summary.Income)
	assert.Equal(t, float64(0), summary.Expenses)
	assert.Equal(t, float64(0), summary.ClosingBalance)
}

func TestComputeSummaryWorkedExample(t *testing.T) {
	db := newTestDB(t)

	// Prior month already closed at 2000
	require.NoError(t, db.Create(&Models.MonthlySummary{
		Month:          "2025-02",
		OpeningBalance: 0,
		Income:         2000,
		Expenses:       0,
		ClosingBalance: 2000,
	}).Error)

	// 3 of 5 residents paid at the fixed fee
	var ids []uint
	for i := 1; i <= 5; i++ {
		ids = append(ids, seedResident(t, db, fmt.Sprintf("Resident %d", i), fmt.Sprintf("A-%d", i)))
	}
	for _, id := range ids[:3] {
		_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-03", Paid: true})
		require.NoError(t, err)
	}

	seedExpense(t, db, "Water pump repair", 500, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	summary, err := ComputeSummary(db, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, float64(2000), summary.OpeningBalance)
	assert.Equal(t, float64(3000), summary.Income)
	assert.Equal(t, float64(500), summary.Expenses)
	assert.Equal(t, float64(4500), summary.ClosingBalance)
}

func TestComputeSummaryClosingIdentity(t *testing.T) {
	db := newTestDB(t)

	id := seedResident(t, db, "Resident", "B-1")
	_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-06", Paid: true})
	require.NoError(t, err)
	seedExpense(t, db, "Cleaning", 350, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))

	summary, err := ComputeSummary(db, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, summary.OpeningBalance+summary.Income-summary.Expenses, summary.ClosingBalance)
}

func TestComputeSummaryIdempotent(t *testing.T) {
	db := newTestDB(t)

	id := seedResident(t, db, "Resident", "C-1")
	_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-04", Paid: true})
	require.NoError(t, err)

	first, err := ComputeSummary(db, "2025-04")
	require.NoError(t, err)
	second, err := ComputeSummary(db, "2025-04")
	require.NoError(t, err)

	assert.Equal(t, first.OpeningBalance, second.OpeningBalance)
	assert.Equal(t, first.Income, second.Income)
	assert.Equal(t, first.Expenses, second.Expenses)
	assert.Equal(t, first.ClosingBalance, second.ClosingBalance)

	var count int64
	require.NoError(t, db.Model(&Models.MonthlySummary{}).Where("month = ?", "2025-04").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestComputeSummaryChainsBalances(t *testing.T) {
	db := newTestDB(t)

	id := seedResident(t, db, "Resident", "D-1")
	_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-01", Paid: true})
	require.NoError(t, err)

	january, err := ComputeSummary(db, "2025-01")
	require.NoError(t, err)
	february, err := ComputeSummary(db, "2025-02")
	require.NoError(t, err)

	assert.Equal(t, january.ClosingBalance, february.OpeningBalance)
}

func TestComputeSummaryInvalidMonth(t *testing.T) {
	db := newTestDB(t)

	_, err := ComputeSummary(db, "2025-3")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMonthStatementMergeOrder(t *testing.T) {
	db := newTestDB(t)

	id := seedResident(t, db, "Resident", "E-1")
	_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-03", Paid: true})
	require.NoError(t, err)

	// Expense on the same day as the income entry, plus a later one
	seedExpense(t, db, "Elevator service", 200, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(t, db, "Gardening", 150, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	statement, err := MonthStatement(db, "2025-03")
	require.NoError(t, err)

	require.Len(t, statement.Transactions, 3)
	// Newest first; income wins ties with expenses
	assert.Equal(t, "expense", statement.Transactions[0].Kind)
	assert.Equal(t, "Gardening", statement.Transactions[0].Description)
	assert.Equal(t, "income", statement.Transactions[1].Kind)
	assert.Equal(t, "expense", statement.Transactions[2].Kind)
	assert.Equal(t, "Elevator service", statement.Transactions[2].Description)
}

func TestMonthStatementReflectsReversal(t *testing.T) {
	db := newTestDB(t)

	id := seedResident(t, db, "Resident", "F-1")
	_, err := RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-05", Paid: true})
	require.NoError(t, err)
	_, err = RecordPayment(db, testFee, PaymentInput{UserID: id, Month: "2025-05", Paid: false})
	require.NoError(t, err)

	statement, err := MonthStatement(db, "2025-05")
	require.NoError(t, err)

	assert.Equal(t, float64(0), statement.TotalIncome)
	assert.Equal(t, float64(0), statement.ClosingBalance)
	require.Len(t, statement.Transactions, 2)
}
