package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashierNumberingRule(t *testing.T) {
	tests := []struct {
		name       string
		txnType    string
		category   string
		counter    Counter
		autoAssign bool
	}{
		{"branch receipt uses its own series", TXN_RECEIPT, CAT_BRANCH_RECEIPT, COUNTER_BRANCH_RECEIPT, true},
		{"job card sale uses the job card series", TXN_RECEIPT, CAT_JOB_CARD_SALE, COUNTER_JOB_CARD, true},
		{"out bill sale uses the out bill series", TXN_RECEIPT, CAT_OUT_BILL_SALE, COUNTER_OUT_BILL, true},
		{"accessories sale numbers on demand", TXN_RECEIPT, CAT_ACCESSORIES_SALE, COUNTER_RECEIPT, false},
		{"service numbers on demand", TXN_RECEIPT, CAT_SERVICE, COUNTER_RECEIPT, false},
		{"gst finance numbers on demand", TXN_RECEIPT, CAT_GST_FINANCE, COUNTER_RECEIPT, false},
		{"unlisted receipt category falls back to the receipt series", TXN_RECEIPT, CAT_BOOKING_RECEIPT, COUNTER_RECEIPT, true},
		{"vouchers all share one series", TXN_VOUCHER, CAT_PETROL, COUNTER_VOUCHER, true},
		{"bank deposit vouchers are numbered too", TXN_VOUCHER, CAT_BANK_DEPOSIT, COUNTER_VOUCHER, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := CashierNumberingRule(tc.txnType, tc.category)
			require.True(t, ok)
			assert.Equal(t, tc.counter, rule.Counter)
			assert.Equal(t, tc.autoAssign, rule.AutoAssign)
		})
	}
}

func TestCashierNumberingRuleUnknownType(t *testing.T) {
	_, ok := CashierNumberingRule("Transfer", CAT_GENERAL)
	assert.False(t, ok)
}

func TestDefaultIsExpense(t *testing.T) {
	assert.False(t, DefaultIsExpense(TXN_RECEIPT, CAT_BRANCH_RECEIPT))
	assert.False(t, DefaultIsExpense(TXN_RECEIPT, CAT_VEHICLE_SALE))
	assert.True(t, DefaultIsExpense(TXN_VOUCHER, CAT_PETROL))
	assert.True(t, DefaultIsExpense(TXN_VOUCHER, CAT_STAFF_VOUCHERS))
	assert.False(t, DefaultIsExpense(TXN_VOUCHER, CAT_BANK_DEPOSIT), "bank deposits move cash, they are not spending")
}

func TestNormalizeForcesReceiptExpenseFlag(t *testing.T) {
	txn := CashierTransaction{TxnType: TXN_RECEIPT, IsExpense: true}
	txn.Normalize()
	assert.False(t, txn.IsExpense)

	voucher := CashierTransaction{TxnType: TXN_VOUCHER, IsExpense: true}
	voucher.Normalize()
	assert.True(t, voucher.IsExpense, "voucher flags pass through untouched")
}

func TestSignedAmount(t *testing.T) {
	receipt := CashierTransaction{TxnType: TXN_RECEIPT, Amount: 1500}
	voucher := CashierTransaction{TxnType: TXN_VOUCHER, Amount: 400}

	assert.Equal(t, 1500.0, receipt.SignedAmount())
	assert.Equal(t, -400.0, voucher.SignedAmount())
}

func TestImportCopy(t *testing.T) {
	origDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	importDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	src := CashierTransaction{
		ID:            41,
		BranchID:      "BR2",
		TxnDate:       origDate,
		TxnType:       TXN_RECEIPT,
		Category:      CAT_BOOKING_RECEIPT,
		Description:   "Booking for ACTIVA",
		CustomerName:  "Ravi Kumar",
		Amount:        2000,
		PaymentMode:   "Cash",
		ReceiptNumber: ptrInt64(118),
	}

	copied := src.ImportCopy("BR1", importDate)

	assert.Equal(t, "BR1", copied.BranchID)
	assert.Equal(t, importDate, copied.TxnDate)
	assert.Equal(t, "Imported: Booking Receipt", copied.Category)
	assert.Equal(t, "Booking for ACTIVA (Original Date: 2025-03-10, From BR2)", copied.Description)
	require.NotNil(t, copied.ImportedFromID)
	assert.Equal(t, int64(41), *copied.ImportedFromID)

	// The copy reports under its own branch but keeps the original
	// number rather than drawing from the target branch's series.
	require.NotNil(t, copied.ReceiptNumber)
	assert.Equal(t, int64(118), *copied.ReceiptNumber)
	assert.Zero(t, copied.ID)
}

func TestRunningBalance(t *testing.T) {
	txns := []CashierTransaction{
		{TxnType: TXN_RECEIPT, Amount: 5000},
		{TxnType: TXN_VOUCHER, Amount: 1200},
		{TxnType: TXN_RECEIPT, Amount: 300},
	}

	lines := RunningBalance(10000, txns)
	require.Len(t, lines, 3)
	assert.Equal(t, 15000.0, lines[0].Balance)
	assert.Equal(t, 13800.0, lines[1].Balance)
	assert.Equal(t, 14100.0, lines[2].Balance)
}

func TestRunningBalanceEmpty(t *testing.T) {
	assert.Empty(t, RunningBalance(500, nil))
}

func TestSummarizeDaybook(t *testing.T) {
	txns := []CashierTransaction{
		{TxnType: TXN_RECEIPT, Amount: 5000},
		{TxnType: TXN_RECEIPT, Amount: 2000},
		{TxnType: TXN_VOUCHER, Amount: 800, IsExpense: true, Category: CAT_PETROL},
		{TxnType: TXN_VOUCHER, Amount: 4000, IsExpense: false, Category: CAT_BANK_DEPOSIT},
	}

	s := SummarizeDaybook(1000, txns)
	assert.Equal(t, 1000.0, s.OpeningBalance)
	assert.Equal(t, 7000.0, s.TotalReceipts)
	assert.Equal(t, 4800.0, s.TotalVouchers)
	assert.Equal(t, 800.0, s.ActualExpenses, "the bank deposit leaves the drawer but is not an expense")
	assert.Equal(t, 3200.0, s.ClosingBalance)
}
