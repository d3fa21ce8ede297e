package models

import (
	"fmt"
	"time"
)

// Cashier transaction categories.
const (
	CAT_BRANCH_RECEIPT      = "Branch Receipt"
	CAT_GENERAL_RECEIPT     = "General Receipt"
	CAT_BOOKING_RECEIPT     = "Booking Receipt"
	CAT_SHORT_AMOUNT        = "Short Amount Receipt"
	CAT_DD_RECEIVED         = "DD Received"
	CAT_VEHICLE_SALE        = "Vehicle Sale"
	CAT_TA                  = "TA"
	CAT_ACCESSORIES_SALE    = "Accessories Sale"
	CAT_SERVICE             = "Service"
	CAT_GST_FINANCE         = "GST Finance"
	CAT_OTHERS_VEHICLE_SALE = "Others Vehicle Sale"
	CAT_JOB_CARD_SALE       = "Job Card Sale"
	CAT_OUT_BILL_SALE       = "Out Bill Sale"

	CAT_GENERAL_EXPENSES = "General Expenses"
	CAT_PETROL           = "Petrol"
	CAT_TRANSPORT        = "Transport"
	CAT_STAFF_VOUCHERS   = "Staff Vouchers"
	CAT_BANK_DEPOSIT     = "Bank Deposit"
	CAT_GENERAL          = "General"
)

// ReceiptCategories and VoucherCategories back the cashier entry form.
// The job-card and out-bill series only apply at service branches.
var ReceiptCategories = []string{
	CAT_BRANCH_RECEIPT,
	CAT_GENERAL_RECEIPT,
	CAT_BOOKING_RECEIPT,
	CAT_SHORT_AMOUNT,
	CAT_DD_RECEIVED,
	CAT_VEHICLE_SALE,
	CAT_TA,
	CAT_ACCESSORIES_SALE,
	CAT_SERVICE,
	CAT_GST_FINANCE,
	CAT_OTHERS_VEHICLE_SALE,
	CAT_JOB_CARD_SALE,
	CAT_OUT_BILL_SALE,
}

var VoucherCategories = []string{
	CAT_GENERAL_EXPENSES,
	CAT_PETROL,
	CAT_TRANSPORT,
	CAT_STAFF_VOUCHERS,
	CAT_BANK_DEPOSIT,
	CAT_GENERAL,
}

// ImportedCategoryPrefix tags copies created by a cross-branch import.
const ImportedCategoryPrefix = "Imported: "

// NumberingRule says which counter series numbers a cashier transaction
// and whether the number is assigned by default. Category "" is the
// fallback row for the transaction type.
type NumberingRule struct {
	Counter    Counter
	AutoAssign bool
}

// cashierNumbering is the category numbering policy. New categories are
// rows here, not new code paths.
var cashierNumbering = map[string]map[string]NumberingRule{
	TXN_RECEIPT: {
		CAT_BRANCH_RECEIPT:      {Counter: COUNTER_BRANCH_RECEIPT, AutoAssign: true},
		CAT_JOB_CARD_SALE:       {Counter: COUNTER_JOB_CARD, AutoAssign: true},
		CAT_OUT_BILL_SALE:       {Counter: COUNTER_OUT_BILL, AutoAssign: true},
		CAT_ACCESSORIES_SALE:    {Counter: COUNTER_RECEIPT, AutoAssign: false},
		CAT_SERVICE:             {Counter: COUNTER_RECEIPT, AutoAssign: false},
		CAT_GST_FINANCE:         {Counter: COUNTER_RECEIPT, AutoAssign: false},
		CAT_OTHERS_VEHICLE_SALE: {Counter: COUNTER_RECEIPT, AutoAssign: false},
		"":                      {Counter: COUNTER_RECEIPT, AutoAssign: true},
	},
	TXN_VOUCHER: {
		"": {Counter: COUNTER_VOUCHER, AutoAssign: true},
	},
}

// CashierNumberingRule resolves the numbering policy for one transaction.
// Unknown transaction types get no number at all.
func CashierNumberingRule(txnType, category string) (NumberingRule, bool) {
	byCategory, ok := cashierNumbering[txnType]
	if !ok {
		return NumberingRule{}, false
	}
	if rule, ok := byCategory[category]; ok {
		return rule, true
	}
	rule, ok := byCategory[""]
	return rule, ok
}

// DefaultIsExpense gives the expense flag the entry form starts from.
// Receipts are money in; vouchers are money out except bank deposits,
// which only move cash between drawers.
func DefaultIsExpense(txnType, category string) bool {
	if txnType == TXN_RECEIPT {
		return false
	}
	return category != CAT_BANK_DEPOSIT
}

// CashierTransaction is one daybook line.
type CashierTransaction struct {
	ID             int64     `json:"id"`
	BranchID       string    `json:"branch_id"`
	TxnDate        time.Time `json:"txn_date"`
	TxnType        string    `json:"txn_type"` // Receipt, Voucher
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	CustomerName   string    `json:"customer_name,omitempty"`
	Amount         float64   `json:"amount"`
	PaymentMode    string    `json:"payment_mode"`
	ReceiptNumber  *int64    `json:"receipt_number,omitempty"`
	VoucherNumber  *int64    `json:"voucher_number,omitempty"`
	IsExpense      bool      `json:"is_expense"`
	DCNumber       *string   `json:"dc_number,omitempty"`
	ImportedFromID *int64    `json:"imported_from_id,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SignedAmount maps a line to its ledger effect: receipts add, vouchers
// subtract.
func (t *CashierTransaction) SignedAmount() float64 {
	if t.TxnType == TXN_VOUCHER {
		return -t.Amount
	}
	return t.Amount
}

// Normalize enforces the persisted invariants before any write: receipts
// are never expenses, whatever the caller sent.
func (t *CashierTransaction) Normalize() {
	if t.TxnType == TXN_RECEIPT {
		t.IsExpense = false
	}
}

// ImportCopy derives the transaction to insert into the target branch
// during a cross-branch import. The copy keeps the original numbers and
// expense flag, tags its category and description with the provenance,
// and carries the source id so the source is never imported twice.
func (t *CashierTransaction) ImportCopy(targetBranchID string, txnDate time.Time) CashierTransaction {
	srcID := t.ID
	copied := CashierTransaction{
		BranchID:       targetBranchID,
		TxnDate:        txnDate,
		TxnType:        t.TxnType,
		Category:       ImportedCategoryPrefix + t.Category,
		Description:    fmt.Sprintf("%s (Original Date: %s, From %s)", t.Description, t.TxnDate.Format("2006-01-02"), t.BranchID),
		CustomerName:   t.CustomerName,
		Amount:         t.Amount,
		PaymentMode:    t.PaymentMode,
		ReceiptNumber:  t.ReceiptNumber,
		VoucherNumber:  t.VoucherNumber,
		IsExpense:      t.IsExpense,
		DCNumber:       t.DCNumber,
		ImportedFromID: &srcID,
	}
	return copied
}

// LedgerLine is one ranged-ledger row with its running balance.
type LedgerLine struct {
	CashierTransaction
	Balance float64 `json:"balance"`
}

// RunningBalance folds transactions over an opening balance in the order
// given, producing one balanced line per transaction.
func RunningBalance(opening float64, txns []CashierTransaction) []LedgerLine {
	lines := make([]LedgerLine, 0, len(txns))
	balance := opening
	for _, t := range txns {
		balance += t.SignedAmount()
		lines = append(lines, LedgerLine{CashierTransaction: t, Balance: balance})
	}
	return lines
}

// DaybookSummary totals one day's sheet. ActualExpenses counts only
// vouchers flagged as expenses; bank deposits reduce the drawer without
// being spent.
type DaybookSummary struct {
	OpeningBalance float64 `json:"opening_balance"`
	TotalReceipts  float64 `json:"total_receipts"`
	TotalVouchers  float64 `json:"total_vouchers"`
	ActualExpenses float64 `json:"actual_expenses"`
	ClosingBalance float64 `json:"closing_balance"`
}

// SummarizeDaybook computes the day's totals from its lines.
func SummarizeDaybook(opening float64, txns []CashierTransaction) DaybookSummary {
	s := DaybookSummary{OpeningBalance: opening}
	for _, t := range txns {
		if t.TxnType == TXN_VOUCHER {
			s.TotalVouchers += t.Amount
			if t.IsExpense {
				s.ActualExpenses += t.Amount
			}
		} else {
			s.TotalReceipts += t.Amount
		}
	}
	s.ClosingBalance = opening + s.TotalReceipts - s.TotalVouchers
	return s
}
