package dbrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CashierRepo struct {
	db *pgxpool.Pool
}

func NewCashierRepo(db *pgxpool.Pool) *CashierRepo {
	return &CashierRepo{db: db}
}

const cashierColumns = `
	id, branch_id, txn_date, txn_type, category, description, customer_name,
	amount, payment_mode, receipt_number, voucher_number, is_expense,
	dc_number, imported_from_id, created_by, created_at, updated_at`

func scanCashierRows(rows pgx.Rows) ([]*models.CashierTransaction, error) {
	var txns []*models.CashierTransaction
	for rows.Next() {
		var t models.CashierTransaction
		if err := rows.Scan(
			&t.ID, &t.BranchID, &t.TxnDate, &t.TxnType, &t.Category, &t.Description, &t.CustomerName,
			&t.Amount, &t.PaymentMode, &t.ReceiptNumber, &t.VoucherNumber, &t.IsExpense,
			&t.DCNumber, &t.ImportedFromID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning cashier transaction: %w", err)
		}
		txns = append(txns, &t)
	}
	return txns, nil
}

// insertCashierTx writes one transaction row inside an existing tx.
func insertCashierTx(ctx context.Context, tx pgx.Tx, t *models.CashierTransaction) (int64, error) {
	query := `
		INSERT INTO cashier_transactions
			(branch_id, txn_date, txn_type, category, description, customer_name,
			 amount, payment_mode, receipt_number, voucher_number, is_expense,
			 dc_number, imported_from_id, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id`

	var id int64
	err := tx.QueryRow(ctx, query,
		t.BranchID, t.TxnDate, t.TxnType, t.Category, t.Description, t.CustomerName,
		t.Amount, t.PaymentMode, t.ReceiptNumber, t.VoucherNumber, t.IsExpense,
		t.DCNumber, t.ImportedFromID, t.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting cashier transaction: %w", err)
	}
	return id, nil
}

// AddTransaction saves one daybook entry, allocating its number and
// inserting the row in a single transaction so a counter never moves
// without a committed line behind it. Receipts may skip numbering when
// assignNumber is false; vouchers are always numbered. The allocated
// number (if any) is written back onto t.
func (r *CashierRepo) AddTransaction(ctx context.Context, t *models.CashierTransaction, assignNumber bool) (int64, error) {
	t.Normalize()

	rule, ok := models.CashierNumberingRule(t.TxnType, t.Category)
	if !ok {
		return 0, fmt.Errorf("unknown transaction type %q", t.TxnType)
	}
	if t.TxnType == models.TXN_VOUCHER {
		assignNumber = true
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Step 1: allocate the series number under the branch row lock
	if assignNumber {
		seq, err := NextSequenceTx(tx, ctx, t.BranchID, rule.Counter)
		if err != nil {
			return 0, err
		}
		if t.TxnType == models.TXN_VOUCHER {
			t.VoucherNumber = &seq
		} else {
			t.ReceiptNumber = &seq
		}
	}

	// Step 2: insert the row in the same transaction
	id, err := insertCashierTx(ctx, tx, t)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ID = id
	return id, nil
}

// GetOpeningBalance computes the signed sum of all transactions strictly
// before the given date, optionally restricted to a set of payment modes.
func (r *CashierRepo) GetOpeningBalance(ctx context.Context, branchID string, date time.Time, modes []string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN txn_type = 'Receipt' THEN amount ELSE -amount END), 0)
		FROM cashier_transactions
		WHERE branch_id = $1 AND txn_date::date < $2::date`
	args := []interface{}{branchID, date}

	if len(modes) > 0 {
		query += ` AND payment_mode = ANY($3)`
		args = append(args, modes)
	}

	var balance float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("computing opening balance: %w", err)
	}
	return balance, nil
}

// GetDaybook returns one day's sheet ordered so receipts and vouchers
// interleave the way the printed book expects: by receipt number, then
// voucher number, then insertion order.
func (r *CashierRepo) GetDaybook(ctx context.Context, branchID string, date time.Time) ([]*models.CashierTransaction, error) {
	query := `
		SELECT` + cashierColumns + `
		FROM cashier_transactions
		WHERE branch_id = $1 AND txn_date::date = $2::date
		ORDER BY receipt_number, voucher_number, id`

	rows, err := r.db.Query(ctx, query, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("loading daybook: %w", err)
	}
	defer rows.Close()

	return scanCashierRows(rows)
}

// GetLedger returns a date-range view ordered for running-balance
// computation by the caller.
func (r *CashierRepo) GetLedger(ctx context.Context, branchID string, startDate, endDate time.Time, modes []string) ([]*models.CashierTransaction, error) {
	whereClauses := []string{"branch_id = $1", "txn_date::date BETWEEN $2::date AND $3::date"}
	args := []interface{}{branchID, startDate, endDate}
	argID := 4

	if len(modes) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("payment_mode = ANY($%d)", argID))
		args = append(args, modes)
		argID++
	}

	query := `
		SELECT` + cashierColumns + `
		FROM cashier_transactions
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY txn_date, receipt_number, voucher_number`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	defer rows.Close()

	return scanCashierRows(rows)
}

// GetImportCandidates lists the source branch's transactions for one date
// that the target branch has not imported yet. A transaction whose id
// already appears as an imported_from_id in the target is excluded, which
// is what makes a second import pass a no-op.
func (r *CashierRepo) GetImportCandidates(ctx context.Context, sourceBranchID, targetBranchID string, date time.Time) ([]*models.CashierTransaction, error) {
	query := `
		SELECT` + cashierColumns + `
		FROM cashier_transactions
		WHERE branch_id = $1
		  AND txn_date::date = $2::date
		  AND id NOT IN (
				SELECT imported_from_id FROM cashier_transactions
				WHERE branch_id = $3 AND imported_from_id IS NOT NULL
		  )
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, sourceBranchID, date, targetBranchID)
	if err != nil {
		return nil, fmt.Errorf("loading import candidates: %w", err)
	}
	defer rows.Close()

	return scanCashierRows(rows)
}

// ImportTransactions copies the selected source transactions into the
// target branch. Each copy keeps its original numbers and expense flag
// and records the source id, so re-running the import skips them. Rows
// already imported by a concurrent pass are silently skipped. Returns the
// number of copies created.
func (r *CashierRepo) ImportTransactions(ctx context.Context, sourceBranchID, targetBranchID string, ids []int64, txnDate time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Step 1: load the selected source rows, skipping any the target
	// already holds a copy of
	query := `
		SELECT` + cashierColumns + `
		FROM cashier_transactions
		WHERE branch_id = $1
		  AND id = ANY($2)
		  AND id NOT IN (
				SELECT imported_from_id FROM cashier_transactions
				WHERE branch_id = $3 AND imported_from_id IS NOT NULL
		  )
		ORDER BY id
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, sourceBranchID, ids, targetBranchID)
	if err != nil {
		return 0, fmt.Errorf("loading transactions to import: %w", err)
	}
	sources, err := scanCashierRows(rows)
	rows.Close()
	if err != nil {
		return 0, err
	}

	// Step 2: insert one provenance-tagged copy per source row
	imported := 0
	for _, src := range sources {
		copied := src.ImportCopy(targetBranchID, txnDate)
		if _, err := insertCashierTx(ctx, tx, &copied); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return imported, nil
}

// GetUnlinkedBookingReceipts lists booking receipts not yet tied to a DC,
// newest first, for the link-on-finalize picker.
func (r *CashierRepo) GetUnlinkedBookingReceipts(ctx context.Context, branchID string) ([]*models.CashierTransaction, error) {
	query := `
		SELECT` + cashierColumns + `
		FROM cashier_transactions
		WHERE branch_id = $1
		  AND category = $2
		  AND txn_type = $3
		  AND (dc_number IS NULL OR dc_number = '')
		ORDER BY txn_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, branchID, models.CAT_BOOKING_RECEIPT, models.TXN_RECEIPT)
	if err != nil {
		return nil, fmt.Errorf("loading unlinked booking receipts: %w", err)
	}
	defer rows.Close()

	return scanCashierRows(rows)
}

// LinkBookingReceiptsTx stamps a DC number onto booking receipts inside
// an existing transaction, used when finalization links the customer's
// earlier booking money to the new DC.
func LinkBookingReceiptsTx(ctx context.Context, tx pgx.Tx, dcNumber string, receiptIDs []int64) error {
	if len(receiptIDs) == 0 {
		return nil
	}
	query := `UPDATE cashier_transactions SET dc_number = $1, updated_at = NOW() WHERE id = ANY($2)`
	if _, err := tx.Exec(ctx, query, dcNumber, receiptIDs); err != nil {
		return fmt.Errorf("linking booking receipts to %s: %w", dcNumber, err)
	}
	return nil
}

// LinkBookingReceipts is the standalone form for linking after the fact.
func (r *CashierRepo) LinkBookingReceipts(ctx context.Context, dcNumber string, receiptIDs []int64) error {
	if len(receiptIDs) == 0 {
		return nil
	}
	query := `UPDATE cashier_transactions SET dc_number = $1, updated_at = NOW() WHERE id = ANY($2)`
	if _, err := r.db.Exec(ctx, query, dcNumber, receiptIDs); err != nil {
		return fmt.Errorf("linking booking receipts to %s: %w", dcNumber, err)
	}
	return nil
}

// TotalPaidForDC sums the receipts recorded against one DC, used by the
// cashier screen to show the customer's live balance.
func (r *CashierRepo) TotalPaidForDC(ctx context.Context, branchID, dcNumber string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM cashier_transactions
		WHERE branch_id = $1 AND dc_number = $2 AND txn_type = $3`

	var total float64
	if err := r.db.QueryRow(ctx, query, branchID, dcNumber, models.TXN_RECEIPT).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing payments for %s: %w", dcNumber, err)
	}
	return total, nil
}
