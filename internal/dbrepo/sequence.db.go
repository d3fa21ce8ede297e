package dbrepo

import (
	"context"
	"fmt"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
)

// -------------------------------
// BRANCH SEQUENCE ALLOCATOR
// -------------------------------

// counterColumns whitelists the branch columns the allocator may touch.
// Column names are interpolated into SQL, so they must come from here and
// nowhere else.
var counterColumns = map[models.Counter]string{
	models.COUNTER_DC:             "dc_last_number",
	models.COUNTER_ACC_INV_1:      "acc_inv_1_last_number",
	models.COUNTER_ACC_INV_2:      "acc_inv_2_last_number",
	models.COUNTER_RECEIPT:        "receipt_last_number",
	models.COUNTER_VOUCHER:        "voucher_last_number",
	models.COUNTER_BRANCH_RECEIPT: "branch_receipt_last_number",
	models.COUNTER_JOB_CARD:       "job_card_last_number",
	models.COUNTER_OUT_BILL:       "out_bill_last_number",
}

// LockBranchTx loads a branch row under FOR UPDATE, serializing every
// allocation for that branch behind the caller's transaction. The lock is
// held until commit or rollback, so the counters read here cannot move
// underneath the caller.
func LockBranchTx(tx pgx.Tx, ctx context.Context, branchID string) (*models.Branch, error) {
	query := `
		SELECT id, name, dc_last_number, acc_inv_1_last_number, acc_inv_2_last_number,
		       receipt_last_number, voucher_last_number, branch_receipt_last_number,
		       job_card_last_number, out_bill_last_number,
		       pricing_adjustment, firm_id_1, firm_id_2, dc_gen_enabled, created_at, updated_at
		FROM branches
		WHERE id = $1
		FOR UPDATE`

	var b models.Branch
	err := tx.QueryRow(ctx, query, branchID).Scan(
		&b.ID, &b.Name, &b.DCLastNumber, &b.AccInv1LastNumber, &b.AccInv2LastNumber,
		&b.ReceiptLastNumber, &b.VoucherLastNumber, &b.BranchReceiptLastNumber,
		&b.JobCardLastNumber, &b.OutBillLastNumber,
		&b.PricingAdjustment, &b.FirmID1, &b.FirmID2, &b.DCGenEnabled, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("branch %q not found", branchID)
		}
		return nil, fmt.Errorf("locking branch %q: %w", branchID, err)
	}
	return &b, nil
}

// NextSequenceTx allocates the next number in one branch counter series:
// lock the row, read the stored value, adjust it to the series floor,
// write back value+1, return value+1. The read and the write share the
// caller's transaction, so the number is only consumed if the record that
// uses it commits too.
func NextSequenceTx(tx pgx.Tx, ctx context.Context, branchID string, counter models.Counter) (int64, error) {
	column, ok := counterColumns[counter]
	if !ok {
		return 0, fmt.Errorf("unknown counter series %q", counter)
	}

	// Step 1: read the current value under the row lock
	var last int64
	selectQuery := fmt.Sprintf(`SELECT %s FROM branches WHERE id = $1 FOR UPDATE`, column)
	if err := tx.QueryRow(ctx, selectQuery, branchID).Scan(&last); err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("branch %q not found", branchID)
		}
		return 0, fmt.Errorf("reading %s for branch %q: %w", column, branchID, err)
	}

	// Step 2: advance by one from the floor-adjusted value
	next := models.EffectiveLastNumber(counter, last) + 1

	// Step 3: persist the new high-water mark in the same transaction
	updateQuery := fmt.Sprintf(`UPDATE branches SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	if _, err := tx.Exec(ctx, updateQuery, next, branchID); err != nil {
		return 0, fmt.Errorf("advancing %s for branch %q: %w", column, branchID, err)
	}

	return next, nil
}
