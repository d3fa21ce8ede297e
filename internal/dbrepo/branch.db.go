package dbrepo

import (
	"context"
	"fmt"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchRepo struct {
	db *pgxpool.Pool
}

func NewBranchRepo(db *pgxpool.Pool) *BranchRepo {
	return &BranchRepo{db: db}
}

const branchColumns = `
	id, name, dc_last_number, acc_inv_1_last_number, acc_inv_2_last_number,
	receipt_last_number, voucher_last_number, branch_receipt_last_number,
	job_card_last_number, out_bill_last_number,
	pricing_adjustment, firm_id_1, firm_id_2, dc_gen_enabled, created_at, updated_at`

func scanBranch(row pgx.Row) (*models.Branch, error) {
	var b models.Branch
	err := row.Scan(
		&b.ID, &b.Name, &b.DCLastNumber, &b.AccInv1LastNumber, &b.AccInv2LastNumber,
		&b.ReceiptLastNumber, &b.VoucherLastNumber, &b.BranchReceiptLastNumber,
		&b.JobCardLastNumber, &b.OutBillLastNumber,
		&b.PricingAdjustment, &b.FirmID1, &b.FirmID2, &b.DCGenEnabled, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBranches lists every branch for terminal selection.
func (r *BranchRepo) GetBranches(ctx context.Context) ([]*models.Branch, error) {
	query := `SELECT` + branchColumns + ` FROM branches ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer rows.Close()

	var branches []*models.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning branch: %w", err)
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// GetBranchByID reads one branch without locking. Counter values in the
// result are a snapshot for display, not a reservation.
func (r *BranchRepo) GetBranchByID(ctx context.Context, branchID string) (*models.Branch, error) {
	query := `SELECT` + branchColumns + ` FROM branches WHERE id = $1`

	b, err := scanBranch(r.db.QueryRow(ctx, query, branchID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("branch %q not found", branchID)
		}
		return nil, fmt.Errorf("reading branch %q: %w", branchID, err)
	}
	return b, nil
}

// UpdateBranchSettings changes the configurable fields of a branch. The
// counters are deliberately untouchable from here; only the allocator
// moves them.
func (r *BranchRepo) UpdateBranchSettings(ctx context.Context, b *models.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, pricing_adjustment = $2, firm_id_1 = $3, firm_id_2 = $4,
		    dc_gen_enabled = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		b.Name, b.PricingAdjustment, b.FirmID1, b.FirmID2, b.DCGenEnabled, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating branch %q: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("branch %q not found", b.ID)
	}
	return nil
}
