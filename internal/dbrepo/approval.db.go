package dbrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApprovalRepo struct {
	db *pgxpool.Pool
}

func NewApprovalRepo(db *pgxpool.Pool) *ApprovalRepo {
	return &ApprovalRepo{db: db}
}

const approvalColumns = `
	id, reference_no, branch_id, customer_name, model,
	discount_requested, final_price, status, payload, sales_record_id,
	requested_by, decided_by, requested_at, decided_at, completed_at`

func scanApprovalRequest(row pgx.Row) (*models.ApprovalRequest, error) {
	var req models.ApprovalRequest
	err := row.Scan(
		&req.ID, &req.ReferenceNo, &req.BranchID, &req.CustomerName, &req.Model,
		&req.DiscountRequested, &req.FinalPrice, &req.Status, &req.Payload, &req.SalesRecordID,
		&req.RequestedBy, &req.DecidedBy, &req.RequestedAt, &req.DecidedAt, &req.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest parks an order pending the owner's decision. The payload
// already holds the fully computed order; no branch counter has moved.
func (r *ApprovalRepo) CreateRequest(ctx context.Context, req *models.ApprovalRequest) error {
	if req.ReferenceNo == "" {
		req.ReferenceNo = uuid.NewString()
	}
	req.Status = models.APPROVAL_PENDING

	query := `
		INSERT INTO approval_requests(
			reference_no, branch_id, customer_name, model,
			discount_requested, final_price, status, payload,
			requested_by, requested_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,CURRENT_TIMESTAMP)
		RETURNING id, requested_at
	`
	err := r.db.QueryRow(ctx, query,
		req.ReferenceNo,
		req.BranchID,
		req.CustomerName,
		req.Model,
		req.DiscountRequested,
		req.FinalPrice,
		req.Status,
		req.Payload,
		req.RequestedBy,
	).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		return fmt.Errorf("insert approval request: %w", err)
	}
	return nil
}

// ListRequests returns approval requests newest first, optionally
// filtered by branch and status.
func (r *ApprovalRepo) ListRequests(ctx context.Context, branchID, status string) ([]models.ApprovalRequest, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if branchID != "" {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argPos))
		args = append(args, branchID)
		argPos++
	}
	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, status)
		argPos++
	}

	query := `SELECT` + approvalColumns + ` FROM approval_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY requested_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query approval requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.ApprovalRequest, 0)
	for rows.Next() {
		req, err := scanApprovalRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

// CountPending returns the number of requests awaiting a decision for
// the branch badge.
func (r *ApprovalRepo) CountPending(ctx context.Context, branchID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM approval_requests WHERE branch_id = $1 AND status = $2`,
		branchID, models.APPROVAL_PENDING,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending approvals: %w", err)
	}
	return count, nil
}

// GetRequestByID loads one approval request with its payload.
func (r *ApprovalRepo) GetRequestByID(ctx context.Context, requestID int64) (*models.ApprovalRequest, error) {
	query := `SELECT` + approvalColumns + ` FROM approval_requests WHERE id = $1`

	req, err := scanApprovalRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("approval request %d not found", requestID)
		}
		return nil, fmt.Errorf("fetch approval request: %w", err)
	}
	return req, nil
}

// decide moves a request out of Pending. The status predicate in the
// WHERE clause makes concurrent decisions race-safe: the second decider
// matches zero rows.
func (r *ApprovalRepo) decide(ctx context.Context, requestID int64, newStatus, decidedBy string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE approval_requests
		SET status = $1, decided_by = $2, decided_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`, newStatus, decidedBy, requestID, models.APPROVAL_PENDING)
	if err != nil {
		return fmt.Errorf("decide approval request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("approval request %d is not pending", requestID)
	}
	return nil
}

// ApproveRequest marks a pending request approved. Sequences are still
// untouched; they move when the request is finalized.
func (r *ApprovalRepo) ApproveRequest(ctx context.Context, requestID int64, decidedBy string) error {
	return r.decide(ctx, requestID, models.APPROVAL_APPROVED, decidedBy)
}

// RejectRequest marks a pending request rejected. The parked order is
// dead; nothing was ever allocated for it.
func (r *ApprovalRepo) RejectRequest(ctx context.Context, requestID int64, decidedBy string) error {
	return r.decide(ctx, requestID, models.APPROVAL_REJECTED, decidedBy)
}

// FinalizeApproved resumes an approved request: the stored payload is
// decoded and the normal finalization runs, allocating sequences now.
// The request row is locked for the duration so a double submit cannot
// produce two sales records; a Completed request refuses to run again
// and reports the record it already produced.
func (r *ApprovalRepo) FinalizeApproved(ctx context.Context, requestID int64) (*models.SalesRecord, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("ERROR_1: begin transaction: %w", err)
	}

	rollback := true
	defer func() {
		if rollback {
			_ = tx.Rollback(ctx)
		}
	}()

	var status string
	var payload []byte
	var salesRecordID *int64
	err = tx.QueryRow(ctx, `
		SELECT status, payload, sales_record_id
		FROM approval_requests
		WHERE id = $1
		FOR UPDATE
	`, requestID).Scan(&status, &payload, &salesRecordID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("ERROR_2: approval request %d not found", requestID)
		}
		return nil, fmt.Errorf("ERROR_2: lock approval request: %w", err)
	}

	switch status {
	case models.APPROVAL_COMPLETED:
		if salesRecordID != nil {
			return nil, fmt.Errorf("ERROR_3: request %d already finalized as sales record %d", requestID, *salesRecordID)
		}
		return nil, fmt.Errorf("ERROR_3: request %d already finalized", requestID)
	case models.APPROVAL_APPROVED:
		// proceed
	default:
		return nil, fmt.Errorf("ERROR_3: request %d has status %q, must be %s", requestID, status, models.APPROVAL_APPROVED)
	}

	parked, err := models.DecodeOrderPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("ERROR_4: %w", err)
	}
	order := parked.Order

	recordID, err := createSalesRecordTx(tx, ctx, &order, parked.BookingReceiptIDs)
	if err != nil {
		return nil, fmt.Errorf("ERROR_5: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE approval_requests
		SET status = $1, sales_record_id = $2, completed_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, models.APPROVAL_COMPLETED, recordID, requestID)
	if err != nil {
		return nil, fmt.Errorf("ERROR_6: update approval request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ERROR_7: commit transaction: %w", err)
	}
	rollback = false

	return NewOrderRepo(r.db).GetSalesRecordByID(ctx, recordID)
}
