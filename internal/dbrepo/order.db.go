package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/billing"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

const salesRecordColumns = `
	id, branch_id, dc_number, dc_seq, customer_name, phone, place,
	model, variant, color, sale_type, financier_name, staff_name, executive_name,
	listed_price, discount, final_cost, hp_fee, incentive,
	dd_amount, down_payment, remaining_amount,
	acc_inv_1_no, acc_inv_1_seq, acc_inv_1_total,
	acc_inv_2_no, acc_inv_2_seq, acc_inv_2_total,
	received_amount, shortfall_received, shortfall, has_dues, double_tax,
	fulfillment_status, engine_no, chassis_no, pdi_assigned_to, pdi_completion_date,
	is_insurance_done, is_tr_done, plates_received,
	payload, sale_date, created_at, updated_at`

func scanSalesRecord(row pgx.Row) (*models.SalesRecord, error) {
	var rec models.SalesRecord
	err := row.Scan(
		&rec.ID, &rec.BranchID, &rec.DCNumber, &rec.DCSeq, &rec.CustomerName, &rec.Phone, &rec.Place,
		&rec.Model, &rec.Variant, &rec.Color, &rec.SaleType, &rec.FinancierName, &rec.StaffName, &rec.ExecutiveName,
		&rec.ListedPrice, &rec.Discount, &rec.FinalCost, &rec.HPFee, &rec.Incentive,
		&rec.DDAmount, &rec.DownPayment, &rec.RemainingAmount,
		&rec.AccInv1No, &rec.AccInv1Seq, &rec.AccInv1Total,
		&rec.AccInv2No, &rec.AccInv2Seq, &rec.AccInv2Total,
		&rec.ReceivedAmount, &rec.ShortfallReceived, &rec.Shortfall, &rec.HasDues, &rec.DoubleTax,
		&rec.FulfillmentStatus, &rec.EngineNo, &rec.ChassisNo, &rec.PDIAssignedTo, &rec.PDICompletionDate,
		&rec.InsuranceDone, &rec.TRDone, &rec.PlatesReceived,
		&rec.Payload, &rec.SaleDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// createSalesRecordTx runs the full finalization inside the caller's
// transaction: lock the branch row, allocate the DC sequence, number
// each retained accessory bill from its slot series, snapshot the
// order payload, insert the record, append the stock movement, and
// link any booking receipts. Rolling back the transaction returns
// every counter to its prior value.
func createSalesRecordTx(tx pgx.Tx, ctx context.Context, order *models.SalesOrder, bookingReceiptIDs []int64) (int64, error) {
	// Step 1: lock the branch row; this serializes all finalizations
	// for the branch until commit
	branch, err := LockBranchTx(tx, ctx, order.BranchID)
	if err != nil {
		return 0, err
	}
	if !branch.DCGenEnabled {
		return 0, fmt.Errorf("DC generation is disabled for branch %q", branch.ID)
	}

	// Step 2: allocate the DC number
	dcSeq, err := NextSequenceTx(tx, ctx, order.BranchID, models.COUNTER_DC)
	if err != nil {
		return 0, err
	}
	order.DCSeq = dcSeq
	order.DCNumber = models.FormatDCNumber(dcSeq)

	// Step 3: number each accessory bill from its slot's series
	for i := range order.Bills {
		counter, ok := billing.SlotCounter(order.Bills[i].Slot)
		if !ok {
			return 0, fmt.Errorf("accessory bill has invalid slot %d", order.Bills[i].Slot)
		}

		seq, err := NextSequenceTx(tx, ctx, order.BranchID, counter)
		if err != nil {
			return 0, err
		}

		var prefix string
		err = tx.QueryRow(ctx, `SELECT invoice_prefix FROM firm_master WHERE id = $1`, order.Bills[i].FirmID).Scan(&prefix)
		if err != nil {
			if err == pgx.ErrNoRows {
				return 0, fmt.Errorf("firm %d not found", order.Bills[i].FirmID)
			}
			return 0, fmt.Errorf("reading firm %d: %w", order.Bills[i].FirmID, err)
		}

		order.Bills[i].InvoiceSeq = seq
		order.Bills[i].InvoiceNo = models.FormatInvoiceNo(prefix, seq)
	}

	// Step 4: snapshot the fully numbered order
	snapshot := models.NewOrderPayload(*order)
	snapshot.BookingReceiptIDs = bookingReceiptIDs
	payload, err := snapshot.Encode()
	if err != nil {
		return 0, err
	}

	// Step 5: insert the sales record
	var accInv1No, accInv2No *string
	var accInv1Seq, accInv2Seq *int64
	var accInv1Total, accInv2Total *float64
	for i := range order.Bills {
		b := order.Bills[i]
		switch b.Slot {
		case 1:
			accInv1No, accInv1Seq, accInv1Total = &b.InvoiceNo, &b.InvoiceSeq, &b.GrandTotal
		case 2:
			accInv2No, accInv2Seq, accInv2Total = &b.InvoiceNo, &b.InvoiceSeq, &b.GrandTotal
		}
	}

	var recordID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO sales_records(
			branch_id, dc_number, dc_seq, customer_name, phone, place,
			model, variant, color, sale_type, financier_name, staff_name, executive_name,
			listed_price, discount, final_cost, hp_fee, incentive,
			dd_amount, down_payment, remaining_amount,
			acc_inv_1_no, acc_inv_1_seq, acc_inv_1_total,
			acc_inv_2_no, acc_inv_2_seq, acc_inv_2_total,
			shortfall, has_dues, double_tax, payload, sale_date,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,CURRENT_DATE,
		        CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id
	`,
		order.BranchID, order.DCNumber, order.DCSeq, order.CustomerName, order.Phone, order.Place,
		order.Model, order.Variant, order.Color, order.SaleType, order.FinancierName, order.StaffName, order.ExecutiveName,
		order.ListedPrice, order.Discount, order.FinalCost, order.HPFee, order.Incentive,
		order.DDAmount, order.DownPayment, order.RemainingAmount,
		accInv1No, accInv1Seq, accInv1Total,
		accInv2No, accInv2Seq, accInv2Total,
		order.DDAmount, order.DDAmount > 0, order.DoubleTax, payload,
	).Scan(&recordID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_branch_dc_number":
				return 0, fmt.Errorf("DC number %s already exists for branch %s", order.DCNumber, order.BranchID)
			}
		}
		return 0, fmt.Errorf("insert sales record failed: %w", err)
	}

	// Step 6: append the stock movement for the sold unit
	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_movements(movement_date, movement_type, branch_id, model, variant, color, quantity, remarks)
		VALUES (CURRENT_DATE, $1, $2, $3, $4, $5, 1, $6)
	`,
		models.MOVEMENT_SALE, order.BranchID, order.Model, order.Variant, order.Color,
		"DC: "+order.DCNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("insert inventory movement failed: %w", err)
	}

	// Step 7: tie the customer's booking money to the new DC
	if err := LinkBookingReceiptsTx(ctx, tx, order.DCNumber, bookingReceiptIDs); err != nil {
		return 0, err
	}

	return recordID, nil
}

// CreateSalesRecord finalizes an order that needs no approval: all
// sequence allocation and the record insert happen in one transaction.
func (r *OrderRepo) CreateSalesRecord(ctx context.Context, order *models.SalesOrder, bookingReceiptIDs []int64) (*models.SalesRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	recordID, err := createSalesRecordTx(tx, ctx, order, bookingReceiptIDs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetSalesRecordByID(ctx, recordID)
}

// GetSalesRecordByID loads one record with its payload.
func (r *OrderRepo) GetSalesRecordByID(ctx context.Context, recordID int64) (*models.SalesRecord, error) {
	query := `SELECT` + salesRecordColumns + ` FROM sales_records WHERE id = $1`

	rec, err := scanSalesRecord(r.db.QueryRow(ctx, query, recordID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("sales record %d not found", recordID)
		}
		return nil, fmt.Errorf("fetch sales record failed: %w", err)
	}
	return rec, nil
}

// GetSalesRecordByDC loads a record by its branch-scoped DC number.
func (r *OrderRepo) GetSalesRecordByDC(ctx context.Context, branchID, dcNumber string) (*models.SalesRecord, error) {
	query := `SELECT` + salesRecordColumns + ` FROM sales_records WHERE branch_id = $1 AND dc_number = $2`

	rec, err := scanSalesRecord(r.db.QueryRow(ctx, query, branchID, dcNumber))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("sales record %s not found for branch %s", dcNumber, branchID)
		}
		return nil, fmt.Errorf("fetch sales record failed: %w", err)
	}
	return rec, nil
}

// GetSalesRecords lists records for a branch with optional search over
// DC number, customer name, and phone, newest first, paginated.
func (r *OrderRepo) GetSalesRecords(
	ctx context.Context,
	branchID string,
	search string,
	page int,
	limit int,
) ([]models.SalesRecord, int, error) {

	var conditions []string
	var args []interface{}
	argPos := 1

	conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argPos))
	args = append(args, branchID)
	argPos++

	search = strings.TrimSpace(search)
	if search != "" {
		searchTerm := "%" + search + "%"
		conditions = append(conditions, fmt.Sprintf(`
			(
				dc_number ILIKE $%d OR
				customer_name ILIKE $%d OR
				phone ILIKE $%d
			)
		`, argPos, argPos, argPos))
		args = append(args, searchTerm)
		argPos++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM sales_records " + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count sales records failed: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	offset := page * limit

	dataQuery := fmt.Sprintf(`
		SELECT %s
		FROM sales_records
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, salesRecordColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query sales records failed: %w", err)
	}
	defer rows.Close()

	records := make([]models.SalesRecord, 0)
	for rows.Next() {
		rec, err := scanSalesRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}

	return records, totalCount, nil
}

// GetRecentRecords returns the latest finalized sales for the reprint
// picker: id, DC number, and customer only.
func (r *OrderRepo) GetRecentRecords(ctx context.Context, branchID string, limit int) ([]models.RecentRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, dc_number, customer_name
		FROM sales_records
		WHERE branch_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent records: %w", err)
	}
	defer rows.Close()

	var records []models.RecentRecord
	for rows.Next() {
		var rec models.RecentRecord
		if err := rows.Scan(&rec.ID, &rec.DCNumber, &rec.CustomerName); err != nil {
			return nil, fmt.Errorf("scanning recent record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// UpdateDDPayment records money received against a record's DD and
// recomputes the shortfall under a row lock. Nil means "leave as is".
func (r *OrderRepo) UpdateDDPayment(ctx context.Context, recordID int64, newReceived, newShortfallReceived *float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Step 1: lock the record and read the current payment state
	var ddAmount, received, shortfallReceived float64
	err = tx.QueryRow(ctx, `
		SELECT dd_amount, received_amount, shortfall_received
		FROM sales_records
		WHERE id = $1
		FOR UPDATE
	`, recordID).Scan(&ddAmount, &received, &shortfallReceived)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("sales record %d not found", recordID)
		}
		return fmt.Errorf("lock sales record failed: %w", err)
	}

	// Step 2: apply the new figures
	if newReceived != nil {
		received = *newReceived
	}
	if newShortfallReceived != nil {
		shortfallReceived = *newShortfallReceived
	}

	shortfall := ddAmount - (received + shortfallReceived)
	hasDues := shortfall > 0

	// Step 3: persist payment state and recomputed shortfall together
	_, err = tx.Exec(ctx, `
		UPDATE sales_records
		SET received_amount = $1, shortfall_received = $2, shortfall = $3,
		    has_dues = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`, received, shortfallReceived, shortfall, hasDues, recordID)
	if err != nil {
		return fmt.Errorf("update dd payment failed: %w", err)
	}

	return tx.Commit(ctx)
}

// UpdateFulfillment applies post-sale status changes: PDI progress,
// vehicle identity, and the insurance/TR/plates milestones. Only the
// fields present in the update are touched; has_dues is owned by the
// payment path and cannot be set from here.
func (r *OrderRepo) UpdateFulfillment(ctx context.Context, recordID int64, upd *models.FulfillmentUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if upd.Status != nil {
		addSet("fulfillment_status", *upd.Status)
	}
	if upd.EngineNo != nil {
		addSet("engine_no", *upd.EngineNo)
	}
	if upd.ChassisNo != nil {
		addSet("chassis_no", *upd.ChassisNo)
	}
	if upd.PDIAssignedTo != nil {
		addSet("pdi_assigned_to", *upd.PDIAssignedTo)
	}
	if upd.PDICompletionDate != nil {
		addSet("pdi_completion_date", *upd.PDICompletionDate)
	}
	if upd.InsuranceDone != nil {
		addSet("is_insurance_done", *upd.InsuranceDone)
	}
	if upd.TRDone != nil {
		addSet("is_tr_done", *upd.TRDone)
	}
	if upd.PlatesReceived != nil {
		addSet("plates_received", *upd.PlatesReceived)
	}
	if upd.DoubleTax != nil {
		addSet("double_tax", *upd.DoubleTax)
	}

	if len(setClauses) == 0 {
		return nil
	}
	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`UPDATE sales_records SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos)
	args = append(args, recordID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update fulfillment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sales record %d not found", recordID)
	}
	return nil
}
