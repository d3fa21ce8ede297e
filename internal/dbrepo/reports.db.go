package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{db: db}
}

// GetDashboardMetrics aggregates the summary cards for one branch over
// a date range. HP fee and incentive totals are always computed here;
// the handler blanks them for non-owner callers.
func (r *ReportRepo) GetDashboardMetrics(ctx context.Context, branchID string, startDate, endDate time.Time) (*models.DashboardMetrics, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(final_cost), 0),
			COALESCE(SUM(discount), 0),
			COALESCE(SUM(CASE WHEN sale_type = $4 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN sale_type = $5 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN shortfall > $6 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN shortfall > $6 THEN shortfall ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN has_dues THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(hp_fee), 0),
			COALESCE(SUM(incentive), 0)
		FROM sales_records
		WHERE branch_id = $1
		  AND sale_date BETWEEN $2::date AND $3::date
	`

	m := &models.DashboardMetrics{FromDate: startDate, ToDate: endDate}
	err := r.db.QueryRow(ctx, query,
		branchID, startDate, endDate,
		models.SALE_TYPE_CASH, models.SALE_TYPE_FINANCE, models.PaidTolerance,
	).Scan(
		&m.TotalSales,
		&m.TotalRevenue,
		&m.TotalDiscount,
		&m.CashSales,
		&m.FinanceSales,
		&m.PendingDDs,
		&m.PendingAmount,
		&m.DuesCount,
		&m.TotalHPFees,
		&m.TotalIncentives,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics query failed: %w", err)
	}

	return m, nil
}

// GetDuesList returns every record still owing money or flagged for
// double tax, oldest first, for the follow-up screen.
func (r *ReportRepo) GetDuesList(ctx context.Context, branchID string) ([]models.DuesRow, error) {
	query := `
		SELECT id, dc_number, branch_id, customer_name, phone, model,
		       financier_name, shortfall, double_tax, sale_date
		FROM sales_records
		WHERE branch_id = $1
		  AND (shortfall > $2 OR double_tax)
		ORDER BY sale_date ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, branchID, models.PaidTolerance)
	if err != nil {
		return nil, fmt.Errorf("dues list query failed: %w", err)
	}
	defer rows.Close()

	dues := make([]models.DuesRow, 0)
	for rows.Next() {
		var d models.DuesRow
		if err := rows.Scan(
			&d.ID, &d.DCNumber, &d.BranchID, &d.CustomerName, &d.Phone, &d.Model,
			&d.FinancierName, &d.Shortfall, &d.DoubleTax, &d.SaleDate,
		); err != nil {
			return nil, err
		}
		dues = append(dues, d)
	}
	return dues, nil
}

// GetBankerAging splits each financier's unrecovered DD exposure into
// age buckets counted from the sale date.
func (r *ReportRepo) GetBankerAging(ctx context.Context, branchID string) ([]models.BankerAgingRow, error) {
	query := `
		SELECT financier_name, shortfall, (CURRENT_DATE - sale_date)::int
		FROM sales_records
		WHERE branch_id = $1
		  AND sale_type = $2
		  AND shortfall > $3
		ORDER BY financier_name ASC, sale_date ASC
	`

	rows, err := r.db.Query(ctx, query, branchID, models.SALE_TYPE_FINANCE, models.PaidTolerance)
	if err != nil {
		return nil, fmt.Errorf("banker aging query failed: %w", err)
	}
	defer rows.Close()

	byFinancier := map[string]*models.BankerAgingRow{}
	order := []string{}

	for rows.Next() {
		var financier string
		var shortfall float64
		var days int64
		if err := rows.Scan(&financier, &shortfall, &days); err != nil {
			return nil, err
		}

		row, ok := byFinancier[financier]
		if !ok {
			row = &models.BankerAgingRow{FinancierName: financier}
			byFinancier[financier] = row
			order = append(order, financier)
		}

		row.PendingCount++
		row.PendingAmount += shortfall
		switch models.AgingBucket(days) {
		case models.AGING_WEEK:
			row.Week += shortfall
		case models.AGING_FORTNIGHT:
			row.Fortnight += shortfall
		default:
			row.Overdue += shortfall
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report := make([]models.BankerAgingRow, 0, len(order))
	for _, name := range order {
		report = append(report, *byFinancier[name])
	}
	return report, nil
}

// GetInventoryReport nets the stock register into per-model/variant/color
// positions and tags each with its class and movement speed.
func (r *ReportRepo) GetInventoryReport(ctx context.Context, branchID string) ([]models.InventoryReportRow, error) {
	query := `
		SELECT branch_id, model, variant, color,
		       COALESCE(SUM(CASE WHEN movement_type IN ($2, $3) THEN quantity ELSE -quantity END), 0) AS on_hand
		FROM inventory_movements
		WHERE branch_id = $1
		GROUP BY branch_id, model, variant, color
		HAVING COALESCE(SUM(CASE WHEN movement_type IN ($2, $3) THEN quantity ELSE -quantity END), 0) <> 0
		ORDER BY model ASC, variant ASC, color ASC
	`

	rows, err := r.db.Query(ctx, query, branchID, models.MOVEMENT_HMSI, models.MOVEMENT_INWARD)
	if err != nil {
		return nil, fmt.Errorf("inventory report query failed: %w", err)
	}
	defer rows.Close()

	report := make([]models.InventoryReportRow, 0)
	for rows.Next() {
		var row models.InventoryReportRow
		if err := rows.Scan(&row.BranchID, &row.Model, &row.Variant, &row.Color, &row.Quantity); err != nil {
			return nil, err
		}
		row.VehicleType = models.VehicleType(row.Model)
		row.MovementCategory = models.MovementCategory(row.Model, row.Color)
		report = append(report, row)
	}
	return report, nil
}

// GetPendingFulfillment lists records not yet delivered, oldest first,
// for the PDI and insurance/TR work queues.
func (r *ReportRepo) GetPendingFulfillment(ctx context.Context, branchID string) ([]models.SalesRecord, error) {
	query := `SELECT` + salesRecordColumns + `
		FROM sales_records
		WHERE branch_id = $1
		  AND fulfillment_status <> $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, branchID, models.FULFILLMENT_DELIVERED)
	if err != nil {
		return nil, fmt.Errorf("pending fulfillment query failed: %w", err)
	}
	defer rows.Close()

	records := make([]models.SalesRecord, 0)
	for rows.Next() {
		rec, err := scanSalesRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}
