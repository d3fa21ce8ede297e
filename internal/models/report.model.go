package models

import "time"

// PaidTolerance absorbs rounding noise when deciding whether a DD is
// fully recovered.
const PaidTolerance = 1.0

const (
	AGING_WEEK      = "0-7 Days"
	AGING_FORTNIGHT = "7-15 Days"
	AGING_OVERDUE   = ">15 Days"
)

// AgingBucket places a pending DD by how long it has been outstanding.
func AgingBucket(days int64) string {
	switch {
	case days <= 7:
		return AGING_WEEK
	case days <= 15:
		return AGING_FORTNIGHT
	default:
		return AGING_OVERDUE
	}
}

// DashboardMetrics is the owner/back-office summary card set.
type DashboardMetrics struct {
	FromDate      time.Time `json:"from_date"`
	ToDate        time.Time `json:"to_date"`
	TotalSales    int64     `json:"total_sales"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalDiscount float64   `json:"total_discount"`
	CashSales     int64     `json:"cash_sales"`
	FinanceSales  int64     `json:"finance_sales"`
	PendingDDs    int64     `json:"pending_dds"`
	PendingAmount float64   `json:"pending_amount"`
	DuesCount     int64     `json:"dues_count"`

	// owner-only
	TotalHPFees     float64 `json:"total_hp_fees,omitempty"`
	TotalIncentives float64 `json:"total_incentives,omitempty"`
}

// BankerAgingRow is one financier's pending-DD exposure split by age.
type BankerAgingRow struct {
	FinancierName string  `json:"financier_name"`
	PendingCount  int64   `json:"pending_count"`
	PendingAmount float64 `json:"pending_amount"`
	Week          float64 `json:"week"`
	Fortnight     float64 `json:"fortnight"`
	Overdue       float64 `json:"overdue"`
}

// InventoryReportRow is one model/variant/color stock position with its
// classification tags.
type InventoryReportRow struct {
	Model            string `json:"model"`
	Variant          string `json:"variant"`
	Color            string `json:"color"`
	BranchID         string `json:"branch_id"`
	Quantity         int64  `json:"quantity"`
	VehicleType      string `json:"vehicle_type"`
	MovementCategory string `json:"movement_category"`
}

// DuesRow is one sales record still owing money after its DD and
// recoveries, as shown on the dues follow-up list.
type DuesRow struct {
	ID            int64     `json:"id"`
	DCNumber      string    `json:"dc_number"`
	BranchID      string    `json:"branch_id"`
	CustomerName  string    `json:"customer_name"`
	Phone         string    `json:"phone"`
	Model         string    `json:"model"`
	FinancierName string    `json:"financier_name"`
	Shortfall     float64   `json:"shortfall"`
	DoubleTax     bool      `json:"double_tax"`
	SaleDate      time.Time `json:"sale_date"`
}
