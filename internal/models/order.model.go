package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PayloadVersion tags serialized order snapshots so older records can be
// migrated on read if the shape ever changes.
const PayloadVersion = 1

// PlaceholderDC marks orders parked behind an approval request.
const PlaceholderDC = "PENDING-APPROVAL"

// SalesOrder is the in-memory aggregate assembled by a sales terminal. It
// is constructed fresh per sale or rebuilt from a stored payload for
// reprinting, and only mutated through SetFinanceDetails after assembly.
type SalesOrder struct {
	BranchID     string `json:"branch_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Place        string `json:"place"`

	StaffName     string `json:"staff_name"`
	ExecutiveName string `json:"executive_name"`
	FinancierName string `json:"financier_name"`

	Model   string `json:"model"`
	Variant string `json:"variant"`
	Color   string `json:"color"`

	// pricing
	ListedPrice float64 `json:"listed_price"`
	Discount    float64 `json:"discount"`
	FinalCost   float64 `json:"final_cost"`
	ORPAmount   float64 `json:"orp_amount"`
	OtherTax    float64 `json:"other_tax"`

	// finance terms
	SaleType        string  `json:"sale_type"` // Cash, Finance
	DDAmount        float64 `json:"dd_amount"`
	DownPayment     float64 `json:"down_payment"`
	HPFee           float64 `json:"hp_fee"`
	Incentive       float64 `json:"incentive"`
	RemainingAmount float64 `json:"remaining_amount"`

	PRFeeApplies  bool    `json:"pr_fee_applies"`
	WarrantyTier  string  `json:"warranty_tier,omitempty"`
	DoubleTax     bool    `json:"double_tax"`
	BookingAmount float64 `json:"booking_amount"`

	DCNumber string `json:"dc_number"`
	DCSeq    int64  `json:"dc_seq"`

	Bills []AccessoryBill `json:"bills"`
}

// SetFinanceDetails applies negotiated finance terms and recomputes the
// derived amounts: the discount from the listed/final gap, and the
// remaining financed amount floored at zero.
func (o *SalesOrder) SetFinanceDetails(saleType string, dd, down, hpFee, incentive float64) {
	o.SaleType = saleType
	o.DDAmount = dd
	o.DownPayment = down
	o.HPFee = hpFee
	o.Incentive = incentive

	o.Discount = o.ListedPrice - o.FinalCost
	if o.SaleType == SALE_TYPE_FINANCE {
		remaining := (o.FinalCost + o.HPFee + o.Incentive) - o.DDAmount - o.DownPayment
		if remaining < 0 {
			remaining = 0
		}
		o.RemainingAmount = remaining
	} else {
		o.RemainingAmount = 0
	}
}

// TotalPayable is the customer-facing total for a financed sale.
func (o *SalesOrder) TotalPayable() float64 {
	return o.FinalCost + o.HPFee + o.Incentive
}

// NeedsApproval reports whether a discount must go through the owner
// queue. The boundary is strictly greater than the limit: a discount
// exactly at the limit finalizes directly.
func NeedsApproval(discount, limit float64) bool {
	return discount > limit
}

// FormatDCNumber renders a DC sequence in the fixed document format.
func FormatDCNumber(seq int64) string {
	return fmt.Sprintf("DC-%04d", seq)
}

// FormatInvoiceNo renders a firm invoice number from its prefix and
// allocated sequence.
func FormatInvoiceNo(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%d", prefix, seq)
}

// AccessoryLine is one priced row on an accessory bill.
type AccessoryLine struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// AccessoryBill is one firm-scoped invoice child of a SalesOrder. A bill
// is only retained when its grand total is positive and the slot's firm
// is assigned for the branch.
type AccessoryBill struct {
	FirmID     int64           `json:"firm_id"`
	FirmName   string          `json:"firm_name"`
	Slot       int             `json:"slot"`
	Lines      []AccessoryLine `json:"lines"`
	Subtotal   float64         `json:"subtotal"`
	TaxAmount  float64         `json:"tax_amount"`
	GrandTotal float64         `json:"grand_total"`

	// set once numbered
	InvoiceNo  string `json:"invoice_no,omitempty"`
	InvoiceSeq int64  `json:"invoice_seq,omitempty"`
}

// OrderPayload is the versioned snapshot of a SalesOrder stored alongside
// the sales record and inside approval requests. It carries everything
// needed to finalize later or to reprint.
type OrderPayload struct {
	Version int        `json:"version"`
	Order   SalesOrder `json:"order"`

	// booking receipts selected at submit time, linked on finalize
	BookingReceiptIDs []int64 `json:"booking_receipt_ids,omitempty"`
}

// NewOrderPayload wraps an order in the current snapshot version.
func NewOrderPayload(order SalesOrder) OrderPayload {
	return OrderPayload{Version: PayloadVersion, Order: order}
}

// Encode serializes the payload for a jsonb column.
func (p OrderPayload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding order payload: %w", err)
	}
	return data, nil
}

// DecodeOrderPayload parses a stored snapshot. Records written before
// versioning are treated as version 1.
func DecodeOrderPayload(data []byte) (OrderPayload, error) {
	var p OrderPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return OrderPayload{}, fmt.Errorf("decoding order payload: %w", err)
	}
	if p.Version == 0 {
		p.Version = PayloadVersion
	}
	return p, nil
}

// SalesRecord is the persisted result of a finalized order: the indexed
// columns the back office searches on, plus the full payload snapshot.
type SalesRecord struct {
	ID       int64  `json:"id"`
	BranchID string `json:"branch_id"`
	DCNumber string `json:"dc_number"`
	DCSeq    int64  `json:"dc_seq"`

	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Place        string `json:"place"`

	Model   string `json:"model"`
	Variant string `json:"variant"`
	Color   string `json:"color"`

	SaleType      string `json:"sale_type"`
	FinancierName string `json:"financier_name"`
	StaffName     string `json:"staff_name"`
	ExecutiveName string `json:"executive_name"`

	ListedPrice     float64 `json:"listed_price"`
	Discount        float64 `json:"discount"`
	FinalCost       float64 `json:"final_cost"`
	HPFee           float64 `json:"hp_fee"`
	Incentive       float64 `json:"incentive"`
	DDAmount        float64 `json:"dd_amount"`
	DownPayment     float64 `json:"down_payment"`
	RemainingAmount float64 `json:"remaining_amount"`

	AccInv1No    *string  `json:"acc_inv_1_no,omitempty"`
	AccInv1Seq   *int64   `json:"acc_inv_1_seq,omitempty"`
	AccInv1Total *float64 `json:"acc_inv_1_total,omitempty"`
	AccInv2No    *string  `json:"acc_inv_2_no,omitempty"`
	AccInv2Seq   *int64   `json:"acc_inv_2_seq,omitempty"`
	AccInv2Total *float64 `json:"acc_inv_2_total,omitempty"`

	// post-sale payment tracking
	ReceivedAmount    float64 `json:"received_amount"`
	ShortfallReceived float64 `json:"shortfall_received"`
	Shortfall         float64 `json:"shortfall"`
	HasDues           bool    `json:"has_dues"`
	DoubleTax         bool    `json:"double_tax"`

	// fulfillment tracking
	FulfillmentStatus string     `json:"fulfillment_status"`
	EngineNo          *string    `json:"engine_no,omitempty"`
	ChassisNo         *string    `json:"chassis_no,omitempty"`
	PDIAssignedTo     *string    `json:"pdi_assigned_to,omitempty"`
	PDICompletionDate *time.Time `json:"pdi_completion_date,omitempty"`
	InsuranceDone     bool       `json:"is_insurance_done"`
	TRDone            bool       `json:"is_tr_done"`
	PlatesReceived    bool       `json:"plates_received"`

	Payload json.RawMessage `json:"payload,omitempty"`

	SaleDate  time.Time `json:"sale_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LiveShortfall is the DD amount still unrecovered after the money
// actually received against it.
func (r *SalesRecord) LiveShortfall() float64 {
	short := r.DDAmount - (r.ReceivedAmount + r.ShortfallReceived)
	if short < 0 {
		return 0
	}
	return short
}

// RecentRecord is the slim listing shape for the reprint picker.
type RecentRecord struct {
	ID           int64  `json:"id"`
	DCNumber     string `json:"dc_number"`
	CustomerName string `json:"customer_name"`
}

// FulfillmentUpdate carries the post-sale fields a PATCH may change.
// Nil fields are left untouched.
type FulfillmentUpdate struct {
	Status            *string    `json:"fulfillment_status,omitempty"`
	EngineNo          *string    `json:"engine_no,omitempty"`
	ChassisNo         *string    `json:"chassis_no,omitempty"`
	PDIAssignedTo     *string    `json:"pdi_assigned_to,omitempty"`
	PDICompletionDate *time.Time `json:"pdi_completion_date,omitempty"`
	InsuranceDone     *bool      `json:"is_insurance_done,omitempty"`
	TRDone            *bool      `json:"is_tr_done,omitempty"`
	PlatesReceived    *bool      `json:"plates_received,omitempty"`
	DoubleTax         *bool      `json:"has_double_tax,omitempty"`
}

// ApprovalRequest is a deferred finalization awaiting an owner decision.
// The payload holds the fully computed order with a placeholder DC number;
// no branch counter moves until the request is approved and resumed.
type ApprovalRequest struct {
	ID                int64           `json:"id"`
	ReferenceNo       string          `json:"reference_no"`
	BranchID          string          `json:"branch_id"`
	CustomerName      string          `json:"customer_name"`
	Model             string          `json:"model"`
	DiscountRequested float64         `json:"discount_requested"`
	FinalPrice        float64         `json:"final_price"`
	Status            string          `json:"status"` // Pending, Approved, Rejected, Completed
	Payload           json.RawMessage `json:"payload,omitempty"`
	SalesRecordID     *int64          `json:"sales_record_id,omitempty"`
	RequestedBy       string          `json:"requested_by"`
	DecidedBy         *string         `json:"decided_by,omitempty"`
	RequestedAt       time.Time       `json:"requested_at"`
	DecidedAt         *time.Time      `json:"decided_at,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}
