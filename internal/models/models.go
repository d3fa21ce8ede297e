package models

import (
	"time"
)

const (
	APPName    = "Vehicle Sales System"
	APPVersion = "1.0"
)

// Counter identifies one branch-scoped sequence series. Allocation goes
// through dbrepo.NextSequenceTx which maps these to branches columns.
type Counter string

const (
	COUNTER_DC             Counter = "dc_last_number"
	COUNTER_ACC_INV_1      Counter = "acc_inv_1_last_number"
	COUNTER_ACC_INV_2      Counter = "acc_inv_2_last_number"
	COUNTER_RECEIPT        Counter = "receipt_last_number"
	COUNTER_VOUCHER        Counter = "voucher_last_number"
	COUNTER_BRANCH_RECEIPT Counter = "branch_receipt_last_number"
	COUNTER_JOB_CARD       Counter = "job_card_last_number"
	COUNTER_OUT_BILL       Counter = "out_bill_last_number"
)

// AllCounters lists every series a branch carries, in display order.
var AllCounters = []Counter{
	COUNTER_DC,
	COUNTER_ACC_INV_1,
	COUNTER_ACC_INV_2,
	COUNTER_RECEIPT,
	COUNTER_VOUCHER,
	COUNTER_BRANCH_RECEIPT,
	COUNTER_JOB_CARD,
	COUNTER_OUT_BILL,
}

// CounterFloors keeps the two accessory invoice series in disjoint ranges
// even when a branch starts from zero.
var CounterFloors = map[Counter]int64{
	COUNTER_ACC_INV_1: 1000,
	COUNTER_ACC_INV_2: 2000,
}

// EffectiveLastNumber adjusts a stored counter value to its series floor.
// A value below the floor is treated as floor-1 so the first allocation
// lands exactly on the floor.
func EffectiveLastNumber(counter Counter, last int64) int64 {
	if floor, ok := CounterFloors[counter]; ok && last < floor {
		return floor - 1
	}
	return last
}

const (
	TXN_RECEIPT = "Receipt"
	TXN_VOUCHER = "Voucher"
)

const (
	PAY_MODE_CASH   = "Cash"
	PAY_MODE_ONLINE = "Online"
	PAY_MODE_CARD   = "Card"
)

const (
	SALE_TYPE_CASH    = "Cash"
	SALE_TYPE_FINANCE = "Finance"
)

const (
	APPROVAL_PENDING   = "Pending"
	APPROVAL_APPROVED  = "Approved"
	APPROVAL_REJECTED  = "Rejected"
	APPROVAL_COMPLETED = "Completed"
)

const (
	FULFILLMENT_PDI_PENDING = "PDI Pending"
	FULFILLMENT_PDI_DONE    = "PDI Done"
	FULFILLMENT_DELIVERED   = "Delivered"
)

const (
	MOVEMENT_HMSI    = "HMSI"
	MOVEMENT_INWARD  = "INWARD"
	MOVEMENT_OUTWARD = "OUTWARD"
	MOVEMENT_SALE    = "Sale"
)

const (
	EXEC_ROLE_SALES   = "sales"
	EXEC_ROLE_FINANCE = "finance"
)

const (
	INCENTIVE_PERCENTAGE_DD = "percentage_dd"
	INCENTIVE_FIXED_FILE    = "fixed_file"
)

const (
	ROLE_OWNER        = "Owner"
	ROLE_BACK_OFFICE  = "Back Office"
	ROLE_INSURANCE_TR = "Insurance/TR"
	ROLE_CASHIER      = "Cashier"
	ROLE_SALES        = "Sales"
)

// CashSaleTag marks orders sold without a financier.
const CashSaleTag = "N/A (Cash Sale)"

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type JWT struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Roles     string `json:"roles"`
	Branches  string `json:"branches"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
	Refresh   time.Duration
}

type DBConfig struct {
	DSN    string
	DEVDSN string
}

// ApprovalConfig carries the discount-approval policy. Discounts strictly
// greater than Limit must go through the owner approval queue.
type ApprovalConfig struct {
	Limit        float64
	NotifyPhone  string
	NotifyActive bool
}

type Config struct {
	Port     int64
	Env      string
	JWT      JWTConfig
	DB       DBConfig
	Approval ApprovalConfig
}

// Branch holds one showroom's identity, configuration, and the eight
// sequence counters. Counters only ever move forward, by exactly one per
// allocation, under the branch row lock.
type Branch struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	DCLastNumber            int64     `json:"dc_last_number"`
	AccInv1LastNumber       int64     `json:"acc_inv_1_last_number"`
	AccInv2LastNumber       int64     `json:"acc_inv_2_last_number"`
	ReceiptLastNumber       int64     `json:"receipt_last_number"`
	VoucherLastNumber       int64     `json:"voucher_last_number"`
	BranchReceiptLastNumber int64     `json:"branch_receipt_last_number"`
	JobCardLastNumber       int64     `json:"job_card_last_number"`
	OutBillLastNumber       int64     `json:"out_bill_last_number"`
	PricingAdjustment       float64   `json:"pricing_adjustment"`
	FirmID1                 *int64    `json:"firm_id_1,omitempty"`
	FirmID2                 *int64    `json:"firm_id_2,omitempty"`
	DCGenEnabled            bool      `json:"dc_gen_enabled"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// CounterValue returns the stored last number for the named counter.
func (b *Branch) CounterValue(c Counter) int64 {
	switch c {
	case COUNTER_DC:
		return b.DCLastNumber
	case COUNTER_ACC_INV_1:
		return b.AccInv1LastNumber
	case COUNTER_ACC_INV_2:
		return b.AccInv2LastNumber
	case COUNTER_RECEIPT:
		return b.ReceiptLastNumber
	case COUNTER_VOUCHER:
		return b.VoucherLastNumber
	case COUNTER_BRANCH_RECEIPT:
		return b.BranchReceiptLastNumber
	case COUNTER_JOB_CARD:
		return b.JobCardLastNumber
	case COUNTER_OUT_BILL:
		return b.OutBillLastNumber
	}
	return 0
}

// FirmForSlot resolves which firm bills a given accessory slot for this
// branch. Returns 0, false when the slot has no firm assigned.
func (b *Branch) FirmForSlot(slot int) (int64, bool) {
	switch slot {
	case 1:
		if b.FirmID1 != nil {
			return *b.FirmID1, true
		}
	case 2:
		if b.FirmID2 != nil {
			return *b.FirmID2, true
		}
	}
	return 0, false
}

// Firm is static billing-entity reference data.
type Firm struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	InvoicePrefix string `json:"invoice_prefix"`
	GSTNo         string `json:"gst_no"`
	Address       string `json:"address,omitempty"`
}

// VehiclePrice is one model+variant price sheet row.
type VehiclePrice struct {
	ID          int64   `json:"id"`
	Model       string  `json:"model"`
	Variant     string  `json:"variant"`
	ExShowroom  float64 `json:"ex_showroom"`
	LifeTax     float64 `json:"life_tax"`
	Insurance14 float64 `json:"insurance_1_4"`
	ORP         float64 `json:"orp"`
	Accessories float64 `json:"accessories"`
	EW31        float64 `json:"ew_3_1"`
	HC          float64 `json:"hc"`
	PRCharges   float64 `json:"pr_charges"`
	FinalPrice  float64 `json:"final_price"`
	ColorList   string  `json:"color_list"`
}

// AccessoryItem is one priced catalogue entry, resolved from a model's
// package with its billing slot already derived (package positions 1-4 are
// slot 1, positions 5-10 are slot 2).
type AccessoryItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Slot      int     `json:"slot"`
}

// Executive is branch-scoped staff used for order assembly dropdowns.
type Executive struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"` // sales, finance
	BranchID string `json:"branch_id"`
}

// Financier holds an in-network finance company and its incentive rule.
type Financier struct {
	ID             int64   `json:"id"`
	CompanyName    string  `json:"company_name"`
	IncentiveType  string  `json:"incentive_type,omitempty"` // percentage_dd, fixed_file
	IncentiveValue float64 `json:"incentive_value,omitempty"`
}

// IncentiveRule is the per-financier payout policy handed to the fee
// calculator.
type IncentiveRule struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// BranchConfig bundles the per-branch reference lists one sales terminal
// needs. Empty lists are valid configuration, never an error.
type BranchConfig struct {
	StaffNames     []string                 `json:"staff_names"`
	ExecutiveNames []string                 `json:"executive_names"`
	FinancierNames []string                 `json:"financier_names"`
	IncentiveRules map[string]IncentiveRule `json:"incentive_rules"`
}

// User is a back-office login. Roles and Branches are comma-separated
// lists; Branches may be the literal "ALL".
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Roles     string    `json:"roles"`
	Branches  string    `json:"branches"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryMovement is one stock-register line. Finalizing a sale appends
// a Sale row in the same transaction as the sales record.
type InventoryMovement struct {
	ID           int64     `json:"id"`
	MovementDate time.Time `json:"movement_date"`
	MovementType string    `json:"movement_type"`
	BranchID     string    `json:"branch_id"`
	Model        string    `json:"model"`
	Variant      string    `json:"variant"`
	Color        string    `json:"color"`
	Quantity     int64     `json:"quantity"`
	Remarks      string    `json:"remarks,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
