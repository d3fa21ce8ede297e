package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
)

type CashierHandler struct {
	DB       *dbrepo.CashierRepo
	Orders   *dbrepo.OrderRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewCashierHandler(db *dbrepo.CashierRepo, orders *dbrepo.OrderRepo, infoLog *log.Logger, errorLog *log.Logger) *CashierHandler {
	return &CashierHandler{
		DB:       db,
		Orders:   orders,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// parseTxnDate reads a yyyy-mm-dd query value, defaulting to today.
func parseTxnDate(value string) (time.Time, error) {
	if value == "" {
		return utils.Today(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", value)
	}
	return date, nil
}

// parseModes turns the optional ?mode= filter into payment modes. A
// comma separates multiple modes; empty means no filter.
func parseModes(value string) []string {
	if value == "" {
		return nil
	}
	var modes []string
	for _, m := range strings.Split(value, ",") {
		if m = strings.TrimSpace(m); m != "" {
			modes = append(modes, m)
		}
	}
	return modes
}

type newTransactionRequest struct {
	TxnDate      string  `json:"txn_date"`
	TxnType      string  `json:"txn_type" validate:"required,oneof=Receipt Voucher"`
	Category     string  `json:"category" validate:"required"`
	Description  string  `json:"description"`
	CustomerName string  `json:"customer_name"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode  string  `json:"payment_mode" validate:"required"`
	DCNumber     string  `json:"dc_number"`

	// receipts in categories that default to manual numbering can force
	// a number with this flag; it is ignored for vouchers
	AssignNumber *bool `json:"assign_number"`

	IsExpense *bool `json:"is_expense"`
}

// AddTransaction handles POST /cashier/transactions/new. Numbering
// follows the category policy unless the request overrides it; the
// stored expense flag for receipts is always false regardless of what
// the caller sent.
func (c *CashierHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	var req newTransactionRequest
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		c.errorLog.Println("AddTransaction_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	txnDate, err := parseTxnDate(req.TxnDate)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	rule, ok := models.CashierNumberingRule(req.TxnType, req.Category)
	if !ok {
		utils.BadRequest(w, fmt.Errorf("unknown transaction type %q", req.TxnType))
		return
	}
	assignNumber := rule.AutoAssign
	if req.AssignNumber != nil {
		assignNumber = *req.AssignNumber
	}

	isExpense := models.DefaultIsExpense(req.TxnType, req.Category)
	if req.IsExpense != nil {
		isExpense = *req.IsExpense
	}

	createdBy := ""
	if claims, ok := utils.ClaimsFromContext(r.Context()); ok {
		createdBy = claims.Username
	}

	txn := models.CashierTransaction{
		BranchID:     branchID,
		TxnDate:      txnDate,
		TxnType:      req.TxnType,
		Category:     req.Category,
		Description:  req.Description,
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		PaymentMode:  req.PaymentMode,
		IsExpense:    isExpense,
		CreatedBy:    createdBy,
	}
	if req.DCNumber != "" {
		txn.DCNumber = &req.DCNumber
	}

	id, err := c.DB.AddTransaction(r.Context(), &txn, assignNumber)
	if err != nil {
		c.errorLog.Println("AddTransaction_DB:", err)
		utils.ServerError(w, err)
		return
	}

	c.infoLog.Printf("cashier %s saved for branch %s (id %d)", txn.TxnType, branchID, id)

	resp := map[string]any{
		"error":       false,
		"status":      "success",
		"message":     "Transaction saved successfully",
		"transaction": txn,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetDaybook handles GET /cashier/daybook?date=&mode=. The mode filter
// narrows the opening balance to one drawer; the day's lines are always
// the full sheet.
func (c *CashierHandler) GetDaybook(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	date, err := parseTxnDate(utils.GetURLParam(r, "date"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}
	modes := parseModes(utils.GetURLParam(r, "mode"))

	opening, err := c.DB.GetOpeningBalance(r.Context(), branchID, date, modes)
	if err != nil {
		c.errorLog.Println("GetDaybook_Opening:", err)
		utils.ServerError(w, err)
		return
	}

	txns, err := c.DB.GetDaybook(r.Context(), branchID, date)
	if err != nil {
		c.errorLog.Println("GetDaybook_DB:", err)
		utils.ServerError(w, err)
		return
	}

	lines := make([]models.CashierTransaction, 0, len(txns))
	for _, t := range txns {
		lines = append(lines, *t)
	}

	resp := map[string]any{
		"error":        false,
		"status":       "success",
		"date":         date.Format("2006-01-02"),
		"transactions": lines,
		"summary":      models.SummarizeDaybook(opening, lines),
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetLedger handles GET /cashier/ledger?start_date=&end_date=&mode=.
// Each line carries the running balance seeded from the opening balance
// before the range.
func (c *CashierHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	startDate, err := parseTxnDate(utils.GetURLParam(r, "start_date"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}
	endDate, err := parseTxnDate(utils.GetURLParam(r, "end_date"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}
	if endDate.Before(startDate) {
		utils.BadRequest(w, errors.New("end_date is before start_date"))
		return
	}
	modes := parseModes(utils.GetURLParam(r, "mode"))

	opening, err := c.DB.GetOpeningBalance(r.Context(), branchID, startDate, modes)
	if err != nil {
		c.errorLog.Println("GetLedger_Opening:", err)
		utils.ServerError(w, err)
		return
	}

	txns, err := c.DB.GetLedger(r.Context(), branchID, startDate, endDate, modes)
	if err != nil {
		c.errorLog.Println("GetLedger_DB:", err)
		utils.ServerError(w, err)
		return
	}

	lines := make([]models.CashierTransaction, 0, len(txns))
	for _, t := range txns {
		lines = append(lines, *t)
	}

	resp := map[string]any{
		"error":           false,
		"status":          "success",
		"start_date":      startDate.Format("2006-01-02"),
		"end_date":        endDate.Format("2006-01-02"),
		"opening_balance": opening,
		"lines":           models.RunningBalance(opening, lines),
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetOpeningBalance handles GET /cashier/opening-balance?date=&mode=
func (c *CashierHandler) GetOpeningBalance(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	date, err := parseTxnDate(utils.GetURLParam(r, "date"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}
	modes := parseModes(utils.GetURLParam(r, "mode"))

	opening, err := c.DB.GetOpeningBalance(r.Context(), branchID, date, modes)
	if err != nil {
		c.errorLog.Println("GetOpeningBalance_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":           false,
		"status":          "success",
		"date":            date.Format("2006-01-02"),
		"opening_balance": opening,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetImportCandidates handles GET /cashier/import/candidates
// ?source_branch=&date=. Rows the calling branch already imported are
// excluded.
func (c *CashierHandler) GetImportCandidates(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	sourceBranch := utils.GetURLParam(r, "source_branch")
	if sourceBranch == "" {
		utils.BadRequest(w, errors.New("source_branch is required"))
		return
	}
	if sourceBranch == branchID {
		utils.BadRequest(w, errors.New("cannot import from the same branch"))
		return
	}

	date, err := parseTxnDate(utils.GetURLParam(r, "date"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	candidates, err := c.DB.GetImportCandidates(r.Context(), sourceBranch, branchID, date)
	if err != nil {
		c.errorLog.Println("GetImportCandidates_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":        false,
		"status":       "success",
		"transactions": candidates,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// ImportTransactions handles POST /cashier/import: copies the selected
// source rows into the calling branch's book for the given date. Running
// the same import again copies nothing.
func (c *CashierHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	var req struct {
		SourceBranch string  `json:"source_branch" validate:"required"`
		IDs          []int64 `json:"ids" validate:"required,min=1"`
		Date         string  `json:"date"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		c.errorLog.Println("ImportTransactions_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}
	if req.SourceBranch == branchID {
		utils.BadRequest(w, errors.New("cannot import from the same branch"))
		return
	}

	txnDate, err := parseTxnDate(req.Date)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	imported, err := c.DB.ImportTransactions(r.Context(), req.SourceBranch, branchID, req.IDs, txnDate)
	if err != nil {
		c.errorLog.Println("ImportTransactions_DB:", err)
		utils.ServerError(w, err)
		return
	}

	c.infoLog.Printf("imported %d transactions from %s into %s", imported, req.SourceBranch, branchID)

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"message":  fmt.Sprintf("%d transactions imported", imported),
		"imported": imported,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetUnlinkedBookings handles GET /cashier/bookings/unlinked
func (c *CashierHandler) GetUnlinkedBookings(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	receipts, err := c.DB.GetUnlinkedBookingReceipts(r.Context(), branchID)
	if err != nil {
		c.errorLog.Println("GetUnlinkedBookings_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"receipts": receipts,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// LinkBookings handles POST /cashier/bookings/link: ties booking
// receipts taken before the sale to the DC that consumed them. The DC
// must belong to a finalized record of the calling branch.
func (c *CashierHandler) LinkBookings(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	var req struct {
		DCNumber   string  `json:"dc_number" validate:"required"`
		ReceiptIDs []int64 `json:"receipt_ids" validate:"required,min=1"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		c.errorLog.Println("LinkBookings_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if _, err := c.Orders.GetSalesRecordByDC(r.Context(), branchID, req.DCNumber); err != nil {
		c.errorLog.Println("LinkBookings_Record:", err)
		utils.NotFound(w, err.Error())
		return
	}

	if err := c.DB.LinkBookingReceipts(r.Context(), req.DCNumber, req.ReceiptIDs); err != nil {
		c.errorLog.Println("LinkBookings_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": fmt.Sprintf("%d receipts linked to %s", len(req.ReceiptIDs), req.DCNumber),
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetPaidForDC handles GET /cashier/paid?dc_number=: the live total of
// receipts recorded against one DC, alongside the record's DD amount so
// the counter can quote what is still pending.
func (c *CashierHandler) GetPaidForDC(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	dcNumber := utils.GetURLParam(r, "dc_number")
	if dcNumber == "" {
		utils.BadRequest(w, errors.New("dc_number is required"))
		return
	}

	record, err := c.Orders.GetSalesRecordByDC(r.Context(), branchID, dcNumber)
	if err != nil {
		c.errorLog.Println("GetPaidForDC_Record:", err)
		utils.NotFound(w, err.Error())
		return
	}

	total, err := c.DB.TotalPaidForDC(r.Context(), branchID, dcNumber)
	if err != nil {
		c.errorLog.Println("GetPaidForDC_DB:", err)
		utils.ServerError(w, err)
		return
	}

	pending := record.DDAmount - total
	if pending < 0 {
		pending = 0
	}

	resp := map[string]any{
		"error":      false,
		"status":     "success",
		"dc_number":  dcNumber,
		"dd_amount":  record.DDAmount,
		"total_paid": total,
		"pending":    pending,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
