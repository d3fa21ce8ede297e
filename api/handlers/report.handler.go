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

type ReportHandler struct {
	DB        *dbrepo.ReportRepo
	Inventory *dbrepo.InventoryRepo
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewReportHandler(db *dbrepo.ReportRepo, inventory *dbrepo.InventoryRepo, infoLog *log.Logger, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		DB:        db,
		Inventory: inventory,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

// parseDateRange reads start_date/end_date query params. When either is
// missing the range defaults to the current month.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	startStr := strings.TrimSpace(q.Get("start_date"))
	endStr := strings.TrimSpace(q.Get("end_date"))

	const dateLayout = "2006-01-02"

	if startStr == "" || endStr == "" {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1), nil
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date is before start_date")
	}
	return start, end, nil
}

// GetDashboardMetrics handles GET /reports/dashboard/metrics
// ?start_date=&end_date=. HP fee and incentive totals only appear for
// owners; everyone else gets the sales figures with those blanked.
func (rp *ReportHandler) GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	metrics, err := rp.DB.GetDashboardMetrics(r.Context(), branchID, startDate, endDate)
	if err != nil {
		rp.errorLog.Println("GetDashboardMetrics_DB:", err)
		utils.ServerError(w, err)
		return
	}

	claims, ok := utils.ClaimsFromContext(r.Context())
	if !ok || !utils.HasRole(claims, models.ROLE_OWNER) {
		metrics.TotalHPFees = 0
		metrics.TotalIncentives = 0
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"metrics": metrics,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetDuesList handles GET /reports/dues: records still owing beyond the
// paid tolerance, plus any flagged for double tax, oldest sale first.
func (rp *ReportHandler) GetDuesList(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	dues, err := rp.DB.GetDuesList(r.Context(), branchID)
	if err != nil {
		rp.errorLog.Println("GetDuesList_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"dues":   dues,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetBankerAging handles GET /reports/dashboard/banker-aging: pending DD
// exposure per financier, bucketed by how long the money has been out.
func (rp *ReportHandler) GetBankerAging(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	aging, err := rp.DB.GetBankerAging(r.Context(), branchID)
	if err != nil {
		rp.errorLog.Println("GetBankerAging_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"aging":  aging,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetInventoryReport handles GET /reports/inventory: net stock per
// model/variant/color from the movement log.
func (rp *ReportHandler) GetInventoryReport(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	stock, err := rp.DB.GetInventoryReport(r.Context(), branchID)
	if err != nil {
		rp.errorLog.Println("GetInventoryReport_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"stock":  stock,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetPendingFulfillment handles GET /reports/fulfillment/pending: every
// record not yet delivered, oldest first, for the PDI board.
func (rp *ReportHandler) GetPendingFulfillment(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	records, err := rp.DB.GetPendingFulfillment(r.Context(), branchID)
	if err != nil {
		rp.errorLog.Println("GetPendingFulfillment_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"records": records,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddInventoryMovement handles POST /inventory/movements: manual stock
// entries from receiving or transfers. Sale lines cannot be written
// here; finalization owns those.
func (rp *ReportHandler) AddInventoryMovement(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	var req struct {
		MovementDate string `json:"movement_date"`
		MovementType string `json:"movement_type" validate:"required"`
		Model        string `json:"model" validate:"required"`
		Variant      string `json:"variant" validate:"required"`
		Color        string `json:"color"`
		Quantity     int64  `json:"quantity" validate:"required,gt=0"`
		Remarks      string `json:"remarks"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		rp.errorLog.Println("AddInventoryMovement_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	movementDate, err := parseTxnDate(req.MovementDate)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	movement := models.InventoryMovement{
		MovementDate: movementDate,
		MovementType: req.MovementType,
		BranchID:     branchID,
		Model:        req.Model,
		Variant:      req.Variant,
		Color:        req.Color,
		Quantity:     req.Quantity,
		Remarks:      req.Remarks,
	}
	if err := rp.Inventory.AddMovement(r.Context(), &movement); err != nil {
		rp.errorLog.Println("AddInventoryMovement_DB:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"message":  "Movement recorded successfully",
		"movement": movement,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetInventoryMovements handles GET /inventory/movements
// ?start_date=&end_date=&type=
func (rp *ReportHandler) GetInventoryMovements(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	movements, err := rp.Inventory.GetMovements(r.Context(), branchID, startDate, endDate, utils.GetURLParam(r, "type"))
	if err != nil {
		rp.errorLog.Println("GetInventoryMovements_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":     false,
		"status":    "success",
		"movements": movements,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
