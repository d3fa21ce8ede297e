package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
	"github.com/go-chi/chi/v5"
)

type ApprovalHandler struct {
	DB       *dbrepo.ApprovalRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewApprovalHandler(db *dbrepo.ApprovalRepo, infoLog *log.Logger, errorLog *log.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetApprovals handles GET /approvals?status=Pending. Branch scoping is
// optional here: the owner reviews across branches when no header is
// sent.
func (a *ApprovalHandler) GetApprovals(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	status := utils.GetURLParam(r, "status")

	requests, err := a.DB.ListRequests(r.Context(), branchID, status)
	if err != nil {
		a.errorLog.Println("GetApprovals_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"requests": requests,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetPendingCount handles GET /approvals/pending-count for the badge on
// the owner dashboard.
func (a *ApprovalHandler) GetPendingCount(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)

	count, err := a.DB.CountPending(r.Context(), branchID)
	if err != nil {
		a.errorLog.Println("GetPendingCount_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"count":  count,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetApprovalByID handles GET /approvals/{id}
func (a *ApprovalHandler) GetApprovalByID(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || requestID == 0 {
		utils.BadRequest(w, errors.New("invalid request ID"))
		return
	}

	request, err := a.DB.GetRequestByID(r.Context(), requestID)
	if err != nil {
		a.errorLog.Println("GetApprovalByID_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"request": request,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// ApproveRequest handles POST /approvals/{id}/approve. Approving only
// flips the status; the sale stays parked until someone resumes it
// through finalize.
func (a *ApprovalHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	a.decide(w, r, true)
}

// RejectRequest handles POST /approvals/{id}/reject. A rejected request
// keeps its payload for audit but can never be finalized.
func (a *ApprovalHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	a.decide(w, r, false)
}

func (a *ApprovalHandler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || requestID == 0 {
		utils.BadRequest(w, errors.New("invalid request ID"))
		return
	}

	decidedBy := "system"
	if claims, ok := utils.ClaimsFromContext(r.Context()); ok {
		decidedBy = claims.Username
	}

	if approve {
		err = a.DB.ApproveRequest(r.Context(), requestID, decidedBy)
	} else {
		err = a.DB.RejectRequest(r.Context(), requestID, decidedBy)
	}
	if err != nil {
		a.errorLog.Println("DecideApproval_DB:", err)
		if strings.Contains(err.Error(), "not pending") {
			utils.Conflict(w, err.Error())
			return
		}
		utils.ServerError(w, err)
		return
	}

	verdict := "approved"
	if !approve {
		verdict = "rejected"
	}
	a.infoLog.Printf("approval request %d %s by %s", requestID, verdict, decidedBy)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Request " + verdict,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// FinalizeRequest handles POST /approvals/{id}/finalize: resumes an
// approved order, allocating its real DC and invoice numbers now. The
// request must be in Approved status; finalizing twice returns the
// conflict instead of burning another DC.
func (a *ApprovalHandler) FinalizeRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || requestID == 0 {
		utils.BadRequest(w, errors.New("invalid request ID"))
		return
	}

	record, err := a.DB.FinalizeApproved(r.Context(), requestID)
	if err != nil {
		a.errorLog.Println("FinalizeApproval_DB:", err)
		switch {
		case strings.Contains(err.Error(), "ERROR_3"):
			// wrong status: already finalized, rejected, or still pending
			utils.Conflict(w, err.Error())
		case strings.Contains(err.Error(), "not found"):
			utils.NotFound(w, err.Error())
		default:
			utils.ServerError(w, err)
		}
		return
	}

	a.infoLog.Printf("approval request %d finalized as %s (record %d)", requestID, record.DCNumber, record.ID)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Order finalized successfully",
		"record":  record,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
