package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/billing"
	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
	"github.com/go-chi/chi/v5"
)

type BranchHandler struct {
	DB       *dbrepo.BranchRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewBranchHandler(db *dbrepo.BranchRepo, infoLog *log.Logger, errorLog *log.Logger) *BranchHandler {
	return &BranchHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetBranches handles GET /branches
func (b *BranchHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := b.DB.GetBranches(r.Context())
	if err != nil {
		b.errorLog.Println("GetBranches_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"branches": branches,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetBranchByID handles GET /branches/{id}
func (b *BranchHandler) GetBranchByID(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "id")
	if branchID == "" {
		utils.BadRequest(w, errors.New("branch ID required"))
		return
	}

	branch, err := b.DB.GetBranchByID(r.Context(), branchID)
	if err != nil {
		b.errorLog.Println("GetBranchByID_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"branch": branch,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdateBranchSettings handles PUT /branches/{id}. Counters are not
// settable through this endpoint; they move only when records consume
// them.
func (b *BranchHandler) UpdateBranchSettings(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "id")
	if branchID == "" {
		utils.BadRequest(w, errors.New("branch ID required"))
		return
	}

	var req struct {
		Name              string  `json:"name" validate:"required"`
		PricingAdjustment float64 `json:"pricing_adjustment"`
		FirmID1           *int64  `json:"firm_id_1"`
		FirmID2           *int64  `json:"firm_id_2"`
		DCGenEnabled      bool    `json:"dc_gen_enabled"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		b.errorLog.Println("UpdateBranchSettings_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	branch := &models.Branch{
		ID:                branchID,
		Name:              req.Name,
		PricingAdjustment: req.PricingAdjustment,
		FirmID1:           req.FirmID1,
		FirmID2:           req.FirmID2,
		DCGenEnabled:      req.DCGenEnabled,
	}
	if err := b.DB.UpdateBranchSettings(r.Context(), branch); err != nil {
		b.errorLog.Println("UpdateBranchSettings_DB:", err)
		if utils.IsUniqueViolation(err, "branches_name_key") {
			utils.Conflict(w, "a branch with this name already exists")
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFound(w, err.Error())
			return
		}
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Branch settings updated successfully",
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetNextNumbers handles GET /branches/{id}/next-numbers. Display only:
// nothing is allocated, so the real number a finalization gets may
// differ under concurrency.
func (b *BranchHandler) GetNextNumbers(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "id")
	if branchID == "" {
		utils.BadRequest(w, errors.New("branch ID required"))
		return
	}

	branch, err := b.DB.GetBranchByID(r.Context(), branchID)
	if err != nil {
		b.errorLog.Println("GetNextNumbers_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	next := map[string]int64{}
	for _, c := range models.AllCounters {
		next[string(c)] = billing.NextSequence(c, branch.CounterValue(c))
	}

	resp := map[string]any{
		"error":        false,
		"status":       "success",
		"branch_id":    branchID,
		"next_numbers": next,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
