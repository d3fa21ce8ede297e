package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
)

type CatalogHandler struct {
	DB       *dbrepo.CatalogRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewCatalogHandler(db *dbrepo.CatalogRepo, infoLog *log.Logger, errorLog *log.Logger) *CatalogHandler {
	return &CatalogHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetVehicles handles GET /catalog/vehicles
func (c *CatalogHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := c.DB.GetVehicles(r.Context())
	if err != nil {
		c.errorLog.Println("GetVehicles_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"vehicles": vehicles,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetFirms handles GET /catalog/firms
func (c *CatalogHandler) GetFirms(w http.ResponseWriter, r *http.Request) {
	firms, err := c.DB.GetFirms(r.Context())
	if err != nil {
		c.errorLog.Println("GetFirms_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"firms":  firms,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetAccessoryPackage handles GET /catalog/accessories?model=XYZ
func (c *CatalogHandler) GetAccessoryPackage(w http.ResponseWriter, r *http.Request) {
	model := utils.GetURLParam(r, "model")
	if model == "" {
		utils.BadRequest(w, errors.New("model required"))
		return
	}

	items, err := c.DB.GetAccessoryPackage(r.Context(), model)
	if err != nil {
		c.errorLog.Println("GetAccessoryPackage_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":       false,
		"status":      "success",
		"model":       model,
		"accessories": items,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetBranchConfig handles GET /catalog/branch-config. Returns the staff
// and executive name lists, the financier roster, and the incentive
// rules for the branch in the X-Branch-ID header.
func (c *CatalogHandler) GetBranchConfig(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	config, err := c.DB.GetBranchConfig(r.Context(), branchID)
	if err != nil {
		c.errorLog.Println("GetBranchConfig_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"config": config,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
