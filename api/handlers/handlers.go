package api

import (
	"log"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerList groups every route handler behind one struct so the
// router reaches them as app.Handlers.X.
type HandlerList struct {
	Auth     *AuthHandler
	User     *UserHandler
	Branch   *BranchHandler
	Catalog  *CatalogHandler
	Order    *OrderHandler
	Approval *ApprovalHandler
	Cashier  *CashierHandler
	Report   *ReportHandler
}

// NewHandlerList wires every repository and handler off one pgx pool.
func NewHandlerList(db *pgxpool.Pool, cfg models.Config, infoLog, errorLog *log.Logger) *HandlerList {
	userRepo := dbrepo.NewUserRepo(db)
	branchRepo := dbrepo.NewBranchRepo(db)
	catalogRepo := dbrepo.NewCatalogRepo(db)
	orderRepo := dbrepo.NewOrderRepo(db)
	approvalRepo := dbrepo.NewApprovalRepo(db)
	cashierRepo := dbrepo.NewCashierRepo(db)
	reportRepo := dbrepo.NewReportRepo(db)
	inventoryRepo := dbrepo.NewInventoryRepo(db)

	return &HandlerList{
		Auth:     NewAuthHandler(userRepo, cfg.JWT, infoLog, errorLog),
		User:     NewUserHandler(userRepo, infoLog, errorLog),
		Branch:   NewBranchHandler(branchRepo, infoLog, errorLog),
		Catalog:  NewCatalogHandler(catalogRepo, infoLog, errorLog),
		Order:    NewOrderHandler(orderRepo, catalogRepo, branchRepo, approvalRepo, cfg.Approval, infoLog, errorLog),
		Approval: NewApprovalHandler(approvalRepo, infoLog, errorLog),
		Cashier:  NewCashierHandler(cashierRepo, orderRepo, infoLog, errorLog),
		Report:   NewReportHandler(reportRepo, inventoryRepo, infoLog, errorLog),
	}
}
