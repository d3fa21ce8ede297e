package api

import (
	"net"
	"net/http"

	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Branch-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger) // logger

	// --- Public Routes ---
	mux.Post("/api/v1/signin", app.Handlers.Auth.Signin)

	// --- Health check ---
	mux.Get("/api/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ip := "unknown"
		if conn, err := net.Dial("udp", "1.1.1.1:80"); err == nil {
			defer conn.Close()
			ip = conn.LocalAddr().(*net.UDPAddr).IP.String()
		}
		resp := map[string]interface{}{
			"status":    "live",
			"server_ip": ip,
		}
		utils.WriteJSON(w, http.StatusOK, resp)
	})

	// --- Protected Routes ---
	protected := chi.NewRouter()
	protected.Use(app.AuthUser)

	// -------------------- Branch Routes --------------------
	protected.Route("/api/v1/branches", func(r chi.Router) {
		r.Get("/", app.Handlers.Branch.GetBranches)
		r.Get("/{id}", app.Handlers.Branch.GetBranchByID)

		// Update branch settings; counters are not settable here
		// Example: PUT /api/v1/branches/BR01
		r.Put("/{id}", app.Handlers.Branch.UpdateBranchSettings)

		// Preview the next number in each series without allocating
		// Example: GET /api/v1/branches/BR01/next-numbers
		r.Get("/{id}/next-numbers", app.Handlers.Branch.GetNextNumbers)
	})

	// -------------------- Catalog Routes --------------------
	protected.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/vehicles", app.Handlers.Catalog.GetVehicles)
		r.Get("/firms", app.Handlers.Catalog.GetFirms)

		// Accessory package for one model
		// Example: GET /api/v1/catalog/accessories?model=Activa
		r.Get("/accessories", app.Handlers.Catalog.GetAccessoryPackage)

		r.Get("/branch-config", app.Handlers.Catalog.GetBranchConfig)
	})

	// -------------------- Order Routes --------------------
	protected.Route("/api/v1/orders", func(r chi.Router) {
		// Finalize directly, or park behind an approval request when
		// the discount exceeds the limit
		r.Post("/new", app.Handlers.Order.NewOrder)

		// Paginated listing with search
		// Example: GET /api/v1/orders?pageIndex=0&pageLength=10&search=DC-0042
		r.Get("/", app.Handlers.Order.GetOrdersHandler)

		r.Get("/recent", app.Handlers.Order.GetRecentRecords)
		r.Get("/{id}", app.Handlers.Order.GetOrderByID)
		r.Get("/{id}/reprint", app.Handlers.Order.ReprintOrder)
		r.Patch("/{id}/payment", app.Handlers.Order.UpdatePayment)
		r.Patch("/{id}/status", app.Handlers.Order.UpdateStatus)
	})

	// -------------------- Approval Routes --------------------
	protected.Route("/api/v1/approvals", func(r chi.Router) {
		// Example: GET /api/v1/approvals?status=Pending
		r.Get("/", app.Handlers.Approval.GetApprovals)
		r.Get("/pending-count", app.Handlers.Approval.GetPendingCount)
		r.Get("/{id}", app.Handlers.Approval.GetApprovalByID)
		r.Post("/{id}/approve", app.Handlers.Approval.ApproveRequest)
		r.Post("/{id}/reject", app.Handlers.Approval.RejectRequest)

		// Resume an approved order; sequences allocate here
		r.Post("/{id}/finalize", app.Handlers.Approval.FinalizeRequest)
	})

	// -------------------- Cashier Routes --------------------
	protected.Route("/api/v1/cashier", func(r chi.Router) {
		r.Post("/transactions/new", app.Handlers.Cashier.AddTransaction)

		// Example: GET /api/v1/cashier/daybook?date=2025-04-01&mode=Cash
		r.Get("/daybook", app.Handlers.Cashier.GetDaybook)

		// Example: GET /api/v1/cashier/ledger?start_date=2025-04-01&end_date=2025-04-30
		r.Get("/ledger", app.Handlers.Cashier.GetLedger)

		r.Get("/opening-balance", app.Handlers.Cashier.GetOpeningBalance)

		// Cross-branch import: preview, then copy
		// Example: GET /api/v1/cashier/import/candidates?source_branch=BR02&date=2025-04-01
		r.Get("/import/candidates", app.Handlers.Cashier.GetImportCandidates)
		r.Post("/import", app.Handlers.Cashier.ImportTransactions)

		r.Get("/bookings/unlinked", app.Handlers.Cashier.GetUnlinkedBookings)
		r.Post("/bookings/link", app.Handlers.Cashier.LinkBookings)

		// Example: GET /api/v1/cashier/paid?dc_number=DC-0042
		r.Get("/paid", app.Handlers.Cashier.GetPaidForDC)
	})

	// -------------------- Report Routes --------------------
	protected.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/dashboard/metrics", app.Handlers.Report.GetDashboardMetrics)
		r.Get("/dashboard/banker-aging", app.Handlers.Report.GetBankerAging)
		r.Get("/dues", app.Handlers.Report.GetDuesList)
		r.Get("/inventory", app.Handlers.Report.GetInventoryReport)
		r.Get("/fulfillment/pending", app.Handlers.Report.GetPendingFulfillment)
	})

	// -------------------- Inventory Routes --------------------
	protected.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/movements", app.Handlers.Report.GetInventoryMovements)
		r.Post("/movements", app.Handlers.Report.AddInventoryMovement)
	})

	// -------------------- User Admin Routes --------------------
	protected.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/new", app.Handlers.User.AddUser)
		r.Get("/", app.Handlers.User.GetUsers)
		r.Put("/{id}/password", app.Handlers.User.UpdatePassword)
		r.Put("/{id}/access", app.Handlers.User.UpdateAccess)
	})

	// Mount protected routes
	mux.Mount("/", protected)

	return mux
}
