package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/billing"
	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	DB        *dbrepo.OrderRepo
	Catalog   *dbrepo.CatalogRepo
	Branches  *dbrepo.BranchRepo
	Approvals *dbrepo.ApprovalRepo
	Approval  models.ApprovalConfig
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewOrderHandler(
	db *dbrepo.OrderRepo,
	catalog *dbrepo.CatalogRepo,
	branches *dbrepo.BranchRepo,
	approvals *dbrepo.ApprovalRepo,
	approvalCfg models.ApprovalConfig,
	infoLog *log.Logger,
	errorLog *log.Logger,
) *OrderHandler {
	return &OrderHandler{
		DB:        db,
		Catalog:   catalog,
		Branches:  branches,
		Approvals: approvals,
		Approval:  approvalCfg,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

type newOrderRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	Phone         string `json:"phone"`
	Place         string `json:"place"`
	StaffName     string `json:"staff_name"`
	ExecutiveName string `json:"executive_name"`
	FinancierName string `json:"financier_name"`

	Model   string `json:"model" validate:"required"`
	Variant string `json:"variant" validate:"required"`
	Color   string `json:"color"`

	ListedPrice float64 `json:"listed_price" validate:"gte=0"`
	FinalCost   float64 `json:"final_cost" validate:"gte=0"`
	ORPAmount   float64 `json:"orp_amount"`
	OtherTax    float64 `json:"other_tax"`

	SaleType    string  `json:"sale_type" validate:"required,oneof=Cash Finance"`
	DDAmount    float64 `json:"dd_amount" validate:"gte=0"`
	DownPayment float64 `json:"down_payment" validate:"gte=0"`
	OutFinance  bool    `json:"out_finance"`

	PRFeeApplies  bool    `json:"pr_fee_applies"`
	WarrantyTier  string  `json:"warranty_tier"`
	DoubleTax     bool    `json:"double_tax"`
	BookingAmount float64 `json:"booking_amount"`

	// package item ids with the negotiated unit prices; slot and name
	// are resolved server-side from the current package
	Accessories []struct {
		ID        int64   `json:"id"`
		UnitPrice float64 `json:"unit_price"`
	} `json:"accessories"`

	BookingReceiptIDs []int64 `json:"booking_receipt_ids"`
}

// NewOrder handles POST /orders/new. A discount within the approval
// limit finalizes immediately; a discount strictly above it parks the
// fully computed order as a pending approval request without touching
// any counter.
func (o *OrderHandler) NewOrder(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	var req newOrderRequest
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		o.errorLog.Println("NewOrder_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	ctx := r.Context()

	branch, err := o.Branches.GetBranchByID(ctx, branchID)
	if err != nil {
		o.errorLog.Println("NewOrder_Branch:", err)
		utils.BadRequest(w, err)
		return
	}

	firms, err := o.Catalog.GetFirms(ctx)
	if err != nil {
		o.errorLog.Println("NewOrder_Firms:", err)
		utils.ServerError(w, err)
		return
	}

	config, err := o.Catalog.GetBranchConfig(ctx, branchID)
	if err != nil {
		o.errorLog.Println("NewOrder_BranchConfig:", err)
		utils.ServerError(w, err)
		return
	}

	// resolve accessory items against the current package; clients only
	// choose ids and prices, never slots
	items := make([]models.AccessoryItem, 0, len(req.Accessories))
	if len(req.Accessories) > 0 {
		pkg, err := o.Catalog.GetAccessoryPackage(ctx, req.Model)
		if err != nil {
			o.errorLog.Println("NewOrder_Accessories:", err)
			utils.ServerError(w, err)
			return
		}
		byID := make(map[int64]models.AccessoryItem, len(pkg))
		for _, item := range pkg {
			byID[item.ID] = item
		}
		for _, a := range req.Accessories {
			item, ok := byID[a.ID]
			if !ok {
				utils.BadRequest(w, fmt.Errorf("accessory %d is not in the package for model %s", a.ID, req.Model))
				return
			}
			item.UnitPrice = a.UnitPrice
			items = append(items, item)
		}
	}

	// terminals normally send the negotiated listed price; when they
	// leave it out, the branch-adjusted sheet price stands in
	listedPrice := req.ListedPrice
	if listedPrice == 0 {
		vehicle, err := o.Catalog.GetVehicle(ctx, req.Model, req.Variant)
		if err != nil {
			o.errorLog.Println("NewOrder_Vehicle:", err)
			utils.BadRequest(w, err)
			return
		}
		listedPrice = vehicle.FinalPrice + branch.PricingAdjustment
	}

	financier := req.FinancierName
	dd, down := req.DDAmount, req.DownPayment
	var hpFee, incentive float64
	if req.SaleType == models.SALE_TYPE_FINANCE {
		if financier == "" {
			utils.BadRequest(w, errors.New("financier required for finance sales"))
			return
		}
		hpFee, incentive = billing.CalculateFinanceFees(financier, dd, req.OutFinance, config.IncentiveRules)
	} else {
		financier = models.CashSaleTag
		dd, down = 0, 0
	}

	order := models.SalesOrder{
		BranchID:      branchID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Place:         req.Place,
		StaffName:     req.StaffName,
		ExecutiveName: req.ExecutiveName,
		FinancierName: financier,
		Model:         req.Model,
		Variant:       req.Variant,
		Color:         req.Color,
		ListedPrice:   listedPrice,
		FinalCost:     req.FinalCost,
		ORPAmount:     req.ORPAmount,
		OtherTax:      req.OtherTax,
		PRFeeApplies:  req.PRFeeApplies,
		WarrantyTier:  req.WarrantyTier,
		DoubleTax:     req.DoubleTax,
		BookingAmount: req.BookingAmount,
		Bills:         billing.SplitAccessories(items, branch, firms),
	}
	order.SetFinanceDetails(req.SaleType, dd, down, hpFee, incentive)

	// over-limit discounts park the order instead of finalizing
	if models.NeedsApproval(order.Discount, o.Approval.Limit) {
		o.parkForApproval(w, r, &order, req.BookingReceiptIDs)
		return
	}

	record, err := o.DB.CreateSalesRecord(ctx, &order, req.BookingReceiptIDs)
	if err != nil {
		o.errorLog.Println("NewOrder_DB:", err)
		if strings.Contains(err.Error(), "already exists") {
			utils.Conflict(w, err.Error())
			return
		}
		utils.ServerError(w, err)
		return
	}

	o.infoLog.Printf("finalized %s for branch %s (record %d)", record.DCNumber, record.BranchID, record.ID)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Order finalized successfully",
		"record":  record,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (o *OrderHandler) parkForApproval(w http.ResponseWriter, r *http.Request, order *models.SalesOrder, bookingReceiptIDs []int64) {
	order.DCNumber = models.PlaceholderDC

	snapshot := models.NewOrderPayload(*order)
	snapshot.BookingReceiptIDs = bookingReceiptIDs
	payload, err := snapshot.Encode()
	if err != nil {
		o.errorLog.Println("NewOrder_Payload:", err)
		utils.ServerError(w, err)
		return
	}

	requestedBy := "system"
	if claims, ok := utils.ClaimsFromContext(r.Context()); ok {
		requestedBy = claims.Username
	}

	request := &models.ApprovalRequest{
		BranchID:          order.BranchID,
		CustomerName:      order.CustomerName,
		Model:             order.Model,
		DiscountRequested: order.Discount,
		FinalPrice:        order.FinalCost,
		Payload:           payload,
		RequestedBy:       requestedBy,
	}
	if err := o.Approvals.CreateRequest(r.Context(), request); err != nil {
		o.errorLog.Println("NewOrder_Approval:", err)
		utils.ServerError(w, err)
		return
	}

	approvalLink := ""
	if o.Approval.NotifyActive {
		approvalLink = utils.ApprovalRequestLink(o.Approval.NotifyPhone, order.CustomerName, order.Model, order.Discount)
	}

	o.infoLog.Printf("order for %s parked as approval request %d (discount %.2f > limit %.2f)",
		order.CustomerName, request.ID, order.Discount, o.Approval.Limit)

	resp := map[string]any{
		"error":         false,
		"status":        "pending_approval",
		"message":       "Discount exceeds the approval limit; request queued for owner review",
		"request_id":    request.ID,
		"reference_no":  request.ReferenceNo,
		"discount":      order.Discount,
		"approval_link": approvalLink,
	}
	utils.WriteJSON(w, http.StatusAccepted, resp)
}

// GetOrdersHandler handles GET /orders?pageIndex=0&pageLength=10&search=
func (o *OrderHandler) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("pageIndex")) // 0-based
	limit, _ := strconv.Atoi(query.Get("pageLength"))
	search := query.Get("search")

	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	records, totalCount, err := o.DB.GetSalesRecords(r.Context(), branchID, search, page, limit)
	if err != nil {
		o.errorLog.Println("GetOrders_DB:", err)
		utils.ServerError(w, err)
		return
	}

	response := map[string]interface{}{
		"records":     records,
		"total_count": totalCount,
		"page":        page,
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

// GetRecentRecords handles GET /orders/recent for the reprint picker.
func (o *OrderHandler) GetRecentRecords(w http.ResponseWriter, r *http.Request) {
	branchID := utils.GetBranchID(r)
	if branchID == "" {
		utils.BadRequest(w, errors.New("Branch ID not found. Include 'X-Branch-ID' header"))
		return
	}

	limit, _ := strconv.Atoi(utils.GetURLParam(r, "limit"))

	records, err := o.DB.GetRecentRecords(r.Context(), branchID, limit)
	if err != nil {
		o.errorLog.Println("GetRecentRecords_DB:", err)
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

// GetOrderByID handles GET /orders/{id}
func (o *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || recordID == 0 {
		utils.BadRequest(w, errors.New("invalid record ID"))
		return
	}

	record, err := o.DB.GetSalesRecordByID(r.Context(), recordID)
	if err != nil {
		o.errorLog.Println("GetOrderByID_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"record": record,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// ReprintOrder handles GET /orders/{id}/reprint. The bills are rebuilt
// from the current accessory package; invoice numbers come only from
// the numbers stored at sale time.
func (o *OrderHandler) ReprintOrder(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || recordID == 0 {
		utils.BadRequest(w, errors.New("invalid record ID"))
		return
	}

	ctx := r.Context()

	record, err := o.DB.GetSalesRecordByID(ctx, recordID)
	if err != nil {
		o.errorLog.Println("ReprintOrder_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	branch, err := o.Branches.GetBranchByID(ctx, record.BranchID)
	if err != nil {
		o.errorLog.Println("ReprintOrder_Branch:", err)
		utils.ServerError(w, err)
		return
	}

	var stored []models.AccessoryBill
	if len(record.Payload) > 0 {
		snapshot, err := models.DecodeOrderPayload(record.Payload)
		if err != nil {
			o.errorLog.Println("ReprintOrder_Payload:", err)
		} else {
			stored = snapshot.Order.Bills
		}
	}
	if len(stored) == 0 {
		stored = billing.StoredBillsFromRecord(record, branch)
	}

	items, err := o.Catalog.GetAccessoryPackage(ctx, record.Model)
	if err != nil {
		o.errorLog.Println("ReprintOrder_Accessories:", err)
		utils.ServerError(w, err)
		return
	}

	firms, err := o.Catalog.GetFirms(ctx)
	if err != nil {
		o.errorLog.Println("ReprintOrder_Firms:", err)
		utils.ServerError(w, err)
		return
	}

	bills := billing.RebuildBills(items, stored, firms)

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"record": record,
		"bills":  bills,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdatePayment handles PATCH /orders/{id}/payment. Shortfall and the
// dues flag are recomputed server-side from the new figures.
func (o *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || recordID == 0 {
		utils.BadRequest(w, errors.New("invalid record ID"))
		return
	}

	var req struct {
		ReceivedAmount    *float64 `json:"received_amount"`
		ShortfallReceived *float64 `json:"shortfall_received"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		o.errorLog.Println("UpdatePayment_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}
	if req.ReceivedAmount == nil && req.ShortfallReceived == nil {
		utils.BadRequest(w, errors.New("nothing to update"))
		return
	}

	if err := o.DB.UpdateDDPayment(r.Context(), recordID, req.ReceivedAmount, req.ShortfallReceived); err != nil {
		o.errorLog.Println("UpdatePayment_DB:", err)
		utils.ServerError(w, err)
		return
	}

	record, err := o.DB.GetSalesRecordByID(r.Context(), recordID)
	if err != nil {
		o.errorLog.Println("UpdatePayment_Reload:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":          false,
		"status":         "success",
		"message":        "Payment updated successfully",
		"record":         record,
		"live_shortfall": record.LiveShortfall(),
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /orders/{id}/status: fulfillment progress,
// vehicle identity, and delivery milestones. The response carries a
// ready-made WhatsApp link for the most advanced milestone reached.
func (o *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || recordID == 0 {
		utils.BadRequest(w, errors.New("invalid record ID"))
		return
	}

	var upd models.FulfillmentUpdate
	if err := utils.ReadJSON(w, r, &upd); err != nil {
		o.errorLog.Println("UpdateStatus_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := o.DB.UpdateFulfillment(r.Context(), recordID, &upd); err != nil {
		o.errorLog.Println("UpdateStatus_DB:", err)
		utils.ServerError(w, err)
		return
	}

	record, err := o.DB.GetSalesRecordByID(r.Context(), recordID)
	if err != nil {
		o.errorLog.Println("UpdateStatus_Reload:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":         false,
		"status":        "success",
		"message":       "Status updated successfully",
		"record":        record,
		"whatsapp_link": utils.DeliveryUpdateLink(record.Phone, record.PlatesReceived, record.TRDone, record.InsuranceDone),
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
