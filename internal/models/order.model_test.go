package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFinanceDetailsFinanceSale(t *testing.T) {
	order := SalesOrder{ListedPrice: 95000, FinalCost: 93500}
	order.SetFinanceDetails(SALE_TYPE_FINANCE, 80000, 5000, 2000, 1600)

	assert.Equal(t, 1500.0, order.Discount)
	assert.Equal(t, SALE_TYPE_FINANCE, order.SaleType)
	// 93500 + 2000 + 1600 - 80000 - 5000
	assert.Equal(t, 12100.0, order.RemainingAmount)
	assert.Equal(t, 97100.0, order.TotalPayable())
}

func TestSetFinanceDetailsRemainingFlooredAtZero(t *testing.T) {
	order := SalesOrder{ListedPrice: 95000, FinalCost: 93500}
	order.SetFinanceDetails(SALE_TYPE_FINANCE, 90000, 10000, 2000, 0)

	assert.Zero(t, order.RemainingAmount)
}

func TestSetFinanceDetailsCashSale(t *testing.T) {
	order := SalesOrder{ListedPrice: 95000, FinalCost: 95000}
	order.SetFinanceDetails(SALE_TYPE_CASH, 0, 0, 0, 0)

	assert.Zero(t, order.Discount)
	assert.Zero(t, order.RemainingAmount)
}

func TestNeedsApprovalStrictBoundary(t *testing.T) {
	limit := 1500.0

	assert.False(t, NeedsApproval(1499.99, limit))
	assert.False(t, NeedsApproval(1500.00, limit), "a discount exactly at the limit finalizes directly")
	assert.True(t, NeedsApproval(1500.01, limit))
	assert.False(t, NeedsApproval(0, limit))
}

func TestFormatDCNumber(t *testing.T) {
	assert.Equal(t, "DC-0007", FormatDCNumber(7))
	assert.Equal(t, "DC-1042", FormatDCNumber(1042))
	assert.Equal(t, "DC-12345", FormatDCNumber(12345))
}

func TestFormatInvoiceNo(t *testing.T) {
	assert.Equal(t, "F1-1042", FormatInvoiceNo("F1", 1042))
	assert.Equal(t, "HAF-2001", FormatInvoiceNo("HAF", 2001))
}

func TestOrderPayloadRoundTrip(t *testing.T) {
	order := SalesOrder{
		BranchID:     "BR1",
		CustomerName: "Ravi Kumar",
		Model:        "ACTIVA",
		ListedPrice:  92000,
		FinalCost:    90000,
		DCNumber:     "DC-0042",
		DCSeq:        42,
		Bills: []AccessoryBill{
			{FirmID: 1, FirmName: "Firm One", Slot: 1, InvoiceNo: "F1-1042", InvoiceSeq: 1042},
		},
	}
	payload := NewOrderPayload(order)
	payload.BookingReceiptIDs = []int64{11, 12}

	data, err := payload.Encode()
	require.NoError(t, err)

	decoded, err := DecodeOrderPayload(data)
	require.NoError(t, err)

	assert.Equal(t, PayloadVersion, decoded.Version)
	assert.Equal(t, order, decoded.Order)
	assert.Equal(t, []int64{11, 12}, decoded.BookingReceiptIDs)
}

func TestDecodeOrderPayloadMigratesUnversioned(t *testing.T) {
	// Snapshots written before versioning carry no version field.
	decoded, err := DecodeOrderPayload([]byte(`{"order":{"customer_name":"Ravi Kumar"}}`))
	require.NoError(t, err)

	assert.Equal(t, PayloadVersion, decoded.Version)
	assert.Equal(t, "Ravi Kumar", decoded.Order.CustomerName)
}

func TestDecodeOrderPayloadRejectsGarbage(t *testing.T) {
	_, err := DecodeOrderPayload([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLiveShortfall(t *testing.T) {
	rec := SalesRecord{DDAmount: 80000, ReceivedAmount: 50000, ShortfallReceived: 10000}
	assert.Equal(t, 20000.0, rec.LiveShortfall())

	rec.ReceivedAmount = 80000
	assert.Zero(t, rec.LiveShortfall(), "overpayment never reports a negative shortfall")
}
