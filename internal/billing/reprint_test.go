package billing

import (
	"testing"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrString(v string) *string { return &v }

func TestRebuildBillsPricesFromCurrentConfig(t *testing.T) {
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 500, Slot: 1},
		{Name: "Guard Kit", UnitPrice: 800, Slot: 1},
		{Name: "Helmet", UnitPrice: 1200, Slot: 2},
	}
	stored := []models.AccessoryBill{
		{FirmID: 1, Slot: 1, InvoiceNo: "F1-1042", InvoiceSeq: 1042},
		{FirmID: 2, Slot: 2, InvoiceNo: "F2-2007", InvoiceSeq: 2007},
	}

	bills := RebuildBills(items, stored, testFirms)
	require.Len(t, bills, 2)

	assert.Equal(t, "Firm One", bills[0].FirmName)
	assert.Equal(t, 1300.0, bills[0].Subtotal)
	assert.Len(t, bills[0].Lines, 2)
	assert.Equal(t, "F1-1042", bills[0].InvoiceNo)
	assert.Equal(t, int64(1042), bills[0].InvoiceSeq)

	assert.Equal(t, "Firm Two", bills[1].FirmName)
	assert.Equal(t, 1200.0, bills[1].Subtotal)
	assert.Equal(t, "F2-2007", bills[1].InvoiceNo)
	assert.Equal(t, int64(2007), bills[1].InvoiceSeq)
}

func TestRebuildBillsNeverReallocatesNumbers(t *testing.T) {
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 500, Slot: 1},
	}
	stored := []models.AccessoryBill{
		{FirmID: 1, Slot: 1, InvoiceNo: "F1-1001", InvoiceSeq: 1001},
	}

	bills := RebuildBills(items, stored, testFirms)
	require.Len(t, bills, 1)
	// The number printed is the one allocated at sale time, even if the
	// package contents or prices have since changed.
	assert.Equal(t, "F1-1001", bills[0].InvoiceNo)
	assert.Equal(t, int64(1001), bills[0].InvoiceSeq)
}

func TestRebuildBillsVanishedFirmGetsErrorTag(t *testing.T) {
	items := []models.AccessoryItem{
		{Name: "Helmet", UnitPrice: 1200, Slot: 2},
	}
	stored := []models.AccessoryBill{
		{FirmID: 77, Slot: 2, InvoiceNo: "F2-2010", InvoiceSeq: 2010},
	}

	bills := RebuildBills(items, stored, testFirms)
	require.Len(t, bills, 1)
	assert.Equal(t, "ERR-FIRM77", bills[0].FirmName)
	assert.Equal(t, "F2-2010", bills[0].InvoiceNo)
	assert.Equal(t, 1200.0, bills[0].Subtotal)
}

func TestRebuildBillsUnassignedSlotGetsSlotTag(t *testing.T) {
	stored := []models.AccessoryBill{
		{FirmID: 0, Slot: 1, InvoiceNo: "F1-1005", InvoiceSeq: 1005},
	}

	bills := RebuildBills(nil, stored, testFirms)
	require.Len(t, bills, 1)
	assert.Equal(t, SlotErrorTag, bills[0].FirmName)
	assert.Equal(t, "F1-1005", bills[0].InvoiceNo)
	assert.Zero(t, bills[0].Subtotal)
}

func TestRebuildBillsNoStoredBills(t *testing.T) {
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 500, Slot: 1},
	}
	assert.Empty(t, RebuildBills(items, nil, testFirms))
}

func TestStoredBillsFromRecordBothSlots(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	rec := &models.SalesRecord{
		AccInv1No:  ptrString("F1-1042"),
		AccInv1Seq: ptrInt64(1042),
		AccInv2No:  ptrString("F2-2007"),
		AccInv2Seq: ptrInt64(2007),
	}

	stored := StoredBillsFromRecord(rec, branch)
	require.Len(t, stored, 2)

	assert.Equal(t, 1, stored[0].Slot)
	assert.Equal(t, int64(1), stored[0].FirmID)
	assert.Equal(t, "F1-1042", stored[0].InvoiceNo)
	assert.Equal(t, int64(1042), stored[0].InvoiceSeq)

	assert.Equal(t, 2, stored[1].Slot)
	assert.Equal(t, int64(2), stored[1].FirmID)
	assert.Equal(t, "F2-2007", stored[1].InvoiceNo)
}

func TestStoredBillsFromRecordSlotTwoOnly(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	rec := &models.SalesRecord{
		AccInv2No:  ptrString("F2-2001"),
		AccInv2Seq: ptrInt64(2001),
	}

	stored := StoredBillsFromRecord(rec, branch)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Slot)
	assert.Equal(t, "F2-2001", stored[0].InvoiceNo)
}

func TestStoredBillsFromRecordUnassignedSlotKeepsZeroFirm(t *testing.T) {
	branch := &models.Branch{ID: "BR1"}
	rec := &models.SalesRecord{
		AccInv1No:  ptrString("F1-1010"),
		AccInv1Seq: ptrInt64(1010),
	}

	stored := StoredBillsFromRecord(rec, branch)
	require.Len(t, stored, 1)
	assert.Zero(t, stored[0].FirmID)

	// Round-trip through the rebuild: the zero firm degrades to the
	// slot tag instead of failing the reprint.
	bills := RebuildBills(nil, stored, testFirms)
	require.Len(t, bills, 1)
	assert.Equal(t, SlotErrorTag, bills[0].FirmName)
}

func TestStoredBillsFromRecordNoInvoices(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1)}
	assert.Empty(t, StoredBillsFromRecord(&models.SalesRecord{}, branch))
}
