package billing

import (
	"testing"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64 { return &v }

var testFirms = map[int64]models.Firm{
	1: {ID: 1, Name: "Firm One", InvoicePrefix: "F1"},
	2: {ID: 2, Name: "Firm Two", InvoicePrefix: "F2"},
}

func TestSplitAccessoriesBothSlots(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 450, Slot: 1},
		{Name: "Guard Kit", UnitPrice: 750, Slot: 1},
		{Name: "Helmet", UnitPrice: 1100, Slot: 2},
		{Name: "Free Keychain", UnitPrice: 0, Slot: 1},
		{Name: "Obsolete Item", UnitPrice: -50, Slot: 2},
	}

	bills := SplitAccessories(items, branch, testFirms)
	require.Len(t, bills, 2)

	assert.Equal(t, 1, bills[0].Slot)
	assert.Equal(t, int64(1), bills[0].FirmID)
	assert.Equal(t, 1200.0, bills[0].Subtotal)
	assert.Equal(t, 1200.0, bills[0].GrandTotal)
	assert.Len(t, bills[0].Lines, 2)

	assert.Equal(t, 2, bills[1].Slot)
	assert.Equal(t, int64(2), bills[1].FirmID)
	assert.Equal(t, 1100.0, bills[1].Subtotal)
	assert.Equal(t, 1100.0, bills[1].GrandTotal)
	assert.Len(t, bills[1].Lines, 1)
}

func TestSplitAccessoriesSubtotalsMatchLineSums(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	items := []models.AccessoryItem{
		{Name: "A", UnitPrice: 101.5, Slot: 1},
		{Name: "B", UnitPrice: 202.25, Slot: 1},
		{Name: "C", UnitPrice: 303.75, Slot: 2},
	}

	bills := SplitAccessories(items, branch, testFirms)
	require.Len(t, bills, 2)

	for _, bill := range bills {
		var sum float64
		for _, line := range bill.Lines {
			sum += line.Amount
		}
		assert.Equal(t, sum, bill.Subtotal)
	}
}

func TestSplitAccessoriesSlotTwoFirmUnassigned(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1)}
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 450, Slot: 1},
		{Name: "Helmet", UnitPrice: 1100, Slot: 2},
	}

	bills := SplitAccessories(items, branch, testFirms)
	require.Len(t, bills, 1)
	assert.Equal(t, 1, bills[0].Slot)
	assert.Equal(t, 450.0, bills[0].GrandTotal)
}

func TestSplitAccessoriesFirmMissingFromMaster(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(99)}
	items := []models.AccessoryItem{
		{Name: "Seat Cover", UnitPrice: 450, Slot: 1},
	}

	bills := SplitAccessories(items, branch, testFirms)
	assert.Empty(t, bills)
}

func TestSplitAccessoriesAllZeroPriced(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	items := []models.AccessoryItem{
		{Name: "Free Item", UnitPrice: 0, Slot: 1},
		{Name: "Another Free Item", UnitPrice: 0, Slot: 2},
	}

	bills := SplitAccessories(items, branch, testFirms)
	assert.Empty(t, bills)
}

func TestSplitAccessoriesEmptyList(t *testing.T) {
	branch := &models.Branch{ID: "BR1", FirmID1: ptrInt64(1), FirmID2: ptrInt64(2)}
	assert.Empty(t, SplitAccessories(nil, branch, testFirms))
}
