package billing

import (
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
)

// SplitAccessories partitions priced accessory items into firm-scoped
// bills by their billing slot. Items priced at or below zero are skipped,
// as is any slot whose firm the branch has not assigned or whose firm id
// is missing from the firm master. A bill is emitted only when its grand
// total ends up positive; the result is unnumbered, ordered slot 1 first.
func SplitAccessories(items []models.AccessoryItem, branch *models.Branch, firms map[int64]models.Firm) []models.AccessoryBill {
	lines := map[int][]models.AccessoryLine{}
	subtotals := map[int]float64{}

	for _, item := range items {
		if item.UnitPrice <= 0 {
			continue
		}
		if _, assigned := branch.FirmForSlot(item.Slot); !assigned {
			continue
		}
		lines[item.Slot] = append(lines[item.Slot], models.AccessoryLine{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
			Amount:    item.UnitPrice,
		})
		subtotals[item.Slot] += item.UnitPrice
	}

	bills := make([]models.AccessoryBill, 0, 2)
	for _, slot := range []int{1, 2} {
		subtotal := subtotals[slot]
		grandTotal := subtotal + (subtotal * GSTRate)
		if grandTotal <= 0 {
			continue
		}
		firmID, assigned := branch.FirmForSlot(slot)
		if !assigned {
			continue
		}
		firm, ok := firms[firmID]
		if !ok {
			continue
		}
		bills = append(bills, models.AccessoryBill{
			FirmID:     firmID,
			FirmName:   firm.Name,
			Slot:       slot,
			Lines:      lines[slot],
			Subtotal:   subtotal,
			TaxAmount:  grandTotal - subtotal,
			GrandTotal: grandTotal,
		})
	}
	return bills
}
