package billing

import (
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
)

// RebuildBills reconstructs accessory bills for a reprint. Line items
// and prices come from the current package configuration; firm identity
// and invoice numbers come only from the stored bills, never from a new
// allocation. A stored firm missing from the master degrades that
// bill's firm name to an error tag, and a stored bill with no firm at
// all gets the slot tag — the reprint itself never fails over firm
// churn.
func RebuildBills(items []models.AccessoryItem, stored []models.AccessoryBill, firms map[int64]models.Firm) []models.AccessoryBill {
	lines := map[int][]models.AccessoryLine{}
	subtotals := map[int]float64{}

	for _, item := range items {
		if item.UnitPrice <= 0 {
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

	bills := make([]models.AccessoryBill, 0, len(stored))
	for _, s := range stored {
		subtotal := subtotals[s.Slot]
		bill := models.AccessoryBill{
			FirmID:     s.FirmID,
			Slot:       s.Slot,
			Lines:      lines[s.Slot],
			Subtotal:   subtotal,
			TaxAmount:  subtotal * GSTRate,
			GrandTotal: subtotal + (subtotal * GSTRate),
			InvoiceNo:  s.InvoiceNo,
			InvoiceSeq: s.InvoiceSeq,
		}

		switch {
		case s.FirmID == 0:
			bill.FirmName = SlotErrorTag
		default:
			if firm, ok := firms[s.FirmID]; ok {
				bill.FirmName = firm.Name
			} else {
				bill.FirmName = FirmErrorTag(s.FirmID)
			}
		}

		bills = append(bills, bill)
	}
	return bills
}

// StoredBillsFromRecord recovers the numbered-bill summaries for records
// whose payload predates bill snapshots, using the indexed invoice
// columns. The branch's current slot assignment stands in for the firm
// id; an unassigned slot is left at zero for RebuildBills to tag.
func StoredBillsFromRecord(rec *models.SalesRecord, branch *models.Branch) []models.AccessoryBill {
	bills := []models.AccessoryBill{}

	if rec.AccInv1No != nil {
		bill := models.AccessoryBill{Slot: 1, InvoiceNo: *rec.AccInv1No}
		if rec.AccInv1Seq != nil {
			bill.InvoiceSeq = *rec.AccInv1Seq
		}
		if firmID, ok := branch.FirmForSlot(1); ok {
			bill.FirmID = firmID
		}
		bills = append(bills, bill)
	}
	if rec.AccInv2No != nil {
		bill := models.AccessoryBill{Slot: 2, InvoiceNo: *rec.AccInv2No}
		if rec.AccInv2Seq != nil {
			bill.InvoiceSeq = *rec.AccInv2Seq
		}
		if firmID, ok := branch.FirmForSlot(2); ok {
			bill.FirmID = firmID
		}
		bills = append(bills, bill)
	}
	return bills
}
