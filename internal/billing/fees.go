// Package billing holds the pure calculation core of the sales flow:
// finance fee policy, accessory bill splitting, and the sequence-number
// math shared with the storage allocator. Nothing here touches the
// database, so every rule is unit-testable in isolation.
package billing

import (
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
)

const (
	HPFeeDefault       = 2000.00
	HPFeeBankQuotation = 500.00

	// GSTRate is applied when computing bill grand totals. Accessory
	// prices are GST-inclusive, so the additive rate is zero while the
	// printed rate stays 18.
	GSTRate        = 0.00
	GSTRateDisplay = 18
)

// BankQuotationFinancier gets the reduced documentation fee.
const BankQuotationFinancier = "Bank"

// CalculateFinanceFees resolves the hypothecation fee charged to the
// customer and the incentive earned from the financier. Out-finance
// cases pay the standard fee with no incentive regardless of financier;
// the in-network "Bank" channel pays only the quotation fee; every other
// financier pays the standard fee plus whatever its incentive rule
// yields. A financier with no rule simply earns nothing.
func CalculateFinanceFees(financierName string, ddAmount float64, outFinance bool, rules map[string]models.IncentiveRule) (hpFee, incentive float64) {
	if outFinance {
		return HPFeeDefault, 0
	}
	if financierName == BankQuotationFinancier {
		return HPFeeBankQuotation, 0
	}

	hpFee = HPFeeDefault
	if rule, ok := rules[financierName]; ok {
		switch rule.Type {
		case models.INCENTIVE_PERCENTAGE_DD:
			incentive = ddAmount * rule.Value
		case models.INCENTIVE_FIXED_FILE:
			incentive = rule.Value
		}
	}
	return hpFee, incentive
}
