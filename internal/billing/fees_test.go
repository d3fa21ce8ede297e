package billing

import (
	"testing"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateFinanceFees(t *testing.T) {
	rules := map[string]models.IncentiveRule{
		"ABC Finance": {Type: models.INCENTIVE_PERCENTAGE_DD, Value: 0.02},
		"XYZ":         {Type: models.INCENTIVE_FIXED_FILE, Value: 750},
	}

	tests := []struct {
		name          string
		financier     string
		ddAmount      float64
		outFinance    bool
		wantHPFee     float64
		wantIncentive float64
	}{
		{
			name:          "out finance always pays default fee with no incentive",
			financier:     "ABC Finance",
			ddAmount:      50000,
			outFinance:    true,
			wantHPFee:     HPFeeDefault,
			wantIncentive: 0,
		},
		{
			name:          "bank quotation channel pays reduced fee",
			financier:     "Bank",
			ddAmount:      80000,
			outFinance:    false,
			wantHPFee:     HPFeeBankQuotation,
			wantIncentive: 0,
		},
		{
			name:          "percentage rule earns share of dd",
			financier:     "ABC Finance",
			ddAmount:      50000,
			outFinance:    false,
			wantHPFee:     HPFeeDefault,
			wantIncentive: 1000.0,
		},
		{
			name:          "fixed file rule earns flat amount",
			financier:     "XYZ",
			ddAmount:      50000,
			outFinance:    false,
			wantHPFee:     HPFeeDefault,
			wantIncentive: 750.0,
		},
		{
			name:          "unknown financier earns nothing",
			financier:     "No Name Capital",
			ddAmount:      50000,
			outFinance:    false,
			wantHPFee:     HPFeeDefault,
			wantIncentive: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hpFee, incentive := CalculateFinanceFees(tt.financier, tt.ddAmount, tt.outFinance, rules)
			assert.Equal(t, tt.wantHPFee, hpFee)
			assert.Equal(t, tt.wantIncentive, incentive)
		})
	}
}

func TestCalculateFinanceFeesNoRules(t *testing.T) {
	hpFee, incentive := CalculateFinanceFees("ABC Finance", 50000, false, nil)
	assert.Equal(t, HPFeeDefault, hpFee)
	assert.Zero(t, incentive)
}
