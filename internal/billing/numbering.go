package billing

import (
	"fmt"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
)

// SlotCounter maps an accessory billing slot to its counter series.
func SlotCounter(slot int) (models.Counter, bool) {
	switch slot {
	case 1:
		return models.COUNTER_ACC_INV_1, true
	case 2:
		return models.COUNTER_ACC_INV_2, true
	}
	return "", false
}

// NextSequence is the pure form of the allocator's increment: the stored
// last value adjusted to the series floor, plus one. The storage layer
// performs the same computation under the branch row lock; this mirror
// exists for the calculation paths that only preview a number.
func NextSequence(counter models.Counter, last int64) int64 {
	return models.EffectiveLastNumber(counter, last) + 1
}

// Reprint degrades to tagged invoice numbers instead of failing when the
// historical reference data is gone.
func FirmErrorTag(firmID int64) string {
	return fmt.Sprintf("ERR-FIRM%d", firmID)
}

const SlotErrorTag = "ERR-SLOT"
