package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrInt64(v int64) *int64 { return &v }

func TestEffectiveLastNumberFloors(t *testing.T) {
	// A fresh branch stores zero everywhere; the floored series report
	// floor-1 so the first allocation lands exactly on the floor.
	assert.Equal(t, int64(999), EffectiveLastNumber(COUNTER_ACC_INV_1, 0))
	assert.Equal(t, int64(1999), EffectiveLastNumber(COUNTER_ACC_INV_2, 0))

	// Below the floor the stored value is ignored entirely.
	assert.Equal(t, int64(999), EffectiveLastNumber(COUNTER_ACC_INV_1, 500))
	assert.Equal(t, int64(1999), EffectiveLastNumber(COUNTER_ACC_INV_2, 1042))

	// At or above the floor it passes through.
	assert.Equal(t, int64(1000), EffectiveLastNumber(COUNTER_ACC_INV_1, 1000))
	assert.Equal(t, int64(1042), EffectiveLastNumber(COUNTER_ACC_INV_1, 1042))
	assert.Equal(t, int64(2375), EffectiveLastNumber(COUNTER_ACC_INV_2, 2375))
}

func TestEffectiveLastNumberUnflooredSeries(t *testing.T) {
	assert.Equal(t, int64(0), EffectiveLastNumber(COUNTER_DC, 0))
	assert.Equal(t, int64(42), EffectiveLastNumber(COUNTER_DC, 42))
	assert.Equal(t, int64(7), EffectiveLastNumber(COUNTER_RECEIPT, 7))
	assert.Equal(t, int64(0), EffectiveLastNumber(COUNTER_JOB_CARD, 0))
}

func TestCounterValueCoversAllSeries(t *testing.T) {
	branch := Branch{
		DCLastNumber:            1,
		AccInv1LastNumber:       2,
		AccInv2LastNumber:       3,
		ReceiptLastNumber:       4,
		VoucherLastNumber:       5,
		BranchReceiptLastNumber: 6,
		JobCardLastNumber:       7,
		OutBillLastNumber:       8,
	}

	want := map[Counter]int64{
		COUNTER_DC:             1,
		COUNTER_ACC_INV_1:      2,
		COUNTER_ACC_INV_2:      3,
		COUNTER_RECEIPT:        4,
		COUNTER_VOUCHER:        5,
		COUNTER_BRANCH_RECEIPT: 6,
		COUNTER_JOB_CARD:       7,
		COUNTER_OUT_BILL:       8,
	}
	for _, c := range AllCounters {
		assert.Equal(t, want[c], branch.CounterValue(c), string(c))
	}
}

func TestFirmForSlot(t *testing.T) {
	branch := Branch{FirmID1: ptrInt64(10)}

	id, ok := branch.FirmForSlot(1)
	assert.True(t, ok)
	assert.Equal(t, int64(10), id)

	_, ok = branch.FirmForSlot(2)
	assert.False(t, ok)

	_, ok = branch.FirmForSlot(3)
	assert.False(t, ok)
}
