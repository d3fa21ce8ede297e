package billing

import (
	"testing"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name    string
		counter models.Counter
		last    int64
		want    int64
	}{
		{name: "dc counter has no floor", counter: models.COUNTER_DC, last: 5, want: 6},
		{name: "dc counter from zero", counter: models.COUNTER_DC, last: 0, want: 1},
		{name: "slot one fresh branch starts at floor", counter: models.COUNTER_ACC_INV_1, last: 0, want: 1000},
		{name: "slot two fresh branch starts at floor", counter: models.COUNTER_ACC_INV_2, last: 0, want: 2000},
		{name: "slot one above floor increments", counter: models.COUNTER_ACC_INV_1, last: 1041, want: 1042},
		{name: "slot two below floor jumps to floor", counter: models.COUNTER_ACC_INV_2, last: 1500, want: 2000},
		{name: "receipt counter plain increment", counter: models.COUNTER_RECEIPT, last: 88, want: 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSequence(tt.counter, tt.last))
		})
	}
}

func TestSlotCounter(t *testing.T) {
	c1, ok := SlotCounter(1)
	require.True(t, ok)
	assert.Equal(t, models.COUNTER_ACC_INV_1, c1)

	c2, ok := SlotCounter(2)
	require.True(t, ok)
	assert.Equal(t, models.COUNTER_ACC_INV_2, c2)

	_, ok = SlotCounter(3)
	assert.False(t, ok)
}

func TestFirmErrorTag(t *testing.T) {
	assert.Equal(t, "ERR-FIRM7", FirmErrorTag(7))
}
