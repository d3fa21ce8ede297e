package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleType(t *testing.T) {
	assert.Equal(t, VEHICLE_CLASS_SCOOTER, VehicleType("ACTIVA"))
	assert.Equal(t, VEHICLE_CLASS_SCOOTER, VehicleType("ACTIVA 125"))
	assert.Equal(t, VEHICLE_CLASS_SCOOTER, VehicleType("DIO 125 SMART"))
	assert.Equal(t, VEHICLE_CLASS_MOTORCYCLE, VehicleType("SHINE 125"))
	assert.Equal(t, VEHICLE_CLASS_MOTORCYCLE, VehicleType("CB HORNET 125"))
	assert.Equal(t, VEHICLE_CLASS_MOTORCYCLE, VehicleType("NX200"))
	assert.Equal(t, VEHICLE_CLASS_OTHER, VehicleType("TRACTOR"))
	assert.Equal(t, VEHICLE_CLASS_UNKNOWN, VehicleType(""))
}

func TestMovementCategorySlowColors(t *testing.T) {
	assert.Equal(t, MOVEMENT_SLOW, MovementCategory("ACTIVA", "BLACK"))
	assert.Equal(t, MOVEMENT_SLOW, MovementCategory("ACTIVA", "black"), "color match is case-insensitive")
	assert.Equal(t, MOVEMENT_SLOW, MovementCategory("UNICORN", "GREY"))
}

func TestMovementCategoryAllColorsSlow(t *testing.T) {
	assert.Equal(t, MOVEMENT_SLOW, MovementCategory("DIO", "RED"))
	assert.Equal(t, MOVEMENT_SLOW, MovementCategory("SP 160", "ANY COLOR AT ALL"))
}

func TestMovementCategoryUnlistedColorIsFast(t *testing.T) {
	assert.Equal(t, MOVEMENT_FAST, MovementCategory("ACTIVA", "SIREN BLUE"))
	assert.Equal(t, MOVEMENT_FAST, MovementCategory("UNICORN", "BLACK"))
}

func TestMovementCategoryUnlistedModel(t *testing.T) {
	assert.Equal(t, MOVEMENT_NA, MovementCategory("GOLDWING", "RED"))
}
