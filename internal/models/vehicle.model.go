package models

import "strings"

const (
	VEHICLE_CLASS_SCOOTER    = "SC"
	VEHICLE_CLASS_MOTORCYCLE = "MC"
	VEHICLE_CLASS_OTHER      = "Other"
	VEHICLE_CLASS_UNKNOWN    = "Unknown"
)

const (
	MOVEMENT_SLOW = "Slow Moving"
	MOVEMENT_FAST = "Fast Moving"
	MOVEMENT_NA   = "N/A"
)

// vehicleClass maps a model-name prefix to its registration class.
var vehicleClass = map[string]string{
	"ACTIVA":        VEHICLE_CLASS_SCOOTER,
	"ACTIVA 125":    VEHICLE_CLASS_SCOOTER,
	"DIO":           VEHICLE_CLASS_SCOOTER,
	"DIO 125":       VEHICLE_CLASS_SCOOTER,
	"UNICORN":       VEHICLE_CLASS_MOTORCYCLE,
	"SHINE 125":     VEHICLE_CLASS_MOTORCYCLE,
	"SHINE 100 STD": VEHICLE_CLASS_MOTORCYCLE,
	"SHINE 100 DLX": VEHICLE_CLASS_MOTORCYCLE,
	"SP 125":        VEHICLE_CLASS_MOTORCYCLE,
	"SP 160":        VEHICLE_CLASS_MOTORCYCLE,
	"LIVO":          VEHICLE_CLASS_MOTORCYCLE,
	"CB HORNET":     VEHICLE_CLASS_MOTORCYCLE,
	"CB HORNET 125": VEHICLE_CLASS_MOTORCYCLE,
	"CB 200":        VEHICLE_CLASS_MOTORCYCLE,
	"NX200":         VEHICLE_CLASS_MOTORCYCLE,
}

// slowMovingRules lists the colors considered slow per model. The "ALL"
// entry marks the whole model slow regardless of color.
var slowMovingRules = map[string][]string{
	"ACTIVA":        {"DECENT BLUE", "BLACK", "WHITE"},
	"ACTIVA 125":    {"GRAY", "BLACK", "WHITE"},
	"DIO":           {"ALL"},
	"DIO 125":       {"ALL"},
	"UNICORN":       {"RED", "GREY"},
	"SHINE 125":     {"BLUE METALLIC", "MAT GRAY"},
	"SHINE 100 STD": {"ALL"},
	"SHINE 100 DLX": {"GENY GRAY", "BLACK", "BLUE METALLIC", "RED METALLIC"},
	"SP 125":        {"BLUE METALLIC", "BLACK", "SIREN BLUE", "RED", "MAT GRAY"},
	"SP 160":        {"ALL"},
	"LIVO":          {"ALL"},
	"CB HORNET":     {"ALL"},
	"CB HORNET 125": {"ALL"},
	"CB 200":        {"ALL"},
	"NX200":         {"ALL"},
}

var fastMovingRules = map[string][]string{
	"UNICORN":       {"BLACK"},
	"ACTIVA":        {"MAT GRAY", "SIREN BLUE", "RED"},
	"ACTIVA 125":    {"SIREN BLUE", "GROUND GREY", "RED"},
	"SHINE 125":     {"GENY GRAY", "BLACK", "SIREN BLUE", "RED"},
	"SHINE 100 DLX": {"BLACK", "RED METALLIC"},
	"SP 125":        {"BLUE METALLIC", "BLACK", "SIREN BLUE", "RED", "MAT GRAY"},
}

// VehicleType classifies a model name as scooter or motorcycle by its
// longest matching prefix entry.
func VehicleType(model string) string {
	if model == "" {
		return VEHICLE_CLASS_UNKNOWN
	}
	best := ""
	class := VEHICLE_CLASS_OTHER
	for prefix, c := range vehicleClass {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best, class = prefix, c
		}
	}
	return class
}

// MovementCategory classifies a model+color for stock reporting. A model
// listed in the slow rules defaults to fast for unlisted colors, and the
// other way around for the fast rules; unlisted models stay N/A.
func MovementCategory(model, color string) string {
	upper := strings.ToUpper(color)

	if rules, ok := slowMovingRules[model]; ok {
		for _, c := range rules {
			if c == "ALL" || c == upper {
				return MOVEMENT_SLOW
			}
		}
		return MOVEMENT_FAST
	}

	if rules, ok := fastMovingRules[model]; ok {
		for _, c := range rules {
			if c == upper {
				return MOVEMENT_FAST
			}
		}
		return MOVEMENT_SLOW
	}

	return MOVEMENT_NA
}
