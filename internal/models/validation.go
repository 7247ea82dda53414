package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator reading the same `binding` tags gin uses,
// reporting fields by their JSON names, with the listing rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterRules(v)
	return v
}

// RegisterRules adds JSON field naming and the cross-field listing rules to v.
// The backend registers them on gin's engine so both sides agree.
func RegisterRules(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	v.RegisterStructValidation(listingRules, CreateListingRequest{})
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// listingRules enforces the attributes each category requires and the
// single primary image.
func listingRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateListingRequest)

	switch req.Category {
	case CategoryBattery:
		if req.Battery == nil || req.Battery.VoltageV <= 0 {
			sl.ReportError(req.Battery, "battery.voltage", "VoltageV", "required", "")
		}
		if req.Battery == nil || req.Battery.CapacityAh <= 0 {
			sl.ReportError(req.Battery, "battery.capacity", "CapacityAh", "required", "")
		}
		if req.Battery != nil && (req.Battery.HealthPercent < 0 || req.Battery.HealthPercent > 100) {
			sl.ReportError(req.Battery.HealthPercent, "battery.healthPercent", "HealthPercent", "max", "100")
		}
	case CategoryEBike:
		if req.EBike == nil || req.EBike.MotorPowerW <= 0 {
			sl.ReportError(req.EBike, "ebike.motorPower", "MotorPowerW", "required", "")
		}
		if req.EBike == nil || req.EBike.RangeKm <= 0 {
			sl.ReportError(req.EBike, "ebike.range", "RangeKm", "required", "")
		}
		if req.EBike != nil && req.EBike.MileageKm < 0 {
			sl.ReportError(req.EBike.MileageKm, "ebike.mileage", "MileageKm", "gte", "0")
		}
	}

	primaries := 0
	for _, img := range req.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	if len(req.Images) > 0 && primaries != 1 {
		sl.ReportError(req.Images, "primaryImage", "Images", "required", "")
	}
}

// InvalidFields lists the JSON names of the fields err complains about.
// It returns nil when err is not a validation failure.
func InvalidFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
