package app

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Allowed characters for free-text fields, matching the storage collation
// expectations: letters, digits, space, and .,'_-
var safeCharsRe = regexp.MustCompile(`^[\p{L}\p{N} .,'_-]+$`)

// RegisterRules installs the domain rule sets on the shared validator. This
// is the whole static request→rules mapping: it runs once at startup, and
// request types not listed here validate as a no-op.
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation("safechars", func(fl validator.FieldLevel) bool {
		return safeCharsRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		return !t.UTC().Truncate(24 * time.Hour).Before(today)
	}); err != nil {
		return err
	}
	v.RegisterStructValidation(coordinatesProvidedTogether, CreateExampleCommand{}, UpdateExampleCommand{})
	return nil
}

// coordinatesProvidedTogether enforces the both-or-neither pair rule. The
// violation is reported on the missing half so the field error points at the
// property the client has to add.
func coordinatesProvidedTogether(sl validator.StructLevel) {
	var lat, lon *float64
	switch cmd := sl.Current().Interface().(type) {
	case CreateExampleCommand:
		lat, lon = cmd.Latitude, cmd.Longitude
	case UpdateExampleCommand:
		lat, lon = cmd.Latitude, cmd.Longitude
	default:
		return
	}
	if (lat == nil) == (lon == nil) {
		return
	}
	if lat == nil {
		sl.ReportError(lat, "latitude", "Latitude", "paired", "")
	} else {
		sl.ReportError(lon, "longitude", "Longitude", "paired", "")
	}
}
