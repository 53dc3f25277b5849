package errors

import (
	"regexp"
	"unicode"
)

// MaxDimension bounds each board axis. Boards are dense grids, so this keeps
// a typo in a config file from allocating gigabytes.
const MaxDimension = 256

// ValidateDimensions checks board dimensions.
//
// Every axis must be in [1, MaxDimension].
func ValidateDimensions(dx, dy, dz int) error {
	for _, d := range []struct {
		name string
		v    int
	}{{"width", dx}, {"depth", dy}, {"height", dz}} {
		if d.v < 1 {
			return New(ErrCodeInvalidDimensions, "%s must be at least 1, got %d", d.name, d.v)
		}
		if d.v > MaxDimension {
			return New(ErrCodeInvalidDimensions, "%s must be at most %d, got %d", d.name, MaxDimension, d.v)
		}
	}
	return nil
}

// ValidateNonNegative rejects negative values for the named setting.
func ValidateNonNegative(field string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %d", field, v)
	}
	return nil
}

// ValidatePositive rejects zero and negative values for the named setting.
func ValidatePositive(field string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", field, v)
	}
	return nil
}

// shapeNameRegex matches catalog shape names: a letter followed by letters,
// digits, dashes or underscores.
var shapeNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateShapeName validates the name of a catalog shape.
func ValidateShapeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCatalog, "shape name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidCatalog, "shape name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "shape name contains invalid control characters")
		}
	}
	if !shapeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCatalog, "invalid shape name: %q", name)
	}
	return nil
}
