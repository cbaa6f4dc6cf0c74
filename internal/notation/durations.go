package notation

import "fmt"

// Duration symbols accepted in a practice configuration.
const (
	DurationSixteenth = "1/16"
	DurationEighth    = "1/8"
	DurationQuarter   = "1/4"
	DurationHalf      = "1/2"
	DurationWhole     = "1"
)

// The eighth note is the elementary time unit: all beat arithmetic is done in
// eighth-note units, and the document declares L:1/8 so an unsuffixed token
// is exactly one unit long.
const eighthsPerWholeNote = 8

// durationSpec maps a duration symbol to its length in elementary units and
// the ABC length suffix appended to a note token.
type durationSpec struct {
	units  float64
	suffix string
}

var durationCatalog = map[string]durationSpec{
	DurationSixteenth: {units: 0.5, suffix: "/2"},
	DurationEighth:    {units: 1, suffix: ""},
	DurationQuarter:   {units: 2, suffix: "2"},
	DurationHalf:      {units: 4, suffix: "4"},
	DurationWhole:     {units: 8, suffix: "8"},
}

// DurationUnits returns the length of a duration symbol in elementary
// (eighth-note) units.
func DurationUnits(symbol string) (float64, error) {
	spec, ok := durationCatalog[symbol]
	if !ok {
		return 0, &ConfigurationError{Field: "durations", Message: fmt.Sprintf("unknown duration %q", symbol)}
	}
	return spec.units, nil
}

// DurationSuffix returns the ABC length suffix for a duration symbol.
func DurationSuffix(symbol string) (string, error) {
	spec, ok := durationCatalog[symbol]
	if !ok {
		return "", &ConfigurationError{Field: "durations", Message: fmt.Sprintf("unknown duration %q", symbol)}
	}
	return spec.suffix, nil
}
