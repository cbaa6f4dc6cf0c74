package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval values map intervals to index steps: 1 = unison, 2 = second,
// ... 8 = octave. The index step is the value minus one.
const (
	minInterval = 1
	maxInterval = 8
)

// Config describes one practice exercise request.
type Config struct {
	MeasureCount     int      `json:"measure_count"`
	Key              string   `json:"key"`
	TimeSignature    string   `json:"time_signature"` // "N/D", e.g. "4/4"
	AllowedIntervals []int    `json:"intervals"`      // values in [1,8]
	AllowedDurations []string `json:"durations"`      // subset of the duration catalog
}

// supportedKeys covers the standard major keys and their minors ("m" suffix).
var supportedKeys = map[string]bool{
	"C": true, "G": true, "D": true, "A": true, "E": true, "B": true,
	"F#": true, "C#": true, "F": true, "Bb": true, "Eb": true, "Ab": true,
	"Db": true, "Gb": true, "Cb": true,
	"Am": true, "Em": true, "Bm": true, "F#m": true, "C#m": true, "G#m": true,
	"D#m": true, "A#m": true, "Dm": true, "Gm": true, "Cm": true, "Fm": true,
	"Bbm": true, "Ebm": true, "Abm": true,
}

// SupportedKey reports whether a key name is accepted by the generator.
func SupportedKey(key string) bool {
	return supportedKeys[key]
}

// parseTimeSignature splits "N/D" into two positive integers.
func parseTimeSignature(ts string) (beats, unit int, err error) {
	numerator, denominator, found := strings.Cut(ts, "/")
	if !found {
		return 0, 0, &ConfigurationError{Field: "time_signature", Message: fmt.Sprintf("%q is not of the form N/D", ts)}
	}
	beats, err = strconv.Atoi(numerator)
	if err != nil || beats < 1 {
		return 0, 0, &ConfigurationError{Field: "time_signature", Message: fmt.Sprintf("invalid beat count in %q", ts)}
	}
	unit, err = strconv.Atoi(denominator)
	if err != nil {
		return 0, 0, &ConfigurationError{Field: "time_signature", Message: fmt.Sprintf("invalid beat unit in %q", ts)}
	}
	switch unit {
	case 1, 2, 4, 8, 16:
	default:
		return 0, 0, &ConfigurationError{Field: "time_signature", Message: fmt.Sprintf("invalid beat unit in %q", ts)}
	}
	return beats, unit, nil
}

func (c Config) allowsDuration(symbol string) bool {
	for _, s := range c.AllowedDurations {
		if s == symbol {
			return true
		}
	}
	return false
}

// validate checks every structural constraint and returns the measure length
// in elementary units. It runs to completion before any randomness is drawn.
func (c Config) validate() (measureUnits float64, err error) {
	if c.MeasureCount < 1 {
		return 0, &ConfigurationError{Field: "measure_count", Message: fmt.Sprintf("must be at least 1, got %d", c.MeasureCount)}
	}
	if len(c.AllowedIntervals) == 0 {
		return 0, &ConfigurationError{Field: "intervals", Message: "at least one interval is required"}
	}
	for _, interval := range c.AllowedIntervals {
		if interval < minInterval || interval > maxInterval {
			return 0, &ConfigurationError{Field: "intervals", Message: fmt.Sprintf("interval %d outside [%d,%d]", interval, minInterval, maxInterval)}
		}
	}
	if len(c.AllowedDurations) == 0 {
		return 0, &ConfigurationError{Field: "durations", Message: "at least one duration is required"}
	}
	for _, symbol := range c.AllowedDurations {
		if _, ok := durationCatalog[symbol]; !ok {
			return 0, &ConfigurationError{Field: "durations", Message: fmt.Sprintf("unknown duration %q", symbol)}
		}
	}
	beats, unit, err := parseTimeSignature(c.TimeSignature)
	if err != nil {
		return 0, err
	}
	if !supportedKeys[c.Key] {
		return 0, &ConfigurationError{Field: "key", Message: fmt.Sprintf("unsupported key %q", c.Key)}
	}
	measureUnits = float64(beats) * eighthsPerWholeNote / float64(unit)
	if measureUnits < 1 {
		// The mandatory first note of every bar is one elementary unit long,
		// so a shorter bar could never sum correctly.
		return 0, &ConfigurationError{
			Field:   "time_signature",
			Message: fmt.Sprintf("%q is shorter than one eighth note per bar", c.TimeSignature),
		}
	}
	if measureUnits != float64(int(measureUnits)) && !c.allowsDuration(DurationSixteenth) {
		return 0, &ConfigurationError{
			Field:   "time_signature",
			Message: fmt.Sprintf("%q needs %s notes among the allowed durations", c.TimeSignature, DurationSixteenth),
		}
	}
	return measureUnits, nil
}

// Validate checks the configuration without generating anything.
func (c Config) Validate() error {
	_, err := c.validate()
	return err
}
