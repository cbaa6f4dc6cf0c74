package notation

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		MeasureCount:     4,
		Key:              "C",
		TimeSignature:    "4/4",
		AllowedIntervals: []int{1, 2, 3},
		AllowedDurations: []string{DurationEighth, DurationQuarter},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"minor key", func(c *Config) { c.Key = "F#m" }, ""},
		{"zero measures", func(c *Config) { c.MeasureCount = 0 }, "measure_count"},
		{"negative measures", func(c *Config) { c.MeasureCount = -3 }, "measure_count"},
		{"no intervals", func(c *Config) { c.AllowedIntervals = nil }, "intervals"},
		{"interval too small", func(c *Config) { c.AllowedIntervals = []int{0} }, "intervals"},
		{"interval too large", func(c *Config) { c.AllowedIntervals = []int{9} }, "intervals"},
		{"no durations", func(c *Config) { c.AllowedDurations = nil }, "durations"},
		{"unknown duration", func(c *Config) { c.AllowedDurations = []string{"1/3"} }, "durations"},
		{"time signature without slash", func(c *Config) { c.TimeSignature = "44" }, "time_signature"},
		{"non-numeric beats", func(c *Config) { c.TimeSignature = "x/4" }, "time_signature"},
		{"zero beat unit", func(c *Config) { c.TimeSignature = "4/0" }, "time_signature"},
		{"negative beats", func(c *Config) { c.TimeSignature = "-2/4" }, "time_signature"},
		{"non power-of-two beat unit", func(c *Config) { c.TimeSignature = "5/3" }, "time_signature"},
		{"bar shorter than an eighth", func(c *Config) {
			c.TimeSignature = "1/16"
			c.AllowedDurations = []string{DurationSixteenth}
		}, "time_signature"},
		{"fractional bar without sixteenths", func(c *Config) { c.TimeSignature = "3/16" }, "time_signature"},
		{"fractional bar with sixteenths", func(c *Config) {
			c.TimeSignature = "3/16"
			c.AllowedDurations = []string{DurationSixteenth, DurationEighth}
		}, ""},
		{"unsupported key", func(c *Config) { c.Key = "H" }, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Error field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestMeasureUnitsFromTimeSignature(t *testing.T) {
	tests := []struct {
		timeSignature string
		units         float64
	}{
		{"4/4", 8},
		{"3/4", 6},
		{"2/4", 4},
		{"6/8", 6},
		{"2/2", 8},
		{"9/8", 9},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.TimeSignature = tt.timeSignature
		units, err := cfg.validate()
		if err != nil {
			t.Fatalf("validate(%q) failed: %v", tt.timeSignature, err)
		}
		if units != tt.units {
			t.Errorf("measure units for %q = %v, want %v", tt.timeSignature, units, tt.units)
		}
	}
}
