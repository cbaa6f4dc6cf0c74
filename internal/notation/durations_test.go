package notation

import "testing"

func TestDurationCatalog(t *testing.T) {
	tests := []struct {
		symbol string
		units  float64
		suffix string
	}{
		{DurationSixteenth, 0.5, "/2"},
		{DurationEighth, 1, ""},
		{DurationQuarter, 2, "2"},
		{DurationHalf, 4, "4"},
		{DurationWhole, 8, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			units, err := DurationUnits(tt.symbol)
			if err != nil {
				t.Fatalf("DurationUnits(%q) failed: %v", tt.symbol, err)
			}
			if units != tt.units {
				t.Errorf("DurationUnits(%q) = %v, want %v", tt.symbol, units, tt.units)
			}

			suffix, err := DurationSuffix(tt.symbol)
			if err != nil {
				t.Fatalf("DurationSuffix(%q) failed: %v", tt.symbol, err)
			}
			if suffix != tt.suffix {
				t.Errorf("DurationSuffix(%q) = %q, want %q", tt.symbol, suffix, tt.suffix)
			}
		})
	}
}

func TestDurationCatalogUnknownSymbol(t *testing.T) {
	if _, err := DurationUnits("1/32"); err == nil {
		t.Error("Expected error for unknown duration symbol")
	}
	if _, err := DurationSuffix("3/4"); err == nil {
		t.Error("Expected error for unknown duration symbol")
	}
}
