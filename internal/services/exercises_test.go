package services

import (
	"testing"

	"github.com/etude-app/etude-api/internal/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIntervalsRoundTrip(t *testing.T) {
	tests := []struct {
		intervals []int
		formatted string
	}{
		{[]int{1}, "1"},
		{[]int{1, 2, 3}, "1,2,3"},
		{[]int{8, 1, 5}, "8,1,5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.formatted, FormatIntervals(tt.intervals))

		parsed, err := ParseIntervals(tt.formatted)
		require.NoError(t, err)
		assert.Equal(t, tt.intervals, parsed)
	}
}

func TestParseIntervals(t *testing.T) {
	parsed, err := ParseIntervals(" 1, 2 ,3 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, parsed)

	parsed, err = ParseIntervals("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = ParseIntervals("1,two")
	assert.Error(t, err)
}

func TestGenerateUsesProvidedSeed(t *testing.T) {
	svc := NewExerciseService(nil)
	cfg := notation.Config{
		MeasureCount:     4,
		Key:              "G",
		TimeSignature:    "4/4",
		AllowedIntervals: []int{1, 2, 3},
		AllowedDurations: []string{notation.DurationEighth, notation.DurationQuarter},
	}

	seed := int64(12345)
	first, usedSeed, err := svc.Generate(cfg, &seed)
	require.NoError(t, err)
	assert.Equal(t, seed, usedSeed)

	second, _, err := svc.Generate(cfg, &seed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGeneratePicksSeedWhenMissing(t *testing.T) {
	svc := NewExerciseService(nil)
	cfg := notation.Config{
		MeasureCount:     2,
		Key:              "C",
		TimeSignature:    "3/4",
		AllowedIntervals: []int{1, 2},
		AllowedDurations: []string{notation.DurationEighth},
	}

	abc, usedSeed, err := svc.Generate(cfg, nil)
	require.NoError(t, err)
	assert.NotZero(t, usedSeed)
	assert.NotEmpty(t, abc)
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	svc := NewExerciseService(nil)
	cfg := notation.Config{
		MeasureCount:     0,
		Key:              "C",
		TimeSignature:    "4/4",
		AllowedIntervals: []int{1},
		AllowedDurations: []string{notation.DurationEighth},
	}

	_, _, err := svc.Generate(cfg, nil)
	var cfgErr *notation.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "measure_count", cfgErr.Field)
}
