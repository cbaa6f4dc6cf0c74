// Package notation generates two-voice sight-reading exercises as ABC
// notation documents. Generation is a pure computation over an injected
// random source, so a fixed seed always yields a byte-identical document.
package notation

import (
	"fmt"
	"math/rand"
	"strings"
)

// NewRand returns a seeded random source suitable for Generate.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generate synthesizes a treble and a bass line for the given configuration
// and serializes them into a single ABC document. The two voices are
// generated independently; no harmonic coordination is attempted.
func Generate(cfg Config, rng *rand.Rand) (string, error) {
	measureUnits, err := cfg.validate()
	if err != nil {
		return "", err
	}

	treble := assembleVoice(trebleVoice, cfg, measureUnits, rng)
	bass := assembleVoice(bassVoice, cfg, measureUnits, rng)

	return serialize(cfg, treble, bass), nil
}

// assembleVoice walks one voice through every measure of the exercise.
func assembleVoice(v voice, cfg Config, measureUnits float64, rng *rand.Rand) []string {
	measures := make([]string, 0, cfg.MeasureCount)
	for i := 0; i < cfg.MeasureCount; i++ {
		measures = append(measures, v.walkMeasure(cfg, measureUnits, rng))
	}
	return measures
}

// serialize emits the ABC header followed by the two voices' measures
// interleaved in time order. The external renderer depends on this exact
// field order.
func serialize(cfg Config, treble, bass []string) string {
	beats, unit, _ := parseTimeSignature(cfg.TimeSignature)

	var b strings.Builder
	b.WriteString("X:1\n")
	b.WriteString("T:\n")
	fmt.Fprintf(&b, "M:%d/%d\n", beats, unit)
	b.WriteString("L:1/8\n")
	b.WriteString("K:" + cfg.Key + "\n")
	b.WriteString("V:1 clef=" + trebleVoice.clef + "\n")
	b.WriteString("V:2 clef=" + bassVoice.clef + "\n")
	for i := range treble {
		b.WriteString("V:1\n")
		b.WriteString(treble[i] + "\n")
		b.WriteString("V:2\n")
		b.WriteString(bass[i] + "\n")
	}
	return b.String()
}
