package notation

import (
	"math/rand"
	"strings"
)

// move applies a signed index step, reflecting at the range bounds:
// the magnitude is re-applied away from the violated bound instead of
// clamping onto it. A wide interval in a narrow range can bounce past the
// opposite bound; the reflected index is then clamped so the walk never
// leaves the voice's range.
func (v voice) move(current, step int) int {
	next := current + step
	if v.highestIndex != nil && next > *v.highestIndex {
		next = current - abs(step)
	}
	if next < v.lowestIndex {
		next = current + abs(step)
	}
	if v.highestIndex != nil && next > *v.highestIndex {
		next = *v.highestIndex
	}
	if next < v.lowestIndex {
		next = v.lowestIndex
	}
	return next
}

// walkMeasure produces one bar of one voice as a constrained random walk over
// scale-degree indices. The first note is always a single elementary unit at
// the voice's start index; the rest of the bar is filled with random moves
// drawn from the allowed interval and duration sets.
func (v voice) walkMeasure(cfg Config, measureUnits float64, rng *rand.Rand) string {
	var b strings.Builder
	current := v.startIndex
	b.WriteString(v.pitchName(current))
	used := 1.0

	for used < measureUnits {
		step := cfg.AllowedIntervals[rng.Intn(len(cfg.AllowedIntervals))] - 1
		if rng.Intn(2) == 1 {
			step = -step
		}

		current = v.move(current, step)
		name := v.pitchName(current)

		remaining := measureUnits - used
		var fitting []string
		for _, symbol := range cfg.AllowedDurations {
			if durationCatalog[symbol].units <= remaining {
				fitting = append(fitting, symbol)
			}
		}
		if len(fitting) == 0 {
			// Nothing allowed fits the remainder; pad the bar with
			// elementary eighth notes at the current pitch.
			for used < measureUnits {
				b.WriteString(name)
				used++
			}
			break
		}

		spec := durationCatalog[fitting[rng.Intn(len(fitting))]]
		b.WriteString(name)
		b.WriteString(spec.suffix)
		used += spec.units
		if spec.suffix != "" && used < measureUnits {
			b.WriteString(" ")
		}
	}

	b.WriteString("|")
	return b.String()
}
