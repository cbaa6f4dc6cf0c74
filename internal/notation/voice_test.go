package notation

import "testing"

func TestTreblePitchName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "C"},
		{1, "D"},
		{6, "B"},
		{7, "c"},  // octave above the reference: case-shifted
		{10, "f"},
		{-1, "B"}, // still within the reference octave, no marks
		{-3, "G"},
	}

	for _, tt := range tests {
		if got := trebleVoice.pitchName(tt.index); got != tt.want {
			t.Errorf("treble pitchName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestBassPitchName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "C"},
		{3, "F"},
		{-1, "B,"},
		{-4, "F,"},
		// floor(|-7 + -7|/7) = 2 octaves below, capped at 1
		{-7, "C,"},
	}

	for _, tt := range tests {
		if got := bassVoice.pitchName(tt.index); got != tt.want {
			t.Errorf("bass pitchName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestMoveReflectsAtBounds(t *testing.T) {
	tests := []struct {
		name    string
		v       voice
		current int
		step    int
		want    int
	}{
		{"treble within range", trebleVoice, 0, 4, 4},
		{"treble descending within range", trebleVoice, 0, -2, -2},
		{"treble reflects at the floor", trebleVoice, -2, -4, 2},
		{"treble unbounded above", trebleVoice, 20, 7, 27},
		{"bass reflects at the ceiling", bassVoice, 2, 3, -1},
		{"bass reflects at the floor", bassVoice, -6, -3, -3},
		{"bass unison never moves", bassVoice, 3, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.move(tt.current, tt.step); got != tt.want {
				t.Errorf("move(%d, %d) = %d, want %d", tt.current, tt.step, got, tt.want)
			}
		})
	}
}

// A wide interval in the bass's narrow range can overshoot both bounds in one
// move; the walk clamps the reflected index instead of leaving the range.
func TestMoveClampsDoubleOvershoot(t *testing.T) {
	for current := bassVoice.lowestIndex; current <= *bassVoice.highestIndex; current++ {
		for magnitude := 0; magnitude <= maxInterval-1; magnitude++ {
			for _, step := range []int{magnitude, -magnitude} {
				got := bassVoice.move(current, step)
				if got < bassVoice.lowestIndex || got > *bassVoice.highestIndex {
					t.Fatalf("move(%d, %d) = %d, outside [%d,%d]",
						current, step, got, bassVoice.lowestIndex, *bassVoice.highestIndex)
				}
			}
		}
	}
}
