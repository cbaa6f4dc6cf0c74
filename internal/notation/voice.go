package notation

import "strings"

// noteLetters is the diatonic cycle; a scale-degree index is reduced modulo 7
// into it, with index 0 on C.
var noteLetters = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// voice holds the fixed walk parameters of one melodic line.
type voice struct {
	clef            string
	startIndex      int
	lowestIndex     int
	highestIndex    *int // nil when unbounded above
	octaveOffset    int  // shift applied before deciding octave marks
	maxOctavesBelow *int // nil when uncapped
}

var (
	trebleVoice = voice{
		clef:        "treble",
		startIndex:  0,
		lowestIndex: -3,
	}
	bassVoice = voice{
		clef:            "bass",
		startIndex:      0,
		lowestIndex:     -7,
		highestIndex:    intPtr(3),
		octaveOffset:    -7,
		maxOctavesBelow: intPtr(1),
	}
)

func intPtr(v int) *int { return &v }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// pitchName renders a scale-degree index as an ABC pitch for this voice:
// a bare letter in the reference octave, trailing commas below it, a
// lowercase letter above it.
func (v voice) pitchName(index int) string {
	letter := noteLetters[((index%7)+7)%7]
	shifted := index + v.octaveOffset
	if index < 0 {
		octavesBelow := abs(shifted) / 7
		if v.maxOctavesBelow != nil && octavesBelow > *v.maxOctavesBelow {
			octavesBelow = *v.maxOctavesBelow
		}
		return letter + strings.Repeat(",", octavesBelow)
	}
	if shifted >= 7 {
		return strings.ToLower(letter)
	}
	return letter
}
