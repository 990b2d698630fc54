package settings

// Difficulty is one of three tiers, persisted as 1, 2 or 3.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Normal
	Hard
)

// FromInt maps a persisted tier. Anything out of range falls back to Normal.
func FromInt(v int) Difficulty {
	switch Difficulty(v) {
	case Easy, Normal, Hard:
		return Difficulty(v)
	default:
		return Normal
	}
}

func (d Difficulty) Int() int {
	return int(d)
}

// Next cycles Easy -> Normal -> Hard -> Easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case Easy:
		return Normal
	case Normal:
		return Hard
	default:
		return Easy
	}
}

// Prev cycles Easy -> Hard -> Normal -> Easy.
func (d Difficulty) Prev() Difficulty {
	switch d {
	case Easy:
		return Hard
	case Hard:
		return Normal
	default:
		return Easy
	}
}

// SpeedMultiplier scales obstacle and flyer speeds.
func (d Difficulty) SpeedMultiplier() float64 {
	switch d {
	case Easy:
		return 0.85
	case Hard:
		return 1.2
	default:
		return 1.0
	}
}

// SpawnMultiplier scales the per-frame flyer spawn chance.
func (d Difficulty) SpawnMultiplier() float64 {
	switch d {
	case Easy:
		return 0.7
	case Hard:
		return 1.3
	default:
		return 1.0
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Hard:
		return "Hard"
	default:
		return "Normal"
	}
}
