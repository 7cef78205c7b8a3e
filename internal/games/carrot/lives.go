package carrot

// HeartState is the look of one heart in the life indicator.
type HeartState uint8

const (
	HeartFull HeartState = iota
	HeartFlashing
	HeartEmpty
)

// String returns the heart state name.
func (h HeartState) String() string {
	switch h {
	case HeartFull:
		return "full"
	case HeartFlashing:
		return "flashing"
	case HeartEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// LifeIndicator tracks one heart per initial life.
type LifeIndicator struct {
	hearts []HeartState
}

// NewLifeIndicator creates n full hearts.
func NewLifeIndicator(n int) *LifeIndicator {
	return &LifeIndicator{hearts: make([]HeartState, n)}
}

// Reset fills every heart.
func (l *LifeIndicator) Reset() {
	for i := range l.hearts {
		l.hearts[i] = HeartFull
	}
}

// Update redraws the hearts for the remaining lives. The heart at index
// lives is the one just lost and flashes; its index is returned, or -1 when
// no heart flashes.
func (l *LifeIndicator) Update(lives int) int {
	flashing := -1
	for i := range l.hearts {
		switch {
		case i < lives:
			l.hearts[i] = HeartFull
		case i == lives:
			l.hearts[i] = HeartFlashing
			flashing = i
		default:
			l.hearts[i] = HeartEmpty
		}
	}
	return flashing
}

// Settle turns a flashing heart empty.
func (l *LifeIndicator) Settle(i int) {
	if i >= 0 && i < len(l.hearts) && l.hearts[i] == HeartFlashing {
		l.hearts[i] = HeartEmpty
	}
}

// Hearts returns a copy of the heart states.
func (l *LifeIndicator) Hearts() []HeartState {
	out := make([]HeartState, len(l.hearts))
	copy(out, l.hearts)
	return out
}
