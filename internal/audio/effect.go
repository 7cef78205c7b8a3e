// Package audio synthesizes the game's sound effects with beep and plays
// them fire-and-forget. Playback failures never reach the caller.
package audio

// Effect names a sound effect triggered by the game.
type Effect string

const (
	EffectJump     Effect = "jump"
	EffectHit      Effect = "hit"
	EffectDeath    Effect = "death"
	EffectCarrot   Effect = "carrot"
	EffectGameOver Effect = "gameOver"
)

// Effects lists every effect in a stable order.
func Effects() []Effect {
	return []Effect{EffectJump, EffectHit, EffectDeath, EffectCarrot, EffectGameOver}
}

// Valid reports whether e is a known effect.
func (e Effect) Valid() bool {
	switch e {
	case EffectJump, EffectHit, EffectDeath, EffectCarrot, EffectGameOver:
		return true
	}
	return false
}

// Nop discards every effect. Used when audio is disabled.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Effect) {}
