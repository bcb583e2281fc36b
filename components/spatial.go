package components

// Position represents an effect particle's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an effect particle's velocity in pixels per frame.
type Velocity struct {
	X, Y float32
}

// EffectKind distinguishes short-lived explosion shards from paint droplets.
type EffectKind uint8

const (
	EffectShard   EffectKind = iota // Fading spark, drawn on the main layer
	EffectDroplet                   // Stamped once onto the paint canvas
)

// Effect holds the countdown and look of a cosmetic particle.
type Effect struct {
	Kind    EffectKind
	Life    int32 // Frames remaining
	MaxLife int32
	Size    float32
	Color   Color
}

// Fade returns the remaining life as a fraction in [0, 1].
func (e *Effect) Fade() float32 {
	if e.MaxLife <= 0 {
		return 0
	}
	return float32(e.Life) / float32(e.MaxLife)
}
