package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/slime"
)

var (
	barrelColor = rl.Color{R: 80, G: 80, B: 80, A: 255}
	baseColor   = rl.Color{R: 60, G: 60, B: 60, A: 255}
)

// DrawCannon draws the launcher barrel with its half-dome base in front.
func DrawCannon(l *slime.Launcher) {
	w, h := l.Size()
	cx, cy := float32(l.Center.X), float32(l.Center.Y)
	fw, fh := float32(w), float32(h)

	rl.DrawRectangleV(rl.Vector2{X: cx - fw/2, Y: cy - fh/2}, rl.Vector2{X: fw, Y: fh}, barrelColor)

	// Upper half of an ellipse 1.2w wide and h tall, centred on the barrel foot
	rl.PushMatrix()
	rl.Translatef(cx, cy+fh/2, 0)
	rl.Scalef(fw*0.6, fh/2, 1)
	rl.DrawCircleSector(rl.Vector2{}, 1, 180, 360, 32, baseColor)
	rl.PopMatrix()
}
