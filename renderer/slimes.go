package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
	"github.com/pthm-cable/slime/systems"
)

var (
	faceColor      = rl.Color{R: 0, G: 0, B: 0, A: 255}
	highlightColor = rl.Color{R: 255, G: 255, B: 255, A: 120}
	gazeColor      = rl.Color{R: 255, G: 0, B: 0, A: 150}
	reticleColor   = rl.Color{R: 255, G: 0, B: 0, A: 200}
	orbitColor     = rl.Color{R: 200, G: 200, B: 255, A: 180}
	bombColor      = rl.Color{R: 40, G: 40, B: 40, A: 255}
	fuseColor      = rl.Color{R: 100, G: 80, B: 40, A: 255}
	sparkColor     = rl.Color{R: 255, G: 255, B: 0, A: 255}
)

// toRL converts a simulation colour to a raylib colour.
func toRL(c components.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.Color{R: r, G: g, B: b, A: a}
}

func vec(p r2.Point) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

// SlimeRenderer draws the agent population.
type SlimeRenderer struct {
	noise    *systems.Noise
	maxSpeed float64
	ShowGaze bool
}

// NewSlimeRenderer creates a renderer sampling outline wobble from noise.
// maxSpeed is the speed at which bodies reach full stretch.
func NewSlimeRenderer(noise *systems.Noise, maxSpeed float64) *SlimeRenderer {
	return &SlimeRenderer{noise: noise, maxSpeed: maxSpeed, ShowGaze: true}
}

// Draw renders every agent in population order, so later agents sit on top.
func (r *SlimeRenderer) Draw(pop *slime.Population, frame int64) {
	// Outlines may wind either way once squashed
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	for _, a := range pop.Agents() {
		switch v := a.(type) {
		case *slime.BlackHole:
			r.drawBlackHole(v, frame)
		case *slime.Cluster:
			r.drawCluster(v)
		case *slime.Killer:
			r.drawBody(v.State(), frame)
			if r.ShowGaze {
				if target, ok := v.Target(pop); ok {
					drawGaze(v.Pos, target.State())
				}
			}
		default:
			r.drawBody(a.State(), frame)
		}
	}
}

func (r *SlimeRenderer) drawBody(b *slime.Body, frame int64) {
	angle, stretch, squash := SquashStretch(b.Vel, r.maxSpeed)

	rl.PushMatrix()
	rl.Translatef(float32(b.Pos.X), float32(b.Pos.Y), 0)
	rl.Rotatef(float32(angle), 0, 0, 1)
	rl.Scalef(float32(stretch), float32(squash), 1)

	outline := Outline(b, r.noise, frame)
	fill := toRL(b.Color)
	// Outline first so the fill covers its inner half
	strokePolygon(outline, float32(b.R*0.1), toRL(b.Color.Scale(0.8)))
	fillPolygon(outline, fill)

	if b.Shape == components.ShapeBomb {
		drawBombIcon(float32(b.R))
	}
	drawHighlight(float32(b.R))
	drawFace(float32(b.R), b.Expression)

	rl.PopMatrix()
}

func (r *SlimeRenderer) drawCluster(c *slime.Cluster) {
	b := c.State()
	hull := ClusterHull(c.SoftBody().Points(), b.Pos)
	if len(hull) < 3 {
		return
	}

	rl.PushMatrix()
	rl.Translatef(float32(b.Pos.X), float32(b.Pos.Y), 0)

	strokePolygon(hull, float32(b.R*0.2), toRL(b.Color.Scale(0.8)))
	fillPolygon(hull, toRL(b.Color))
	drawHighlight(float32(b.R))
	drawFace(float32(b.R), b.Expression)

	rl.PopMatrix()
}

func (r *SlimeRenderer) drawBlackHole(h *slime.BlackHole, frame int64) {
	// Orbits sit behind the core
	for _, p := range OrbitPoints(h) {
		rl.DrawCircleV(vec(p), 1.5, orbitColor)
	}

	center := vec(h.Pos)
	pulse := math.Sin(float64(frame)*0.05) * h.R * 0.1
	for i := 15; i > 0; i-- {
		radius := h.R + float64(i)*2 + pulse
		alpha := uint8(systems.MapRange(float64(i), 15, 0, 0, 100))
		rl.DrawCircleV(center, float32(radius), rl.Color{R: 120, G: 100, B: 255, A: alpha})
	}
	rl.DrawCircleV(center, float32(h.R), toRL(h.Color))
}

// drawGaze draws the dashed line from a killer to its prey and a reticle.
func drawGaze(from r2.Point, target *slime.Body) {
	for _, d := range Dashes(from, target.Pos, 8, 8) {
		rl.DrawLineEx(vec(d[0]), vec(d[1]), 2, gazeColor)
	}

	size := float32(target.R * 1.5)
	c := vec(target.Pos)
	rl.DrawRing(c, size-1, size+1, 0, 360, 48, reticleColor)
	rl.DrawLineEx(rl.Vector2{X: c.X - size, Y: c.Y}, rl.Vector2{X: c.X + size, Y: c.Y}, 2, reticleColor)
	rl.DrawLineEx(rl.Vector2{X: c.X, Y: c.Y - size}, rl.Vector2{X: c.X, Y: c.Y + size}, 2, reticleColor)
}

// fillPolygon fills a star-shaped polygon around the local origin.
func fillPolygon(pts []r2.Point, col rl.Color) {
	fan := make([]rl.Vector2, 0, len(pts)+2)
	fan = append(fan, rl.Vector2{})
	// raylib expects counter-clockwise fans; outline points run clockwise on screen
	for i := len(pts) - 1; i >= 0; i-- {
		fan = append(fan, vec(pts[i]))
	}
	fan = append(fan, vec(pts[len(pts)-1]))
	rl.DrawTriangleFan(fan, col)
}

func strokePolygon(pts []r2.Point, thick float32, col rl.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		rl.DrawLineEx(vec(a), vec(b), thick, col)
	}
}

// ellipse draws a filled ellipse of the given diameters.
func ellipse(x, y, w, h float32, col rl.Color) {
	rl.PushMatrix()
	rl.Translatef(x, y, 0)
	rl.Scalef(w/2, h/2, 1)
	rl.DrawCircleV(rl.Vector2{}, 1, col)
	rl.PopMatrix()
}

// arc strokes an elliptical arc. Angles are in degrees, clockwise on screen.
func arc(x, y, w, h, start, end, thick float32, col rl.Color) {
	rl.PushMatrix()
	rl.Translatef(x, y, 0)
	rl.Scalef(1, h/w, 1)
	rl.DrawRing(rl.Vector2{}, w/2-thick/2, w/2+thick/2, start, end, 24, col)
	rl.PopMatrix()
}

func drawHighlight(r float32) {
	arc(0, 0, r*1.5, r*1.5, -144, -36, r*0.3, highlightColor)
}

func drawBombIcon(r float32) {
	ellipse(0, -r*0.9, r*0.6, r*0.6, bombColor)
	rl.DrawLineEx(rl.Vector2{X: 0, Y: -r * 1.1}, rl.Vector2{X: r * 0.1, Y: -r * 1.3}, r*0.1, fuseColor)
	ellipse(r*0.1, -r*1.3, r*0.2, r*0.2, sparkColor)
}

func drawFace(r float32, expr components.Expression) {
	eye := r * 0.15
	eyeY := -r * 0.1
	left, right := -r*0.25, r*0.25

	switch expr {
	case components.ExprHappy:
		ellipse(left, eyeY, eye, eye, faceColor)
		ellipse(right, eyeY, eye, eye, faceColor)
		arc(0, r*0.1, r*0.5, r*0.4, 0, 180, r*0.05, faceColor)
	case components.ExprWink:
		arc(left, eyeY, eye*0.8, eye*0.5, 180, 360, r*0.05, faceColor)
		ellipse(right, eyeY, eye, eye, faceColor)
	case components.ExprSurprised:
		ellipse(left, eyeY, eye*1.2, eye*1.2, faceColor)
		ellipse(right, eyeY, eye*1.2, eye*1.2, faceColor)
		ellipse(0, r*0.25, r*0.25, r*0.35, faceColor)
	default:
		ellipse(left, eyeY, eye, eye, faceColor)
		ellipse(right, eyeY, eye, eye, faceColor)
	}
}
