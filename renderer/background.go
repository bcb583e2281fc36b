package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/components"
)

// trailAlpha is the background alpha painted each frame in painter mode.
const trailAlpha = 30

// Paper is the default background colour.
var Paper = components.Color{R: 230, G: 240, B: 255, A: 255}

// BackgroundRenderer owns the scene layer and the persistent paint canvas.
// The scene layer is cleared every frame, or faded in painter mode so moving
// agents leave trails. The paint canvas only accumulates droplets.
type BackgroundRenderer struct {
	scene rl.RenderTexture2D
	paint rl.RenderTexture2D

	screenW, screenH int32
	baseColor        rl.Color
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base components.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   screenW,
		screenH:   screenH,
		baseColor: toRL(base),
	}
}

// Init loads the layers (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.scene = rl.LoadRenderTexture(b.screenW, b.screenH)
	b.paint = rl.LoadRenderTexture(b.screenW, b.screenH)

	rl.BeginTextureMode(b.scene)
	rl.ClearBackground(b.baseColor)
	rl.EndTextureMode()
	b.ClearPaint()

	b.initialized = true
}

// BeginScene starts drawing the frame into the scene layer and lays the
// paint canvas under it.
func (b *BackgroundRenderer) BeginScene(painter bool) {
	if !b.initialized {
		b.Init()
	}

	rl.BeginTextureMode(b.scene)
	if painter {
		fade := b.baseColor
		fade.A = trailAlpha
		rl.DrawRectangle(0, 0, b.screenW, b.screenH, fade)
	} else {
		rl.ClearBackground(b.baseColor)
	}
	drawLayer(b.paint, b.screenW, b.screenH)
}

// EndScene finishes the scene layer and draws it to the screen.
func (b *BackgroundRenderer) EndScene() {
	rl.EndTextureMode()
	drawLayer(b.scene, b.screenW, b.screenH)
}

// SceneTexture returns the composited scene layer of the last frame.
func (b *BackgroundRenderer) SceneTexture() rl.Texture2D {
	return b.scene.Texture
}

// Paint runs fn with the paint canvas as the draw target.
func (b *BackgroundRenderer) Paint(fn func()) {
	if !b.initialized {
		b.Init()
	}
	rl.BeginTextureMode(b.paint)
	fn()
	rl.EndTextureMode()
}

// ClearPaint wipes the paint canvas.
func (b *BackgroundRenderer) ClearPaint() {
	rl.BeginTextureMode(b.paint)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// drawLayer draws a render texture over the whole screen. Render textures
// are stored upside down, hence the negative source height.
func drawLayer(tex rl.RenderTexture2D, w, h int32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: -float32(h)}
	rl.DrawTextureRec(tex.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadRenderTexture(b.scene)
		rl.UnloadRenderTexture(b.paint)
		b.initialized = false
	}
}
