package drapery

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// submitCommands submits the command list to the target image in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandOverlay:
			submitOverlay(target, cmd, &s.rtPool)
		}
	}
}

// submitSprite draws a single sprite command using DrawImage.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	op.GeoM = commandGeoM(cmd)
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(cmd.image, op)
}

// submitOverlay draws an overlay command. The layer is first rendered into
// a scratch texture covering its destination rectangle, the backdrop under
// that rectangle is copied, and overlayShader writes the blended result back
// with a copy.
func submitOverlay(target *ebiten.Image, cmd *RenderCommand, pool *renderTexturePool) {
	b := cmd.image.Bounds()
	aabb := worldAABB(cmd.Transform, float64(b.Dx()), float64(b.Dy()))
	dst := image.Rect(
		int(math.Floor(aabb.X)), int(math.Floor(aabb.Y)),
		int(math.Ceil(aabb.X+aabb.Width)), int(math.Ceil(aabb.Y+aabb.Height)),
	).Intersect(target.Bounds())
	if dst.Empty() {
		return
	}
	w, h := dst.Dx(), dst.Dy()

	srcRT, src := pool.AcquireExact(w, h)
	defer pool.Release(srcRT)
	backRT, back := pool.AcquireExact(w, h)
	defer pool.Release(backRT)

	var op ebiten.DrawImageOptions
	op.GeoM = commandGeoM(cmd)
	op.GeoM.Translate(-float64(dst.Min.X), -float64(dst.Min.Y))
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	op.Filter = ebiten.FilterLinear
	src.DrawImage(cmd.image, &op)

	var cp ebiten.DrawImageOptions
	cp.Blend = ebiten.BlendCopy
	back.DrawImage(target.SubImage(dst).(*ebiten.Image), &cp)

	var sop ebiten.DrawRectShaderOptions
	sop.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	sop.Images[0] = src
	sop.Images[1] = back
	sop.Blend = BlendOverlay.EbitenBlend()
	target.DrawRectShader(w, h, ensureOverlayShader(), &sop)
}

// commandGeoM converts a command's affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	return affineGeoM(cmd.Transform)
}

func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// countDrawCalls counts the GPU draw calls a command list produces.
// An overlay costs three: layer, backdrop copy and shader.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		if commands[i].Type == CommandOverlay {
			count += 3
		} else {
			count++
		}
	}
	return count
}
