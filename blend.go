package drapery

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// BlendMode selects a compositing operation.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendMultiply                  // base * src per channel; only darkens, keeps base shading
	BlendOverlay                   // hard-light of base by src; keeps base contrast
	BlendNone                      // opaque copy (skip blending)
)

// String returns the CSS name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendOverlay:
		return "overlay"
	case BlendNone:
		return "copy"
	default:
		return "unknown"
	}
}

// EbitenBlend returns the ebiten.Blend value used to submit a draw with this
// mode. Overlay depends on the backdrop value per channel, which blend
// factors cannot express; overlay draws go through overlayShader and write
// the finished pixels with a copy.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendMultiply:
		// src is premultiplied: dst*src.rgb + dst*(1-src.a) = mix(dst, dst*color, a)
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendOverlay, BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// MultiplyChannel is the multiply blend function for one normalized channel.
func MultiplyChannel(base, src float64) float64 {
	return base * src
}

// OverlayChannel is the overlay blend function for one normalized channel:
// multiply in the darks of the base, screen in its lights.
func OverlayChannel(base, src float64) float64 {
	if base <= 0.5 {
		return 2 * base * src
	}
	return 1 - 2*(1-base)*(1-src)
}

// BlendColor composites src over an opaque base with the given mode and
// layer opacity and returns the resulting opaque color. It is the CPU
// reference for what the GPU paths in submitSprite and submitOverlay
// produce.
func BlendColor(mode BlendMode, base, src Color, opacity float64) Color {
	a := clamp01(src.A * opacity)
	var f func(b, s float64) float64
	switch mode {
	case BlendMultiply:
		f = MultiplyChannel
	case BlendOverlay:
		f = OverlayChannel
	case BlendNone:
		return Color{src.R, src.G, src.B, 1}
	default:
		f = func(_, s float64) float64 { return s }
	}
	mix := func(b, s float64) float64 {
		return b + (f(b, s)-b)*a
	}
	return Color{
		R: mix(base.R, src.R),
		G: mix(base.G, src.G),
		B: mix(base.B, src.B),
		A: 1,
	}
}

// overlayShaderSrc blends Images[0] (the layer, premultiplied) onto
// Images[1] (a copy of the backdrop under it) with overlay semantics.
// Both images must have the same size.
const overlayShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	s := imageSrc0At(src)
	b := imageSrc1At(src - imageSrc0Origin() + imageSrc1Origin())
	if s.a > 0 {
		s.rgb /= s.a
	}
	if b.a > 0 {
		b.rgb /= b.a
	}
	lo := 2 * b.rgb * s.rgb
	hi := 1 - 2*(1-b.rgb)*(1-s.rgb)
	o := mix(lo, hi, step(0.5001, b.rgb))
	rgb := mix(b.rgb, o, s.a)
	return vec4(rgb*b.a, b.a)
}
`

// Lazily compiled; drapery is single-threaded.
var overlayShader *ebiten.Shader

func ensureOverlayShader() *ebiten.Shader {
	if overlayShader == nil {
		s, err := ebiten.NewShader([]byte(overlayShaderSrc))
		if err != nil {
			panic("drapery: failed to compile overlay shader: " + err.Error())
		}
		overlayShader = s
	}
	return overlayShader
}
