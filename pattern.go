package drapery

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

type compiledBand struct {
	from, to float64
	c        Color
}

type compiledLayer struct {
	repeating bool

	// repeating
	sin, cos float64
	period   float64
	bands    []compiledBand

	// radial
	cx, cy, extent float64
	c              Color
}

// compilePattern parses band colors once up front. Invalid hex values
// compile to transparent bands; ParseCatalog rejects them earlier.
func compilePattern(p *PatternDescriptor) []compiledLayer {
	layers := make([]compiledLayer, len(p.Layers))
	for i, l := range p.Layers {
		cl := compiledLayer{repeating: p.Kind.Repeating()}
		if cl.repeating {
			rad := l.Angle * math.Pi / 180
			cl.sin, cl.cos = math.Sincos(rad)
			cl.period = l.Period
			for _, b := range l.Bands {
				c, err := ParseHexColor(b.Color)
				if err != nil {
					c = ColorTransparent
				}
				cl.bands = append(cl.bands, compiledBand{from: b.From, to: b.To, c: c.WithAlpha(c.A * b.Alpha)})
			}
		} else {
			c, err := ParseHexColor(l.Color)
			if err != nil {
				c = ColorTransparent
			}
			cl.cx, cl.cy, cl.extent = l.CenterX, l.CenterY, l.Extent
			cl.c = c.WithAlpha(c.A * l.Alpha)
		}
		layers[i] = cl
	}
	return layers
}

// sample returns the layer's straight-alpha color at pixel center (x, y).
func (l *compiledLayer) sample(w, h, x, y float64) Color {
	if l.repeating {
		// Gradient line through the box center along (sin, -cos), with its
		// start at the corner the direction points away from.
		length := math.Abs(w*l.sin) + math.Abs(h*l.cos)
		p := (x-w/2)*l.sin - (y-h/2)*l.cos + length/2
		p = math.Mod(p, l.period)
		if p < 0 {
			p += l.period
		}
		for _, b := range l.bands {
			if p >= b.from && p < b.to {
				return b.c
			}
		}
		return ColorTransparent
	}

	// Farthest-corner ellipse: the farthest-side ellipse scaled by sqrt 2.
	rx := math.Max(l.cx, 1-l.cx) * w * math.Sqrt2
	ry := math.Max(l.cy, 1-l.cy) * h * math.Sqrt2
	if rx == 0 || ry == 0 {
		return ColorTransparent
	}
	dx := (x - l.cx*w) / rx
	dy := (y - l.cy*h) / ry
	t := math.Sqrt(dx*dx+dy*dy) / l.extent
	if t >= 1 {
		return ColorTransparent
	}
	return l.c.WithAlpha(l.c.A * (1 - t))
}

// over composites straight-alpha src over dst.
func over(src, dst Color) Color {
	a := src.A + dst.A*(1-src.A)
	if a == 0 {
		return ColorTransparent
	}
	mix := func(s, d float64) float64 {
		return (s*src.A + d*dst.A*(1-src.A)) / a
	}
	return Color{mix(src.R, dst.R), mix(src.G, dst.G), mix(src.B, dst.B), a}
}

func samplePattern(layers []compiledLayer, w, h, x, y float64) Color {
	out := ColorTransparent
	// First layer is on top: composite from the bottom up.
	for i := len(layers) - 1; i >= 0; i-- {
		out = over(layers[i].sample(w, h, x, y), out)
	}
	return out
}

// PatternColorAt returns the straight-alpha color of the pattern at pixel
// (x, y) of a w x h box.
func PatternColorAt(p *PatternDescriptor, w, h, x, y int) Color {
	return samplePattern(compilePattern(p), float64(w), float64(h), float64(x)+0.5, float64(y)+0.5)
}

// RenderPattern rasterizes the pattern into a w x h straight-alpha image.
func RenderPattern(p *PatternDescriptor, w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{})
	if p == nil || w <= 0 || h <= 0 {
		return img
	}
	layers := compilePattern(p)
	fw, fh := float64(w), float64(h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := samplePattern(layers, fw, fh, float64(x)+0.5, float64(y)+0.5)
			row[x*4+0] = uint8(clamp01(c.R)*255 + 0.5)
			row[x*4+1] = uint8(clamp01(c.G)*255 + 0.5)
			row[x*4+2] = uint8(clamp01(c.B)*255 + 0.5)
			row[x*4+3] = uint8(clamp01(c.A)*255 + 0.5)
		}
	}
	return img
}

type patternKey struct {
	design string
	w, h   int
}

func (k patternKey) String() string {
	return fmt.Sprintf("%s@%dx%d", k.design, k.w, k.h)
}

// patternCache holds rasterized pattern textures keyed by design id and
// pixel size.
type patternCache struct {
	entries map[patternKey]*ebiten.Image
}

// Get returns the texture for design at w x h, rasterizing it on first use.
// Returns nil for designs without a pattern.
func (c *patternCache) Get(design DesignOption, w, h int) *ebiten.Image {
	if design.Pattern == nil || w <= 0 || h <= 0 {
		return nil
	}
	key := patternKey{design: design.ID, w: w, h: h}
	if img, ok := c.entries[key]; ok {
		return img
	}
	if c.entries == nil {
		c.entries = make(map[patternKey]*ebiten.Image)
	}
	img := ebiten.NewImageFromImage(RenderPattern(design.Pattern, w, h))
	c.entries[key] = img
	Logger().Debug().Str("pattern", key.String()).Msg("pattern rasterized")
	return img
}

// Len returns the number of cached textures.
func (c *patternCache) Len() int {
	return len(c.entries)
}
