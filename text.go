package drapery

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering at one size.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("drapery: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns Go Regular at the given size. The parsed face source
// is shared between sizes.
func DefaultFont(size float64) *Font {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("drapery: embedded font: " + err.Error())
		}
		defaultFontSource = src
	}
	face := &text.GoTextFace{Source: defaultFontSource, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Label is single-line text rendered once into a cached image. The cache is
// rebuilt only when the content, font or color changes.
type Label struct {
	content string
	font    *Font
	color   Color

	img   *ebiten.Image
	w, h  float64
	dirty bool
}

// NewText creates a text node with the given content and font.
func NewText(name, content string, font *Font) *Node {
	n := &Node{Name: name, Type: NodeTypeText}
	nodeDefaults(n)
	n.Label = &Label{content: content, font: font, color: ColorWhite, dirty: true}
	return n
}

// SetText replaces the label's content.
func (l *Label) SetText(s string) {
	if l.content == s {
		return
	}
	l.content = s
	l.dirty = true
}

// Text returns the current content.
func (l *Label) Text() string { return l.content }

// SetColor sets the fill color of the glyphs.
func (l *Label) SetColor(c Color) {
	if l.color == c {
		return
	}
	l.color = c
	l.dirty = true
}

// Measure returns the label's width and height without rendering it.
func (l *Label) Measure() (w, h float64) {
	if l.font == nil {
		return 0, 0
	}
	if l.dirty {
		l.w, l.h = l.font.MeasureString(l.content)
	}
	return l.w, l.h
}

// image returns the cached rendering, re-rendering it when dirty. Returns
// nil for empty labels.
func (l *Label) image() *ebiten.Image {
	if !l.dirty {
		return l.img
	}
	l.dirty = false
	if l.font == nil || l.content == "" {
		l.disposeImage()
		return nil
	}
	l.w, l.h = l.font.MeasureString(l.content)
	w := int(math.Ceil(l.w)) + 1
	h := int(math.Ceil(l.h)) + 1

	if l.img != nil {
		b := l.img.Bounds()
		if b.Dx() != w || b.Dy() != h {
			l.disposeImage()
		} else {
			l.img.Clear()
		}
	}
	if l.img == nil {
		l.img = ebiten.NewImage(w, h)
	}

	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(l.color.toRGBA())
	op.LineSpacing = l.font.lh
	text.Draw(l.img, l.content, l.font.face, op)
	return l.img
}

func (l *Label) disposeImage() {
	if l.img != nil {
		l.img.Deallocate()
		l.img = nil
	}
}

func (l *Label) dispose() {
	l.disposeImage()
	l.font = nil
}
