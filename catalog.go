package drapery

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// PatternKind names the procedural texture family of a design.
type PatternKind string

const (
	PatternLinearRepeat   PatternKind = "linear-repeat"
	PatternDiagonalRepeat PatternKind = "diagonal-repeat"
	PatternRadialDual     PatternKind = "radial-dual"
	PatternStripeRepeat   PatternKind = "stripe-repeat"
)

// Repeating reports whether the kind tiles bands along an axis.
func (k PatternKind) Repeating() bool {
	return k != PatternRadialDual
}

// Band is a hard-edged run of one color inside a repeat period.
type Band struct {
	From  float64 `yaml:"from" validate:"gte=0"`
	To    float64 `yaml:"to" validate:"gtfield=From"`
	Color string  `yaml:"color" validate:"rgbhex"`
	Alpha float64 `yaml:"alpha" validate:"gte=0,lte=1"`
}

// PatternLayer is one gradient of a pattern. Repeating kinds use Angle,
// Period and Bands. The radial kind uses CenterX, CenterY, Extent, Color
// and Alpha.
type PatternLayer struct {
	// Angle is in degrees: 0 points up, 90 points right.
	Angle  float64 `yaml:"angle"`
	Period float64 `yaml:"period" validate:"gte=0"`
	Bands  []Band  `yaml:"bands" validate:"dive"`

	CenterX float64 `yaml:"center_x" validate:"gte=0,lte=1"`
	CenterY float64 `yaml:"center_y" validate:"gte=0,lte=1"`
	// Extent is the fraction of the farthest-corner ellipse at which the
	// radial alpha reaches zero.
	Extent float64 `yaml:"extent" validate:"gte=0,lte=1"`
	Color  string  `yaml:"color" validate:"omitempty,rgbhex"`
	Alpha  float64 `yaml:"alpha" validate:"gte=0,lte=1"`
}

// PatternDescriptor is the procedural texture overlaid on a design's fabric.
// Layers composite source-over with the first layer on top.
type PatternDescriptor struct {
	Kind   PatternKind    `yaml:"kind" validate:"pattern_kind"`
	Layers []PatternLayer `yaml:"layers" validate:"min=1,dive"`
}

// ColorOption is a fabric color.
type ColorOption struct {
	ID    string `yaml:"id" validate:"required,option_id"`
	Label string `yaml:"label" validate:"required"`
	Hex   string `yaml:"hex" validate:"rgbhex"`

	rgb Color
}

// RGB returns the parsed color.
func (c ColorOption) RGB() Color {
	if c.rgb.A == 0 {
		// Options built outside ParseCatalog.
		if rgb, err := ParseHexColor(c.Hex); err == nil {
			return rgb
		}
	}
	return c.rgb
}

// DesignOption is a fabric design. Pattern is nil for plain fabric. The
// descriptor is shared by every copy of the option and MUST NOT be mutated.
type DesignOption struct {
	ID       string             `yaml:"id" validate:"required,option_id"`
	Label    string             `yaml:"label" validate:"required"`
	Subtitle string             `yaml:"subtitle"`
	Pattern  *PatternDescriptor `yaml:"pattern"`
}

// HasPattern reports whether the design adds a pattern layer.
func (d DesignOption) HasPattern() bool {
	return d.Pattern != nil
}

// SizeOption is a curtain size. The fractions size the fabric rectangle
// against the scene, anchored to its top-right corner.
type SizeOption struct {
	ID             string  `yaml:"id" validate:"required,option_id"`
	Label          string  `yaml:"label" validate:"required"`
	Description    string  `yaml:"description"`
	WidthFraction  float64 `yaml:"width_fraction" validate:"gt=0,lte=1"`
	HeightFraction float64 `yaml:"height_fraction" validate:"gt=0,lte=1"`
}

// Bounds returns the fabric rectangle for a canvas of size w x h.
func (s SizeOption) Bounds(w, h float64) Rect {
	fw := w * s.WidthFraction
	return Rect{X: w - fw, Y: 0, Width: fw, Height: h * s.HeightFraction}
}

type catalogDefaults struct {
	Color  string `yaml:"color" validate:"omitempty,option_id"`
	Design string `yaml:"design" validate:"omitempty,option_id"`
	Size   string `yaml:"size" validate:"omitempty,option_id"`
}

type catalogFile struct {
	Defaults catalogDefaults `yaml:"defaults"`
	Colors   []ColorOption   `yaml:"colors" validate:"min=1,unique=ID,dive"`
	Designs  []DesignOption  `yaml:"designs" validate:"min=1,unique=ID,dive"`
	Sizes    []SizeOption    `yaml:"sizes" validate:"min=1,unique=ID,dive"`
}

// Catalog is the closed, ordered set of options a visitor can choose from.
// It is immutable after loading.
type Catalog struct {
	colors  []ColorOption
	designs []DesignOption
	sizes   []SizeOption

	colorIdx  map[string]int
	designIdx map[string]int
	sizeIdx   map[string]int

	defColor, defDesign, defSize string
}

// defaultSizePosition is the display position of the initial size when the
// catalog file doesn't name one.
const defaultSizePosition = 2

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is invalid, which TestDefaultCatalog guards against.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := parseCatalog(embeddedCatalog, "embedded")
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Source: path, Err: err}
	}
	return parseCatalog(data, path)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	return parseCatalog(data, "<bytes>")
}

func parseCatalog(data []byte, source string) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &CatalogError{Source: source, Err: err}
	}
	if err := validatorInstance().Struct(&f); err != nil {
		return nil, &CatalogError{Source: source, Err: describeValidation(err)}
	}
	for _, d := range f.Designs {
		if d.Pattern == nil {
			continue
		}
		if err := checkPattern(d.ID, d.Pattern); err != nil {
			return nil, &CatalogError{Source: source, Err: err}
		}
	}

	c := &Catalog{
		colors:    f.Colors,
		designs:   f.Designs,
		sizes:     f.Sizes,
		colorIdx:  make(map[string]int, len(f.Colors)),
		designIdx: make(map[string]int, len(f.Designs)),
		sizeIdx:   make(map[string]int, len(f.Sizes)),
	}
	for i := range c.colors {
		rgb, err := ParseHexColor(c.colors[i].Hex)
		if err != nil {
			return nil, &CatalogError{Source: source, Err: err}
		}
		c.colors[i].rgb = rgb
		c.colorIdx[c.colors[i].ID] = i
	}
	for i, d := range c.designs {
		c.designIdx[d.ID] = i
	}
	for i, s := range c.sizes {
		c.sizeIdx[s.ID] = i
	}

	c.defColor = f.Defaults.Color
	if c.defColor == "" {
		c.defColor = c.colors[0].ID
	}
	c.defDesign = f.Defaults.Design
	if c.defDesign == "" {
		c.defDesign = c.designs[0].ID
	}
	c.defSize = f.Defaults.Size
	if c.defSize == "" {
		c.defSize = c.sizes[min(defaultSizePosition, len(c.sizes)-1)].ID
	}
	if _, ok := c.colorIdx[c.defColor]; !ok {
		return nil, &CatalogError{Source: source, Err: &UnknownOptionError{Category: CategoryColor, ID: c.defColor}}
	}
	if _, ok := c.designIdx[c.defDesign]; !ok {
		return nil, &CatalogError{Source: source, Err: &UnknownOptionError{Category: CategoryDesign, ID: c.defDesign}}
	}
	if _, ok := c.sizeIdx[c.defSize]; !ok {
		return nil, &CatalogError{Source: source, Err: &UnknownOptionError{Category: CategorySize, ID: c.defSize}}
	}
	return c, nil
}

// checkPattern enforces the per-kind rules struct tags can't express.
func checkPattern(designID string, p *PatternDescriptor) error {
	for i, l := range p.Layers {
		if p.Kind.Repeating() {
			if l.Period <= 0 {
				return fmt.Errorf("design %q layer %d: period must be positive", designID, i)
			}
			if len(l.Bands) == 0 {
				return fmt.Errorf("design %q layer %d: repeating layer needs bands", designID, i)
			}
			for j, b := range l.Bands {
				if b.To > l.Period {
					return fmt.Errorf("design %q layer %d band %d: ends after period %g", designID, i, j, l.Period)
				}
			}
			continue
		}
		if l.Color == "" {
			return fmt.Errorf("design %q layer %d: radial layer needs a color", designID, i)
		}
		if l.Extent <= 0 {
			return fmt.Errorf("design %q layer %d: extent must be positive", designID, i)
		}
	}
	return nil
}

// describeValidation flattens validator errors into one readable error that
// still wraps the original.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("%s fails %q (value %v, %d problems): %w", fe.Namespace(), fe.Tag(), fe.Value(), len(verrs), err)
}

// Colors returns the colors in display order.
func (c *Catalog) Colors() []ColorOption { return slices.Clone(c.colors) }

// Designs returns the designs in display order.
func (c *Catalog) Designs() []DesignOption { return slices.Clone(c.designs) }

// Sizes returns the sizes in display order.
func (c *Catalog) Sizes() []SizeOption { return slices.Clone(c.sizes) }

// Color looks up a color by id.
func (c *Catalog) Color(id string) (ColorOption, bool) {
	i, ok := c.colorIdx[id]
	if !ok {
		return ColorOption{}, false
	}
	return c.colors[i], true
}

// Design looks up a design by id.
func (c *Catalog) Design(id string) (DesignOption, bool) {
	i, ok := c.designIdx[id]
	if !ok {
		return DesignOption{}, false
	}
	return c.designs[i], true
}

// Size looks up a size by id.
func (c *Catalog) Size(id string) (SizeOption, bool) {
	i, ok := c.sizeIdx[id]
	if !ok {
		return SizeOption{}, false
	}
	return c.sizes[i], true
}

// SizeIndex returns the display position of a size, or -1.
func (c *Catalog) SizeIndex(id string) int {
	i, ok := c.sizeIdx[id]
	if !ok {
		return -1
	}
	return i
}

// DefaultSelection returns the initial selection: the catalog's default
// color, design and size on the color tab, not zoomed.
func (c *Catalog) DefaultSelection() Selection {
	col, _ := c.Color(c.defColor)
	des, _ := c.Design(c.defDesign)
	siz, _ := c.Size(c.defSize)
	return Selection{Color: col, Design: des, Size: siz, ActiveTab: TabColor}
}
