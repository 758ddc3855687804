package drapery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `
colors:
  - {id: red, label: Red, hex: "#FF0000"}
designs:
  - {id: plain, label: Plain}
sizes:
  - {id: one, label: One Size, width_fraction: 0.5, height_fraction: 0.5}
`

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	require.Len(t, cat.Colors(), 12)
	require.Len(t, cat.Designs(), 5)
	require.Len(t, cat.Sizes(), 4)

	assert.Equal(t, "white", cat.Colors()[0].ID)
	assert.Equal(t, "terracotta", cat.Colors()[11].ID)
	assert.Equal(t, []string{"plain", "linen", "sheer", "velvet", "stripe"}, designIDs(cat))

	sel := cat.DefaultSelection()
	assert.Equal(t, "white", sel.Color.ID)
	assert.Equal(t, "plain", sel.Design.ID)
	assert.Equal(t, "l", sel.Size.ID)
	assert.Equal(t, TabColor, sel.ActiveTab)
	assert.False(t, sel.Zoomed)
	assert.Equal(t, "Pure White · Plain · 200 × 270 cm", sel.Summary())
}

func designIDs(cat *Catalog) []string {
	ids := make([]string, 0, len(cat.Designs()))
	for _, d := range cat.Designs() {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestDefaultCatalogPatterns(t *testing.T) {
	cat := DefaultCatalog()
	tests := map[string]PatternKind{
		"linen":  PatternLinearRepeat,
		"sheer":  PatternDiagonalRepeat,
		"velvet": PatternRadialDual,
		"stripe": PatternStripeRepeat,
	}
	for id, kind := range tests {
		d, ok := cat.Design(id)
		require.True(t, ok, id)
		require.True(t, d.HasPattern(), id)
		assert.Equal(t, kind, d.Pattern.Kind, id)
	}
	plain, _ := cat.Design("plain")
	assert.False(t, plain.HasPattern())
}

func TestDefaultCatalogConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Catalog, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = DefaultCatalog()
		}()
	}
	wg.Wait()
	for i := range got {
		assert.Same(t, got[0], got[i])
	}
}

func TestCatalogListsAreCopies(t *testing.T) {
	cat, err := ParseCatalog([]byte(minimalCatalog))
	require.NoError(t, err)

	colors := cat.Colors()
	colors[0].Hex = "#000000"
	designs := cat.Designs()
	designs[0].Label = "Changed"
	sizes := cat.Sizes()
	sizes[0].WidthFraction = 0.1

	c, _ := cat.Color(colors[0].ID)
	assert.NotEqual(t, "#000000", c.Hex)
	assert.NotEqual(t, "Changed", cat.Designs()[0].Label)
	assert.NotEqual(t, 0.1, cat.Sizes()[0].WidthFraction)
}

func TestCatalogLookup(t *testing.T) {
	cat := DefaultCatalog()

	navy, ok := cat.Color("navy")
	require.True(t, ok)
	assert.Equal(t, "Navy", navy.Label)
	assert.InDelta(t, 0x2C/255.0, navy.RGB().R, 1e-9)
	assert.InDelta(t, 0x6B/255.0, navy.RGB().B, 1e-9)

	_, ok = cat.Color("mauve")
	assert.False(t, ok)
	_, ok = cat.Design("tweed")
	assert.False(t, ok)
	_, ok = cat.Size("xxl")
	assert.False(t, ok)

	assert.Equal(t, 3, cat.SizeIndex("xl"))
	assert.Equal(t, -1, cat.SizeIndex("xxl"))
}

func TestColorOptionRGBWithoutParse(t *testing.T) {
	c := ColorOption{ID: "x", Label: "X", Hex: "#808080"}
	assert.InDelta(t, 128/255.0, c.RGB().G, 1e-9)
	assert.Equal(t, 1.0, c.RGB().A)
}

func TestSizeBoundsAnchorTopRight(t *testing.T) {
	xl, _ := DefaultCatalog().Size("xl")
	b := xl.Bounds(880, 600)
	assert.InDelta(t, 880*0.68, b.Width, 1e-9)
	assert.InDelta(t, 600.0, b.Height, 1e-9)
	assert.InDelta(t, 880.0, b.X+b.Width, 1e-9)
	assert.Zero(t, b.Y)
}

func TestParseCatalogMinimal(t *testing.T) {
	cat, err := ParseCatalog([]byte(minimalCatalog))
	require.NoError(t, err)
	assert.Equal(t, "Red · Plain · One Size", cat.DefaultSelection().Summary())
}

func TestParseCatalogDefaultSizePositionClamps(t *testing.T) {
	data := minimalCatalog + "  - {id: two, label: Two, width_fraction: 0.6, height_fraction: 0.6}\n"
	cat, err := ParseCatalog([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "two", cat.DefaultSelection().Size.ID)
}

func TestParseCatalogRejects(t *testing.T) {
	tests := []struct {
		name    string
		find    string
		replace string
		want    string
	}{
		{"bad hex", `"#FF0000"`, `"red"`, "rgbhex"},
		{"short hex", `"#FF0000"`, `"#FFF"`, "rgbhex"},
		{"bad id", `id: red`, `id: Red Color`, "option_id"},
		{"missing label", `label: Red,`, ``, "required"},
		{"zero fraction", `width_fraction: 0.5`, `width_fraction: 0`, "gt"},
		{"fraction over one", `height_fraction: 0.5`, `height_fraction: 1.5`, "lte"},
		{"no colors", `colors:
  - {id: red, label: Red, hex: "#FF0000"}`, `colors: []`, "min"},
		{"not yaml", `colors:`, `colors: [`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := strings.Replace(minimalCatalog, tt.find, tt.replace, 1)
			_, err := ParseCatalog([]byte(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			var ce *CatalogError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "<bytes>", ce.Source)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestParseCatalogDuplicateID(t *testing.T) {
	data := strings.Replace(minimalCatalog,
		`  - {id: red, label: Red, hex: "#FF0000"}`,
		`  - {id: red, label: Red, hex: "#FF0000"}
  - {id: red, label: Also Red, hex: "#EE0000"}`, 1)
	_, err := ParseCatalog([]byte(data))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "unique")
}

func TestParseCatalogUnknownDefault(t *testing.T) {
	data := "defaults: {color: blue}\n" + minimalCatalog
	_, err := ParseCatalog([]byte(data))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.ErrorIs(t, err, ErrUnknownOptionID)
	var ue *UnknownOptionError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, CategoryColor, ue.Category)
	assert.Equal(t, "blue", ue.ID)
}

func TestParseCatalogPatternRules(t *testing.T) {
	tests := map[string]string{
		"unknown kind": `
    pattern:
      kind: plaid
      layers: [{angle: 0, period: 4, bands: [{from: 0, to: 1, color: "#FFFFFF", alpha: 0.1}]}]`,
		"no layers": `
    pattern:
      kind: linear-repeat
      layers: []`,
		"zero period": `
    pattern:
      kind: linear-repeat
      layers: [{angle: 0, period: 0, bands: [{from: 0, to: 1, color: "#FFFFFF", alpha: 0.1}]}]`,
		"band past period": `
    pattern:
      kind: stripe-repeat
      layers: [{angle: 90, period: 4, bands: [{from: 0, to: 6, color: "#FFFFFF", alpha: 0.1}]}]`,
		"inverted band": `
    pattern:
      kind: stripe-repeat
      layers: [{angle: 90, period: 4, bands: [{from: 2, to: 1, color: "#FFFFFF", alpha: 0.1}]}]`,
		"radial without color": `
    pattern:
      kind: radial-dual
      layers: [{center_x: 0.5, center_y: 0.5, extent: 0.5, alpha: 0.1}]`,
		"alpha over one": `
    pattern:
      kind: radial-dual
      layers: [{center_x: 0.5, center_y: 0.5, extent: 0.5, color: "#000000", alpha: 2}]`,
	}
	for name, pattern := range tests {
		t.Run(name, func(t *testing.T) {
			data := strings.Replace(minimalCatalog,
				`  - {id: plain, label: Plain}`,
				"  - id: plain\n    label: Plain"+pattern, 1)
			_, err := ParseCatalog([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, cat.Colors(), 1)

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing file error should wrap the fs error")
}
