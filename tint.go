package drapery

// TintOpacity returns the opacity of the multiply tint for a color.
// Membership is by id, not luminance: navy and charcoal need a heavier tint
// to read as dark over the photographed folds.
func TintOpacity(c ColorOption) float64 {
	switch c.ID {
	case "white":
		return 0
	case "navy", "charcoal":
		return 0.82
	default:
		return 0.65
	}
}

// CheckmarkContrast reports whether the selection marker drawn over a
// swatch of c must be dark to stay visible.
func CheckmarkContrast(c ColorOption) bool {
	switch c.ID {
	case "white", "ivory", "cream", "blush", "greige":
		return true
	}
	return false
}
