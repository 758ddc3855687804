package drapery

import (
	"fmt"
	"strconv"
)

// Tab identifies a control panel tab.
type Tab uint8

const (
	TabColor  Tab = iota // colour swatches
	TabFabric            // designs
	TabSize              // sizes
	tabCount
)

// Tabs lists the tabs in display order.
var Tabs = [...]Tab{TabColor, TabFabric, TabSize}

// String returns the tab's id as used in scripts and on the command line.
func (t Tab) String() string {
	switch t {
	case TabColor:
		return "color"
	case TabFabric:
		return "fabric"
	case TabSize:
		return "size"
	}
	return "tab(" + strconv.Itoa(int(t)) + ")"
}

// Label returns the tab's caption.
func (t Tab) Label() string {
	switch t {
	case TabColor:
		return "Colour"
	case TabFabric:
		return "Fabric"
	case TabSize:
		return "Size"
	}
	return t.String()
}

// ParseTab maps a tab id back to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &UnknownOptionError{Category: CategoryTab, ID: s}
}

// Selection is an immutable snapshot of what the visitor has chosen. The
// With methods return a modified copy and never touch other attributes.
type Selection struct {
	Color     ColorOption
	Design    DesignOption
	Size      SizeOption
	ActiveTab Tab
	Zoomed    bool
}

// WithColor returns s with the color replaced by the catalog entry id.
func (s Selection) WithColor(cat *Catalog, id string) (Selection, error) {
	c, ok := cat.Color(id)
	if !ok {
		return s, &UnknownOptionError{Category: CategoryColor, ID: id}
	}
	s.Color = c
	return s, nil
}

// WithDesign returns s with the design replaced by the catalog entry id.
func (s Selection) WithDesign(cat *Catalog, id string) (Selection, error) {
	d, ok := cat.Design(id)
	if !ok {
		return s, &UnknownOptionError{Category: CategoryDesign, ID: id}
	}
	s.Design = d
	return s, nil
}

// WithSize returns s with the size replaced by the catalog entry id.
func (s Selection) WithSize(cat *Catalog, id string) (Selection, error) {
	z, ok := cat.Size(id)
	if !ok {
		return s, &UnknownOptionError{Category: CategorySize, ID: id}
	}
	s.Size = z
	return s, nil
}

// WithActiveTab returns s showing tab t.
func (s Selection) WithActiveTab(t Tab) (Selection, error) {
	if t >= tabCount {
		return s, &UnknownOptionError{Category: CategoryTab, ID: t.String()}
	}
	s.ActiveTab = t
	return s, nil
}

// WithZoomToggled returns s with Zoomed flipped.
func (s Selection) WithZoomToggled() Selection {
	s.Zoomed = !s.Zoomed
	return s
}

// Summary is the plain-text description handed to the order call to
// action, e.g. "Pure White · Plain · 200 × 270 cm".
func (s Selection) Summary() string {
	return fmt.Sprintf("%s · %s · %s", s.Color.Label, s.Design.Label, s.Size.Label)
}
