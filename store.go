package drapery

import "slices"

// Store holds the one current Selection. It is the single writer: the
// control panel, scripts and the CLI change the selection only through its
// setters, and everything else reads snapshots.
//
// Subscribers run synchronously, in registration order, after a setter
// has installed a changed snapshot. Setting an attribute to its current
// value changes nothing and notifies nobody.
type Store struct {
	cat    *Catalog
	sel    Selection
	subs   []storeSub
	nextID int
}

type storeSub struct {
	id int
	fn func(Selection)
}

// NewStore creates a store at the catalog's default selection.
func NewStore(cat *Catalog) *Store {
	return &Store{cat: cat, sel: cat.DefaultSelection()}
}

// Catalog returns the catalog ids are resolved against.
func (st *Store) Catalog() *Catalog { return st.cat }

// Selection returns the current snapshot.
func (st *Store) Selection() Selection { return st.sel }

// Summary returns the current snapshot's summary line.
func (st *Store) Summary() string { return st.sel.Summary() }

// Subscribe registers fn to receive every new snapshot and returns a
// function that unregisters it.
func (st *Store) Subscribe(fn func(Selection)) (unsubscribe func()) {
	st.nextID++
	id := st.nextID
	st.subs = append(st.subs, storeSub{id: id, fn: fn})
	return func() {
		for i, s := range st.subs {
			if s.id == id {
				st.subs = append(st.subs[:i], st.subs[i+1:]...)
				return
			}
		}
	}
}

// SetColor selects the color with the given id.
func (st *Store) SetColor(id string) error {
	next, err := st.sel.WithColor(st.cat, id)
	if err != nil {
		return err
	}
	st.commit(next, "color", id)
	return nil
}

// SetDesign selects the design with the given id.
func (st *Store) SetDesign(id string) error {
	next, err := st.sel.WithDesign(st.cat, id)
	if err != nil {
		return err
	}
	st.commit(next, "design", id)
	return nil
}

// SetSize selects the size with the given id.
func (st *Store) SetSize(id string) error {
	next, err := st.sel.WithSize(st.cat, id)
	if err != nil {
		return err
	}
	st.commit(next, "size", id)
	return nil
}

// SetActiveTab shows tab t in the control panel.
func (st *Store) SetActiveTab(t Tab) error {
	next, err := st.sel.WithActiveTab(t)
	if err != nil {
		return err
	}
	st.commit(next, "tab", t.String())
	return nil
}

// ToggleZoom flips the zoom flag.
func (st *Store) ToggleZoom() {
	next := st.sel.WithZoomToggled()
	if next.Zoomed {
		st.commit(next, "zoomed", "true")
	} else {
		st.commit(next, "zoomed", "false")
	}
}

// Select dispatches to the setter named by category, which is one of the
// Category constants.
func (st *Store) Select(category, id string) error {
	switch category {
	case CategoryColor:
		return st.SetColor(id)
	case CategoryDesign:
		return st.SetDesign(id)
	case CategorySize:
		return st.SetSize(id)
	case CategoryTab:
		t, err := ParseTab(id)
		if err != nil {
			return err
		}
		return st.SetActiveTab(t)
	}
	return &UnknownOptionError{Category: "category", ID: category}
}

func (st *Store) commit(next Selection, field, value string) {
	if next == st.sel {
		return
	}
	st.sel = next
	Logger().Debug().Str("field", field).Str("value", value).Str("summary", next.Summary()).Msg("selection changed")
	// Copy so subscribers may unsubscribe during delivery.
	for _, s := range slices.Clone(st.subs) {
		s.fn(next)
	}
}
