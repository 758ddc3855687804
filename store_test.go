package drapery

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionWithLeavesOthersAlone(t *testing.T) {
	cat := DefaultCatalog()
	base := cat.DefaultSelection()

	sel, err := base.WithColor(cat, "navy")
	require.NoError(t, err)
	assert.Equal(t, "navy", sel.Color.ID)
	assert.Equal(t, base.Design, sel.Design)
	assert.Equal(t, base.Size, sel.Size)
	assert.Equal(t, "white", base.Color.ID, "receiver must not change")

	sel, err = sel.WithDesign(cat, "velvet")
	require.NoError(t, err)
	sel, err = sel.WithSize(cat, "xl")
	require.NoError(t, err)
	assert.Equal(t, "Navy · Velvet · 240 × 300 cm", sel.Summary())

	sel = sel.WithZoomToggled()
	assert.True(t, sel.Zoomed)
	assert.False(t, sel.WithZoomToggled().Zoomed)
}

func TestSelectionUnknownIDs(t *testing.T) {
	cat := DefaultCatalog()
	base := cat.DefaultSelection()
	tests := []struct {
		category string
		fn       func() (Selection, error)
	}{
		{CategoryColor, func() (Selection, error) { return base.WithColor(cat, "mauve") }},
		{CategoryDesign, func() (Selection, error) { return base.WithDesign(cat, "tweed") }},
		{CategorySize, func() (Selection, error) { return base.WithSize(cat, "xxl") }},
		{CategoryTab, func() (Selection, error) { return base.WithActiveTab(Tab(7)) }},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			sel, err := tt.fn()
			require.ErrorIs(t, err, ErrUnknownOptionID)
			var ue *UnknownOptionError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.category, ue.Category)
			assert.Equal(t, base, sel, "failed With must return the receiver unchanged")
		})
	}
}

func TestTabs(t *testing.T) {
	for _, tab := range Tabs {
		parsed, err := ParseTab(tab.String())
		require.NoError(t, err)
		assert.Equal(t, tab, parsed)
	}
	assert.Equal(t, "Colour", TabColor.Label())
	assert.Equal(t, "Fabric", TabFabric.Label())
	assert.Equal(t, "Size", TabSize.Label())
	assert.Equal(t, "tab(9)", Tab(9).String())

	_, err := ParseTab("pattern")
	assert.ErrorIs(t, err, ErrUnknownOptionID)
}

func TestStoreStartsAtDefaults(t *testing.T) {
	st := NewStore(DefaultCatalog())
	assert.Equal(t, DefaultCatalog().DefaultSelection(), st.Selection())
	assert.Equal(t, "Pure White · Plain · 200 × 270 cm", st.Summary())
	assert.Same(t, DefaultCatalog(), st.Catalog())
}

func TestStoreSettersNotify(t *testing.T) {
	st := NewStore(DefaultCatalog())
	var got []Selection
	st.Subscribe(func(s Selection) { got = append(got, s) })

	require.NoError(t, st.SetColor("sage"))
	require.NoError(t, st.SetDesign("linen"))
	require.NoError(t, st.SetSize("s"))
	require.NoError(t, st.SetActiveTab(TabSize))
	st.ToggleZoom()

	require.Len(t, got, 5)
	assert.Equal(t, "sage", got[0].Color.ID)
	assert.Equal(t, "plain", got[0].Design.ID)
	assert.Equal(t, "linen", got[1].Design.ID)
	assert.Equal(t, "s", got[2].Size.ID)
	assert.Equal(t, TabSize, got[3].ActiveTab)
	assert.True(t, got[4].Zoomed)
	assert.Equal(t, got[4], st.Selection())
}

func TestStoreSameValueIsNoOp(t *testing.T) {
	st := NewStore(DefaultCatalog())
	calls := 0
	st.Subscribe(func(Selection) { calls++ })

	require.NoError(t, st.SetColor("white"))
	require.NoError(t, st.SetDesign("plain"))
	require.NoError(t, st.SetSize("l"))
	require.NoError(t, st.SetActiveTab(TabColor))
	assert.Zero(t, calls)
}

func TestStoreUnknownIDKeepsSelection(t *testing.T) {
	st := NewStore(DefaultCatalog())
	calls := 0
	st.Subscribe(func(Selection) { calls++ })
	before := st.Selection()

	err := st.SetColor("mauve")
	require.ErrorIs(t, err, ErrUnknownOptionID)
	assert.EqualError(t, err, `drapery: unknown color "mauve"`)
	assert.Error(t, st.SetActiveTab(Tab(3)))
	assert.Equal(t, before, st.Selection())
	assert.Zero(t, calls)
}

func TestStoreSubscribersInOrder(t *testing.T) {
	st := NewStore(DefaultCatalog())
	var order []string
	st.Subscribe(func(Selection) { order = append(order, "compositor") })
	unsub := st.Subscribe(func(Selection) { order = append(order, "panel") })
	st.Subscribe(func(Selection) { order = append(order, "badge") })

	require.NoError(t, st.SetColor("navy"))
	assert.Equal(t, []string{"compositor", "panel", "badge"}, order)

	unsub()
	unsub()
	order = nil
	require.NoError(t, st.SetColor("stone"))
	assert.Equal(t, []string{"compositor", "badge"}, order)
}

func TestStoreSubscriberSeesCommittedSnapshot(t *testing.T) {
	st := NewStore(DefaultCatalog())
	var seen string
	st.Subscribe(func(s Selection) {
		seen = st.Selection().Color.ID
		assert.Equal(t, s, st.Selection())
	})
	require.NoError(t, st.SetColor("blush"))
	assert.Equal(t, "blush", seen)
}

func TestStoreSelect(t *testing.T) {
	st := NewStore(DefaultCatalog())
	require.NoError(t, st.Select(CategoryColor, "navy"))
	require.NoError(t, st.Select(CategoryDesign, "velvet"))
	require.NoError(t, st.Select(CategorySize, "xl"))
	require.NoError(t, st.Select(CategoryTab, "fabric"))
	assert.Equal(t, "Navy · Velvet · 240 × 300 cm", st.Summary())
	assert.Equal(t, TabFabric, st.Selection().ActiveTab)

	assert.ErrorIs(t, st.Select(CategoryTab, "pattern"), ErrUnknownOptionID)
	err := st.Select("texture", "silk")
	var ue *UnknownOptionError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "category", ue.Category)
}

func TestStoreImplementsScriptTarget(t *testing.T) {
	var _ ScriptTarget = NewStore(DefaultCatalog())
}

type storeAction struct {
	name  string
	field string
	run   func(st *Store) error
}

// storeActions lists one setter call per option in the catalog, every tab
// and the zoom toggle.
func storeActions(cat *Catalog) []storeAction {
	var acts []storeAction
	for _, c := range cat.Colors() {
		id := c.ID
		acts = append(acts, storeAction{"color " + id, "color", func(st *Store) error { return st.SetColor(id) }})
	}
	for _, d := range cat.Designs() {
		id := d.ID
		acts = append(acts, storeAction{"design " + id, "design", func(st *Store) error { return st.SetDesign(id) }})
	}
	for _, s := range cat.Sizes() {
		id := s.ID
		acts = append(acts, storeAction{"size " + id, "size", func(st *Store) error { return st.SetSize(id) }})
	}
	for _, tab := range Tabs {
		acts = append(acts, storeAction{"tab " + tab.String(), "tab", func(st *Store) error { return st.SetActiveTab(tab) }})
	}
	acts = append(acts, storeAction{"toggle zoom", "zoomed", func(st *Store) error {
		st.ToggleZoom()
		return nil
	}})
	return acts
}

// withoutField blanks the attribute a setter is allowed to change.
func withoutField(s Selection, field string) Selection {
	switch field {
	case "color":
		s.Color = ColorOption{}
	case "design":
		s.Design = DesignOption{}
	case "size":
		s.Size = SizeOption{}
	case "tab":
		s.ActiveTab = 0
	case "zoomed":
		s.Zoomed = false
	}
	return s
}

func TestStoreSettersTouchOnlyTheirAttribute(t *testing.T) {
	cat := DefaultCatalog()
	varied := NewStore(cat)
	require.NoError(t, varied.SetColor("charcoal"))
	require.NoError(t, varied.SetDesign("stripe"))
	require.NoError(t, varied.SetSize("s"))
	require.NoError(t, varied.SetActiveTab(TabFabric))
	varied.ToggleZoom()

	starts := map[string]Selection{
		"defaults": cat.DefaultSelection(),
		"varied":   varied.Selection(),
	}
	for startName, start := range starts {
		for _, act := range storeActions(cat) {
			t.Run(startName+"/"+act.name, func(t *testing.T) {
				st := NewStore(cat)
				st.sel = start
				require.NoError(t, act.run(st))
				assert.Equal(t, withoutField(start, act.field), withoutField(st.Selection(), act.field))
			})
		}
	}
}

func TestStoreActiveTabKeepsSelection(t *testing.T) {
	st := NewStore(DefaultCatalog())
	require.NoError(t, st.SetColor("navy"))
	require.NoError(t, st.SetDesign("velvet"))
	require.NoError(t, st.SetSize("xl"))
	st.ToggleZoom()
	before := st.Selection()

	for _, tab := range []Tab{TabFabric, TabSize, TabColor, TabSize} {
		require.NoError(t, st.SetActiveTab(tab))
		got := st.Selection()
		assert.Equal(t, tab, got.ActiveTab)
		assert.Equal(t, before.Color, got.Color)
		assert.Equal(t, before.Design, got.Design)
		assert.Equal(t, before.Size, got.Size)
		assert.Equal(t, before.Zoomed, got.Zoomed)
	}
}

func TestStoreSetterSequencesStayIndependent(t *testing.T) {
	cat := DefaultCatalog()
	acts := storeActions(cat)
	rng := rand.New(rand.NewPCG(1, 2))
	st := NewStore(cat)
	for i := 0; i < 500; i++ {
		act := acts[rng.IntN(len(acts))]
		before := st.Selection()
		require.NoError(t, act.run(st))
		require.Equal(t, withoutField(before, act.field), withoutField(st.Selection(), act.field),
			"step %d: %s", i, act.name)
	}
}

func TestStoreUnsubscribeDuringDelivery(t *testing.T) {
	st := NewStore(DefaultCatalog())
	var order []string
	var unsub func()
	unsub = st.Subscribe(func(Selection) {
		order = append(order, "once")
		unsub()
	})
	st.Subscribe(func(Selection) { order = append(order, "next") })

	require.NoError(t, st.SetColor("navy"))
	assert.Equal(t, []string{"once", "next"}, order)

	order = nil
	require.NoError(t, st.SetColor("sage"))
	assert.Equal(t, []string{"next"}, order)
}
