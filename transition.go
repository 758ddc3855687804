package drapery

// Transition durations in seconds.
const (
	MaskFadeDuration    float32 = 0.4
	TintFadeDuration    float32 = 0.35
	PatternFadeDuration float32 = 0.4
	ZoomDuration        float32 = 0.5

	// MaskEnterScaleY is the vertical scale a new mask grows from, pivoting
	// at its top edge.
	MaskEnterScaleY = 0.95
	// ZoomFactor is the canvas scale while zoomed.
	ZoomFactor = 1.5
)

var (
	// FadeEase is the easing of every layer fade.
	FadeEase = CubicBezier(0.42, 0, 0.58, 1)
	// ZoomEase is the easing of the zoom animation.
	ZoomEase = CubicBezier(0.32, 0, 0.18, 1)
)

// LayerInstance is one keyed copy of a layer. While a KeyedLayer swaps,
// the outgoing instance fades out under the incoming one's fade-in.
type LayerInstance struct {
	Key  string
	Node *Node

	fade       *Transition
	scale      *Transition
	baseScaleY float64
	leaving    bool
}

// Opacity returns the instance's current opacity.
func (li *LayerInstance) Opacity() float64 { return li.fade.Value() }

// Target returns the opacity the instance is heading to.
func (li *LayerInstance) Target() float64 { return li.fade.Target() }

// Leaving reports whether the instance is fading out.
func (li *LayerInstance) Leaving() bool { return li.leaving }

// Transitioning reports whether any of the instance's animations run.
func (li *LayerInstance) Transitioning() bool {
	return li.fade.Running() || (li.scale != nil && li.scale.Running())
}

func (li *LayerInstance) update(dt float32) {
	li.fade.Update(dt)
	if li.scale != nil {
		li.scale.Update(dt)
	}
	li.apply()
}

func (li *LayerInstance) apply() {
	li.Node.SetAlpha(li.fade.Value())
	if li.scale != nil {
		li.Node.ScaleY = li.baseScaleY * li.scale.Value()
		li.Node.MarkDirty()
	}
}

// KeyedLayer is a compositing layer whose content is identified by a key.
// Swapping to a new key cross-fades: the current instance fades out from
// its current opacity and the new instance fades in from zero. A swap
// during a cross-fade drops the oldest outgoing instance at once, so at
// most two instances exist and the last write wins.
type KeyedLayer struct {
	name        string
	group       *Node
	duration    float32
	enterScaleY float64 // 0 disables the enter scale

	current  *LayerInstance
	outgoing *LayerInstance
}

// NewKeyedLayer creates an empty layer whose fades last duration seconds.
func NewKeyedLayer(name string, duration float32) *KeyedLayer {
	g := NewContainer(name)
	return &KeyedLayer{name: name, group: g, duration: duration}
}

// SetEnterScaleY makes new instances grow vertically from sy to 1 over the
// fade duration.
func (k *KeyedLayer) SetEnterScaleY(sy float64) {
	k.enterScaleY = sy
}

// Group returns the container the instances' nodes live in.
func (k *KeyedLayer) Group() *Node { return k.group }

// Current returns the instance the layer is settling on, or nil.
func (k *KeyedLayer) Current() *LayerInstance { return k.current }

// Outgoing returns the instance fading out, or nil.
func (k *KeyedLayer) Outgoing() *LayerInstance { return k.outgoing }

// Key returns the current instance's key, or "".
func (k *KeyedLayer) Key() string {
	if k.current == nil {
		return ""
	}
	return k.current.Key
}

// Swap installs node under key fading in to opacity. It returns false and
// leaves the layer untouched when key is already current. node becomes
// owned by the layer and is disposed when its instance leaves.
func (k *KeyedLayer) Swap(key string, node *Node, opacity float64) bool {
	if k.current != nil && k.current.Key == key {
		return false
	}
	k.retire()

	inst := &LayerInstance{
		Key:        key,
		Node:       node,
		fade:       NewTransition(0),
		baseScaleY: node.ScaleY,
	}
	if k.enterScaleY > 0 {
		inst.scale = NewTransition(k.enterScaleY)
		inst.scale.Start(1, k.duration, FadeEase)
	}
	inst.fade.Start(opacity, k.duration, FadeEase)
	inst.apply()
	k.group.AddChild(node)
	k.current = inst
	Logger().Debug().Str("layer", k.name).Str("key", key).Float64("opacity", opacity).Msg("layer swap")
	return true
}

// Clear fades the current instance out without a replacement.
func (k *KeyedLayer) Clear() {
	if k.current == nil {
		return
	}
	k.retire()
	Logger().Debug().Str("layer", k.name).Msg("layer cleared")
}

// retire moves current to outgoing, dropping any older outgoing instance.
func (k *KeyedLayer) retire() {
	if k.outgoing != nil {
		k.outgoing.Node.Dispose()
		k.outgoing = nil
	}
	if k.current == nil {
		return
	}
	out := k.current
	out.leaving = true
	out.fade.Start(0, k.duration, FadeEase)
	k.outgoing = out
	k.current = nil
}

// Each calls fn for the current and the outgoing instance.
func (k *KeyedLayer) Each(fn func(*LayerInstance)) {
	if k.outgoing != nil {
		fn(k.outgoing)
	}
	if k.current != nil {
		fn(k.current)
	}
}

// Transitioning reports whether a fade is in progress.
func (k *KeyedLayer) Transitioning() bool {
	return k.outgoing != nil || (k.current != nil && k.current.Transitioning())
}

// Update advances the fades and disposes an outgoing instance once it has
// faded out.
func (k *KeyedLayer) Update(dt float32) {
	if k.outgoing != nil {
		k.outgoing.update(dt)
		if !k.outgoing.fade.Running() {
			k.outgoing.Node.Dispose()
			k.outgoing = nil
		}
	}
	if k.current != nil {
		k.current.update(dt)
	}
}
