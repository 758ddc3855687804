package drapery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one with TweenSlideIn
// and call Update(dt) each frame. The group auto-applies values and marks
// the node dirty. If the target node is disposed, the group stops
// immediately.
//
// There is no global animation manager; callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenSlideIn creates a TweenGroup that fades node in from alpha 0 while
// moving it from (X, Y+dy) to (X, Y).
func TweenSlideIn(node *Node, dy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	toY := node.Y
	node.Y = toY + dy
	node.Alpha = 0
	node.MarkDirty()
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.tweens[1] = gween.New(0, 1, duration, fn)
	g.fields[0] = &node.Y
	g.fields[1] = &node.Alpha
	return g
}

// TransitionState is the phase of a Transition.
type TransitionState uint8

const (
	TransitionIdle    TransitionState = iota // holding a settled value
	TransitionRunning                        // interpolating from -> to
)

// Transition is a single animated scalar. It is idle at a value until Start
// moves it into the running state; once the duration has elapsed it settles
// at the target and returns to idle.
type Transition struct {
	state    TransitionState
	value    float64
	from, to float64
	duration float32
	tween    *gween.Tween
}

// NewTransition returns an idle transition holding value.
func NewTransition(value float64) *Transition {
	return &Transition{value: value, from: value, to: value}
}

// Start begins interpolating from the current value to `to` over duration
// seconds. A running transition is retargeted from wherever it currently
// is. A non-positive duration settles immediately.
func (t *Transition) Start(to float64, duration float32, fn ease.TweenFunc) {
	t.from = t.value
	t.to = to
	t.duration = duration
	if duration <= 0 || t.from == to {
		t.settle()
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	t.tween = gween.New(float32(t.from), float32(to), duration, fn)
	t.state = TransitionRunning
}

// Update advances a running transition by dt seconds and returns the
// current value and whether the transition is idle.
func (t *Transition) Update(dt float32) (float64, bool) {
	if t.state == TransitionIdle {
		return t.value, true
	}
	val, done := t.tween.Update(dt)
	t.value = float64(val)
	if done {
		t.settle()
	}
	return t.value, t.state == TransitionIdle
}

// Finish jumps a running transition to its target.
func (t *Transition) Finish() {
	t.settle()
}

func (t *Transition) settle() {
	t.value = t.to
	t.tween = nil
	t.state = TransitionIdle
}

// Value returns the current value.
func (t *Transition) Value() float64 { return t.value }

// Target returns the value the transition settles at.
func (t *Transition) Target() float64 { return t.to }

// State returns the current phase.
func (t *Transition) State() TransitionState { return t.state }

// Running reports whether the transition is interpolating.
func (t *Transition) Running() bool { return t.state == TransitionRunning }

// CubicBezier returns an easing function equivalent to the CSS
// cubic-bezier(x1, y1, x2, y2) timing function. x1 and x2 must lie in [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	// Polynomial coefficients for B(u) = ((a*u + b)*u + c)*u.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	solve := func(x float64) float64 {
		u := x
		for i := 0; i < 8; i++ {
			d := sampleX(u) - x
			if d > -1e-7 && d < 1e-7 {
				return u
			}
			s := slopeX(u)
			if s > -1e-6 && s < 1e-6 {
				break
			}
			u -= d / s
		}
		// Newton failed to converge; bisect.
		lo, hi := 0.0, 1.0
		u = x
		for i := 0; i < 32; i++ {
			v := sampleX(u)
			if v > x-1e-7 && v < x+1e-7 {
				break
			}
			if v < x {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return u
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		x := float64(t / d)
		if x <= 0 {
			return b
		}
		if x >= 1 {
			return b + c
		}
		return b + c*float32(sampleY(solve(x)))
	}
}
