package drapery

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// pointerState tracks the mouse between frames.
type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
	button  MouseButton // button captured at press time
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the box from node dimensions.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (x, y).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to handle mouse input. Injected
// events take precedence over the real mouse for the frame they are
// consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if left || right {
		pressed = true
		if !left {
			button = MouseButtonRight
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine. A click fires when press
// and release land on the same node.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointerDown(target, x, y, button)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, x, y, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
	}
	ps.lastX = x
	ps.lastY = y
}

// --- Event dispatch ---

func (s *Scene) firePointerDown(node *Node, x, y float64, button MouseButton) {
	if node == nil || node.OnPointerDown == nil {
		return
	}
	lx, ly := node.WorldToLocal(x, y)
	node.OnPointerDown(PointerContext{
		Node: node, UserData: node.UserData,
		GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		Button: button,
	})
}

func (s *Scene) fireClick(node *Node, x, y float64, button MouseButton) {
	if node == nil || node.OnClick == nil {
		return
	}
	lx, ly := node.WorldToLocal(x, y)
	node.OnClick(ClickContext{
		Node: node, UserData: node.UserData,
		GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		Button: button,
	})
}
