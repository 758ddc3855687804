package drapery

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite  CommandType = iota // DrawImage with blend factors
	CommandOverlay                    // backdrop-dependent draw through overlayShader
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Color     Color // straight alpha; premultiplied at submission
	BlendMode BlendMode
	image     *ebiten.Image
	treeOrder int
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes. Commands come out in
// painter order: parents before children, earlier siblings first.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			s.emit(n.spriteImage(), n.worldTransform, n.Color, n.worldAlpha, n.BlendMode, treeOrder)
		case NodeTypeText:
			if n.Label != nil {
				if img := n.Label.image(); img != nil {
					s.emit(img, n.worldTransform, n.Color, n.worldAlpha, n.BlendMode, treeOrder)
				}
			}
			// NodeTypeContainer doesn't emit commands
		}
	}

	for _, child := range n.children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

func (s *Scene) emit(img *ebiten.Image, m [6]float64, c Color, alpha float64, blend BlendMode, treeOrder *int) {
	*treeOrder++
	typ := CommandSprite
	if blend == BlendOverlay {
		typ = CommandOverlay
	}
	s.commands = append(s.commands, RenderCommand{
		Type:      typ,
		Transform: m,
		Color:     Color{c.R, c.G, c.B, c.A * alpha},
		BlendMode: blend,
		image:     img,
		treeOrder: *treeOrder,
	})
}
