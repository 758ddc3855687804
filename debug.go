package drapery

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog logs timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug().
		Dur("traverse", stats.traverseTime).
		Dur("submit", stats.submitTime).
		Dur("total", stats.traverseTime+stats.submitTime).
		Int("commands", stats.commandCount).
		Int("draw_calls", stats.drawCallCount).
		Msg("frame")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers skip this outside debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("drapery debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn().Int("depth", depth).Int("max", debugMaxTreeDepth).Str("node", n.Name).
			Msg("tree depth exceeds threshold")
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn().Int("children", len(n.children)).Int("max", debugMaxChildCount).Str("node", n.Name).
			Msg("child count exceeds threshold")
	}
}
