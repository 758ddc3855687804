package drapery

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene owns a node tree, its input state and render buffers. The
// visualizer uses one scene for the composited canvas and one for the
// control panel.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor, when non-nil, fills the target before drawing.
	ClearColor *Color

	commands []RenderCommand
	rtPool   renderTexturePool

	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	testRunner *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms, advances an attached test runner and
// processes input.
func (s *Scene) Update() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// Draw traverses the scene tree, emits render commands and submits them to
// the target image. Queued screenshots capture the target afterwards.
func (s *Scene) Draw(target *ebiten.Image) {
	if s.ClearColor != nil {
		target.Fill(s.ClearColor.toRGBA())
	}
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}
	s.flushScreenshots(target)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
