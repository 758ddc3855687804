package drapery

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := pkgLogger
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func TestDebugModeDisposedNodePanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)
	child := NewContainer("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic adding a disposed node")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic = %q, want mention of disposed", msg)
		}
	}()
	parent.AddChild(child)
}

func TestDebugModeOffAllowsDisposedNode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)
	child := NewContainer("child")
	child.Dispose()
	s.Root().AddChild(child) // no panic outside debug mode
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := s.Root()
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		c := NewContainer(fmt.Sprintf("d%d", i))
		n.AddChild(c)
		n = c
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("log = %q, want depth warning", buf.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	for i := 0; i <= debugMaxChildCount; i++ {
		s.Root().AddChild(NewContainer(""))
	}
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Error("expected child count warning")
	}
}

func TestDebugFrameStatsLogged(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	s.Root().AddChild(NewRect("tint", 10, 10, ColorWhite))

	s.Draw(ebiten.NewImage(32, 32))

	out := buf.String()
	if !strings.Contains(out, `"message":"frame"`) || !strings.Contains(out, `"commands":1`) {
		t.Errorf("log = %q, want frame stats with one command", out)
	}
}

func TestDebugFrameStatsSilentWhenOff(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.Root().AddChild(NewRect("tint", 10, 10, ColorWhite))
	s.Draw(ebiten.NewImage(32, 32))
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}
