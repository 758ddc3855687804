package drapery

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the game keeps its
	// logical layout size.
	Resizable bool
}

// Run opens a window and runs game until it returns an error or
// ebiten.Termination. Termination is reported as a nil error.
func Run(game ebiten.Game, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("drapery: run: %w", err)
	}
	return nil
}
