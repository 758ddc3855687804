package drapery

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

// Assets holds the room photograph and the curtain fabric mask, decoded
// once and cover-fitted on demand. A missing image is not an error for the
// visualizer: the layer that would show it draws nothing.
type Assets struct {
	scene image.Image
	mask  image.Image

	fittedScene *ebiten.Image
	sceneSize   image.Point
	masks       map[string]*ebiten.Image
}

// NewAssets wraps already decoded images. Either may be nil.
func NewAssets(scene, mask image.Image) *Assets {
	return &Assets{scene: scene, mask: mask, masks: make(map[string]*ebiten.Image)}
}

// LoadAssets decodes the scene and mask files, honoring EXIF orientation.
// Load failures are logged at warn level and leave that image empty.
func LoadAssets(scenePath, maskPath string) *Assets {
	return NewAssets(loadOptional("scene", scenePath), loadOptional("mask", maskPath))
}

func loadOptional(role, path string) image.Image {
	if path == "" {
		Logger().Warn().Str("asset", role).Msg("no path configured; layer will be empty")
		return nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		Logger().Warn().Err(err).Str("asset", role).Str("path", path).Msg("asset failed to load; layer will be empty")
		return nil
	}
	b := img.Bounds()
	Logger().Info().Str("asset", role).Str("path", path).Int("w", b.Dx()).Int("h", b.Dy()).Msg("asset loaded")
	return img
}

// HasScene reports whether a scene photograph is available.
func (a *Assets) HasScene() bool { return a.scene != nil }

// HasMask reports whether a fabric mask is available.
func (a *Assets) HasMask() bool { return a.mask != nil }

// CoverFit scales img to cover a w x h box, preserving its aspect ratio,
// and crops the overflow evenly from both sides.
func CoverFit(img image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// Scene returns the photograph cover-fitted to w x h, or nil.
func (a *Assets) Scene(w, h int) *ebiten.Image {
	if a.scene == nil || w <= 0 || h <= 0 {
		return nil
	}
	if a.fittedScene != nil && a.sceneSize == (image.Point{w, h}) {
		return a.fittedScene
	}
	if a.fittedScene != nil {
		a.fittedScene.Deallocate()
	}
	a.fittedScene = ebiten.NewImageFromImage(CoverFit(a.scene, w, h))
	a.sceneSize = image.Point{w, h}
	return a.fittedScene
}

// Mask returns the fabric mask cover-fitted to the w x h rectangle of the
// given size, or nil. Fitted masks are cached per size id and pixel size.
func (a *Assets) Mask(sizeID string, w, h int) *ebiten.Image {
	if a.mask == nil || w <= 0 || h <= 0 {
		return nil
	}
	key := fmt.Sprintf("%s@%dx%d", sizeID, w, h)
	if img, ok := a.masks[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(CoverFit(a.mask, w, h))
	a.masks[key] = img
	return img
}
