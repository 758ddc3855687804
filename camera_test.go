package drapery

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func canvasCamera() *Camera {
	return NewCamera(Rect{X: 0, Y: 0, Width: 880, Height: 600})
}

func TestCameraDefaults(t *testing.T) {
	cam := canvasCamera()
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.Animating() {
		t.Error("new camera should not be animating")
	}
	if cam.Viewport.Width != 880 || cam.Viewport.Height != 600 {
		t.Errorf("Viewport = %v, want 880x600", cam.Viewport)
	}
}

func TestCameraIdentityAtZoomOne(t *testing.T) {
	cam := canvasCamera()
	assertMatrix(t, "view", cam.computeViewMatrix(), identityTransform)
}

// screenPoint maps a canvas point to the screen through the camera's GeoM.
func screenPoint(cam *Camera, x, y float64) (float64, float64) {
	g := cam.GeoM()
	return g.Apply(x, y)
}

func TestCameraViewportOffset(t *testing.T) {
	cam := NewCamera(Rect{X: 100, Y: 50, Width: 200, Height: 100})
	sx, sy := screenPoint(cam, 0, 0)
	if !approxEqual(sx, 100, epsilon) || !approxEqual(sy, 50, epsilon) {
		t.Errorf("canvas origin maps to (%f,%f), want (100,50)", sx, sy)
	}
}

func TestCameraZoomKeepsCenterFixed(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(1.5, 0, nil)

	sx, sy := screenPoint(cam, 440, 300)
	if !approxEqual(sx, 440, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("center maps to (%f,%f), want (440,300)", sx, sy)
	}
	// Corner moves outward: 440 - 1.5*440 = -220.
	sx, sy = screenPoint(cam, 0, 0)
	if !approxEqual(sx, -220, epsilon) || !approxEqual(sy, -150, epsilon) {
		t.Errorf("origin maps to (%f,%f), want (-220,-150)", sx, sy)
	}
}

func TestCameraZoomTwoShowsCentralQuarter(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(2, 0, nil)

	// Canvas (220,150)-(660,450) fills the viewport.
	x0, y0 := screenPoint(cam, 220, 150)
	x1, y1 := screenPoint(cam, 660, 450)
	if !approxEqual(x0, 0, epsilon) || !approxEqual(y0, 0, epsilon) ||
		!approxEqual(x1, 880, epsilon) || !approxEqual(y1, 600, epsilon) {
		t.Errorf("visible corners = (%f,%f)-(%f,%f), want (0,0)-(880,600)", x0, y0, x1, y1)
	}
}

func TestCameraZoomToAnimates(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(1.5, 0.4, ease.Linear)
	if !cam.Animating() {
		t.Fatal("ZoomTo with a duration should animate")
	}

	cam.Update(0.2)
	if !approxEqual(cam.Zoom, 1.25, 1e-3) {
		t.Errorf("midpoint Zoom = %f, want ~1.25", cam.Zoom)
	}
	cam.Update(0.2)
	if cam.Animating() || !approxEqual(cam.Zoom, 1.5, 1e-6) {
		t.Errorf("end: animating = %v, Zoom = %f", cam.Animating(), cam.Zoom)
	}
}

func TestCameraZoomToRetargetsMidway(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(1.5, 0.4, ease.Linear)
	cam.Update(0.2)

	cam.ZoomTo(1, 0.4, ease.Linear)
	if !approxEqual(cam.Zoom, 1.25, 1e-3) {
		t.Errorf("retarget jumped to %f", cam.Zoom)
	}
	cam.Update(0.4)
	if !approxEqual(cam.Zoom, 1, 1e-6) {
		t.Errorf("Zoom = %f, want 1", cam.Zoom)
	}
}

func TestCameraZoomToSnaps(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(1.5, 0.4, ease.Linear)
	cam.ZoomTo(1.5, 0, nil)
	if cam.Animating() || cam.Zoom != 1.5 {
		t.Errorf("snap: animating = %v, Zoom = %f", cam.Animating(), cam.Zoom)
	}
	sx, _ := screenPoint(cam, 0, 0)
	if !approxEqual(sx, -220, epsilon) {
		t.Errorf("view matrix not refreshed after snap: x = %f", sx)
	}
}

func TestCameraGeoMMatchesViewMatrix(t *testing.T) {
	cam := canvasCamera()
	cam.ZoomTo(1.5, 0, nil)
	gx, gy := screenPoint(cam, 100, 200)
	mx, my := transformPoint(cam.computeViewMatrix(), 100, 200)
	if !approxEqual(gx, mx, 1e-9) || !approxEqual(gy, my, 1e-9) {
		t.Errorf("GeoM (%f,%f) != view matrix (%f,%f)", gx, gy, mx, my)
	}
}
