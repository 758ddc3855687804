// Package drapery is a curtain visualizer: a visitor picks a fabric color,
// a fabric design and a curtain size, and sees the choice composited live
// over a photographed room.
//
// # Quick start
//
//	v, err := drapery.NewVisualizer(drapery.VisualizerOptions{
//		Config: drapery.DefaultConfig(),
//		Assets: drapery.LoadAssets("room.jpg", "curtain-mask.png"),
//		OnOrder: func(summary string) { fmt.Println(summary) },
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg := drapery.DefaultConfig()
//	drapery.Run(v, drapery.RunConfig{
//		Title: cfg.Window.Title, Width: cfg.Window.Width, Height: cfg.Window.Height,
//	})
//
// # Data flow
//
// The [Catalog] is the closed set of colors, designs and sizes, embedded as
// YAML and validated on load. A [Store] holds the one current [Selection];
// the control [Panel] and scripted runs write only through its setters and
// an unknown id fails with an [UnknownOptionError]. Subscribers get each
// new snapshot synchronously: the [Compositor] rebuilds the layers whose
// key changed and the panel redraws its highlights.
//
// # Layers
//
// The compositor stacks, bottom to top, the room photograph, the fabric
// mask for the selected size, a tint in the selected color drawn with
// [BlendMultiply] at [TintOpacity], and the design's procedural pattern
// drawn with [BlendOverlay]. Mask, tint and pattern are each a
// [KeyedLayer] that cross-fades when its key changes. Zoom scales the
// finished canvas through a [Camera] and never touches the layers.
//
// # Scene graph
//
// Layers and panel controls are [Node] values in a [Scene]. A scene
// traverses its tree into render commands and submits them to an
// ebiten image; [RenderTexture] holds offscreen canvases. Clicks are hit
// tested in reverse painter order and dispatched to Node.OnClick.
//
// # Scripts and screenshots
//
// [LoadTestScript] reads a YAML or JSON list of steps (click, wait, select,
// zoom, screenshot). Attached to a visualizer through
// [VisualizerOptions].Script it drives the app frame by frame and ends the
// run after the last screenshot is written.
package drapery
