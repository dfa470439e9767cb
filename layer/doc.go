// Package layer implements a retained layer tree on top of display lists.
//
// Each frame runs in two passes. Preroll walks the tree with a
// PrerollContext, computes every layer's paint bounds from the bounds of
// its display lists, culls layers outside the visible area and decides
// where an opacity can be folded into the children instead of rendering
// them offscreen. Paint then records the visible layers into a
// displaylist.Builder.
//
// A RasterCache rasterizes display lists that are drawn unchanged over
// several consecutive frames, and a DamageTracker reports which parts of
// the viewport changed between frames. Cached images are composited with
// the fixed-function blend state returned by CompositeBlendState.
//
// A minimal frame loop:
//
//	rc := layer.NewRasterCache()
//	dt := layer.NewDamageTracker(width, height, 0)
//	for {
//		frame := layer.PaintFrame(root, viewport, rc, dt)
//		damage := dt.EndFrame()
//		// draw frame.List and frame.Composites inside damage.Bounds
//		rc.EndFrame()
//	}
package layer
