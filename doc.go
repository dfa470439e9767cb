// Package displaylist records drawing operations into immutable display
// lists and computes conservative device-space bounds for them.
//
// # Overview
//
// A display list is an ordered stream of [Op] values: attribute setters,
// transform and clip operations, save/restore scopes and draw calls. The
// [BoundsCalculator] interprets such a stream as a small stack machine and
// reports the tightest rectangle that is guaranteed to enclose everything
// the stream would paint, or that the stream is unbounded.
//
// Compositors use the result for damage tracking, raster caching and
// culling. Rendering backends are not part of this package; they consume the
// same op stream through their own dispatch.
//
// # Quick Start
//
//	b := displaylist.NewBuilder()
//	b.Save()
//	b.ClipRect(displaylist.Rect{MaxX: 100, MaxY: 100}, displaylist.ClipIntersect, false)
//	b.Translate(10, 10)
//	b.DrawRect(displaylist.RectXYWH(0, 0, 50, 50), nil)
//	b.Restore()
//	dl := b.Build()
//
//	fmt.Println(dl.Bounds()) // (10,10)-(60,60)
//
// # Bounds Model
//
// Each draw op computes local bounds for its geometry, grows them for the
// paint (path effect, stroke, mask filter, image filter), maps them through
// the current transform and intersects them with the current clip. Ops whose
// extent cannot be computed (drawPaint, inverse-fill paths, filters without
// fast bounds) fill the current clip, or mark the layer unbounded when no
// clip is active.
//
// # Architecture
//
//   - Geometry: [Point], [Rect], [RRect], [Matrix], [Path]
//   - Attributes: [Paint], [PaintState], [BlendMode], filter interfaces
//   - State: [MatrixState], [ClipState]
//   - Ops: [Op], [Builder], [DisplayList]
//   - Bounds: [BoundsCalculator]
//
// Sub-packages text (text blobs) and layer (layer-tree compositor) build on
// top of the root package.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route diagnostics to
// a [log/slog] logger.
package displaylist
