package layer

import (
	"sync"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/internal/damage"
)

// DefaultTileSize is the edge length of damage tiles in pixels.
const DefaultTileSize = 64

// paintRecord is what one display list contributes to a frame: the same
// list at the same device bounds and opacity paints the same pixels.
type paintRecord struct {
	id      uint64
	bounds  displaylist.Rect
	opacity float64
}

// Damage is the part of the viewport that changed between two frames.
type Damage struct {
	// Bounds is the union of changed areas, pixel-aligned and clipped to
	// the viewport.
	Bounds displaylist.Rect
	// Tiles lists the damaged tiles as {column, row} in row-major order.
	Tiles [][2]int
}

// IsEmpty reports whether nothing changed.
func (d Damage) IsEmpty() bool { return d.Bounds.IsEmpty() }

// DamageTracker compares the display lists painted in consecutive frames
// and reports the areas that must be redrawn.
//
// DamageTracker is safe for concurrent use.
type DamageTracker struct {
	viewport displaylist.Rect
	tiles    *damage.Tiles

	mu   sync.Mutex
	prev map[paintRecord]struct{}
	cur  map[paintRecord]struct{}
	full bool
}

// NewDamageTracker creates a tracker for a width x height viewport using
// square tiles of tileSize pixels; tileSize <= 0 selects DefaultTileSize.
// The first frame is fully damaged.
func NewDamageTracker(width, height, tileSize int) *DamageTracker {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &DamageTracker{
		viewport: displaylist.RectXYWH(0, 0, float64(width), float64(height)),
		tiles:    damage.NewTiles(width, height, tileSize),
		prev:     make(map[paintRecord]struct{}),
		cur:      make(map[paintRecord]struct{}),
		full:     true,
	}
}

// Viewport returns the tracked device area.
func (d *DamageTracker) Viewport() displaylist.Rect { return d.viewport }

// Add records that the display list id paints deviceBounds at opacity in
// the current frame. Bounds outside the viewport are ignored.
func (d *DamageTracker) Add(id uint64, deviceBounds displaylist.Rect, opacity float64) {
	r, ok := deviceBounds.Intersect(d.viewport)
	if !ok {
		return
	}
	d.mu.Lock()
	d.cur[paintRecord{id: id, bounds: r.RoundOut(), opacity: opacity}] = struct{}{}
	d.mu.Unlock()
}

// Invalidate damages the whole viewport on the next EndFrame.
func (d *DamageTracker) Invalidate() {
	d.mu.Lock()
	d.full = true
	d.mu.Unlock()
}

// EndFrame returns the damage between the previous frame and the current
// one, then makes the current frame the previous.
func (d *DamageTracker) EndFrame() Damage {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out displaylist.Rect
	if d.full {
		out = d.viewport
		if d.tiles != nil {
			d.tiles.MarkAll()
		}
	} else {
		out = d.diff(d.prev, d.cur, out)
		out = d.diff(d.cur, d.prev, out)
	}
	d.prev, d.cur = d.cur, d.prev
	clear(d.cur)
	d.full = false

	res := Damage{Bounds: out}
	if d.tiles != nil {
		res.Tiles = d.tiles.Drain()
	}
	if !out.IsEmpty() {
		displaylist.Logger().Debug("layer: frame damage", "bounds", out, "tiles", len(res.Tiles))
	}
	return res
}

// diff unions into acc the bounds of records in a but not in b, marking
// their tiles. Caller must hold d.mu.
func (d *DamageTracker) diff(a, b map[paintRecord]struct{}, acc displaylist.Rect) displaylist.Rect {
	for rec := range a {
		if _, ok := b[rec]; ok {
			continue
		}
		acc = acc.Union(rec.bounds)
		if d.tiles != nil {
			r := rec.bounds
			d.tiles.MarkPixels(int(r.MinX), int(r.MinY), int(r.MaxX), int(r.MaxY))
		}
	}
	return acc
}
