// Package damage tracks damaged screen tiles with a lock-free bitmap.
package damage

import (
	"math/bits"
	"sync/atomic"
)

// Tiles is a grid of fixed-size tiles with one damage bit per tile. All
// methods are safe for concurrent use.
//
// Bit index = ty*cols + tx, packed 64 tiles per word.
type Tiles struct {
	words    []atomic.Uint64
	cols     int
	rows     int
	tileSize int
}

// NewTiles returns a clean grid covering width x height pixels with square
// tiles of tileSize pixels. It returns nil for non-positive arguments.
func NewTiles(width, height, tileSize int) *Tiles {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize
	return &Tiles{
		words:    make([]atomic.Uint64, (cols*rows+63)/64),
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
	}
}

// Cols returns the number of tile columns.
func (t *Tiles) Cols() int { return t.cols }

// Rows returns the number of tile rows.
func (t *Tiles) Rows() int { return t.rows }

// TileSize returns the tile edge length in pixels.
func (t *Tiles) TileSize() int { return t.tileSize }

// Mark damages the tile at (tx, ty). Out-of-range tiles are ignored.
func (t *Tiles) Mark(tx, ty int) {
	if tx < 0 || tx >= t.cols || ty < 0 || ty >= t.rows {
		return
	}
	idx := ty*t.cols + tx
	t.words[idx/64].Or(1 << (idx & 63))
}

// MarkPixels damages every tile overlapping the half-open pixel rectangle
// [x0, x1) x [y0, y1).
func (t *Tiles) MarkPixels(x0, y0, x1, y1 int) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	tx0 := max(floorDiv(x0, t.tileSize), 0)
	ty0 := max(floorDiv(y0, t.tileSize), 0)
	tx1 := min(floorDiv(x1-1, t.tileSize), t.cols-1)
	ty1 := min(floorDiv(y1-1, t.tileSize), t.rows-1)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			t.Mark(tx, ty)
		}
	}
}

// MarkAll damages every tile.
func (t *Tiles) MarkAll() {
	n := t.cols * t.rows
	full := n / 64
	for i := 0; i < full; i++ {
		t.words[i].Store(^uint64(0))
	}
	if rem := n % 64; rem > 0 {
		t.words[full].Store(uint64(1)<<rem - 1)
	}
}

// IsMarked reports whether the tile at (tx, ty) is damaged.
func (t *Tiles) IsMarked(tx, ty int) bool {
	if tx < 0 || tx >= t.cols || ty < 0 || ty >= t.rows {
		return false
	}
	idx := ty*t.cols + tx
	return t.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of damaged tiles.
func (t *Tiles) Count() int {
	n := 0
	for i := range t.words {
		n += bits.OnesCount64(t.words[i].Load())
	}
	return n
}

// Drain returns the damaged tiles in row-major order and clears them.
func (t *Tiles) Drain() [][2]int {
	var out [][2]int
	total := t.cols * t.rows
	for w := range t.words {
		word := t.words[w].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			idx := w*64 + b
			if idx >= total {
				break
			}
			out = append(out, [2]int{idx % t.cols, idx / t.cols})
			word &^= 1 << b
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
