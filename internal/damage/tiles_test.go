package damage

import (
	"sync"
	"testing"
)

func TestNewTiles(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size int
		cols, rows int
		wantNil    bool
	}{
		{"exact", 128, 64, 64, 2, 1, false},
		{"partial", 130, 65, 64, 3, 2, false},
		{"single", 1, 1, 64, 1, 1, false},
		{"zero width", 0, 10, 64, 0, 0, true},
		{"zero tile", 10, 10, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTiles(tt.w, tt.h, tt.size)
			if tt.wantNil {
				if g != nil {
					t.Errorf("NewTiles(%d, %d, %d) = %v, want nil", tt.w, tt.h, tt.size, g)
				}
				return
			}
			if g.Cols() != tt.cols || g.Rows() != tt.rows {
				t.Errorf("grid = %dx%d, want %dx%d", g.Cols(), g.Rows(), tt.cols, tt.rows)
			}
			if g.Count() != 0 {
				t.Errorf("Count() = %d, want 0", g.Count())
			}
		})
	}
}

// =============================================================================
// Marking
// =============================================================================

func TestTiles_MarkPixels(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"inside one tile", 1, 1, 10, 10, [][2]int{{0, 0}}},
		{"edge exclusive", 0, 0, 64, 64, [][2]int{{0, 0}}},
		{"straddles", 60, 60, 70, 70, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
		{"negative origin", -100, -100, 1, 1, [][2]int{{0, 0}}},
		{"clamped far edge", 190, 0, 1000, 1, [][2]int{{2, 0}, {3, 0}}},
		{"fully outside", 500, 500, 600, 600, nil},
		{"empty", 10, 10, 10, 20, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTiles(256, 128, 64)
			g.MarkPixels(tt.x0, tt.y0, tt.x1, tt.y1)
			got := g.Drain()
			if len(got) != len(tt.want) {
				t.Fatalf("Drain() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Drain()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if g.Count() != 0 {
				t.Errorf("Count() after Drain = %d, want 0", g.Count())
			}
		})
	}
}

func TestTiles_MarkAll(t *testing.T) {
	// 10x10 tiles spans two words with a partial tail.
	g := NewTiles(100, 100, 10)
	g.MarkAll()
	if g.Count() != 100 {
		t.Errorf("Count() = %d, want 100", g.Count())
	}
	if !g.IsMarked(9, 9) {
		t.Error("IsMarked(9, 9) = false, want true")
	}
	if g.IsMarked(10, 0) {
		t.Error("IsMarked(10, 0) = true, want false")
	}
	if n := len(g.Drain()); n != 100 {
		t.Errorf("len(Drain()) = %d, want 100", n)
	}
}

func TestTiles_MarkOutOfRange(t *testing.T) {
	g := NewTiles(64, 64, 32)
	g.Mark(-1, 0)
	g.Mark(0, 2)
	if g.Count() != 0 {
		t.Errorf("Count() = %d, want 0", g.Count())
	}
}

func TestTiles_Concurrent(t *testing.T) {
	g := NewTiles(640, 640, 64)
	var wg sync.WaitGroup
	for ty := 0; ty < 10; ty++ {
		wg.Add(1)
		go func(ty int) {
			defer wg.Done()
			for tx := 0; tx < 10; tx++ {
				g.Mark(tx, ty)
			}
		}(ty)
	}
	wg.Wait()
	if g.Count() != 100 {
		t.Errorf("Count() = %d, want 100", g.Count())
	}
}
