package layer

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist"
)

// touchFrames touches dl once per frame for n frames, ending each frame.
func touchFrames(rc *RasterCache, dl *displaylist.DisplayList, m displaylist.Matrix, n int) {
	for range n {
		rc.Touch(dl, m)
		rc.EndFrame()
	}
}

func TestRasterCache_AdmitsAfterThreshold(t *testing.T) {
	rc := NewRasterCache()
	dl := rectList(ltrb(10, 10, 60, 60))
	id := displaylist.Identity()

	touchFrames(rc, dl, id, DefaultAccessThreshold-1)
	if _, ok := rc.Lookup(dl, id); ok {
		t.Fatal("Lookup before threshold ok = true, want false")
	}

	rc.Touch(dl, id)
	img, ok := rc.Lookup(dl, id)
	if !ok {
		t.Fatal("Lookup at threshold ok = false, want true")
	}
	if want := gputypes.NewExtent2D(50, 50); img.Extent != want {
		t.Errorf("Extent = %+v, want %+v", img.Extent, want)
	}
	if img.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", img.Format)
	}
	if want := ltrb(10, 10, 60, 60); !rectNear(img.Bounds, want) {
		t.Errorf("Bounds = %v, want %v", img.Bounds, want)
	}
	if img.ByteSize() != 50*50*4 {
		t.Errorf("ByteSize() = %d, want %d", img.ByteSize(), 50*50*4)
	}

	s := rc.Stats()
	if s.Entries != 1 || s.Images != 1 || s.Bytes != 10000 {
		t.Errorf("Stats() = %v, want 1 entry, 1 image, 10000 bytes", s)
	}
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}
}

func TestRasterCache_OneAccessPerFrame(t *testing.T) {
	rc := NewRasterCache()
	dl := rectList(ltrb(0, 0, 10, 10))
	for range 5 {
		rc.Touch(dl, displaylist.Identity())
	}
	if _, ok := rc.Lookup(dl, displaylist.Identity()); ok {
		t.Error("Lookup ok = true after touches in a single frame, want false")
	}
}

func TestRasterCache_MissedFrameResets(t *testing.T) {
	rc := NewRasterCache()
	dl := rectList(ltrb(0, 0, 10, 10))
	id := displaylist.Identity()

	touchFrames(rc, dl, id, 2)
	if n := rc.EndFrame(); n != 1 {
		t.Fatalf("EndFrame() after skipped frame = %d, want 1", n)
	}

	touchFrames(rc, dl, id, 2)
	if _, ok := rc.Lookup(dl, id); ok {
		t.Fatal("Lookup ok = true after reset, want false")
	}
	rc.Touch(dl, id)
	if _, ok := rc.Lookup(dl, id); !ok {
		t.Error("Lookup ok = false after three consecutive frames, want true")
	}
}

func TestRasterCache_IgnoresTranslation(t *testing.T) {
	rc := NewRasterCache()
	dl := rectList(ltrb(0, 0, 10, 10))

	for i := range DefaultAccessThreshold {
		rc.Touch(dl, displaylist.TranslateMatrix(float64(i*7), 3))
		if i < DefaultAccessThreshold-1 {
			rc.EndFrame()
		}
	}
	if _, ok := rc.Lookup(dl, displaylist.TranslateMatrix(-40, 100)); !ok {
		t.Error("Lookup with new translation ok = false, want true")
	}
	if _, ok := rc.Lookup(dl, displaylist.ScaleMatrix(2, 2)); ok {
		t.Error("Lookup with scale ok = true, want false")
	}
}

func TestRasterCache_Rejects(t *testing.T) {
	unbounded := func() *displaylist.DisplayList {
		b := displaylist.NewBuilder()
		b.DrawPaint(nil)
		return b.Build()
	}
	perspective := displaylist.Identity()
	perspective[12] = 0.001

	tests := []struct {
		name string
		dl   *displaylist.DisplayList
		m    displaylist.Matrix
		opts []RasterCacheOption
	}{
		{"unbounded", unbounded(), displaylist.Identity(), nil},
		{"empty", displaylist.NewBuilder().Build(), displaylist.Identity(), nil},
		{"perspective", rectList(ltrb(0, 0, 10, 10)), perspective, nil},
		{"oversized", rectList(ltrb(0, 0, 100, 10)), displaylist.Identity(),
			[]RasterCacheOption{WithMaxTextureDimension(64)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewRasterCache(tt.opts...)
			touchFrames(rc, tt.dl, tt.m, DefaultAccessThreshold+1)
			rc.Touch(tt.dl, tt.m)
			if _, ok := rc.Lookup(tt.dl, tt.m); ok {
				t.Error("Lookup ok = true, want false")
			}
		})
	}
}

func TestRasterCache_Options(t *testing.T) {
	var calls int
	rc := NewRasterCache(
		WithAccessThreshold(0),
		WithTextureFormat(gputypes.TextureFormatBGRA8Unorm),
		WithRasterizer(func(dl *displaylist.DisplayList, m displaylist.Matrix, img *CachedImage) error {
			calls++
			if img.Key.ID != dl.ID() {
				t.Errorf("Key.ID = %d, want %d", img.Key.ID, dl.ID())
			}
			return nil
		}),
	)
	dl := rectList(ltrb(0, 0, 10, 10))
	rc.Touch(dl, displaylist.Identity())

	img, ok := rc.Lookup(dl, displaylist.Identity())
	if !ok {
		t.Fatal("Lookup ok = false with threshold 1, want true")
	}
	if img.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v, want BGRA8Unorm", img.Format)
	}
	if calls != 1 {
		t.Errorf("rasterizer calls = %d, want 1", calls)
	}
}

func TestRasterCache_RasterizeFailure(t *testing.T) {
	fail := true
	rc := NewRasterCache(
		WithAccessThreshold(1),
		WithRasterizer(func(*displaylist.DisplayList, displaylist.Matrix, *CachedImage) error {
			if fail {
				return errors.New("device lost")
			}
			return nil
		}),
	)
	dl := rectList(ltrb(0, 0, 10, 10))

	touchFrames(rc, dl, displaylist.Identity(), 1)
	if _, ok := rc.Lookup(dl, displaylist.Identity()); ok {
		t.Fatal("Lookup ok = true after failed rasterization, want false")
	}

	fail = false
	rc.Touch(dl, displaylist.Identity())
	if _, ok := rc.Lookup(dl, displaylist.Identity()); !ok {
		t.Error("Lookup ok = false after retry, want true")
	}
}

func TestRasterCache_CapacityAndClear(t *testing.T) {
	rc := NewRasterCache(WithCacheCapacity(1))
	a := rectList(ltrb(0, 0, 10, 10))
	b := rectList(ltrb(0, 0, 10, 10))

	rc.Touch(a, displaylist.Identity())
	rc.Touch(b, displaylist.Identity())
	if s := rc.Stats(); s.Entries != 1 || s.Evictions != 1 {
		t.Errorf("Stats() = %v, want 1 entry, 1 eviction", s)
	}

	rc.Clear()
	if s := rc.Stats(); s.Entries != 0 {
		t.Errorf("Entries after Clear = %d, want 0", s.Entries)
	}
}
