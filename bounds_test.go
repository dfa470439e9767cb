package displaylist

import (
	"image"
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const boundsEpsilon = 1e-9

func rectNear(a, b Rect) bool {
	return math.Abs(a.MinX-b.MinX) < boundsEpsilon && math.Abs(a.MinY-b.MinY) < boundsEpsilon &&
		math.Abs(a.MaxX-b.MaxX) < boundsEpsilon && math.Abs(a.MaxY-b.MaxY) < boundsEpsilon
}

func ltrb(l, t, r, b float64) Rect { return Rect{MinX: l, MinY: t, MaxX: r, MaxY: b} }

func rectPtr(r Rect) *Rect { return &r }

// calculate runs ops through a fresh calculator.
func calculate(t *testing.T, ops []Op, opts ...CalculatorOption) *BoundsCalculator {
	t.Helper()
	c := NewBoundsCalculator(opts...)
	c.Process(ops)
	return c
}

type fakeBlob struct{ bounds Rect }

func (b fakeBlob) Bounds() Rect { return b.bounds }

type customBlender struct{}

func (customBlender) AsBlendMode() (BlendMode, bool) { return 0, false }

type fakePicture struct{ cull Rect }

func (p fakePicture) CullRect() Rect { return p.cull }

// =============================================================================
// Scenarios
// =============================================================================

func TestBoundsScenarios(t *testing.T) {
	tests := []struct {
		name          string
		ops           []Op
		opts          []CalculatorOption
		want          Rect
		wantUnbounded bool
	}{
		{
			name: "clipped translated rect inside save",
			ops: []Op{
				Save{},
				ClipRect{Rect: ltrb(0, 0, 100, 100)},
				Translate{TX: 10, TY: 10},
				DrawRect{Rect: ltrb(0, 0, 50, 50)},
				Restore{},
			},
			want: ltrb(10, 10, 60, 60),
		},
		{
			name: "rect outside clip",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 10, 10)},
				DrawRect{Rect: ltrb(20, 20, 30, 30)},
			},
			want: Rect{},
		},
		{
			name: "rect partly clipped",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 10, 10)},
				DrawRect{Rect: ltrb(5, 5, 30, 30)},
			},
			want: ltrb(5, 5, 10, 10),
		},
		{
			name: "unsorted rect",
			ops:  []Op{DrawRect{Rect: ltrb(30, 40, 10, 20)}},
			want: ltrb(10, 20, 30, 40),
		},
		{
			name: "scaled rect is not inflated",
			ops: []Op{
				Scale{SX: 2, SY: 3},
				DrawRect{Rect: ltrb(1, 1, 2, 2)},
			},
			want: ltrb(2, 3, 4, 6),
		},
		{
			name: "rotated rect covers its rotated corners",
			ops: []Op{
				Rotate{Radians: math.Pi / 2},
				DrawRect{Rect: ltrb(0, 0, 10, 20)},
			},
			want: ltrb(-20, 0, 0, 10),
		},
		{
			name: "union of two draws",
			ops: []Op{
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				DrawOval{Bounds: ltrb(50, 50, 60, 70)},
			},
			want: ltrb(0, 0, 60, 70),
		},
		{
			name: "draw paint without clip",
			ops:  []Op{DrawRect{Rect: ltrb(0, 0, 10, 10)}, DrawPaint{}},
			want: ltrb(0, 0, 10, 10), wantUnbounded: true,
		},
		{
			name: "draw color fills clip",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 40, 30)},
				DrawColor{Color: Red, Mode: BlendSrc},
			},
			want: ltrb(0, 0, 40, 30),
		},
		{
			name: "draw paint fills cull rect",
			ops:  []Op{DrawPaint{}},
			opts: []CalculatorOption{WithCullRect(ltrb(0, 0, 800, 600))},
			want: ltrb(0, 0, 800, 600),
		},
		{
			name: "empty clip swallows unbounded ops",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 10, 10)},
				ClipRect{Rect: ltrb(20, 20, 30, 30)},
				DrawPaint{},
			},
			want: Rect{},
		},
		{
			name: "difference clip is ignored",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 10, 10), Op: ClipDifference},
				DrawRect{Rect: ltrb(0, 0, 20, 20)},
			},
			want: ltrb(0, 0, 20, 20),
		},
		{
			name: "anti-aliased clip rounds out",
			ops: []Op{
				ClipRect{Rect: ltrb(0.5, 0.5, 9.5, 9.5), AntiAlias: true},
				DrawRect{Rect: ltrb(-5, -5, 50, 50)},
			},
			want: ltrb(0, 0, 10, 10),
		},
		{
			name: "clip restored after save",
			ops: []Op{
				Save{},
				ClipRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
				DrawRect{Rect: ltrb(0, 0, 20, 20)},
			},
			want: ltrb(0, 0, 20, 20),
		},
		{
			name: "transform reset",
			ops: []Op{
				Translate{TX: 100, TY: 100},
				TransformReset{},
				DrawRect{Rect: ltrb(0, 0, 1, 1)},
			},
			want: ltrb(0, 0, 1, 1),
		},
		{
			name: "inverse path clip leaves clip unchanged",
			ops: func() []Op {
				p := NewPath()
				p.Rectangle(0, 0, 5, 5)
				p.SetFillType(FillInverseNonZero)
				return []Op{ClipPath{Path: p}, DrawRect{Rect: ltrb(0, 0, 20, 20)}}
			}(),
			want: ltrb(0, 0, 20, 20),
		},
		{
			name: "inverse path difference clip intersects",
			ops: func() []Op {
				p := NewPath()
				p.Rectangle(0, 0, 5, 5)
				p.SetFillType(FillInverseEvenOdd)
				return []Op{ClipPath{Path: p, Op: ClipDifference}, DrawRect{Rect: ltrb(0, 0, 20, 20)}}
			}(),
			want: ltrb(0, 0, 5, 5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calculate(t, tt.ops, tt.opts...)
			if got := c.Bounds(); !rectNear(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
			if got := c.IsUnbounded(); got != tt.wantUnbounded {
				t.Errorf("IsUnbounded() = %v, want %v", got, tt.wantUnbounded)
			}
		})
	}
}

// =============================================================================
// Paint adjustment
// =============================================================================

func TestBoundsPaintAdjustment(t *testing.T) {
	tests := []struct {
		name          string
		attrs         []Op
		draw          Op
		want          Rect
		wantUnbounded bool
	}{
		{
			name:  "stroked rect outsets by half width",
			attrs: []Op{SetStyle{Style: StyleStroke}, SetStrokeWidth{Width: 4}, SetStrokeMiter{Limit: 10}},
			draw:  DrawRect{Rect: ltrb(10, 10, 20, 20)},
			want:  ltrb(8, 8, 22, 22),
		},
		{
			name:  "stroke and fill counts as stroked",
			attrs: []Op{SetStyle{Style: StyleStrokeAndFill}, SetStrokeWidth{Width: 2}},
			draw:  DrawOval{Bounds: ltrb(0, 0, 10, 10)},
			want:  ltrb(-1, -1, 11, 11),
		},
		{
			name:  "stroked path uses miter limit",
			attrs: []Op{SetStyle{Style: StyleStroke}, SetStrokeWidth{Width: 2}, SetStrokeMiter{Limit: 3}},
			draw: DrawPath{Path: func() *Path {
				p := NewPath()
				p.MoveTo(0, 0)
				p.LineTo(10, 10)
				p.LineTo(20, 0)
				return p
			}()},
			want: ltrb(-3, -3, 23, 13),
		},
		{
			name:  "round join ignores miter limit",
			attrs: []Op{SetStyle{Style: StyleStroke}, SetStrokeWidth{Width: 2}, SetStrokeJoin{Join: LineJoinRound}},
			draw: DrawPath{Path: func() *Path {
				p := NewPath()
				p.MoveTo(0, 0)
				p.LineTo(10, 10)
				return p
			}()},
			want: ltrb(-1, -1, 11, 11),
		},
		{
			name:  "diagonal line with square cap",
			attrs: []Op{SetStrokeWidth{Width: 2}, SetStrokeCap{Cap: LineCapSquare}},
			draw:  DrawLine{P0: Pt(0, 0), P1: Pt(10, 10)},
			want:  ltrb(-math.Sqrt2, -math.Sqrt2, 10+math.Sqrt2, 10+math.Sqrt2),
		},
		{
			name:  "horizontal line with square cap",
			attrs: []Op{SetStrokeWidth{Width: 2}, SetStrokeCap{Cap: LineCapSquare}},
			draw:  DrawLine{P0: Pt(0, 5), P1: Pt(10, 5)},
			want:  ltrb(-1, 4, 11, 6),
		},
		{
			name: "hairline line keeps a minimal extent",
			draw: DrawLine{P0: Pt(0, 5), P1: Pt(10, 5)},
			want: ltrb(-minStrokeHalfWidth, 5-minStrokeHalfWidth, 10+minStrokeHalfWidth, 5+minStrokeHalfWidth),
		},
		{
			name:  "fill ignores stroke width",
			attrs: []Op{SetStrokeWidth{Width: 20}},
			draw:  DrawRect{Rect: ltrb(0, 0, 10, 10)},
			want:  ltrb(0, 0, 10, 10),
		},
		{
			name:  "mask blur outsets three sigma",
			attrs: []Op{SetMaskBlurFilter{Style: BlurNormal, Sigma: 2}},
			draw:  DrawRect{Rect: ltrb(0, 0, 10, 10)},
			want:  ltrb(-6, -6, 16, 16),
		},
		{
			name:  "mask filter outsets",
			attrs: []Op{SetMaskFilter{Filter: BlurMaskFilter{Style: BlurOuter, Sigma: 1}}},
			draw:  DrawCircle{Center: Pt(5, 5), Radius: 5},
			want:  ltrb(-3, -3, 13, 13),
		},
		{
			name:  "image filter outsets per axis",
			attrs: []Op{SetImageFilter{Filter: BlurImageFilter{SigmaX: 1, SigmaY: 2}}},
			draw:  DrawRect{Rect: ltrb(0, 0, 10, 10)},
			want:  ltrb(-3, -6, 13, 16),
		},
		{
			name: "filters compose after stroke",
			attrs: []Op{
				SetStyle{Style: StyleStroke}, SetStrokeWidth{Width: 2},
				SetMaskBlurFilter{Style: BlurNormal, Sigma: 1},
				SetImageFilter{Filter: DilateImageFilter{RadiusX: 1, RadiusY: 1}},
			},
			draw: DrawRect{Rect: ltrb(0, 0, 10, 10)},
			want: ltrb(-5, -5, 15, 15),
		},
		{
			name:  "discrete path effect outsets",
			attrs: []Op{SetPathEffect{Effect: DiscretePathEffect{SegmentLength: 4, Deviation: 2}}},
			draw:  DrawRect{Rect: ltrb(0, 0, 10, 10)},
			want:  ltrb(-2, -2, 12, 12),
		},
		{
			name:  "path effect ignored by images",
			attrs: []Op{SetPathEffect{Effect: &StampPathEffect{Advance: 1}}},
			draw:  DrawImageRect{Dst: ltrb(0, 0, 10, 10), WithAttributes: true},
			want:  ltrb(0, 0, 10, 10),
		},
		{
			name:          "unbounded image filter",
			attrs:         []Op{SetImageFilter{Filter: UnboundedImageFilter{Name: "shader"}}},
			draw:          DrawRect{Rect: ltrb(0, 0, 10, 10)},
			wantUnbounded: true,
		},
		{
			name:          "stamp path effect",
			attrs:         []Op{SetPathEffect{Effect: &StampPathEffect{Advance: 1}}},
			draw:          DrawRect{Rect: ltrb(0, 0, 10, 10)},
			wantUnbounded: true,
		},
		{
			name:  "image without paint ignores filters",
			attrs: []Op{SetImageFilter{Filter: BlurImageFilter{SigmaX: 5, SigmaY: 5}}},
			draw:  DrawImage{Image: image.NewRGBA(image.Rect(0, 0, 4, 3)), Point: Pt(1, 2)},
			want:  ltrb(1, 2, 5, 5),
		},
		{
			name:  "image with paint uses image filter",
			attrs: []Op{SetImageFilter{Filter: BlurImageFilter{SigmaX: 1, SigmaY: 1}}},
			draw:  DrawImage{Image: image.NewRGBA(image.Rect(0, 0, 4, 3)), Point: Pt(1, 2), WithAttributes: true},
			want:  ltrb(-2, -1, 8, 8),
		},
		{
			name:  "text blob ignores color filter",
			attrs: []Op{SetColorFilter{Filter: InvertColorFilter()}},
			draw:  DrawTextBlob{Blob: fakeBlob{bounds: ltrb(0, -10, 30, 2)}, X: 5, Y: 20},
			want:  ltrb(5, 10, 35, 22),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calculate(t, append(tt.attrs, tt.draw))
			if got := c.IsUnbounded(); got != tt.wantUnbounded {
				t.Fatalf("IsUnbounded() = %v, want %v", got, tt.wantUnbounded)
			}
			if tt.wantUnbounded {
				return
			}
			if got := c.Bounds(); !rectNear(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Draw ops
// =============================================================================

func TestBoundsDrawOps(t *testing.T) {
	inverse := NewPath()
	inverse.Rectangle(0, 0, 10, 10)
	inverse.SetFillType(FillInverseNonZero)

	shadowPath := NewPath()
	shadowPath.Rectangle(0, 0, 60, 60)

	nested := NewBuilder()
	nested.DrawRect(ltrb(0, 0, 5, 5), nil)
	nestedList := nested.Build()

	unboundedNested := NewBuilder()
	unboundedNested.DrawPaint(nil)
	unboundedList := unboundedNested.Build()

	half := MatrixFromAffine(f64.Aff3{0.5, 0, 10, 0, 0.5, 10})

	tests := []struct {
		name          string
		op            Op
		want          Rect
		wantUnbounded bool
	}{
		{"arc uses full oval", DrawArc{Oval: ltrb(0, 0, 100, 50), StartAngle: 0, SweepAngle: 0.1}, ltrb(0, 0, 100, 50), false},
		{"circle", DrawCircle{Center: Pt(10, 10), Radius: 3}, ltrb(7, 7, 13, 13), false},
		{"rrect", DrawRRect{RRect: RRectXY(ltrb(0, 0, 20, 10), 2, 2)}, ltrb(0, 0, 20, 10), false},
		{"drrect uses outer", DrawDRRect{Outer: RRectXY(ltrb(0, 0, 20, 20), 2, 2), Inner: RRectXY(ltrb(5, 5, 15, 15), 1, 1)}, ltrb(0, 0, 20, 20), false},
		{"inverse path", DrawPath{Path: inverse}, Rect{}, true},
		{"points", DrawPoints{Mode: PointModePoints, Points: []Point{Pt(1, 1), Pt(4, 9)}}, ltrb(1-minStrokeHalfWidth, 1-minStrokeHalfWidth, 4+minStrokeHalfWidth, 9+minStrokeHalfWidth), false},
		{"no points", DrawPoints{Mode: PointModeLines}, Rect{}, false},
		{"vertices", DrawVertices{Vertices: &Vertices{Positions: []Point{Pt(0, 0), Pt(10, 0), Pt(5, 8)}}}, ltrb(0, 0, 10, 8), false},
		{"image rect uses dst", DrawImageRect{Src: ltrb(0, 0, 1, 1), Dst: ltrb(3, 4, 13, 14)}, ltrb(3, 4, 13, 14), false},
		{"image nine uses dst", DrawImageNine{Dst: ltrb(0, 0, 30, 30)}, ltrb(0, 0, 30, 30), false},
		{
			"atlas unions sprites",
			DrawAtlas{
				Transforms: []RSTransform{{SCos: 1, TX: 0, TY: 0}, {SCos: 2, TX: 100, TY: 50}},
				Tex:        []Rect{ltrb(0, 0, 10, 10), ltrb(10, 10, 20, 15)},
			},
			ltrb(0, 0, 120, 60), false,
		},
		{"picture cull", DrawPicture{Picture: fakePicture{cull: ltrb(0, 0, 40, 20)}}, ltrb(0, 0, 40, 20), false},
		{"picture with matrix", DrawPicture{Picture: fakePicture{cull: ltrb(0, 0, 40, 20)}, Matrix: &half}, ltrb(10, 10, 30, 20), false},
		{"nested list", DrawDisplayList{List: nestedList, Opacity: 1}, ltrb(0, 0, 5, 5), false},
		{"unbounded nested list", DrawDisplayList{List: unboundedList, Opacity: 1}, Rect{}, true},
		{"shadow", DrawShadow{Path: shadowPath, Elevation: 6, DPR: 1}, ComputeShadowBounds(ltrb(0, 0, 60, 60), 6, 1), false},
		{"shadow ignores style", DrawShadow{Path: shadowPath}, ltrb(0, 0, 60, 60), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calculate(t, []Op{tt.op})
			if got := c.IsUnbounded(); got != tt.wantUnbounded {
				t.Fatalf("IsUnbounded() = %v, want %v", got, tt.wantUnbounded)
			}
			if got := c.Bounds(); !rectNear(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsPerspectiveMakesOpUnbounded(t *testing.T) {
	var m f64.Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	m[12] = -0.1 // w reaches zero at x = 10

	c := calculate(t, []Op{
		TransformFullPerspective{Matrix: m},
		DrawRect{Rect: ltrb(0, 0, 20, 20)},
	})
	if !c.IsUnbounded() {
		t.Error("IsUnbounded() = false, want true for rect crossing w = 0")
	}

	c = calculate(t, []Op{
		ClipRect{Rect: ltrb(0, 0, 50, 50)},
		TransformFullPerspective{Matrix: m},
		DrawRect{Rect: ltrb(0, 0, 20, 20)},
	})
	if c.IsUnbounded() {
		t.Error("IsUnbounded() = true, want false under a clip")
	}
	if got, want := c.Bounds(), ltrb(0, 0, 50, 50); !rectNear(got, want) {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

// =============================================================================
// Save layers
// =============================================================================

func TestBoundsSaveLayer(t *testing.T) {
	tests := []struct {
		name          string
		ops           []Op
		want          Rect
		wantUnbounded bool
	}{
		{
			name:          "unbounded content without clip",
			ops:           []Op{SaveLayer{}, DrawPaint{}, Restore{}},
			wantUnbounded: true,
		},
		{
			name: "unbounded content fills parent clip",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 50, 50)},
				SaveLayer{},
				DrawPaint{},
				Restore{},
			},
			want: ltrb(0, 0, 50, 50),
		},
		{
			name: "unbounded content fills layer bounds",
			ops: []Op{
				SaveLayer{Bounds: rectPtr(ltrb(0, 0, 5, 5))},
				DrawPaint{},
				Restore{},
			},
			want: ltrb(0, 0, 5, 5),
		},
		{
			name: "layer bounds clip content",
			ops: []Op{
				SaveLayer{Bounds: rectPtr(ltrb(0, 0, 5, 5))},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(0, 0, 5, 5),
		},
		{
			name: "parent transform applied at restore",
			ops: []Op{
				Translate{TX: 100, TY: 0},
				SaveLayer{},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(100, 0, 110, 10),
		},
		{
			name: "image filter captured at save",
			ops: []Op{
				SetImageFilter{Filter: BlurImageFilter{SigmaX: 2, SigmaY: 2}},
				SaveLayer{WithAttributes: true},
				SetImageFilter{},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(-6, -6, 16, 16),
		},
		{
			name: "layer without attributes ignores image filter",
			ops: []Op{
				SetImageFilter{Filter: BlurImageFilter{SigmaX: 2, SigmaY: 2}},
				SaveLayer{},
				SetImageFilter{},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(0, 0, 10, 10),
		},
		{
			name: "unbounded layer filter",
			ops: []Op{
				SetImageFilter{Filter: UnboundedImageFilter{}},
				SaveLayer{WithAttributes: true},
				SetImageFilter{},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			wantUnbounded: true,
		},
		{
			name: "src layer floods parent clip",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 100, 100)},
				SetBlendMode{Mode: BlendSrc},
				SaveLayer{WithAttributes: true},
				SetBlendMode{Mode: BlendSrcOver},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(0, 0, 100, 100),
		},
		{
			name: "src layer without clip is unbounded",
			ops: []Op{
				SetBlendMode{Mode: BlendSrc},
				SaveLayer{WithAttributes: true},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want:          ltrb(0, 0, 10, 10),
			wantUnbounded: true,
		},
		{
			name: "backdrop fills parent clip",
			ops: []Op{
				ClipRect{Rect: ltrb(0, 0, 50, 50)},
				SaveLayer{Backdrop: BlurImageFilter{SigmaX: 3, SigmaY: 3}},
				DrawRect{Rect: ltrb(0, 0, 10, 10)},
				Restore{},
			},
			want: ltrb(0, 0, 50, 50),
		},
		{
			name: "nested save inside layer",
			ops: []Op{
				Translate{TX: 10, TY: 10},
				SaveLayer{},
				Save{},
				Scale{SX: 2, SY: 2},
				DrawRect{Rect: ltrb(0, 0, 5, 5)},
				Restore{},
				Restore{},
			},
			want: ltrb(10, 10, 20, 20),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calculate(t, tt.ops)
			if got := c.IsUnbounded(); got != tt.wantUnbounded {
				t.Fatalf("IsUnbounded() = %v, want %v", got, tt.wantUnbounded)
			}
			if got := c.Bounds(); !rectNear(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsLayerQueries(t *testing.T) {
	c := NewBoundsCalculator()
	c.Apply(Save{})
	c.Apply(DrawRect{Rect: ltrb(0, 0, 10, 10)})
	if got := c.Depth(); got != 1 {
		t.Errorf("Depth() = %d, want 1", got)
	}
	if got, want := c.LayerBounds(), ltrb(0, 0, 10, 10); got != want {
		t.Errorf("LayerBounds() = %v, want %v", got, want)
	}
	c.Apply(SaveLayer{})
	if got := c.LayerBounds(); !got.IsEmpty() {
		t.Errorf("LayerBounds() in fresh layer = %v, want empty", got)
	}
	c.Apply(DrawPaint{})
	if !c.LayerIsUnbounded() {
		t.Error("LayerIsUnbounded() = false after DrawPaint, want true")
	}
	c.Apply(Restore{})
	c.Apply(Restore{})
	if got := c.Depth(); got != 0 {
		t.Errorf("Depth() = %d, want 0", got)
	}
}

// =============================================================================
// Transforms
// =============================================================================

func TestBoundsTransformComposition(t *testing.T) {
	c := NewBoundsCalculator()
	c.Apply(Translate{TX: 5, TY: 7})
	c.Apply(Scale{SX: 2, SY: 2})
	c.Apply(Rotate{Radians: math.Pi / 2})

	want := TranslateMatrix(5, 7).Concat(ScaleMatrix(2, 2)).Concat(RotateMatrix(math.Pi / 2))
	for _, p := range []Point{Pt(0, 0), Pt(1, 0), Pt(3, -4)} {
		got := c.Matrix().MapPoint(p)
		exp := want.MapPoint(p)
		if math.Abs(got.X-exp.X) > boundsEpsilon || math.Abs(got.Y-exp.Y) > boundsEpsilon {
			t.Errorf("MapPoint(%v) = %v, want %v", p, got, exp)
		}
	}
	// (1, 0) rotates to (0, 1), scales to (0, 2), then translates.
	if got := c.Matrix().MapPoint(Pt(1, 0)); math.Abs(got.X-5) > boundsEpsilon || math.Abs(got.Y-9) > boundsEpsilon {
		t.Errorf("MapPoint(1, 0) = %v, want (5, 9)", got)
	}
}

// =============================================================================
// Balance and contract violations
// =============================================================================

func TestBoundsSaveRestoreBalance(t *testing.T) {
	c := NewBoundsCalculator()
	for range 5 {
		c.Apply(Save{})
		c.Apply(SaveLayer{})
	}
	for range 10 {
		c.Apply(Restore{})
	}
	if got := c.Depth(); got != 0 {
		t.Errorf("Depth() = %d, want 0", got)
	}
	if !c.Matrix().IsIdentity() {
		t.Error("Matrix() is not identity after balanced restores")
	}
}

func TestBoundsRestoreAtRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Restore() at root did not panic")
		}
	}()
	NewBoundsCalculator().Restore()
}

func TestBoundsWithOpenScopePanics(t *testing.T) {
	c := NewBoundsCalculator()
	c.Apply(Save{})
	defer func() {
		if recover() == nil {
			t.Error("Bounds() with open save did not panic")
		}
	}()
	c.Bounds()
}

// =============================================================================
// Observer and containment
// =============================================================================

func TestBoundsOpObserverContainment(t *testing.T) {
	var seen []OpBounds
	c := NewBoundsCalculator(WithOpObserver(func(ob OpBounds) {
		seen = append(seen, ob)
	}))
	c.Process([]Op{
		SetStyle{Style: StyleStroke},
		SetStrokeWidth{Width: 2},
		DrawRect{Rect: ltrb(0, 0, 10, 10)},
		Save{},
		Translate{TX: 30, TY: 0},
		DrawCircle{Center: Pt(0, 0), Radius: 5},
		Restore{},
		ClipRect{Rect: ltrb(0, 0, 100, 100)},
		DrawLine{P0: Pt(-10, 50), P1: Pt(200, 50)},
	})

	if len(seen) != 3 {
		t.Fatalf("observer called %d times, want 3", len(seen))
	}
	wantIndex := []int{2, 5, 8}
	for i, ob := range seen {
		if ob.Index != wantIndex[i] {
			t.Errorf("seen[%d].Index = %d, want %d", i, ob.Index, wantIndex[i])
		}
	}
	if got, want := seen[1].Depth, 1; got != want {
		t.Errorf("seen[1].Depth = %d, want %d", got, want)
	}
	if got, want := seen[2].Bounds, ltrb(0, 49, 100, 51); !rectNear(got, want) {
		t.Errorf("clipped line bounds = %v, want %v", got, want)
	}

	final := c.Bounds()
	var union Rect
	for _, ob := range seen {
		if !final.Contains(ob.Bounds) {
			t.Errorf("final bounds %v do not contain op %d bounds %v", final, ob.Index, ob.Bounds)
		}
		union = union.Union(ob.Bounds)
	}
	if !rectNear(union, final) {
		t.Errorf("union of op bounds = %v, want %v", union, final)
	}
}

// =============================================================================
// Opacity and reset
// =============================================================================

func TestBoundsOpacityInheritance(t *testing.T) {
	c := NewBoundsCalculator(WithOpacity(0.5))
	c.Apply(SetColor{Color: Red})
	if got := c.Paint().Color().A; got != 0.5 {
		t.Errorf("Color().A = %v, want 0.5", got)
	}
	c.Apply(SaveLayer{WithAttributes: true})
	if got := c.Paint().Color().A; got != 1 {
		t.Errorf("Color().A inside layer = %v, want 1", got)
	}
	c.Apply(Save{})
	if got := c.Paint().Color().A; got != 1 {
		t.Errorf("Color().A inside nested save = %v, want 1", got)
	}
	c.Apply(Restore{})
	c.Apply(Restore{})
	if got := c.Paint().Color().A; got != 0.5 {
		t.Errorf("Color().A after restore = %v, want 0.5", got)
	}
}

func TestBoundsReset(t *testing.T) {
	c := NewBoundsCalculator(WithCullRect(ltrb(0, 0, 10, 10)))
	c.Process([]Op{Translate{TX: 3, TY: 3}, DrawRect{Rect: ltrb(0, 0, 2, 2)}, Save{}})
	c.Reset()
	if got := c.Depth(); got != 0 {
		t.Errorf("Depth() after Reset = %d, want 0", got)
	}
	if !c.Matrix().IsIdentity() {
		t.Error("Matrix() after Reset is not identity")
	}
	if got := c.Bounds(); !got.IsEmpty() {
		t.Errorf("Bounds() after Reset = %v, want empty", got)
	}
	if clip, ok := c.ClipBounds(); !ok || clip != ltrb(0, 0, 10, 10) {
		t.Errorf("ClipBounds() after Reset = %v, %v, want cull rect", clip, ok)
	}
}

func TestPaintNopsOnTransparency(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Op
		want  bool
	}{
		{"default", nil, true},
		{"dst over", []Op{SetBlendMode{Mode: BlendDstOver}}, true},
		{"src", []Op{SetBlendMode{Mode: BlendSrc}}, false},
		{"clear", []Op{SetBlendMode{Mode: BlendClear}}, false},
		{"modulate", []Op{SetBlendMode{Mode: BlendModulate}}, false},
		{"invert colors", []Op{SetInvertColors{Invert: true}}, true},
		{"opaque blend color filter", []Op{SetColorFilter{Filter: BlendColorFilter{Color: Red, Mode: BlendSrc}}}, false},
		{"custom blender", []Op{SetBlender{Blender: customBlender{}}}, false},
		{"saturation filter", []Op{SetColorFilter{Filter: SaturationColorFilter(0.5)}}, true},
		{"bounded image filter", []Op{SetImageFilter{Filter: BlurImageFilter{SigmaX: 1, SigmaY: 1}}}, true},
		{"unbounded image filter", []Op{SetImageFilter{Filter: UnboundedImageFilter{}}}, false},
		{"mode blender", []Op{SetBlender{Blender: ModeBlender(BlendScreen)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calculate(t, tt.attrs)
			if got := c.PaintNopsOnTransparency(); got != tt.want {
				t.Errorf("PaintNopsOnTransparency() = %v, want %v", got, tt.want)
			}
		})
	}
}
