package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/text"
)

var (
	errUnknownOp = errors.New("dlbounds: unknown op")
	errBadArgs   = errors.New("dlbounds: bad arguments")
	errBadValue  = errors.New("dlbounds: bad value")
)

// script is the YAML document read by dlbounds:
//
//	cull: [0, 0, 800, 600]
//	ops:
//	  - op: translate
//	    x: 10
//	  - op: drawRect
//	    rect: [0, 0, 100, 50]
//	    paint: {style: stroke, strokeWidth: 4}
type script struct {
	Cull []float64 `yaml:"cull"`
	Ops  []opSpec  `yaml:"ops"`
}

type opSpec struct {
	Op string `yaml:"op"`

	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Degrees float64 `yaml:"degrees"`

	Rect   []float64   `yaml:"rect"`
	Radius float64     `yaml:"radius"`
	Center []float64   `yaml:"center"`
	From   []float64   `yaml:"from"`
	To     []float64   `yaml:"to"`
	Points [][]float64 `yaml:"points"`
	Mode   string      `yaml:"mode"`
	Close  bool        `yaml:"close"`

	Start     float64 `yaml:"start"`
	Sweep     float64 `yaml:"sweep"`
	UseCenter bool    `yaml:"useCenter"`

	Difference bool `yaml:"difference"`
	AntiAlias  bool `yaml:"antiAlias"`

	Color string `yaml:"color"`
	Blend string `yaml:"blend"`

	Text string  `yaml:"text"`
	Size float64 `yaml:"size"`

	Elevation   float64 `yaml:"elevation"`
	DPR         float64 `yaml:"dpr"`
	Transparent bool    `yaml:"transparent"`

	BackdropBlur float64    `yaml:"backdropBlur"`
	Paint        *paintSpec `yaml:"paint"`
}

type paintSpec struct {
	Color       string  `yaml:"color"`
	Style       string  `yaml:"style"`
	StrokeWidth float64 `yaml:"strokeWidth"`
	Cap         string  `yaml:"cap"`
	Join        string  `yaml:"join"`
	Miter       float64 `yaml:"miter"`
	Blend       string  `yaml:"blend"`
	AntiAlias   bool    `yaml:"antiAlias"`
	Invert      bool    `yaml:"invert"`
	MaskBlur    float64 `yaml:"maskBlur"`
	Blur        float64 `yaml:"blur"`
	Dilate      float64 `yaml:"dilate"`
}

func parseScript(data []byte) (*script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// cullRect returns the script's cull rect, if it has one.
func (s *script) cullRect() (*displaylist.Rect, error) {
	if len(s.Cull) == 0 {
		return nil, nil
	}
	r, err := rectArg(s.Cull)
	if err != nil {
		return nil, fmt.Errorf("cull: %w", err)
	}
	return &r, nil
}

// parseCullFlag parses "x,y,w,h".
func parseCullFlag(v string) (displaylist.Rect, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return displaylist.Rect{}, fmt.Errorf("%w: cull %q, want x,y,w,h", errBadValue, v)
	}
	var f [4]float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return displaylist.Rect{}, fmt.Errorf("%w: cull %q: %w", errBadValue, v, err)
		}
		f[i] = n
	}
	return displaylist.RectXYWH(f[0], f[1], f[2], f[3]), nil
}

var regularFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// recorder replays a script into a builder.
type recorder struct {
	b      *displaylist.Builder
	shaper *text.Shaper
}

// record builds the script's display list. cull overrides the script's own
// cull rect when non-nil.
func record(s *script, cull *displaylist.Rect) (*displaylist.DisplayList, error) {
	if cull == nil {
		var err error
		if cull, err = s.cullRect(); err != nil {
			return nil, err
		}
	}
	var opts []displaylist.BuilderOption
	if cull != nil {
		opts = append(opts, displaylist.WithBuilderCullRect(*cull))
	}
	r := &recorder{b: displaylist.NewBuilder(opts...), shaper: text.NewShaper()}
	for i, o := range s.Ops {
		if err := r.apply(o); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, o.Op, err)
		}
	}
	return r.b.Build(), nil
}

func (r *recorder) apply(o opSpec) error {
	b := r.b
	p, err := o.Paint.resolve()
	if err != nil {
		return err
	}

	switch o.Op {
	case "save":
		b.Save()
	case "saveLayer":
		var bounds *displaylist.Rect
		if len(o.Rect) > 0 {
			rect, err := rectArg(o.Rect)
			if err != nil {
				return err
			}
			bounds = &rect
		}
		var backdrop displaylist.ImageFilter
		if o.BackdropBlur > 0 {
			backdrop = displaylist.BlurImageFilter{SigmaX: o.BackdropBlur, SigmaY: o.BackdropBlur}
		}
		b.SaveLayer(bounds, p, backdrop)
	case "restore":
		b.Restore()
	case "translate":
		b.Translate(o.X, o.Y)
	case "scale":
		b.Scale(o.X, o.Y)
	case "rotate":
		b.Rotate(o.Degrees * math.Pi / 180)
	case "skew":
		b.Skew(o.X, o.Y)
	case "resetTransform":
		b.TransformReset()

	case "clipRect", "clipOval":
		rect, err := rectArg(o.Rect)
		if err != nil {
			return err
		}
		op := displaylist.ClipIntersect
		if o.Difference {
			op = displaylist.ClipDifference
		}
		if o.Op == "clipRect" {
			b.ClipRect(rect, op, o.AntiAlias)
		} else {
			path := displaylist.NewPath()
			path.Ellipse(rect.Center().X, rect.Center().Y, rect.Width()/2, rect.Height()/2)
			b.ClipPath(path, op, o.AntiAlias)
		}

	case "drawPaint":
		b.DrawPaint(p)
	case "drawColor":
		c, err := colorArg(o.Color)
		if err != nil {
			return err
		}
		mode, err := blendArg(o.Blend)
		if err != nil {
			return err
		}
		b.DrawColor(c, mode)
	case "drawLine":
		from, err := pointArg(o.From)
		if err != nil {
			return err
		}
		to, err := pointArg(o.To)
		if err != nil {
			return err
		}
		b.DrawLine(from, to, p)
	case "drawRect", "drawOval", "drawRRect":
		rect, err := rectArg(o.Rect)
		if err != nil {
			return err
		}
		switch o.Op {
		case "drawRect":
			b.DrawRect(rect, p)
		case "drawOval":
			b.DrawOval(rect, p)
		default:
			b.DrawRRect(displaylist.RRectXY(rect, o.Radius, o.Radius), p)
		}
	case "drawCircle":
		c, err := pointArg(o.Center)
		if err != nil {
			return err
		}
		b.DrawCircle(c, o.Radius, p)
	case "drawArc":
		rect, err := rectArg(o.Rect)
		if err != nil {
			return err
		}
		b.DrawArc(rect, o.Start*math.Pi/180, o.Sweep*math.Pi/180, o.UseCenter, p)
	case "drawPoints":
		pts, err := pointsArg(o.Points)
		if err != nil {
			return err
		}
		mode, err := pointModeArg(o.Mode)
		if err != nil {
			return err
		}
		b.DrawPoints(mode, pts, p)
	case "drawPath":
		path, err := polygonArg(o.Points, o.Close)
		if err != nil {
			return err
		}
		b.DrawPath(path, p)
	case "drawShadow":
		path, err := polygonArg(o.Points, true)
		if err != nil {
			return err
		}
		c, err := colorArg(o.Color)
		if err != nil {
			return err
		}
		b.DrawShadow(path, c, o.Elevation, o.Transparent, o.DPR)
	case "drawText":
		return r.drawText(o, p)
	default:
		return fmt.Errorf("%w %q", errUnknownOp, o.Op)
	}
	return nil
}

func (r *recorder) drawText(o opSpec, p *displaylist.Paint) error {
	src, err := regularFont()
	if err != nil {
		return err
	}
	size := o.Size
	if size <= 0 {
		size = 16
	}
	blob, err := r.shaper.Shape(o.Text, src.Face(size))
	if err != nil {
		return err
	}
	r.b.DrawTextBlob(blob, o.X, o.Y, p)
	return nil
}

// resolve converts the spec into a paint; a nil spec yields nil, the
// default paint.
func (ps *paintSpec) resolve() (*displaylist.Paint, error) {
	if ps == nil {
		return nil, nil
	}
	p := displaylist.NewPaint()
	if ps.Color != "" {
		c, err := colorArg(ps.Color)
		if err != nil {
			return nil, err
		}
		p.Color = c
	}
	switch ps.Style {
	case "", "fill":
	case "stroke":
		p.Style = displaylist.StyleStroke
	case "strokeAndFill":
		p.Style = displaylist.StyleStrokeAndFill
	default:
		return nil, fmt.Errorf("%w: style %q", errBadValue, ps.Style)
	}
	p.StrokeWidth = ps.StrokeWidth
	switch ps.Cap {
	case "", "butt":
	case "round":
		p.StrokeCap = displaylist.LineCapRound
	case "square":
		p.StrokeCap = displaylist.LineCapSquare
	default:
		return nil, fmt.Errorf("%w: cap %q", errBadValue, ps.Cap)
	}
	switch ps.Join {
	case "", "miter":
	case "round":
		p.StrokeJoin = displaylist.LineJoinRound
	case "bevel":
		p.StrokeJoin = displaylist.LineJoinBevel
	default:
		return nil, fmt.Errorf("%w: join %q", errBadValue, ps.Join)
	}
	if ps.Miter > 0 {
		p.StrokeMiter = ps.Miter
	}
	mode, err := blendArg(ps.Blend)
	if err != nil {
		return nil, err
	}
	p.BlendMode = mode
	p.AntiAlias = ps.AntiAlias
	p.InvertColors = ps.Invert
	if ps.MaskBlur > 0 {
		p.MaskFilter = displaylist.BlurMaskFilter{Style: displaylist.BlurNormal, Sigma: ps.MaskBlur}
	}
	switch {
	case ps.Blur > 0 && ps.Dilate > 0:
		p.ImageFilter = displaylist.ComposeImageFilter{
			Outer: displaylist.BlurImageFilter{SigmaX: ps.Blur, SigmaY: ps.Blur},
			Inner: displaylist.DilateImageFilter{RadiusX: ps.Dilate, RadiusY: ps.Dilate},
		}
	case ps.Blur > 0:
		p.ImageFilter = displaylist.BlurImageFilter{SigmaX: ps.Blur, SigmaY: ps.Blur}
	case ps.Dilate > 0:
		p.ImageFilter = displaylist.DilateImageFilter{RadiusX: ps.Dilate, RadiusY: ps.Dilate}
	}
	return p, nil
}

func rectArg(v []float64) (displaylist.Rect, error) {
	if len(v) != 4 {
		return displaylist.Rect{}, fmt.Errorf("%w: rect needs [x, y, w, h], got %v", errBadArgs, v)
	}
	return displaylist.RectXYWH(v[0], v[1], v[2], v[3]), nil
}

func pointArg(v []float64) (displaylist.Point, error) {
	if len(v) != 2 {
		return displaylist.Point{}, fmt.Errorf("%w: point needs [x, y], got %v", errBadArgs, v)
	}
	return displaylist.Pt(v[0], v[1]), nil
}

func pointsArg(v [][]float64) ([]displaylist.Point, error) {
	pts := make([]displaylist.Point, len(v))
	for i, p := range v {
		pt, err := pointArg(p)
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

func polygonArg(v [][]float64, closed bool) (*displaylist.Path, error) {
	pts, err := pointsArg(v)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: path needs points", errBadArgs)
	}
	path := displaylist.NewPath()
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		path.LineTo(pt.X, pt.Y)
	}
	if closed {
		path.Close()
	}
	return path, nil
}

func colorArg(s string) (displaylist.Color, error) {
	if s == "" {
		return displaylist.Black, nil
	}
	c, ok := displaylist.Hex(s)
	if !ok {
		return displaylist.Color{}, fmt.Errorf("%w: color %q", errBadValue, s)
	}
	return c, nil
}

func blendArg(s string) (displaylist.BlendMode, error) {
	if s == "" {
		return displaylist.BlendSrcOver, nil
	}
	m, ok := displaylist.ParseBlendMode(s)
	if !ok {
		return 0, fmt.Errorf("%w: blend %q", errBadValue, s)
	}
	return m, nil
}

func pointModeArg(s string) (displaylist.PointMode, error) {
	switch s {
	case "", "points":
		return displaylist.PointModePoints, nil
	case "lines":
		return displaylist.PointModeLines, nil
	case "polygon":
		return displaylist.PointModePolygon, nil
	}
	return 0, fmt.Errorf("%w: point mode %q", errBadValue, s)
}
