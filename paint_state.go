package displaylist

// opacityEntry is one SaveOpacity record.
type opacityEntry struct {
	opacity float64
	reset   bool
}

// PaintState tracks the paint attributes set by attribute ops, together
// with an inherited group opacity that scopes can fold into their own
// compositing.
type PaintState struct {
	antiAlias    bool
	style        Style
	baseColor    Color
	color        Color
	opacity      float64
	strokeWidth  float64
	strokeMiter  float64
	strokeCap    LineCap
	strokeJoin   LineJoin
	blendMode    BlendMode
	blender      Blender // set only for blenders with no plain mode
	colorFilter  ColorFilter
	invertColors bool
	imageFilter  ImageFilter
	maskFilter   MaskFilter
	maskBlur     BlurMaskFilter
	hasMaskBlur  bool
	pathEffect   PathEffect

	opacityStack []opacityEntry
}

// NewPaintState returns default attributes with the given inherited
// opacity, clamped to [0, 1].
func NewPaintState(opacity float64) *PaintState {
	s := &PaintState{
		baseColor:   Black,
		opacity:     clamp01(opacity),
		strokeMiter: DefaultMiterLimit,
	}
	s.applyColor()
	return s
}

func (s *PaintState) applyColor() {
	s.color = s.baseColor.ModulateOpacity(s.opacity)
}

// SetAntiAlias sets anti-aliasing.
func (s *PaintState) SetAntiAlias(aa bool) { s.antiAlias = aa }

// SetStyle sets the draw style.
func (s *PaintState) SetStyle(style Style) { s.style = style }

// SetColor sets the base color. The effective color also carries the
// current opacity.
func (s *PaintState) SetColor(c Color) {
	s.baseColor = c
	s.applyColor()
}

// SetStrokeWidth sets the stroke width; 0 means hairline.
func (s *PaintState) SetStrokeWidth(w float64) { s.strokeWidth = w }

// SetStrokeMiter sets the miter limit.
func (s *PaintState) SetStrokeMiter(limit float64) { s.strokeMiter = limit }

// SetStrokeCap sets the line cap.
func (s *PaintState) SetStrokeCap(c LineCap) { s.strokeCap = c }

// SetStrokeJoin sets the line join.
func (s *PaintState) SetStrokeJoin(j LineJoin) { s.strokeJoin = j }

// SetBlendMode sets a plain blend mode and clears any custom blender.
func (s *PaintState) SetBlendMode(m BlendMode) {
	s.blendMode = m
	s.blender = nil
}

// SetBlender sets a blender. Blenders equivalent to a plain mode are stored
// as that mode; nil restores source-over.
func (s *PaintState) SetBlender(b Blender) {
	if b == nil {
		s.SetBlendMode(BlendSrcOver)
		return
	}
	if m, ok := b.AsBlendMode(); ok {
		s.SetBlendMode(m)
		return
	}
	s.blendMode = BlendSrcOver
	s.blender = b
}

// SetColorFilter sets the color filter.
func (s *PaintState) SetColorFilter(f ColorFilter) { s.colorFilter = f }

// SetInvertColors toggles color inversion.
func (s *PaintState) SetInvertColors(invert bool) { s.invertColors = invert }

// SetImageFilter sets the image filter.
func (s *PaintState) SetImageFilter(f ImageFilter) { s.imageFilter = f }

// SetMaskFilter sets an explicit mask filter and clears any mask blur.
func (s *PaintState) SetMaskFilter(f MaskFilter) {
	s.maskFilter = f
	s.hasMaskBlur = false
}

// SetMaskBlurFilter sets a mask blur by style and sigma and clears any
// explicit mask filter. A non-positive sigma clears the blur.
func (s *PaintState) SetMaskBlurFilter(style BlurStyle, sigma float64) {
	s.maskFilter = nil
	s.maskBlur = BlurMaskFilter{Style: style, Sigma: sigma}
	s.hasMaskBlur = sigma > 0
}

// SetPathEffect sets the path effect.
func (s *PaintState) SetPathEffect(e PathEffect) { s.pathEffect = e }

// AntiAlias returns the anti-alias setting.
func (s *PaintState) AntiAlias() bool { return s.antiAlias }

// Style returns the draw style.
func (s *PaintState) Style() Style { return s.style }

// Color returns the effective color: the base color with its alpha scaled
// by the current opacity.
func (s *PaintState) Color() Color { return s.color }

// BaseColor returns the color as last set.
func (s *PaintState) BaseColor() Color { return s.baseColor }

// Opacity returns the current inherited opacity.
func (s *PaintState) Opacity() float64 { return s.opacity }

// StrokeWidth returns the stroke width.
func (s *PaintState) StrokeWidth() float64 { return s.strokeWidth }

// StrokeMiter returns the miter limit.
func (s *PaintState) StrokeMiter() float64 { return s.strokeMiter }

// StrokeCap returns the line cap.
func (s *PaintState) StrokeCap() LineCap { return s.strokeCap }

// StrokeJoin returns the line join.
func (s *PaintState) StrokeJoin() LineJoin { return s.strokeJoin }

// BlendMode returns the plain blend mode. ok is false when a custom
// blender is active.
func (s *PaintState) BlendMode() (mode BlendMode, ok bool) {
	return s.blendMode, s.blender == nil
}

// ColorFilter returns the color filter as set, without inversion.
func (s *PaintState) ColorFilter() ColorFilter { return s.colorFilter }

// InvertColors returns the invert-colors setting.
func (s *PaintState) InvertColors() bool { return s.invertColors }

// ImageFilter returns the image filter.
func (s *PaintState) ImageFilter() ImageFilter { return s.imageFilter }

// MaskFilter returns the explicit mask filter.
func (s *PaintState) MaskFilter() MaskFilter { return s.maskFilter }

// MaskBlur returns the mask blur set by SetMaskBlurFilter.
func (s *PaintState) MaskBlur() (BlurMaskFilter, bool) { return s.maskBlur, s.hasMaskBlur }

// PathEffect returns the path effect.
func (s *PaintState) PathEffect() PathEffect { return s.pathEffect }

// SaveOpacity opens an opacity scope. When resetAndRestore is set and the
// current opacity is not already opaque, the opacity becomes 1 for the
// scope so that content inside a group is not attenuated twice; the group
// applies it once when it composites.
func (s *PaintState) SaveOpacity(resetAndRestore bool) {
	if s.opacity >= 1 {
		resetAndRestore = false
	}
	s.opacityStack = append(s.opacityStack, opacityEntry{opacity: s.opacity, reset: resetAndRestore})
	if resetAndRestore {
		s.opacity = 1
		s.applyColor()
	}
}

// RestoreOpacity closes the scope opened by the matching SaveOpacity. It
// panics when no scope is open.
func (s *PaintState) RestoreOpacity() {
	n := len(s.opacityStack)
	if n == 0 {
		panic("displaylist: opacity restore without matching save")
	}
	e := s.opacityStack[n-1]
	s.opacityStack = s.opacityStack[:n-1]
	if e.reset {
		s.opacity = e.opacity
		s.applyColor()
	}
}

// MakeColorFilter returns the color filter that actually applies: the set
// filter, preceded by the inversion matrix when invert-colors is on.
func (s *PaintState) MakeColorFilter() ColorFilter {
	if !s.invertColors {
		return s.colorFilter
	}
	inv := InvertColorFilter()
	if s.colorFilter == nil {
		return inv
	}
	return ComposeColorFilter{Outer: s.colorFilter, Inner: inv}
}

// NopsOnTransparency reports whether painting transparent black with the
// current attributes leaves the destination untouched. Save-layers whose
// paint satisfies this can be bounded by their children rather than by the
// clip.
func (s *PaintState) NopsOnTransparency() bool {
	if s.imageFilter != nil && !s.imageFilter.CanComputeFastBounds() {
		return false
	}
	if cf := s.MakeColorFilter(); cf != nil && cf.ModifiesTransparentBlack() {
		return false
	}
	if s.blender != nil {
		return false
	}
	return s.blendMode.NopsOnTransparentSource()
}
