package displaylist

import "testing"

func TestPaintStateDefaults(t *testing.T) {
	s := NewPaintState(1)
	if s.Color() != Black {
		t.Errorf("Color() = %v, want black", s.Color())
	}
	if s.StrokeMiter() != DefaultMiterLimit {
		t.Errorf("StrokeMiter() = %v, want %v", s.StrokeMiter(), DefaultMiterLimit)
	}
	if mode, ok := s.BlendMode(); !ok || mode != BlendSrcOver {
		t.Errorf("BlendMode() = %v, %v, want SrcOver, true", mode, ok)
	}
	if s.Style() != StyleFill {
		t.Errorf("Style() = %v, want Fill", s.Style())
	}
}

func TestPaintStateOpacityScopes(t *testing.T) {
	s := NewPaintState(0.5)
	s.SetColor(RGB(1, 0, 0).WithAlpha(0.8))
	if got := s.Color().A; got != 0.4 {
		t.Errorf("Color().A = %v, want 0.4", got)
	}

	s.SaveOpacity(true)
	if got := s.Color().A; got != 0.8 {
		t.Errorf("Color().A in reset scope = %v, want 0.8", got)
	}
	s.SetColor(Green)
	if got := s.Color(); got != Green {
		t.Errorf("Color() in reset scope = %v, want green", got)
	}
	s.RestoreOpacity()
	if got := s.Color().A; got != 0.5 {
		t.Errorf("Color().A after restore = %v, want 0.5", got)
	}
	if got := s.BaseColor(); got != Green {
		t.Errorf("BaseColor() = %v, want green", got)
	}

	s.SaveOpacity(false)
	if got := s.Opacity(); got != 0.5 {
		t.Errorf("Opacity() in plain scope = %v, want 0.5", got)
	}
	s.RestoreOpacity()
}

func TestPaintStateOpaqueIgnoresReset(t *testing.T) {
	s := NewPaintState(1)
	s.SaveOpacity(true)
	s.SaveOpacity(true)
	s.RestoreOpacity()
	s.RestoreOpacity()
	if got := s.Opacity(); got != 1 {
		t.Errorf("Opacity() = %v, want 1", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("RestoreOpacity() without save did not panic")
		}
	}()
	s.RestoreOpacity()
}

func TestPaintStateMaskFilters(t *testing.T) {
	s := NewPaintState(1)
	s.SetMaskBlurFilter(BlurNormal, 3)
	if _, ok := s.MaskBlur(); !ok {
		t.Error("MaskBlur() ok = false after SetMaskBlurFilter")
	}
	s.SetMaskFilter(BlurMaskFilter{Style: BlurInner, Sigma: 1})
	if _, ok := s.MaskBlur(); ok {
		t.Error("MaskBlur() still set after SetMaskFilter")
	}
	s.SetMaskBlurFilter(BlurNormal, 0)
	if s.MaskFilter() != nil {
		t.Error("MaskFilter() not cleared by SetMaskBlurFilter")
	}
	if _, ok := s.MaskBlur(); ok {
		t.Error("MaskBlur() set for zero sigma")
	}
}

func TestPaintStateBlender(t *testing.T) {
	s := NewPaintState(1)
	s.SetBlender(ModeBlender(BlendXor))
	if mode, ok := s.BlendMode(); !ok || mode != BlendXor {
		t.Errorf("BlendMode() = %v, %v, want Xor, true", mode, ok)
	}
	s.SetBlender(customBlender{})
	if _, ok := s.BlendMode(); ok {
		t.Error("BlendMode() ok = true for custom blender")
	}
	s.SetBlender(nil)
	if mode, ok := s.BlendMode(); !ok || mode != BlendSrcOver {
		t.Errorf("BlendMode() = %v, %v after nil blender, want SrcOver", mode, ok)
	}
}

func TestPaintStateMakeColorFilter(t *testing.T) {
	s := NewPaintState(1)
	if s.MakeColorFilter() != nil {
		t.Error("MakeColorFilter() != nil for default paint")
	}

	s.SetInvertColors(true)
	if got := s.MakeColorFilter().FilterColor(White); got != RGB(0, 0, 0) {
		t.Errorf("inverted white = %v, want black", got)
	}

	// Invert runs first, then the set filter.
	s.SetColorFilter(BlendColorFilter{Color: Red, Mode: BlendSrc})
	if got := s.MakeColorFilter().FilterColor(White); got != Red {
		t.Errorf("composed filter(white) = %v, want red", got)
	}
	cf, ok := s.MakeColorFilter().(ComposeColorFilter)
	if !ok {
		t.Fatalf("MakeColorFilter() = %T, want ComposeColorFilter", s.MakeColorFilter())
	}
	if _, ok := cf.Inner.(MatrixColorFilter); !ok {
		t.Errorf("Inner = %T, want MatrixColorFilter", cf.Inner)
	}
}
