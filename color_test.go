package displaylist

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in     string
		want   Color
		wantOK bool
	}{
		{"#fff", White, true},
		{"f00", Red, true},
		{"#00ff00", Green, true},
		{"0000ff80", Color{B: 1, A: 128.0 / 255}, true},
		{"#0000", Transparent, true},
		{"#ggg", Black, false},
		{"12345", Black, false},
		{"", Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Hex(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Hex(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestARGB(t *testing.T) {
	if got := ARGB(0xffff0000); got != Red {
		t.Errorf("ARGB(0xffff0000) = %v, want red", got)
	}
	if got := ARGB(0x00000000); !got.IsTransparent() {
		t.Errorf("ARGB(0) = %v, want transparent", got)
	}
}

func TestColorConversions(t *testing.T) {
	c := FromColor(color.RGBA{R: 128, A: 128})
	if got := c.NRGBA(); got != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("NRGBA() = %v, want {255 0 0 128}", got)
	}
	p := RGB(1, 0.5, 0).WithAlpha(0.5).Premultiply()
	if p != [4]float64{0.5, 0.25, 0, 0.5} {
		t.Errorf("Premultiply() = %v", p)
	}
	if got := FromPremultiplied(p); got != RGB(1, 0.5, 0).WithAlpha(0.5) {
		t.Errorf("FromPremultiplied() = %v", got)
	}
	if got := FromPremultiplied([4]float64{}); got != Transparent {
		t.Errorf("FromPremultiplied(zero) = %v, want transparent", got)
	}
}

func TestColorAlpha(t *testing.T) {
	c := Red.ModulateOpacity(0.25)
	if c.A != 0.25 || c.IsOpaque() || c.IsTransparent() {
		t.Errorf("ModulateOpacity(0.25) = %v", c)
	}
	if !White.IsOpaque() {
		t.Error("White.IsOpaque() = false")
	}
}
