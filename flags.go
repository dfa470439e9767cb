package displaylist

// AttributeFlags describe which paint attributes influence the bounds of an
// operation. Draw handlers pass one of the predefined sets to
// [BoundsCalculator.AccumulateOpBounds].
type AttributeFlags uint16

const (
	flagIgnoresPaint AttributeFlags = 1 << iota
	flagIsGeometric
	flagUsesStyle
	flagAlwaysStroked
	flagMayHaveAcuteJoins
	flagMayHaveDiagonalCaps
	flagUsesMaskFilter
	flagUsesImageFilter
)

const (
	baseFlags         = flagUsesImageFilter
	geometricFlags    = baseFlags | flagIsGeometric | flagUsesMaskFilter
	strokeOrFillFlags = geometricFlags | flagUsesStyle
	strokedFlags      = geometricFlags | flagAlwaysStroked
)

// Attribute flag sets per operation type.
const (
	DrawLineFlags             = strokedFlags | flagMayHaveDiagonalCaps
	DrawHVLineFlags           = strokedFlags
	DrawRectFlags             = strokeOrFillFlags
	DrawOvalFlags             = strokeOrFillFlags
	DrawCircleFlags           = strokeOrFillFlags
	DrawRRectFlags            = strokeOrFillFlags
	DrawDRRectFlags           = strokeOrFillFlags
	DrawPathFlags             = strokeOrFillFlags | flagMayHaveAcuteJoins | flagMayHaveDiagonalCaps
	DrawArcNoCenterFlags      = strokeOrFillFlags | flagMayHaveDiagonalCaps
	DrawArcWithCenterFlags    = strokeOrFillFlags | flagMayHaveAcuteJoins
	DrawPointsAsPointsFlags   = strokedFlags | flagMayHaveDiagonalCaps
	DrawPointsAsLinesFlags    = strokedFlags | flagMayHaveDiagonalCaps
	DrawPointsAsPolygonFlags  = strokedFlags | flagMayHaveAcuteJoins | flagMayHaveDiagonalCaps
	DrawVerticesFlags         = baseFlags
	DrawImageFlags            = flagIgnoresPaint
	DrawImageWithPaintFlags   = baseFlags | flagUsesMaskFilter
	DrawAtlasFlags            = flagIgnoresPaint
	DrawAtlasWithPaintFlags   = baseFlags
	DrawPictureFlags          = flagIgnoresPaint
	DrawPictureWithPaintFlags = baseFlags
	DrawDisplayListFlags      = flagIgnoresPaint
	DrawTextBlobFlags         = strokeOrFillFlags | flagMayHaveAcuteJoins
	DrawShadowFlags           = flagIgnoresPaint
)

// IgnoresPaint reports whether no paint attribute affects the op.
func (f AttributeFlags) IgnoresPaint() bool { return f&flagIgnoresPaint != 0 }

// IsGeometric reports whether path effects and stroking apply.
func (f AttributeFlags) IsGeometric() bool { return f&flagIsGeometric != 0 }

// IsStroked reports whether the op is stroked under the given style.
func (f AttributeFlags) IsStroked(style Style) bool {
	if f&flagAlwaysStroked != 0 {
		return true
	}
	return f&flagUsesStyle != 0 && style != StyleFill
}

// MayHaveAcuteJoins reports whether miter joins can extend past half the
// stroke width.
func (f AttributeFlags) MayHaveAcuteJoins() bool { return f&flagMayHaveAcuteJoins != 0 }

// MayHaveDiagonalCaps reports whether square caps can extend diagonally.
func (f AttributeFlags) MayHaveDiagonalCaps() bool { return f&flagMayHaveDiagonalCaps != 0 }

// AppliesMaskFilter reports whether mask filters and mask blurs apply.
func (f AttributeFlags) AppliesMaskFilter() bool { return f&flagUsesMaskFilter != 0 }

// AppliesImageFilter reports whether the paint image filter applies.
func (f AttributeFlags) AppliesImageFilter() bool { return f&flagUsesImageFilter != 0 }
