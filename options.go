package displaylist

// CalculatorOption configures a BoundsCalculator during creation.
//
// Example:
//
//	c := displaylist.NewBoundsCalculator(
//	    displaylist.WithCullRect(displaylist.RectXYWH(0, 0, 800, 600)),
//	)
type CalculatorOption func(*calculatorOptions)

// calculatorOptions holds optional configuration for BoundsCalculator.
type calculatorOptions struct {
	cull     *Rect
	opacity  float64
	observer func(OpBounds)
}

// defaultCalculatorOptions returns the default calculator options.
func defaultCalculatorOptions() calculatorOptions {
	return calculatorOptions{opacity: 1}
}

// WithCullRect sets an initial device-space clip. Ops that cannot be
// bounded then fill the cull rect instead of making the stream unbounded.
func WithCullRect(r Rect) CalculatorOption {
	return func(o *calculatorOptions) {
		o.cull = &r
	}
}

// WithOpacity sets the group opacity inherited from an enclosing layer.
// It is folded into the effective paint color and reset inside save-layers
// that render with attributes.
func WithOpacity(opacity float64) CalculatorOption {
	return func(o *calculatorOptions) {
		o.opacity = opacity
	}
}

// WithOpObserver registers fn to receive the bounds of every draw op as it
// is applied.
func WithOpObserver(fn func(OpBounds)) CalculatorOption {
	return func(o *calculatorOptions) {
		o.observer = fn
	}
}

// BuilderOption configures a Builder during creation.
type BuilderOption func(*builderOptions)

// builderOptions holds optional configuration for Builder.
type builderOptions struct {
	cull *Rect
}

// WithBuilderCullRect records a cull rect with the built display list; its
// bounds are computed within it.
func WithBuilderCullRect(r Rect) BuilderOption {
	return func(o *builderOptions) {
		o.cull = &r
	}
}
