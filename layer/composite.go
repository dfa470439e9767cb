package layer

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist"
)

// CompositeStep draws one raster cache image into the frame. Steps are
// interleaved with the recorded frame: a step is drawn after the first
// OpIndex ops of the frame's display list and before the rest.
type CompositeStep struct {
	OpIndex int
	Image   *CachedImage
	// Dst is the device-space destination rectangle and Clip the
	// device-space clip to draw it with.
	Dst     displaylist.Rect
	Clip    displaylist.Rect
	Opacity float64
	Blend   gputypes.BlendState
}

// pdFactors are the premultiplied source and destination factors of the
// Porter-Duff modes that fixed-function blending can express.
var pdFactors = map[displaylist.BlendMode][2]gputypes.BlendFactor{
	displaylist.BlendClear:    {gputypes.BlendFactorZero, gputypes.BlendFactorZero},
	displaylist.BlendSrc:      {gputypes.BlendFactorOne, gputypes.BlendFactorZero},
	displaylist.BlendDst:      {gputypes.BlendFactorZero, gputypes.BlendFactorOne},
	displaylist.BlendSrcOver:  {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha},
	displaylist.BlendDstOver:  {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne},
	displaylist.BlendSrcIn:    {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero},
	displaylist.BlendDstIn:    {gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha},
	displaylist.BlendSrcOut:   {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero},
	displaylist.BlendDstOut:   {gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha},
	displaylist.BlendSrcATop:  {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	displaylist.BlendDstATop:  {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha},
	displaylist.BlendXor:      {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	displaylist.BlendPlus:     {gputypes.BlendFactorOne, gputypes.BlendFactorOne},
	displaylist.BlendScreen:   {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrc},
	displaylist.BlendModulate: {gputypes.BlendFactorZero, gputypes.BlendFactorSrc},
}

// CompositeBlendState returns the fixed-function blend state for mode on a
// premultiplied-alpha target. It returns false for the advanced modes,
// which need a shader that reads the destination.
func CompositeBlendState(mode displaylist.BlendMode) (gputypes.BlendState, bool) {
	f, ok := pdFactors[mode]
	if !ok {
		return gputypes.BlendState{}, false
	}
	color := gputypes.BlendComponent{SrcFactor: f[0], DstFactor: f[1], Operation: gputypes.BlendOperationAdd}
	alpha := color
	// Color factors reference whole colors; alpha uses the alpha channel.
	switch mode {
	case displaylist.BlendScreen:
		alpha.DstFactor = gputypes.BlendFactorOneMinusSrcAlpha
	case displaylist.BlendModulate:
		alpha.DstFactor = gputypes.BlendFactorSrcAlpha
	}
	return gputypes.BlendState{Color: color, Alpha: alpha}, true
}
