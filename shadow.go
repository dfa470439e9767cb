package displaylist

// Shadow light model: a light of the given radius sits lightHeight logical
// pixels above the canvas.
const (
	shadowLightHeight = 600.0
	shadowLightRadius = 800.0
)

// ComputeShadowBounds returns the extent of the shadow cast by content with
// the given bounds raised to elevation, for a device pixel ratio dpr.
//
// Looking at one axis, the penumbra widens the shadow by E = l*t where l is
// the elevation and t = (r*dpr + w/2) / h is the tangent of the angle
// between the edge of the light (radius r, height h) and the far edge of
// the content of width w.
func ComputeShadowBounds(bounds Rect, elevation, dpr float64) Rect {
	if elevation <= 0 {
		return bounds
	}
	tx := (shadowLightRadius*dpr + bounds.Width()*0.5) / shadowLightHeight
	ty := (shadowLightRadius*dpr + bounds.Height()*0.5) / shadowLightHeight
	return bounds.Outset(elevation*tx, elevation*ty)
}
