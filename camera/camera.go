// Package camera provides the viewport and perspective origin for the star field.
package camera

// Camera describes the screen the field projects onto.
// Depth runs along the view axis; the projection origin is the viewport centre.
type Camera struct {
	// Viewport dimensions in logical pixels
	ViewportW, ViewportH float64

	// Projection origin (viewport centre)
	CenterX, CenterY float64

	// FocalLength controls perspective steepness: screen offset = local offset * focal / z
	FocalLength float64
}

// New creates a camera for the given viewport, centred on it.
func New(viewportW, viewportH, focalLength float64) *Camera {
	c := &Camera{FocalLength: focalLength}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates viewport dimensions and re-centres the projection origin.
// Negative sizes are treated as zero.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW < 0 {
		viewportW = 0
	}
	if viewportH < 0 {
		viewportH = 0
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.CenterX = viewportW / 2
	c.CenterY = viewportH / 2
}
