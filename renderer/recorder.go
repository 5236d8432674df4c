package renderer

import "image/color"

// OpKind identifies a recorded primitive.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpLine
	OpCircle
	OpEllipse
)

// Op is one recorded draw call with the global alpha in effect at the time.
type Op struct {
	Kind   OpKind
	X, Y   float64
	X2, Y2 float64 // Line end
	R, RY  float64 // Circle radius, or ellipse radii
	Width  float64
	Color  color.RGBA
	Alpha  float64
}

// Recorder is a Canvas that remembers what was drawn.
// It backs tests and the headless front end, where keep=false retains only counts.
type Recorder struct {
	Ops []Op

	Clears, Lines, Circles, Ellipses int

	keep  bool
	alpha float64
}

// NewRecorder creates a recorder. When keep is false only the counters are updated.
func NewRecorder(keep bool) *Recorder {
	return &Recorder{keep: keep, alpha: 1}
}

// Reset drops recorded ops and counters.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Clears, r.Lines, r.Circles, r.Ellipses = 0, 0, 0, 0
	r.alpha = 1
}

// Alpha returns the current global alpha.
func (r *Recorder) Alpha() float64 {
	return r.alpha
}

func (r *Recorder) Clear(c color.RGBA) {
	r.Clears++
	r.record(Op{Kind: OpClear, Color: c, Alpha: 1})
}

func (r *Recorder) SetAlpha(a float64) {
	r.alpha = ClampAlpha(a)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	r.Lines++
	r.record(Op{Kind: OpLine, X: x0, Y: y0, X2: x1, Y2: y1, Width: width, Color: c, Alpha: r.alpha})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.Circles++
	r.record(Op{Kind: OpCircle, X: x, Y: y, R: radius, Color: c, Alpha: r.alpha})
}

func (r *Recorder) FillEllipse(x, y, rx, ry float64, c color.RGBA) {
	r.Ellipses++
	r.record(Op{Kind: OpEllipse, X: x, Y: y, R: rx, RY: ry, Color: c, Alpha: r.alpha})
}

// OfKind returns the recorded ops of one kind, in draw order.
func (r *Recorder) OfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) record(op Op) {
	if r.keep {
		r.Ops = append(r.Ops, op)
	}
}
