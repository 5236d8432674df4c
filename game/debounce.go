package game

// debouncer fires once after a quiet period following the last trigger.
// Times are frame timestamps in milliseconds.
type debouncer struct {
	delay   float64
	due     float64
	pending bool
}

func (d *debouncer) trigger(now float64) {
	d.pending = true
	d.due = now + d.delay
}

// ready reports, once, that the quiet period has passed.
func (d *debouncer) ready(now float64) bool {
	if !d.pending || now < d.due {
		return false
	}
	d.pending = false
	return true
}

// flush clears a pending trigger and reports whether there was one.
func (d *debouncer) flush() bool {
	was := d.pending
	d.pending = false
	return was
}
