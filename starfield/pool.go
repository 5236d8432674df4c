package starfield

// pool is a free list of retired particles kept for reuse.
// Acquire pops the most recently released particle.
type pool struct {
	free []*Particle
}

func (p *pool) acquire() (*Particle, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	pt := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return pt, true
}

func (p *pool) release(ps ...*Particle) {
	p.free = append(p.free, ps...)
}

func (p *pool) len() int {
	return len(p.free)
}
