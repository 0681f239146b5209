package mapgen

// maxJitterX is the horizontal jitter bound as a fraction of node spacing.
const maxJitterX = 0.2

// layout computes node counts and coordinates for each level.
type layout struct {
	cfg *Config
}

// nodeCount returns how many nodes level l holds. START and BOSS hold one.
func (lo layout) nodeCount(l Level) int {
	if l.IsEndpoint() {
		return 1
	}
	r := lo.cfg.LevelCounts[l]
	return r.Min + lo.cfg.Rand.Intn(r.Max-r.Min+1)
}

// x spreads count nodes evenly across the usable width.
func (lo layout) x(l Level, index, count int) float64 {
	span := lo.cfg.Width - 2*lo.cfg.MarginX
	spacing := span / float64(count+1)
	x := lo.cfg.MarginX + spacing*float64(index+1)
	if l.IsEndpoint() {
		return x
	}
	return x + lo.jitter(spacing*maxJitterX)
}

// y places level l at a fixed vertical offset proportional to its index.
func (lo layout) y(l Level) float64 {
	y := lo.cfg.MarginY + float64(l)*lo.cfg.LevelSpacing
	if l.IsEndpoint() {
		return y
	}
	return y + lo.jitter(lo.cfg.JitterY)
}

// jitter returns a uniform offset in [-bound, bound].
func (lo layout) jitter(bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	return (lo.cfg.Rand.Float64()*2 - 1) * bound
}
