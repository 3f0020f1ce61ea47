package process

// Gate puts an effect to sleep after its output stayed quiet for a number
// of consecutive periods. A zero Gate never closes.
type Gate struct {
	// Threshold is the mean squared amplitude at or below which a period
	// counts as quiet.
	Threshold float64
	// Hold is the number of quiet periods tolerated before sleeping.
	Hold int

	quiet    int
	sleeping bool
}

// Check records one period's mean squared output level and reports
// whether the effect should keep running.
func (g *Gate) Check(meanSquare float64) bool {
	if g.Hold <= 0 {
		return true
	}
	if meanSquare > g.Threshold {
		g.quiet = 0
		return true
	}
	g.quiet++
	if g.quiet > g.Hold {
		g.sleeping = true
	}
	return !g.sleeping
}

// Sleeping reports whether the gate closed
func (g *Gate) Sleeping() bool { return g.sleeping }

// Wake reopens the gate
func (g *Gate) Wake() {
	g.quiet = 0
	g.sleeping = false
}
