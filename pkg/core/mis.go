package core

// PowerHeuristic computes the beta=2 power-heuristic MIS weight for the
// first of two sampling strategies with PDFs p1, p2 >= 0. Used both at
// surface vertices (BSDF vs light sampling) and in the medium (phase
// function vs light sampling). Returns 0 when both PDFs are zero.
func PowerHeuristic(p1, p2 float64) float64 {
	p1sq := p1 * p1
	p2sq := p2 * p2
	denom := p1sq + p2sq
	if denom == 0 {
		return 0
	}
	return p1sq / denom
}
