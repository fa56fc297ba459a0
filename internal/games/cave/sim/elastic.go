package sim

// ElasticCollision bounces two bodies off each other as discs. Velocities are
// taken relative to the centre of mass and reflected along the line between
// the centres. Static bodies keep their velocity. Coincident centres are
// separated along a random direction drawn from rng.
func ElasticCollision(a, b *Entity, rng *RNG) {
	if a.Static && b.Static {
		return
	}
	dir := a.Pos.Sub(b.Pos)
	total := a.Mass + b.Mass
	if total == 0 {
		return
	}
	com := a.Vel.Scale(a.Mass).Add(b.Vel.Scale(b.Mass)).Scale(1 / total)
	bRel := b.Vel.Sub(com)
	aRel := a.Vel.Sub(com)

	distSq := dir.LenSq()
	if distSq == 0 {
		dir = V(float64(rng.Range(0, 11))-5.5, float64(rng.Range(0, 11))-5.5)
		distSq = dir.LenSq()
	}
	dp := bRel.Dot(dir) / distSq
	cdp := aRel.Dot(dir) / distSq

	// Only bodies closing in on each other are deflected.
	if dp <= 0 {
		return
	}
	if !b.Static {
		b.Vel = b.Vel.Sub(dir.Scale(2 * dp))
	}
	if !a.Static {
		a.Vel = a.Vel.Sub(dir.Scale(2 * cdp))
	}
}
