package automata

// Rock is a dropped projectile in free fall. It carries vertical velocity
// only; once deactivated it never moves again.
type Rock struct {
	X, Y   float64
	VY     float64
	Active bool
}

// Step integrates the fall over dt seconds under gravity. Ground absorption
// and impacts are resolved by the simulation so damage can be applied along
// the swept path first.
func (r *Rock) Step(dt, gravity float64) {
	if !r.Active || dt <= 0 {
		return
	}
	r.VY += gravity * dt
	r.Y += r.VY * dt
}

// ImpactEnergy returns the rock's current kinetic energy. The simulation
// scales it by the rock mass to compute damage.
func (r *Rock) ImpactEnergy() float64 {
	return 0.5 * r.VY * r.VY
}
