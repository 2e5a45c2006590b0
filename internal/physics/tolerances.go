package physics

// Tolerances groups the epsilons used for geometric robustness.
//
// General and TriangleTriangle differ by three orders of magnitude; both are
// kept configurable instead of being unified.
type Tolerances struct {
	// General guards divisions, degenerate axes and parallel tests.
	General float32 `json:"general" toml:"general" yaml:"general"`
	// TriangleTriangle zeroes signed plane distances in the triangle test.
	TriangleTriangle float32 `json:"triangleTriangle" toml:"triangleTriangle" yaml:"triangleTriangle"`
	// HitPointMerge is the distance under which two hit points are one.
	HitPointMerge float32 `json:"hitPointMerge" toml:"hitPointMerge" yaml:"hitPointMerge"`
	// Containment widens point-in-volume checks during manifold clipping.
	Containment float32 `json:"containment" toml:"containment" yaml:"containment"`
}

// DefaultTolerances returns the tolerances the engine ships with.
func DefaultTolerances() Tolerances {
	return Tolerances{
		General:          1e-5,
		TriangleTriangle: 0.01,
		HitPointMerge:    1e-3,
		Containment:      1e-4,
	}
}

// withDefaults fills zero fields from DefaultTolerances.
func (t Tolerances) withDefaults() Tolerances {
	d := DefaultTolerances()
	if t.General <= 0 {
		t.General = d.General
	}
	if t.TriangleTriangle <= 0 {
		t.TriangleTriangle = d.TriangleTriangle
	}
	if t.HitPointMerge <= 0 {
		t.HitPointMerge = d.HitPointMerge
	}
	if t.Containment <= 0 {
		t.Containment = d.Containment
	}
	return t
}
