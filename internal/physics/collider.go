package physics

import (
	"log/slog"

	"collide3d/internal/logx"
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is the narrow-phase entry point and the scratch context every
// pair routine works in. It owns the SAT engine, the segment tester, the
// triangle intersector and the buffers they share, so a Collider must not
// be used by two goroutines at once. Give each worker its own.
type Collider struct {
	tol Tolerances
	log *slog.Logger

	sat       *SAT
	segments  *SegmentTester
	triangles *TriangleIntersector

	obbA, obbB OrientedBoundingBox
	axes       []rl.Vector3
	segHit     SegmentHit
}

// NewCollider creates a scratch context. Zero tolerance fields take their
// defaults; a nil logger uses the package logger.
func NewCollider(tol Tolerances, logger *slog.Logger) *Collider {
	tol = tol.withDefaults()
	if logger == nil {
		logger = logx.For("physics")
	}
	return &Collider{
		tol:       tol,
		log:       logger,
		sat:       NewSAT(tol),
		segments:  NewSegmentTester(tol),
		triangles: NewTriangleIntersector(tol),
		axes:      make([]rl.Vector3, 0, 64),
	}
}

// Tolerances returns the tolerances in effect.
func (c *Collider) Tolerances() Tolerances { return c.tol }

// Collide tests a against b. resp is reset first; on overlap it holds a
// normal pointing from b toward a, the penetration depth and the hit
// points. movement is the velocity of a relative to b, used only to break
// ties in the normal direction; pass the zero vector when unknown.
func (c *Collider) Collide(a, b Volume, movement rl.Vector3, resp *CollisionResponse) bool {
	resp.setMergeDistance(c.tol.HitPointMerge)
	resp.Reset()

	ka, kb := a.Kind(), b.Kind()
	if ka < 0 || ka >= NumShapeKinds || kb < 0 || kb >= NumShapeKinds || pairTable[ka][kb] == nil {
		c.log.Warn("Physics: unsupported shape pair", "a", ka.String(), "b", kb.String())
		return false
	}

	r := a.BoundingSphereRadius() + b.BoundingSphereRadius()
	if vecmath.DistanceSquared(a.Center(), b.Center()) > r*r {
		return false
	}
	return pairTable[ka][kb](c, a, b, movement, resp)
}

// orient returns n, or -n when a moving along movement would travel with
// it. Pushing a back against its motion is the tie-break for normals that
// geometry alone cannot sign.
func orient(n, movement rl.Vector3) rl.Vector3 {
	if vecmath.Dot(n, movement) > 0 {
		return rl.Vector3Negate(n)
	}
	return n
}

// fallbackNormal is used when two centers coincide.
func fallbackNormal(movement rl.Vector3) rl.Vector3 {
	if l := vecmath.Length(movement); l > 0 {
		return rl.Vector3Scale(movement, -1/l)
	}
	return vecmath.UnitY
}

// resetAxes empties the axis scratch buffer.
func (c *Collider) resetAxes() {
	c.axes = c.axes[:0]
}

func (c *Collider) addAxes(axes ...rl.Vector3) {
	c.axes = append(c.axes, axes...)
}

// addCrossAxes appends every pairwise cross product of as and bs.
func (c *Collider) addCrossAxes(as, bs []rl.Vector3) {
	for _, a := range as {
		for _, b := range bs {
			c.axes = append(c.axes, vecmath.Cross(a, b))
		}
	}
}
