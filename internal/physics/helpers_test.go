package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

const testDelta = 1e-4

func vec(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func assertVec(t *testing.T, want, got rl.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, testDelta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, testDelta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, testDelta, msgAndArgs...)
}

// boxMeshIndices triangulates a box whose vertex i has bit 0 set for +X,
// bit 1 for +Y and bit 2 for +Z.
var boxMeshIndices = []int{
	0, 2, 6, 0, 6, 4, // -X
	1, 3, 7, 1, 7, 5, // +X
	0, 1, 5, 0, 5, 4, // -Y
	2, 3, 7, 2, 7, 6, // +Y
	0, 1, 3, 0, 3, 2, // -Z
	4, 5, 7, 4, 7, 6, // +Z
}

func newBoxMesh(center, half rl.Vector3) *ConvexMesh {
	vertices := make([]rl.Vector3, 8)
	for i := range vertices {
		v := rl.Vector3Subtract(center, half)
		if i&1 != 0 {
			v.X = center.X + half.X
		}
		if i&2 != 0 {
			v.Y = center.Y + half.Y
		}
		if i&4 != 0 {
			v.Z = center.Z + half.Z
		}
		vertices[i] = v
	}
	return NewConvexMeshFromVertices(vertices, boxMeshIndices)
}

func axisAligned() [3]rl.Vector3 {
	return [3]rl.Vector3{vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)}
}

func newCollider() *Collider {
	return NewCollider(DefaultTolerances(), nil)
}
