package scene

import (
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// Shape type names as written in scene files.
const (
	ShapeSphere   = "sphere"
	ShapeCapsule  = "capsule"
	ShapeBox      = "box"
	ShapeOBB      = "obb"
	ShapeTriangle = "triangle"
	ShapeMesh     = "mesh"
)

// cubeIndices triangulates the 8 corners built by cubeVertices.
var cubeIndices = []int{
	0, 2, 6, 0, 6, 4,
	1, 3, 7, 1, 7, 5,
	0, 1, 5, 0, 5, 4,
	2, 3, 7, 2, 7, 6,
	0, 1, 3, 0, 3, 2,
	4, 5, 7, 4, 7, 6,
}

// Volume builds the body-space volume described by d.
func (d ShapeDef) Volume() (physics.Volume, error) {
	switch d.Type {
	case ShapeSphere:
		if d.Radius <= 0 {
			return nil, errors.Errorf("sphere radius must be positive, got %g", d.Radius)
		}
		return physics.NewSphere(vec3(d.Center), d.Radius), nil

	case ShapeCapsule:
		if d.Radius <= 0 {
			return nil, errors.Errorf("capsule radius must be positive, got %g", d.Radius)
		}
		return physics.NewCapsule(vec3(d.A), vec3(d.B), d.Radius), nil

	case ShapeBox:
		for i := 0; i < 3; i++ {
			if d.Min[i] > d.Max[i] {
				return nil, errors.Errorf("box min %v exceeds max %v", d.Min, d.Max)
			}
		}
		return physics.NewBoundingBox(vec3(d.Min), vec3(d.Max)), nil

	case ShapeOBB:
		if err := checkSize(d.Size); err != nil {
			return nil, errors.Wrap(err, "obb")
		}
		return physics.NewOrientedBoundingBoxFromEuler(vec3(d.Center), vec3(d.Size), vec3(d.Rotation)), nil

	case ShapeTriangle:
		if len(d.Vertices) != 3 {
			return nil, errors.Errorf("triangle needs 3 vertices, got %d", len(d.Vertices))
		}
		return physics.NewTriangle(vec3(d.Vertices[0]), vec3(d.Vertices[1]), vec3(d.Vertices[2])), nil

	case ShapeMesh:
		return d.mesh()

	case "":
		return nil, errors.New("missing shape type")
	}
	return nil, errors.Errorf("unknown shape type %q", d.Type)
}

func (d ShapeDef) mesh() (physics.Volume, error) {
	if len(d.Vertices) == 0 {
		if err := checkSize(d.Size); err != nil {
			return nil, errors.Wrap(err, "mesh needs vertices or a cube size")
		}
		return physics.NewConvexMeshFromVertices(cubeVertices(vec3(d.Center), vec3(d.Size)), cubeIndices), nil
	}

	if len(d.Indices) == 0 || len(d.Indices)%3 != 0 {
		return nil, errors.Errorf("mesh index count must be a positive multiple of 3, got %d", len(d.Indices))
	}
	for _, i := range d.Indices {
		if i < 0 || i >= len(d.Vertices) {
			return nil, errors.Errorf("mesh index %d out of range [0, %d)", i, len(d.Vertices))
		}
	}
	vertices := make([]rl.Vector3, len(d.Vertices))
	for i, v := range d.Vertices {
		vertices[i] = vec3(v)
	}
	return physics.NewConvexMeshFromVertices(vertices, d.Indices), nil
}

func checkSize(size [3]float32) error {
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return errors.Errorf("size must be positive, got %v", size)
	}
	return nil
}

// cubeVertices returns the corners of a box; bit 0 of the index selects +X,
// bit 1 +Y and bit 2 +Z.
func cubeVertices(center, size rl.Vector3) []rl.Vector3 {
	half := rl.Vector3Scale(size, 0.5)
	vertices := make([]rl.Vector3, 8)
	for i := range vertices {
		v := rl.Vector3Subtract(center, half)
		if i&1 != 0 {
			v.X += size.X
		}
		if i&2 != 0 {
			v.Y += size.Y
		}
		if i&4 != 0 {
			v.Z += size.Z
		}
		vertices[i] = v
	}
	return vertices
}
