package vecmath

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Axis returns column i of m, the image of local axis i without translation.
func Axis(m rl.Matrix, i int) rl.Vector3 {
	switch i {
	case 0:
		return rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}
	case 1:
		return rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}
	default:
		return rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}
	}
}

// Translation returns the translation part of m.
func Translation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

// TransformDirection applies the linear part of m to v (no translation).
func TransformDirection(v rl.Vector3, m rl.Matrix) rl.Vector3 {
	return rl.Vector3{
		X: m.M0*v.X + m.M4*v.Y + m.M8*v.Z,
		Y: m.M1*v.X + m.M5*v.Y + m.M9*v.Z,
		Z: m.M2*v.X + m.M6*v.Y + m.M10*v.Z,
	}
}

// TransformPoint applies m to the point v.
func TransformPoint(v rl.Vector3, m rl.Matrix) rl.Vector3 {
	return rl.Vector3Transform(v, m)
}

// Compose builds a transform that scales, then rotates, then translates.
func Compose(translation rl.Vector3, rotation rl.Quaternion, scale rl.Vector3) rl.Matrix {
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotMatrix := rl.QuaternionToMatrix(rotation)
	transMatrix := rl.MatrixTranslate(translation.X, translation.Y, translation.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}

// ComposeEuler is Compose with a rotation given as euler angles in degrees,
// applied in X, Y, Z order. Positive angles turn clockwise seen from the
// positive axis toward the origin, as raylib's MatrixRotate functions do:
// 90 degrees about Z sends +X to -Y.
func ComposeEuler(translation, rotationDeg, scale rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(rotationDeg.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotationDeg.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotationDeg.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	transMatrix := rl.MatrixTranslate(translation.X, translation.Y, translation.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}
