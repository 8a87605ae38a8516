package geodesy

import "math"

// Vector3d is a 3-component vector, used here as a geocentric
// (earth-centered, earth-fixed) cartesian position in meters.
type Vector3d struct {
	X float64
	Y float64
	Z float64
}

// Plus returns the vector sum v + o.
func (v Vector3d) Plus(o Vector3d) Vector3d {
	return Vector3d{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Minus returns the vector difference v - o.
func (v Vector3d) Minus(o Vector3d) Vector3d {
	return Vector3d{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Times returns v scaled by s.
func (v Vector3d) Times(s float64) Vector3d {
	return Vector3d{v.X * s, v.Y * s, v.Z * s}
}

// Negate returns -v.
func (v Vector3d) Negate() Vector3d {
	return Vector3d{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar product v . o.
func (v Vector3d) Dot(o Vector3d) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector product v x o.
func (v Vector3d) Cross(o Vector3d) Vector3d {
	return Vector3d{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the magnitude of v.
func (v Vector3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns v normalized to unit length. The zero vector is
// returned unchanged.
func (v Vector3d) Unit() Vector3d {
	l := v.Length()
	if l == 0 || l == 1 {
		return v
	}
	return Vector3d{v.X / l, v.Y / l, v.Z / l}
}

// RotateAround rotates v through angle radians about the given axis,
// using the rotation-matrix form of the axis-angle representation.
func (v Vector3d) RotateAround(axis Vector3d, angle float64) Vector3d {
	a := axis.Unit()
	s := math.Sin(angle)
	c := math.Cos(angle)
	t := 1 - c

	// rows of the rotation matrix
	r0 := Vector3d{
		a.X*a.X*t + c,
		a.X*a.Y*t - a.Z*s,
		a.X*a.Z*t + a.Y*s,
	}
	r1 := Vector3d{
		a.Y*a.X*t + a.Z*s,
		a.Y*a.Y*t + c,
		a.Y*a.Z*t - a.X*s,
	}
	r2 := Vector3d{
		a.Z*a.X*t - a.Y*s,
		a.Z*a.Y*t + a.X*s,
		a.Z*a.Z*t + c,
	}
	return Vector3d{r0.Dot(v), r1.Dot(v), r2.Dot(v)}
}

// ApplyTransform applies a 7-parameter Helmert transform to v,
// treating the rotations as small angles.
func (v Vector3d) ApplyTransform(t Transform) Vector3d {
	const arcsecToRad = math.Pi / (180 * 3600)

	s1 := t.S/1e6 + 1 // scale ppm -> factor
	rx := t.Rx * arcsecToRad
	ry := t.Ry * arcsecToRad
	rz := t.Rz * arcsecToRad

	return Vector3d{
		X: t.Tx + v.X*s1 - v.Y*rz + v.Z*ry,
		Y: t.Ty + v.X*rz + v.Y*s1 - v.Z*rx,
		Z: t.Tz - v.X*ry + v.Y*rx + v.Z*s1,
	}
}
