package geodesy

import "math"

// ToCartesian converts the point to a geocentric cartesian vector on
// its datum's ellipsoid. Height above the ellipsoid is taken as zero.
func (p LatLon) ToCartesian() Vector3d {
	phi := p.Lat.Radians()
	lambda := p.Lng.Radians()
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	sinLambda := math.Sin(lambda)
	cosLambda := math.Cos(lambda)

	ell := p.datum().Ellipsoid
	eSq := 2*ell.F - ell.F*ell.F

	// radius of curvature in the prime vertical
	nu := ell.A / math.Sqrt(1-eSq*sinPhi*sinPhi)

	return Vector3d{
		X: nu * cosPhi * cosLambda,
		Y: nu * cosPhi * sinLambda,
		Z: nu * (1 - eSq) * sinPhi,
	}
}

// ToLatLon converts a geocentric cartesian vector to a geodetic point
// on the given datum's ellipsoid, using Bowring's closed-form
// approximation (accurate to well under a nanometer for points near
// the ellipsoid surface).
//
// On the polar axis (x = y = 0) the longitude is indeterminate; it is
// returned as 0 by convention, with latitude +/-90 by the sign of z.
func (v Vector3d) ToLatLon(datum *Datum) LatLon {
	ell := datum.Ellipsoid
	eSq := 2*ell.F - ell.F*ell.F // first eccentricity squared
	epsSq := eSq / (1 - eSq)     // second eccentricity squared

	p := math.Sqrt(v.X*v.X + v.Y*v.Y) // distance from minor axis
	if p == 0 {
		phi := math.Copysign(math.Pi/2, v.Z)
		return LatLon{LatLng: latLngFromRadians(phi, 0), Datum: datum}
	}
	r := math.Sqrt(p*p + v.Z*v.Z) // polar radius

	// parametric latitude
	tanBeta := (ell.B * v.Z) / (ell.A * p) * (1 + epsSq*ell.B/r)
	sinBeta := tanBeta / math.Sqrt(1+tanBeta*tanBeta)
	cosBeta := sinBeta / tanBeta
	if tanBeta == 0 {
		sinBeta, cosBeta = 0, 1
	}

	phi := math.Atan2(v.Z+epsSq*ell.B*sinBeta*sinBeta*sinBeta,
		p-eSq*ell.A*cosBeta*cosBeta*cosBeta)
	lambda := math.Atan2(v.Y, v.X)

	return LatLon{LatLng: latLngFromRadians(phi, lambda), Datum: datum}
}

// ConvertDatum returns the point shifted onto the target datum via a
// Helmert transform of its geocentric cartesian position. Conversions
// between two non-WGS84 datums pivot through WGS84; no direct
// datum-to-datum parameters are stored.
func (p LatLon) ConvertDatum(to *Datum) LatLon {
	from := p.datum()

	var transform Transform
	switch {
	case from == WGS84:
		transform = to.Transform
	case to == WGS84:
		transform = from.Transform.Inverse()
	default:
		p = p.ConvertDatum(WGS84)
		transform = to.Transform
	}

	return p.ToCartesian().ApplyTransform(transform).ToLatLon(to)
}
