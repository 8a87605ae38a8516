package geodesy

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
)

const nTerms = 6

// TransverseMercator provides conversions between geodetic coordinates
// (latitude and longitude) and transverse Mercator projection
// coordinates (easting and northing), using Karney's 6th-order variant
// of the Krueger series.
type TransverseMercator struct {
	// Ellipsoid parameters
	semiMajorAxis float64
	flattening    float64

	tranMercEps float64 // eccentricity
	tranMercN   float64 // third flattening n = f/(2-f)
	tranMercA   float64 // rectifying radius: 2*pi*A is the meridian circumference

	tranMercAlpha [nTerms + 1]float64 // Krueger alpha series, 1-indexed
	tranMercBeta  [nTerms + 1]float64 // Krueger beta series, 1-indexed

	// Projection parameters
	tranMercOriginLong   float64 // longitude of origin in radians
	tranMercFalseEasting float64 // false easting in meters
	tranMercScaleFactor  float64 // central meridian scale factor
}

// MapCoords is a projected position, with the grid convergence
// (bearing of grid north from true north, in degrees) and point scale
// factor at that position.
type MapCoords struct {
	Easting     float64
	Northing    float64
	Convergence float64
	Scale       float64
}

// NewTransverseMercator constructs a converter for the given ellipsoid
// and projection parameters. The series coefficients depend only on
// the shape of the ellipsoid and are computed once here.
func NewTransverseMercator(ellipsoidSemiMajorAxis, ellipsoidFlattening, centralMeridian,
	falseEasting, scaleFactor float64) (*TransverseMercator, error) {
	invFlattening := 1.0 / ellipsoidFlattening

	if ellipsoidSemiMajorAxis <= 0.0 {
		return nil, errors.New("Semi-major axis must be greater than zero")
	}
	if invFlattening < 150 {
		return nil, errors.New("inverse ellipsoid flattening out of range")
	}
	if (centralMeridian < -math.Pi) ||
		(centralMeridian > (2 * math.Pi)) {
		return nil, errors.New("centralMeridian out of range")
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, errors.New("scale factor out of range")
	}

	t := &TransverseMercator{
		semiMajorAxis:        ellipsoidSemiMajorAxis,
		flattening:           ellipsoidFlattening,
		tranMercOriginLong:   centralMeridian,
		tranMercFalseEasting: falseEasting,
		tranMercScaleFactor:  scaleFactor,
	}
	if t.tranMercOriginLong > math.Pi {
		t.tranMercOriginLong -= (2 * math.Pi)
	}

	t.tranMercEps = math.Sqrt(2*t.flattening - t.flattening*t.flattening)
	t.tranMercN = t.flattening / (2 - t.flattening)
	t.generateCoefficients()

	return t, nil
}

func (t *TransverseMercator) generateCoefficients() {
	/*  Generate series coefficients for the transverse Mercator
	projection, after Karney 2011 "Transverse Mercator with an
	accuracy of a few nanometers", extending Krueger 1912 to 6th
	order in the third flattening n.

	alpha   coefficients for the conformal -> rectifying series
	beta    coefficients for the rectifying -> conformal series
	A       rectifying radius

	These depend only on the shape of the ellipsoid and are
	independent of the ellipsoid size and projection parameters.
	*/
	n1 := t.tranMercN
	n2 := n1 * n1
	n3 := n2 * n1
	n4 := n3 * n1
	n5 := n4 * n1
	n6 := n5 * n1

	t.tranMercA = t.semiMajorAxis / (1 + n1) * (1 + n2/4 + n4/64 + n6/256)

	t.tranMercAlpha[1] = 1.0/2*n1 - 2.0/3*n2 + 5.0/16*n3 + 41.0/180*n4 - 127.0/288*n5 + 7891.0/37800*n6
	t.tranMercAlpha[2] = 13.0/48*n2 - 3.0/5*n3 + 557.0/1440*n4 + 281.0/630*n5 - 1983433.0/1935360*n6
	t.tranMercAlpha[3] = 61.0/240*n3 - 103.0/140*n4 + 15061.0/26880*n5 + 167603.0/181440*n6
	t.tranMercAlpha[4] = 49561.0/161280*n4 - 179.0/168*n5 + 6601661.0/7257600*n6
	t.tranMercAlpha[5] = 34729.0/80640*n5 - 3418889.0/1995840*n6
	t.tranMercAlpha[6] = 212378941.0 / 319334400 * n6

	t.tranMercBeta[1] = 1.0/2*n1 - 2.0/3*n2 + 37.0/96*n3 - 1.0/360*n4 - 81.0/512*n5 + 96199.0/604800*n6
	t.tranMercBeta[2] = 1.0/48*n2 + 1.0/15*n3 - 437.0/1440*n4 + 46.0/105*n5 - 1118711.0/3870720*n6
	t.tranMercBeta[3] = 17.0/480*n3 - 37.0/840*n4 - 209.0/4480*n5 + 5569.0/90720*n6
	t.tranMercBeta[4] = 4397.0/161280*n4 - 11.0/504*n5 - 830251.0/7257600*n6
	t.tranMercBeta[5] = 4583.0/161280*n5 - 108847.0/3991680*n6
	t.tranMercBeta[6] = 20648693.0 / 638668800 * n6
}

// convertFromGeodetic projects a geodetic position to transverse
// Mercator easting/northing with grid convergence and scale. Southern
// latitudes produce negative northings; any false northing shift is
// applied by the caller.
func (t *TransverseMercator) convertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	latitude := geodeticCoordinates.Lat.Radians()
	longitude := geodeticCoordinates.Lng.Radians()

	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return MapCoords{}, errors.New("latitude or longitude is NaN")
	}

	//  Longitude from the central meridian, in (-pi, pi]
	lambda := longitude - t.tranMercOriginLong
	if lambda > math.Pi {
		lambda -= (2 * math.Pi)
	}
	if lambda < -math.Pi {
		lambda += (2 * math.Pi)
	}
	cosLambda := math.Cos(lambda)
	sinLambda := math.Sin(lambda)

	e := t.tranMercEps

	//  Ellipsoid to conformal sphere
	//  --------- -- --------- ------

	//  Map geodetic latitude to the tangent of the conformal latitude
	tau := math.Tan(latitude)
	sigma := math.Sinh(e * math.Atanh(e*tau/math.Sqrt(1+tau*tau)))
	tauPrime := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)

	xiPrime := math.Atan2(tauPrime, cosLambda)
	etaPrime := math.Asinh(sinLambda / math.Sqrt(tauPrime*tauPrime+cosLambda*cosLambda))

	//  Conformal plane to rectifying plane via the alpha series
	xi := xiPrime
	eta := etaPrime
	for j := 1; j <= nTerms; j++ {
		xi += t.tranMercAlpha[j] * math.Sin(2*float64(j)*xiPrime) * math.Cosh(2*float64(j)*etaPrime)
		eta += t.tranMercAlpha[j] * math.Cos(2*float64(j)*xiPrime) * math.Sinh(2*float64(j)*etaPrime)
	}

	k0A := t.tranMercScaleFactor * t.tranMercA
	easting := k0A*eta + t.tranMercFalseEasting
	northing := k0A * xi

	//  Grid convergence from the spherical term plus the series
	//  derivative
	pPrime := 1.0
	qPrime := 0.0
	for j := 1; j <= nTerms; j++ {
		pPrime += 2 * float64(j) * t.tranMercAlpha[j] * math.Cos(2*float64(j)*xiPrime) * math.Cosh(2*float64(j)*etaPrime)
		qPrime += 2 * float64(j) * t.tranMercAlpha[j] * math.Sin(2*float64(j)*xiPrime) * math.Sinh(2*float64(j)*etaPrime)
	}
	gammaPrime := math.Atan(tauPrime / math.Sqrt(1+tauPrime*tauPrime) * math.Tan(lambda))
	gammaDoublePrime := math.Atan2(qPrime, pPrime)
	gamma := gammaPrime + gammaDoublePrime

	//  Point scale factor, likewise
	sinPhi := math.Sin(latitude)
	kPrime := math.Sqrt(1-e*e*sinPhi*sinPhi) * math.Sqrt(1+tau*tau) /
		math.Sqrt(tauPrime*tauPrime+cosLambda*cosLambda)
	kDoublePrime := t.tranMercA / t.semiMajorAxis * math.Sqrt(pPrime*pPrime+qPrime*qPrime)
	k := t.tranMercScaleFactor * kPrime * kDoublePrime

	return MapCoords{
		Easting:     easting,
		Northing:    northing,
		Convergence: gamma * 180 / math.Pi,
		Scale:       k,
	}, nil
}

// convertToGeodetic recovers the geodetic position from transverse
// Mercator easting/northing, along with the grid convergence and scale
// at that position. The northing is relative to the equator; the
// caller removes any false northing first.
func (t *TransverseMercator) convertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, float64, float64, error) {
	easting := mapProjectionCoordinates.Easting
	northing := mapProjectionCoordinates.Northing

	k0A := t.tranMercScaleFactor * t.tranMercA
	eta := (easting - t.tranMercFalseEasting) / k0A
	xi := northing / k0A

	//  Rectifying plane to conformal plane via the beta series
	xiPrime := xi
	etaPrime := eta
	for j := 1; j <= nTerms; j++ {
		xiPrime -= t.tranMercBeta[j] * math.Sin(2*float64(j)*xi) * math.Cosh(2*float64(j)*eta)
		etaPrime -= t.tranMercBeta[j] * math.Cos(2*float64(j)*xi) * math.Sinh(2*float64(j)*eta)
	}

	sinhEtaPrime := math.Sinh(etaPrime)
	sinXiPrime := math.Sin(xiPrime)
	cosXiPrime := math.Cos(xiPrime)

	//  Conformal sphere to ellipsoid
	//  --------- ------ -- ---------

	//  Recover the tangent of the geodetic latitude from the tangent
	//  of the conformal latitude by Newton-Raphson iteration
	e := t.tranMercEps
	tauPrime := sinXiPrime / math.Sqrt(sinhEtaPrime*sinhEtaPrime+cosXiPrime*cosXiPrime)
	tauI := tauPrime
	for i := 0; ; i++ {
		if i >= 20 {
			// 2-3 iterations suffice at IEEE-754 precision; the cap
			// only bounds the loop
			return s2.LatLng{}, 0, 0, errors.New("latitude iteration failed to converge")
		}
		sigmaI := math.Sinh(e * math.Atanh(e*tauI/math.Sqrt(1+tauI*tauI)))
		tauIPrime := tauI*math.Sqrt(1+sigmaI*sigmaI) - sigmaI*math.Sqrt(1+tauI*tauI)
		deltaTauI := (tauPrime - tauIPrime) / math.Sqrt(1+tauIPrime*tauIPrime) *
			(1 + (1-e*e)*tauI*tauI) / ((1 - e*e) * math.Sqrt(1+tauI*tauI))
		tauI += deltaTauI
		if math.Abs(deltaTauI) <= 1e-12 {
			break
		}
	}
	latitude := math.Atan(tauI)
	longitude := t.tranMercOriginLong + math.Atan2(sinhEtaPrime, cosXiPrime)

	//  Grid convergence and scale from the inverse series derivative
	p := 1.0
	q := 0.0
	for j := 1; j <= nTerms; j++ {
		p -= 2 * float64(j) * t.tranMercBeta[j] * math.Cos(2*float64(j)*xi) * math.Cosh(2*float64(j)*eta)
		q += 2 * float64(j) * t.tranMercBeta[j] * math.Sin(2*float64(j)*xi) * math.Sinh(2*float64(j)*eta)
	}
	gammaPrime := math.Atan(math.Tan(xiPrime) * math.Tanh(etaPrime))
	gammaDoublePrime := math.Atan2(q, p)
	gamma := gammaPrime + gammaDoublePrime

	sinPhi := math.Sin(latitude)
	kPrime := math.Sqrt(1-e*e*sinPhi*sinPhi) * math.Sqrt(1+tauI*tauI) *
		math.Sqrt(sinhEtaPrime*sinhEtaPrime+cosXiPrime*cosXiPrime)
	kDoublePrime := t.tranMercA / t.semiMajorAxis / math.Sqrt(p*p+q*q)
	k := t.tranMercScaleFactor * kPrime * kDoublePrime

	if longitude > math.Pi {
		longitude -= (2 * math.Pi)
	}
	if longitude <= -math.Pi {
		longitude += (2 * math.Pi)
	}

	return latLngFromRadians(latitude, longitude), gamma * 180 / math.Pi, k, nil
}
