package geodesy

import (
	"errors"
	"math"
)

// ErrNonConvergence is returned when Vincenty's inverse formula fails
// to converge. This happens for nearly antipodal points on nearly
// spherical ellipsoids and is a known limitation of the method, not an
// input error.
var ErrNonConvergence = errors.New("vincenty formula failed to converge")

// GeodesicSolution is the result of the inverse geodesic problem:
// the length of the geodesic between two points and its azimuth at
// each end. Bearings are in degrees in [0, 360), and are NaN when the
// points are coincident.
type GeodesicSolution struct {
	Distance       float64
	InitialBearing float64
	FinalBearing   float64
}

const (
	vincentyEpsilon      = 1e-12 // iteration tolerance, radians
	inverseMaxIterations = 1000
	directMaxIterations  = 100
)

// Inverse solves the inverse geodesic problem on the ellipsoid of p1's
// datum: the distance between p1 and p2 (in meters, to mm precision)
// and the initial and final bearings of the geodesic. If p2 is on a
// different datum it is first converted onto p1's.
//
// Returns an error if either point has a NaN component or a latitude
// outside [-90, 90] degrees, and ErrNonConvergence for the nearly
// antipodal geometries the formula cannot handle.
func Inverse(p1, p2 LatLon) (GeodesicSolution, error) {
	if err := p1.checkCoordinates(); err != nil {
		return GeodesicSolution{}, err
	}
	if err := p2.checkCoordinates(); err != nil {
		return GeodesicSolution{}, err
	}
	if p2.datum() != p1.datum() {
		p2 = p2.ConvertDatum(p1.datum())
	}
	ell := p1.datum().Ellipsoid
	a, b, f := ell.A, ell.B, ell.F

	phi1 := p1.Lat.Radians()
	lambda1 := p1.Lng.Radians()
	phi2 := p2.Lat.Radians()
	lambda2 := p2.Lng.Radians()

	L := lambda2 - lambda1
	tanU1 := (1 - f) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - f) * math.Tan(phi2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	lambda := L
	var sinLambda, cosLambda float64
	var sigma, sinSigma, cosSigma float64
	var sinAlpha, cosSqAlpha, cos2SigmaM float64

	for i := 0; ; i++ {
		if i >= inverseMaxIterations {
			return GeodesicSolution{}, ErrNonConvergence
		}
		sinLambda = math.Sin(lambda)
		cosLambda = math.Cos(lambda)

		sinSqSigma := (cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSqSigma == 0 {
			// coincident points
			return GeodesicSolution{
				Distance:       0,
				InitialBearing: math.NaN(),
				FinalBearing:   math.NaN(),
			}, nil
		}
		sinSigma = math.Sqrt(sinSqSigma)
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			cos2SigmaM = 0 // equatorial geodesic
		}
		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = L + (1-C)*f*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda) > math.Pi {
			return GeodesicSolution{}, ErrNonConvergence
		}
		if math.Abs(lambda-lambdaPrev) <= vincentyEpsilon {
			break
		}
	}

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	s := b * A * (sigma - deltaSigma)

	alpha1 := math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
	alpha2 := math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)

	sol := GeodesicSolution{
		Distance:       roundTo(s, 3), // mm precision
		InitialBearing: roundTo(wrap360(alpha1*180/math.Pi), 9),
		FinalBearing:   roundTo(wrap360(alpha2*180/math.Pi), 9),
	}
	if sol.Distance == 0 {
		sol.InitialBearing = math.NaN()
		sol.FinalBearing = math.NaN()
	}
	return sol, nil
}

// Direct solves the direct geodesic problem on the ellipsoid of p's
// datum: the destination reached by travelling the given distance (in
// meters) along the geodesic with the given initial bearing (degrees),
// and the final bearing at the destination.
//
// Returns an error if the starting point has a NaN component or a
// latitude outside [-90, 90] degrees.
func Direct(p LatLon, distance, initialBearing float64) (LatLon, float64, error) {
	if err := p.checkCoordinates(); err != nil {
		return LatLon{}, 0, err
	}
	ell := p.datum().Ellipsoid
	a, b, f := ell.A, ell.B, ell.F

	phi1 := p.Lat.Radians()
	lambda1 := p.Lng.Radians()
	alpha1 := initialBearing * math.Pi / 180
	s := distance

	sinAlpha1 := math.Sin(alpha1)
	cosAlpha1 := math.Cos(alpha1)

	tanU1 := (1 - f) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	sigma1 := math.Atan2(tanU1, cosAlpha1) // angular distance on the sphere from equator
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := s / (b * A)
	var cos2SigmaM, sinSigma, cosSigma float64
	for i := 0; ; i++ {
		if i >= directMaxIterations {
			// direct-problem convergence is guaranteed for valid
			// input; the cap only bounds the loop
			return LatLon{}, 0, ErrNonConvergence
		}
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma = math.Sin(sigma)
		cosSigma = math.Cos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*
			(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
				B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		sigmaPrev := sigma
		sigma = s/(b*A) + deltaSigma
		if math.Abs(sigma-sigmaPrev) <= vincentyEpsilon {
			break
		}
	}

	x := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-f)*math.Sqrt(sinAlpha*sinAlpha+x*x))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	L := lambda - (1-C)*f*sinAlpha*
		(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	lambda2 := lambda1 + L

	alpha2 := math.Atan2(sinAlpha, -x)

	dest := NewLatLonDatum(phi2*180/math.Pi, lambda2*180/math.Pi, p.datum())
	return dest, roundTo(wrap360(alpha2*180/math.Pi), 9), nil
}

// DistanceTo returns the geodesic distance in meters from p to other,
// to mm precision. Returns NaN if the inverse formula does not
// converge.
func (p LatLon) DistanceTo(other LatLon) float64 {
	sol, err := Inverse(p, other)
	if err != nil {
		return math.NaN()
	}
	return sol.Distance
}

// InitialBearingTo returns the initial bearing in degrees [0, 360) of
// the geodesic from p to other. Returns NaN if the points are
// coincident or the formula does not converge.
func (p LatLon) InitialBearingTo(other LatLon) float64 {
	sol, err := Inverse(p, other)
	if err != nil {
		return math.NaN()
	}
	return sol.InitialBearing
}

// FinalBearingTo returns the bearing in degrees [0, 360) of the
// geodesic from p to other as it arrives at other. Returns NaN if the
// points are coincident or the formula does not converge.
func (p LatLon) FinalBearingTo(other LatLon) float64 {
	sol, err := Inverse(p, other)
	if err != nil {
		return math.NaN()
	}
	return sol.FinalBearing
}

// DestinationPoint returns the point reached by travelling the given
// distance in meters from p on the given initial bearing in degrees.
func (p LatLon) DestinationPoint(distance, initialBearing float64) (LatLon, error) {
	dest, _, err := Direct(p, distance, initialBearing)
	return dest, err
}

// FinalBearingOn returns the bearing in degrees [0, 360) at the end of
// the geodesic of the given distance and initial bearing from p.
func (p LatLon) FinalBearingOn(distance, initialBearing float64) (float64, error) {
	_, final, err := Direct(p, distance, initialBearing)
	return final, err
}
