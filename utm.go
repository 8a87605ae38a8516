package geodesy

import (
	"errors"
	"math"
	"sync"

	"github.com/golang/geo/s2"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

// UTMCoord is a UTM coordinate. Convergence is the grid convergence in
// degrees and Scale the point scale factor at the coordinate, both as
// produced by the forward conversion.
type UTMCoord struct {
	Zone        int
	Hemisphere  Hemisphere
	Easting     float64
	Northing    float64
	Convergence float64
	Scale       float64
}

// GeodeticCoord is the result of an inverse UTM conversion: the
// geodetic position plus the grid convergence in degrees and the point
// scale factor at that position.
type GeodeticCoord struct {
	LatLng      s2.LatLng
	Convergence float64
	Scale       float64
}

// UTM is a UTM coordinate converter
type UTM struct {
	semiMajorAxis         float64
	flattening            float64
	utmOverride           int
	transverseMercatorMap [61]*TransverseMercator
}

const utmMinLat = ((-80.0 * math.Pi) / 180.0) // -80 degrees in radians
const utmMaxLat = ((84.0 * math.Pi) / 180.0)  //  84 degrees in radians
const utmMinEasting = 100000.0
const utmMaxEasting = 900000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0

const utmFalseEasting = 500000.0
const utmFalseNorthing = 10000000.0 // southern hemisphere only
const utmScaleFactor = 0.9996

const epsilonRadians = 1.75e-7 // approx 1.0e-5 degrees (~1 meter) in radians

// NewUTM constructs a new UTM converter for the WGS84 ellipsoid
func NewUTM() (*UTM, error) {
	return NewUTMEllipsoid(EllipsoidWGS84.A, EllipsoidWGS84.F, 0)
}

// NewUTMEllipsoid receives the ellipsoid parameters and UTM zone
// override parameter as inputs, and sets the corresponding state
// variables. override is the UTM override zone, 0 indicates no
// override.
func NewUTMEllipsoid(ellipsoidSemiMajorAxis, ellipsoidFlattening float64, override int) (*UTM, error) {
	invF := 1 / ellipsoidFlattening

	if ellipsoidSemiMajorAxis <= 0.0 {
		return nil, errors.New("Semi-major axis must be greater than zero")
	}
	if (invF < 250) || (invF > 350) {
		return nil, errors.New("Inverse flattening must be between 250 and 350")
	}
	if (override < 0) || (override > 60) {
		return nil, errors.New("zone override out of range")
	}

	u := &UTM{
		semiMajorAxis: ellipsoidSemiMajorAxis,
		flattening:    ellipsoidFlattening,
		utmOverride:   override,
	}

	for zone := 1; zone <= 60; zone++ {
		centralMeridian := float64(6*zone-183) * math.Pi / 180

		var err error
		u.transverseMercatorMap[zone], err = NewTransverseMercator(
			u.semiMajorAxis, u.flattening, centralMeridian,
			utmFalseEasting, utmScaleFactor)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// latitudeBand returns the MGRS-style band letter used by the Norway
// and Svalbard zone exceptions. Input is latitude in degrees within
// the UTM range.
func latitudeBand(latDegrees float64) byte {
	const bands = "CDEFGHJKLMNPQRSTUVWXX" // X repeated to cover 80..84
	i := int(math.Floor(latDegrees/8 + 10))
	if i < 0 {
		i = 0
	}
	if i >= len(bands) {
		i = len(bands) - 1
	}
	return bands[i]
}

// ConvertFromGeodetic converts geodetic (latitude and longitude)
// coordinates to UTM projection (zone, hemisphere, easting and
// northing) coordinates according to the current ellipsoid and UTM
// zone override parameters. Easting and northing are rounded to
// 1e-6 m, convergence to 1e-9 degree and scale to 1e-12.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	latitude := geodeticCoordinates.Lat.Radians()
	longitude := geodeticCoordinates.Lng.Radians()

	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return UTMCoord{}, errors.New("latitude or longitude is NaN")
	}
	if (latitude < (utmMinLat - epsilonRadians)) ||
		(latitude > (utmMaxLat + epsilonRadians)) {
		return UTMCoord{}, errors.New("latitude out of range")
	}

	latDegrees := latitude * 180.0 / math.Pi
	lonDegrees := wrapLongitude(longitude * 180.0 / math.Pi)

	tempZone := int(math.Floor((lonDegrees+180)/6)) + 1
	if tempZone > 60 { // longitude exactly 180
		tempZone = 1
	}

	// allow UTM zone override up to +/- one zone of the calculated zone
	override := utmZoneOverride
	if override == 0 {
		override = u.utmOverride
	}
	if override != 0 {
		if (tempZone == 1) && (override == 60) {
			tempZone = override
		} else if (tempZone == 60) && (override == 1) {
			tempZone = override
		} else if ((tempZone - 1) <= override) &&
			(override <= (tempZone + 1)) {
			tempZone = override
		} else {
			return UTMCoord{}, errors.New("zone out of range")
		}
	} else {
		// check for special zone cases over southern Norway and Svalbard
		band := latitudeBand(latDegrees)
		if tempZone == 31 && band == 'V' && lonDegrees >= 3 {
			tempZone = 32
		}
		if band == 'X' {
			switch tempZone {
			case 32:
				if lonDegrees < 9 {
					tempZone = 31
				} else {
					tempZone = 33
				}
			case 34:
				if lonDegrees < 21 {
					tempZone = 33
				} else {
					tempZone = 35
				}
			case 36:
				if lonDegrees < 33 {
					tempZone = 35
				} else {
					tempZone = 37
				}
			}
		}
	}

	transverseMercator := u.transverseMercatorMap[tempZone]
	transverseMercatorCoordinates, err := transverseMercator.convertFromGeodetic(geodeticCoordinates)
	if err != nil {
		return UTMCoord{}, err
	}

	var hemisphere Hemisphere
	easting := transverseMercatorCoordinates.Easting
	northing := transverseMercatorCoordinates.Northing
	if latitude < 0 {
		northing += utmFalseNorthing
		hemisphere = HemisphereSouth
	} else {
		hemisphere = HemisphereNorth
	}

	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return UTMCoord{}, errors.New("easting out of range")
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return UTMCoord{}, errors.New("northing out of range")
	}

	return UTMCoord{
		Zone:        tempZone,
		Hemisphere:  hemisphere,
		Easting:     roundTo(easting, 6),
		Northing:    roundTo(northing, 6),
		Convergence: roundTo(transverseMercatorCoordinates.Convergence, 9),
		Scale:       roundTo(transverseMercatorCoordinates.Scale, 12),
	}, nil
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting
// and northing) coordinates to geodetic (latitude and longitude)
// coordinates, according to the current ellipsoid parameters, along
// with the grid convergence and point scale at the position.
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (GeodeticCoord, error) {
	zone := utmCoordinates.Zone
	hemisphere := utmCoordinates.Hemisphere
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if (zone < 1) || (zone > 60) {
		return GeodeticCoord{}, errors.New("zone out of range")
	}
	if (hemisphere != HemisphereSouth) && (hemisphere != HemisphereNorth) {
		return GeodeticCoord{}, errors.New("hemisphere out of range")
	}
	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return GeodeticCoord{}, errors.New("easting out of range")
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return GeodeticCoord{}, errors.New("northing out of range")
	}

	transverseMercator := u.transverseMercatorMap[zone]

	if hemisphere == HemisphereSouth {
		northing -= utmFalseNorthing
	}

	geodeticCoordinates, convergence, scale, err := transverseMercator.convertToGeodetic(
		MapCoords{Easting: easting, Northing: northing})
	if err != nil {
		return GeodeticCoord{}, err
	}

	latitude := geodeticCoordinates.Lat.Radians()
	if (latitude < (utmMinLat - epsilonRadians)) ||
		(latitude > (utmMaxLat + epsilonRadians)) {
		return GeodeticCoord{}, errors.New("latitude out of range")
	}

	return GeodeticCoord{
		LatLng:      geodeticCoordinates,
		Convergence: roundTo(convergence, 9),
		Scale:       roundTo(scale, 12),
	}, nil
}

// utmConverters caches one converter per ellipsoid so repeated
// conversions on a non-WGS84 datum don't rebuild all 60 per-zone
// projections. Keyed by Ellipsoid value; safe for concurrent use.
var utmConverters sync.Map

func utmConverterFor(ell Ellipsoid) (*UTM, error) {
	if ell == EllipsoidWGS84 {
		return DefaultUTMConverter, nil
	}
	if cached, ok := utmConverters.Load(ell); ok {
		return cached.(*UTM), nil
	}
	u, err := NewUTMEllipsoid(ell.A, ell.F, 0)
	if err != nil {
		return nil, err
	}
	cached, _ := utmConverters.LoadOrStore(ell, u)
	return cached.(*UTM), nil
}

// ToUTM projects the point to a UTM coordinate on its own datum's
// ellipsoid. Latitude must be within the UTM coverage of [-80, 84]
// degrees.
func (p LatLon) ToUTM() (UTMCoord, error) {
	u, err := utmConverterFor(p.datum().Ellipsoid)
	if err != nil {
		return UTMCoord{}, err
	}
	return u.ConvertFromGeodetic(p.LatLng, 0)
}

// ToLatLon converts the UTM coordinate to a geodetic point on the
// given datum.
func (c UTMCoord) ToLatLon(datum *Datum) (LatLon, error) {
	if datum == nil {
		datum = WGS84
	}
	u, err := utmConverterFor(datum.Ellipsoid)
	if err != nil {
		return LatLon{}, err
	}
	g, err := u.ConvertToGeodetic(c)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{LatLng: g.LatLng, Datum: datum}, nil
}
