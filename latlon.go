package geodesy

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// LatLon is a geodetic point: a latitude/longitude pair on a specific
// datum. The zero Datum is treated as WGS84.
type LatLon struct {
	s2.LatLng
	Datum *Datum
}

// NewLatLon constructs a WGS84 point from latitude and longitude in
// degrees. Longitude is wrapped into (-180, 180].
func NewLatLon(latDegrees, lngDegrees float64) LatLon {
	return NewLatLonDatum(latDegrees, lngDegrees, WGS84)
}

// NewLatLonDatum constructs a point on the given datum from latitude
// and longitude in degrees. Longitude is wrapped into (-180, 180].
func NewLatLonDatum(latDegrees, lngDegrees float64, datum *Datum) LatLon {
	return LatLon{
		LatLng: s2.LatLngFromDegrees(latDegrees, wrapLongitude(lngDegrees)),
		Datum:  datum,
	}
}

// checkCoordinates validates the point's coordinates: both components
// must be finite and the latitude within [-90, 90] degrees.
func (p LatLon) checkCoordinates() error {
	lat := p.Lat.Degrees()
	lng := p.Lng.Degrees()
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return errors.New("latitude or longitude is NaN")
	}
	if (lat < -90) || (lat > 90) {
		return errors.New("latitude out of range")
	}
	return nil
}

func (p LatLon) datum() *Datum {
	if p.Datum == nil {
		return WGS84
	}
	return p.Datum
}

func latLngFromRadians(lat, lng float64) s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)}
}

// wrapLongitude normalizes a longitude in degrees to (-180, 180].
func wrapLongitude(deg float64) float64 {
	if deg > -180 && deg <= 180 {
		return deg
	}
	l := math.Mod(deg+180, 360)
	if l < 0 {
		l += 360
	}
	l -= 180
	if l == -180 {
		l = 180
	}
	return l
}

// wrap360 normalizes a bearing in degrees to [0, 360).
func wrap360(deg float64) float64 {
	if deg >= 0 && deg < 360 {
		return deg
	}
	b := math.Mod(deg, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// roundTo rounds v to the given number of decimal places. Used to fix
// outputs at a reproducible precision well below the accuracy of the
// underlying formulae.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
