package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/sfeatherstone/geodesy"
	"gonum.org/v1/gonum/floats"
)

func TestUTMRoundTrip(t *testing.T) {
	utm, err := geodesy.NewUTM()
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	const latInc = 1.0
	const lngInc = 1.0
	for lng := -179.5; lng < 180; lng += lngInc {
		for lat := -79.5; lat < 84; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			uc, err := utm.ConvertFromGeodetic(geo, 0)
			if err != nil {
				t.Fatalf("expected no error at %s, got %s", geo, err)
			}
			back, err := utm.ConvertToGeodetic(uc)
			if err != nil {
				t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
			}
			geo2 := back.LatLng
			if !floats.EqualWithinAbs(geo.Lat.Degrees(), geo2.Lat.Degrees(), 1e-9) ||
				!floats.EqualWithinAbs(geo.Lng.Degrees(), geo2.Lng.Degrees(), 1e-9) {
				t.Fatalf("expected %s, got %s", geo, geo2)
			}
		}
	}
}

func TestUTMForwardFixture(t *testing.T) {
	// Eiffel tower
	p := geodesy.NewLatLon(48.8583, 2.2945)
	uc, err := p.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 31 {
		t.Fatalf("expected zone 31, got %d", uc.Zone)
	}
	if uc.Hemisphere != geodesy.HemisphereNorth {
		t.Fatalf("expected northern hemisphere, got %d", uc.Hemisphere)
	}
	if !floats.EqualWithinAbs(uc.Easting, 448251.898, 1e-3) {
		t.Fatalf("expected easting 448251.898, got %f", uc.Easting)
	}
	if !floats.EqualWithinAbs(uc.Northing, 5411943.794, 1e-3) {
		t.Fatalf("expected northing 5411943.794, got %f", uc.Northing)
	}
	if !floats.EqualWithinAbs(uc.Convergence, -0.5312, 1e-3) {
		t.Fatalf("expected convergence about -0.5312, got %f", uc.Convergence)
	}
	if !floats.EqualWithinAbs(uc.Scale, 0.999633, 1e-6) {
		t.Fatalf("expected scale about 0.999633, got %f", uc.Scale)
	}
}

func TestUTMSouthernHemisphere(t *testing.T) {
	// Sydney opera house
	p := geodesy.NewLatLon(-33.857, 151.215)
	uc, err := p.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 56 {
		t.Fatalf("expected zone 56, got %d", uc.Zone)
	}
	if uc.Hemisphere != geodesy.HemisphereSouth {
		t.Fatalf("expected southern hemisphere, got %d", uc.Hemisphere)
	}
	if uc.Northing < 6000000 {
		t.Fatalf("expected false-northing shifted northing, got %f", uc.Northing)
	}
	back, err := uc.ToLatLon(geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !floats.EqualWithinAbs(back.Lat.Degrees(), -33.857, 1e-9) ||
		!floats.EqualWithinAbs(back.Lng.Degrees(), 151.215, 1e-9) {
		t.Fatalf("expected round trip to recover point, got %s", back.LatLng)
	}
}

func TestUTMZoneExceptions(t *testing.T) {
	tests := []struct {
		lat, lng float64
		zone     int
	}{
		{60.0, 4.0, 32},  // southern Norway, shifted from zone 31
		{60.0, 2.9, 31},  // west of the Norway carve-out
		{64.5, 4.0, 31},  // north of band V, no exception
		{78.0, 8.9, 31},  // Svalbard
		{78.0, 9.0, 33},  // Svalbard
		{78.0, 20.9, 33}, // Svalbard
		{78.0, 21.0, 35}, // Svalbard
		{78.0, 32.9, 35}, // Svalbard
		{78.0, 33.0, 37}, // Svalbard
	}
	for _, tc := range tests {
		uc, err := geodesy.NewLatLon(tc.lat, tc.lng).ToUTM()
		if err != nil {
			t.Fatalf("unexpected error at %f,%f: %s", tc.lat, tc.lng, err)
		}
		if uc.Zone != tc.zone {
			t.Fatalf("at %f,%f expected zone %d, got %d", tc.lat, tc.lng, tc.zone, uc.Zone)
		}
	}
}

func TestUTMZoneOverride(t *testing.T) {
	utm, err := geodesy.NewUTM()
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	geo := s2.LatLngFromDegrees(51.0, 5.9) // zone 31, near the zone 32 boundary
	uc, err := utm.ConvertFromGeodetic(geo, 32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 32 {
		t.Fatalf("expected overridden zone 32, got %d", uc.Zone)
	}
	// more than one zone away is rejected
	if _, err = utm.ConvertFromGeodetic(geo, 40); err == nil {
		t.Fatalf("expected error for distant zone override")
	}
}

func TestUTMInvalidInput(t *testing.T) {
	utm, err := geodesy.NewUTM()
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	if _, err = utm.ConvertFromGeodetic(s2.LatLngFromDegrees(85.0, 0), 0); err == nil {
		t.Fatalf("expected error for latitude above UTM range")
	}
	if _, err = utm.ConvertFromGeodetic(s2.LatLngFromDegrees(-81.0, 0), 0); err == nil {
		t.Fatalf("expected error for latitude below UTM range")
	}
	if _, err = utm.ConvertFromGeodetic(s2.LatLngFromDegrees(math.NaN(), 0), 0); err == nil {
		t.Fatalf("expected error for NaN latitude")
	}
	if _, err = utm.ConvertFromGeodetic(s2.LatLngFromDegrees(0, math.NaN()), 0); err == nil {
		t.Fatalf("expected error for NaN longitude")
	}

	valid := geodesy.UTMCoord{Zone: 31, Hemisphere: geodesy.HemisphereNorth,
		Easting: 448251.898, Northing: 5411943.794}

	bad := valid
	bad.Zone = 0
	if _, err = utm.ConvertToGeodetic(bad); err == nil {
		t.Fatalf("expected error for zone 0")
	}
	bad = valid
	bad.Zone = 61
	if _, err = utm.ConvertToGeodetic(bad); err == nil {
		t.Fatalf("expected error for zone 61")
	}
	bad = valid
	bad.Hemisphere = geodesy.HemisphereInvalid
	if _, err = utm.ConvertToGeodetic(bad); err == nil {
		t.Fatalf("expected error for invalid hemisphere")
	}
	bad = valid
	bad.Easting = 1e6
	if _, err = utm.ConvertToGeodetic(bad); err == nil {
		t.Fatalf("expected error for easting out of range")
	}
	bad = valid
	bad.Northing = -1
	if _, err = utm.ConvertToGeodetic(bad); err == nil {
		t.Fatalf("expected error for northing out of range")
	}
}

func TestUTMAntimeridian(t *testing.T) {
	utm, err := geodesy.NewUTM()
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	// longitude 180 falls in zone 1, three degrees west of its central
	// meridian at 177W
	geo := s2.LatLngFromDegrees(10, 180)
	uc, err := utm.ConvertFromGeodetic(geo, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 1 {
		t.Fatalf("expected zone 1, got %d", uc.Zone)
	}
	if uc.Easting >= 500000 {
		t.Fatalf("expected easting west of the central meridian, got %f", uc.Easting)
	}
	back, err := utm.ConvertToGeodetic(uc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !floats.EqualWithinAbs(back.LatLng.Lat.Degrees(), 10, 1e-9) {
		t.Fatalf("expected latitude 10, got %f", back.LatLng.Lat.Degrees())
	}
	// the recovered longitude may come back as either 180 or -180
	if lng := back.LatLng.Lng.Degrees(); math.Abs(math.Remainder(lng-180, 360)) > 1e-9 {
		t.Fatalf("expected longitude 180, got %f", lng)
	}

	// -180 normalizes to 180 and projects identically
	uc2, err := geodesy.NewLatLon(10, -180).ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc2 != uc {
		t.Fatalf("expected %v, got %v", uc, uc2)
	}
}

func TestUTMConverterReuse(t *testing.T) {
	// repeated conversions on non-WGS84 datums hit the cached per-
	// ellipsoid converters and stay reproducible
	p := geodesy.NewLatLonDatum(52.658, 1.716, geodesy.OSGB36)
	q := geodesy.NewLatLonDatum(48.8583, 2.2945, geodesy.NTF)

	first, err := p.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	qFirst, err := q.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for i := 0; i < 3; i++ {
		uc, err := p.ToUTM()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if uc != first {
			t.Fatalf("expected %v, got %v", first, uc)
		}
		qc, err := q.ToUTM()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if qc != qFirst {
			t.Fatalf("expected %v, got %v", qFirst, qc)
		}
	}
}

func TestUTMOnOtherDatum(t *testing.T) {
	// the projection is parameterized by the datum's ellipsoid
	p := geodesy.NewLatLonDatum(52.658, 1.716, geodesy.OSGB36)
	uc, err := p.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	back, err := uc.ToLatLon(geodesy.OSGB36)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !floats.EqualWithinAbs(back.Lat.Degrees(), 52.658, 1e-9) ||
		!floats.EqualWithinAbs(back.Lng.Degrees(), 1.716, 1e-9) {
		t.Fatalf("expected round trip to recover point, got %s", back.LatLng)
	}
	if back.Datum != geodesy.OSGB36 {
		t.Fatalf("expected OSGB36 datum on result")
	}
}
