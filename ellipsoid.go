package geodesy

// Ellipsoid holds the defining parameters of a reference ellipsoid:
// semi-major axis a, semi-minor axis b (both in meters) and flattening
// f = (a-b)/a.
type Ellipsoid struct {
	A float64
	B float64
	F float64
}

// Transform is a 7-parameter Helmert transform between two geocentric
// reference frames: translations in meters, scale in parts-per-million,
// rotations in arcseconds.
type Transform struct {
	Tx float64
	Ty float64
	Tz float64
	S  float64
	Rx float64
	Ry float64
	Rz float64
}

// Inverse returns the reverse transform. Negating all seven parameters
// is valid only in the small-angle, small-scale regime these datum
// transforms operate in.
func (t Transform) Inverse() Transform {
	return Transform{
		Tx: -t.Tx, Ty: -t.Ty, Tz: -t.Tz,
		S:  -t.S,
		Rx: -t.Rx, Ry: -t.Ry, Rz: -t.Rz,
	}
}

// Datum pairs a reference ellipsoid with the Helmert transform that
// converts a geocentric vector from the WGS84 frame to this datum's
// frame. The WGS84 datum itself carries the identity transform.
type Datum struct {
	Name      string
	Ellipsoid Ellipsoid
	Transform Transform
}

// Reference ellipsoids.
var (
	EllipsoidWGS84         = Ellipsoid{A: 6378137, B: 6356752.314245, F: 1 / 298.257223563}
	EllipsoidAiry1830      = Ellipsoid{A: 6377563.396, B: 6356256.909, F: 1 / 299.3249646}
	EllipsoidAiryModified  = Ellipsoid{A: 6377340.189, B: 6356034.448, F: 1 / 299.3249646}
	EllipsoidBessel1841    = Ellipsoid{A: 6377397.155, B: 6356078.962818, F: 1 / 299.1528128}
	EllipsoidClarke1866    = Ellipsoid{A: 6378206.4, B: 6356583.8, F: 1 / 294.978698214}
	EllipsoidClarke1880IGN = Ellipsoid{A: 6378249.2, B: 6356515.0, F: 1 / 293.466021294}
	EllipsoidGRS80         = Ellipsoid{A: 6378137, B: 6356752.314140, F: 1 / 298.257222101}
	EllipsoidIntl1924      = Ellipsoid{A: 6378388, B: 6356911.946, F: 1 / 297.0}
	EllipsoidWGS72         = Ellipsoid{A: 6378135, B: 6356750.5, F: 1 / 298.26}
)

// Ellipsoids indexes the reference ellipsoids by name.
var Ellipsoids = map[string]Ellipsoid{
	"WGS84":         EllipsoidWGS84,
	"Airy1830":      EllipsoidAiry1830,
	"AiryModified":  EllipsoidAiryModified,
	"Bessel1841":    EllipsoidBessel1841,
	"Clarke1866":    EllipsoidClarke1866,
	"Clarke1880IGN": EllipsoidClarke1880IGN,
	"GRS80":         EllipsoidGRS80,
	"Intl1924":      EllipsoidIntl1924,
	"WGS72":         EllipsoidWGS72,
}

// Geodetic datums. Transform parameters convert from WGS84 into the
// named datum. Accuracy of these canonical parameter sets is generally
// in the 5m-or-better range; the OSGB36 set is good to about 3m-5m
// within coverage, with a round-trip residual of a few millimeters.
var (
	WGS84 = &Datum{
		Name:      "WGS84",
		Ellipsoid: EllipsoidWGS84,
	}
	ED50 = &Datum{
		Name:      "ED50",
		Ellipsoid: EllipsoidIntl1924,
		Transform: Transform{Tx: 89.5, Ty: 93.8, Tz: 123.1, S: -1.2, Rz: 0.156},
	}
	Irl1975 = &Datum{
		Name:      "Irl1975",
		Ellipsoid: EllipsoidAiryModified,
		Transform: Transform{Tx: -482.530, Ty: 130.596, Tz: -564.557, S: -8.150, Rx: -1.042, Ry: -0.214, Rz: -0.631},
	}
	NAD27 = &Datum{
		Name:      "NAD27",
		Ellipsoid: EllipsoidClarke1866,
		Transform: Transform{Tx: 8, Ty: -160, Tz: -176},
	}
	NAD83 = &Datum{
		Name:      "NAD83",
		Ellipsoid: EllipsoidGRS80,
		Transform: Transform{Tx: 1.004, Ty: -1.910, Tz: -0.515, S: -0.0015, Rx: 0.0267, Ry: 0.00034, Rz: 0.011},
	}
	NTF = &Datum{
		Name:      "NTF",
		Ellipsoid: EllipsoidClarke1880IGN,
		Transform: Transform{Tx: 168, Ty: 60, Tz: -320},
	}
	OSGB36 = &Datum{
		Name:      "OSGB36",
		Ellipsoid: EllipsoidAiry1830,
		Transform: Transform{Tx: -446.448, Ty: 125.157, Tz: -542.060, S: 20.4894, Rx: -0.1502, Ry: -0.2470, Rz: -0.8421},
	}
	Potsdam = &Datum{
		Name:      "Potsdam",
		Ellipsoid: EllipsoidBessel1841,
		Transform: Transform{Tx: -582, Ty: -105, Tz: -414, S: -8.3, Rx: 1.04, Ry: 0.35, Rz: -3.08},
	}
	TokyoJapan = &Datum{
		Name:      "TokyoJapan",
		Ellipsoid: EllipsoidBessel1841,
		Transform: Transform{Tx: 148, Ty: -507, Tz: -685},
	}
	DatumWGS72 = &Datum{
		Name:      "WGS72",
		Ellipsoid: EllipsoidWGS72,
		Transform: Transform{Tz: -4.5, S: -0.22, Rz: 0.554},
	}
)

// Datums indexes the geodetic datums by name. The table is populated
// once at package load and must never be mutated; it is safe for
// concurrent readers.
var Datums = map[string]*Datum{
	"WGS84":      WGS84,
	"ED50":       ED50,
	"Irl1975":    Irl1975,
	"NAD27":      NAD27,
	"NAD83":      NAD83,
	"NTF":        NTF,
	"OSGB36":     OSGB36,
	"Potsdam":    Potsdam,
	"TokyoJapan": TokyoJapan,
	"WGS72":      DatumWGS72,
}
