package geodesy_test

import (
	"fmt"

	"github.com/sfeatherstone/geodesy"
)

func ExampleLatLon_DistanceTo() {
	p1 := geodesy.NewLatLon(50.06632, -5.71475)
	p2 := geodesy.NewLatLon(58.64402, -3.07009)
	fmt.Printf("%.3f", p1.DistanceTo(p2))
	// Output: 969954.166
}

func ExampleLatLon_ToUTM() {
	utm, _ := geodesy.NewLatLon(48.8583, 2.2945).ToUTM()
	fmt.Printf("%d N %.3f %.3f", utm.Zone, utm.Easting, utm.Northing)
	// Output: 31 N 448251.898 5411943.794
}

func ExampleLatLon_ConvertDatum() {
	greenwich := geodesy.NewLatLon(51.4778, -0.0016)
	osgb := greenwich.ConvertDatum(geodesy.OSGB36)
	fmt.Printf("%.4f %.4f", osgb.Lat.Degrees(), osgb.Lng.Degrees())
	// Output: 51.4773 0.0000
}
