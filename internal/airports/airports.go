// Package airports holds the static airport reference data the search engine
// needs when the offer provider cannot supply it: display city, coordinates
// for distance prioritization and map display, and metro-code expansion.
package airports

import (
	"math"
	"strings"

	"github.com/mwhitaker/daytripper/internal/models"
)

type Airport struct {
	Code   string
	City   string
	Coords models.Coordinates
}

var table = map[string]Airport{
	"CLT": {"CLT", "Charlotte", models.Coordinates{Lat: 35.2144, Lng: -80.9473}},
	"ATL": {"ATL", "Atlanta", models.Coordinates{Lat: 33.6407, Lng: -84.4277}},
	"MIA": {"MIA", "Miami", models.Coordinates{Lat: 25.7959, Lng: -80.2870}},
	"FLL": {"FLL", "Fort Lauderdale", models.Coordinates{Lat: 26.0742, Lng: -80.1506}},
	"MCO": {"MCO", "Orlando", models.Coordinates{Lat: 28.4312, Lng: -81.3081}},
	"TPA": {"TPA", "Tampa", models.Coordinates{Lat: 27.9772, Lng: -82.5311}},
	"BOS": {"BOS", "Boston", models.Coordinates{Lat: 42.3656, Lng: -71.0096}},
	"JFK": {"JFK", "New York", models.Coordinates{Lat: 40.6413, Lng: -73.7781}},
	"LGA": {"LGA", "New York", models.Coordinates{Lat: 40.7769, Lng: -73.8740}},
	"EWR": {"EWR", "Newark", models.Coordinates{Lat: 40.6895, Lng: -74.1745}},
	"PHL": {"PHL", "Philadelphia", models.Coordinates{Lat: 39.8744, Lng: -75.2424}},
	"DCA": {"DCA", "Washington", models.Coordinates{Lat: 38.8512, Lng: -77.0402}},
	"IAD": {"IAD", "Washington", models.Coordinates{Lat: 38.9531, Lng: -77.4565}},
	"BWI": {"BWI", "Baltimore", models.Coordinates{Lat: 39.1774, Lng: -76.6684}},
	"RDU": {"RDU", "Raleigh-Durham", models.Coordinates{Lat: 35.8801, Lng: -78.7880}},
	"RIC": {"RIC", "Richmond", models.Coordinates{Lat: 37.5052, Lng: -77.3197}},
	"GSO": {"GSO", "Greensboro", models.Coordinates{Lat: 36.1045, Lng: -79.9352}},
	"SAV": {"SAV", "Savannah", models.Coordinates{Lat: 32.1276, Lng: -81.2021}},
	"CHS": {"CHS", "Charleston", models.Coordinates{Lat: 32.8986, Lng: -80.0405}},
	"JAX": {"JAX", "Jacksonville", models.Coordinates{Lat: 30.4941, Lng: -81.6879}},
	"BNA": {"BNA", "Nashville", models.Coordinates{Lat: 36.1263, Lng: -86.6774}},
	"MEM": {"MEM", "Memphis", models.Coordinates{Lat: 35.0421, Lng: -89.9792}},
	"ORD": {"ORD", "Chicago", models.Coordinates{Lat: 41.9742, Lng: -87.9073}},
	"MDW": {"MDW", "Chicago", models.Coordinates{Lat: 41.7868, Lng: -87.7522}},
	"DTW": {"DTW", "Detroit", models.Coordinates{Lat: 42.2162, Lng: -83.3554}},
	"CLE": {"CLE", "Cleveland", models.Coordinates{Lat: 41.4117, Lng: -81.8498}},
	"CVG": {"CVG", "Cincinnati", models.Coordinates{Lat: 39.0489, Lng: -84.6678}},
	"CMH": {"CMH", "Columbus", models.Coordinates{Lat: 39.9980, Lng: -82.8919}},
	"PIT": {"PIT", "Pittsburgh", models.Coordinates{Lat: 40.4915, Lng: -80.2329}},
	"IND": {"IND", "Indianapolis", models.Coordinates{Lat: 39.7173, Lng: -86.2944}},
	"STL": {"STL", "St. Louis", models.Coordinates{Lat: 38.7500, Lng: -90.3700}},
	"MSP": {"MSP", "Minneapolis", models.Coordinates{Lat: 44.8848, Lng: -93.2223}},
	"MSY": {"MSY", "New Orleans", models.Coordinates{Lat: 29.9934, Lng: -90.2580}},
	"DFW": {"DFW", "Dallas", models.Coordinates{Lat: 32.8998, Lng: -97.0403}},
	"DAL": {"DAL", "Dallas", models.Coordinates{Lat: 32.8471, Lng: -96.8518}},
	"IAH": {"IAH", "Houston", models.Coordinates{Lat: 29.9902, Lng: -95.3368}},
	"HOU": {"HOU", "Houston", models.Coordinates{Lat: 29.6454, Lng: -95.2789}},
	"AUS": {"AUS", "Austin", models.Coordinates{Lat: 30.1975, Lng: -97.6664}},
	"DEN": {"DEN", "Denver", models.Coordinates{Lat: 39.8561, Lng: -104.6737}},
	"PHX": {"PHX", "Phoenix", models.Coordinates{Lat: 33.4352, Lng: -112.0101}},
	"LAS": {"LAS", "Las Vegas", models.Coordinates{Lat: 36.0840, Lng: -115.1537}},
	"LAX": {"LAX", "Los Angeles", models.Coordinates{Lat: 33.9416, Lng: -118.4085}},
	"SFO": {"SFO", "San Francisco", models.Coordinates{Lat: 37.6213, Lng: -122.3790}},
	"SEA": {"SEA", "Seattle", models.Coordinates{Lat: 47.4502, Lng: -122.3088}},
	"SLC": {"SLC", "Salt Lake City", models.Coordinates{Lat: 40.7899, Lng: -111.9791}},
}

// Multi-airport city codes expand to their constituent airports before any
// provider call is made.
var metros = map[string][]string{
	"NYC": {"JFK", "LGA", "EWR"},
	"WAS": {"DCA", "IAD", "BWI"},
	"CHI": {"ORD", "MDW"},
	"QDF": {"DFW", "DAL"},
	"QHO": {"IAH", "HOU"},
}

// Lookup returns the airport record for an IATA code.
func Lookup(code string) (Airport, bool) {
	a, ok := table[strings.ToUpper(code)]
	return a, ok
}

// Coords returns known coordinates for an airport code, or nil.
func Coords(code string) *models.Coordinates {
	if a, ok := Lookup(code); ok {
		c := a.Coords
		return &c
	}
	return nil
}

// City returns the display city for an airport code, falling back to the
// code itself.
func City(code string) string {
	if a, ok := Lookup(code); ok {
		return a.City
	}
	return strings.ToUpper(code)
}

// ExpandMetro resolves a metro code to its constituent airports. Plain
// airport codes expand to themselves.
func ExpandMetro(code string) []string {
	if airports, ok := metros[strings.ToUpper(code)]; ok {
		return airports
	}
	return []string{strings.ToUpper(code)}
}

const earthRadiusKm = 6371.0

// HaversineKm computes the great-circle distance between two coordinates.
func HaversineKm(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
