package analysis

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// Resolution errors.
var (
	ErrUnknownCity   = errors.New("analysis: unknown city")
	ErrBadCoordinate = errors.New("analysis: coordinate out of range")
	ErrNoNodes       = errors.New("analysis: graph has no nodes")
)

// LatLon is a position in degrees.
type LatLon struct {
	Lat, Lon float64
}

// Valid reports whether p lies on the globe.
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Cities are the reference points of the standard benchmark.
var Cities = map[string]LatLon{
	// New York: a very short hop
	"Manhattan":          {40.7831, -73.9712},
	"ManhattanNeighbour": {40.7835, -73.9715},

	// Colorado: mountain crossing
	"Denver":        {39.738386, -104.990336},
	"GrandJunction": {39.064381, -108.550848},

	// Great Lakes: the lake is in the way
	"Milwaukee":   {43.0389, -87.9065},
	"GrandRapids": {42.963226, -85.668130},

	// Florida: north-south corridor
	"Miami":        {25.761477, -80.191869},
	"Jacksonville": {30.332439, -81.656017},

	// California: long distance
	"SanDiego":     {32.715851, -117.161166},
	"Sacramento":   {38.581705, -121.494366},
	"CrescentCity": {41.7558, -124.2026},
	"SanYsidro":    {32.5556, -117.0470},

	// Northeast: dense urban network
	"Philadelphia": {39.9526, -75.1652},
	"NewYorkCity":  {40.7128, -74.0060},

	// Northwest: sparse rural network
	"Seattle": {47.6062, -122.3321},
	"Spokane": {47.6588, -117.4260},

	// Islands: disconnected components
	"IslandA": {0, -100},
	"IslandB": {0, 100},
}

// Endpoint names a city from Cities or gives a raw position.
type Endpoint struct {
	City  string
	Point LatLon
}

// City returns an Endpoint for a named city.
func City(name string) Endpoint { return Endpoint{City: name} }

// At returns an Endpoint for a raw position.
func At(lat, lon float64) Endpoint { return Endpoint{Point: LatLon{Lat: lat, Lon: lon}} }

// String returns the city name or the position.
func (e Endpoint) String() string {
	if e.City != "" {
		return e.City
	}
	return fmt.Sprintf("(%.6f, %.6f)", e.Point.Lat, e.Point.Lon)
}

// LatLon resolves e to a position.
func (e Endpoint) LatLon() (LatLon, error) {
	p := e.Point
	if e.City != "" {
		var ok bool
		if p, ok = Cities[e.City]; !ok {
			return LatLon{}, fmt.Errorf("%w: %q", ErrUnknownCity, e.City)
		}
	}
	if !p.Valid() {
		return LatLon{}, fmt.Errorf("%w: %.6f, %.6f", ErrBadCoordinate, p.Lat, p.Lon)
	}
	return p, nil
}

// Resolve maps e to the nearest node of g.
func Resolve(g *roadgraph.Graph, e Endpoint) (roadgraph.NodeID, error) {
	p, err := e.LatLon()
	if err != nil {
		return 0, err
	}
	id, ok := g.NearestNode(p.Lat, p.Lon)
	if !ok {
		return 0, ErrNoNodes
	}
	return id, nil
}

// Scenario is one benchmark query on one map.
type Scenario struct {
	Name              string
	Map               string // map base name, resolved against the maps directory
	From, To          Endpoint
	ExpectUnreachable bool
}

// DefaultScenarios returns the standard benchmark, grouped by map.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "01-NY-very-short", Map: "USA-road-d.NY", From: City("Manhattan"), To: City("ManhattanNeighbour")},
		{Name: "02-NY-invalid-coordinate", Map: "USA-road-d.NY", From: City("Manhattan"), To: At(95, 200)},
		{Name: "03-BAY-normal", Map: "USA-road-d.BAY", From: At(37.608914, -121.745853), To: At(37.614648, -121.750370)},
		{Name: "04-COL-mountain", Map: "USA-road-d.COL", From: City("Denver"), To: City("GrandJunction")},
		{Name: "05-COL-mountain-reverse", Map: "USA-road-d.COL", From: City("GrandJunction"), To: City("Denver")},
		{Name: "06-LKS-around-lake", Map: "USA-road-d.LKS", From: City("Milwaukee"), To: City("GrandRapids")},
		{Name: "07-FLA-peninsula", Map: "USA-road-d.FLA", From: City("Miami"), To: City("Jacksonville")},
		{Name: "08-CAL-long-distance", Map: "USA-road-d.CAL", From: City("SanDiego"), To: City("Sacramento")},
		{Name: "09-NE-urban", Map: "USA-road-d.NE", From: City("Philadelphia"), To: City("NewYorkCity")},
		{Name: "10-NW-rural", Map: "USA-road-d.NW", From: City("Seattle"), To: City("Spokane")},
		{Name: "11-ISLANDS-disconnected", Map: "ISLANDS-road-d", From: City("IslandA"), To: City("IslandB"), ExpectUnreachable: true},
		{Name: "12-CAL-north-south", Map: "USA-road-d.CAL", From: City("CrescentCity"), To: City("SanYsidro")},
		{Name: "13-NY-identity", Map: "USA-road-d.NY", From: City("Manhattan"), To: City("Manhattan")},
	}
}
