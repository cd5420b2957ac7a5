package geo

import (
	"fmt"
	"math"
)

const (
	// Scale is the fixed-point factor between degrees and stored integers.
	Scale = 1_000_000

	// EarthRadiusMeters is the mean Earth radius used by Haversine.
	EarthRadiusMeters = 6_371_000.0
)

// Coord is a geographic position in micro-degrees (degrees × 10^6).
// The zero value is the point (0°, 0°).
type Coord struct {
	Lon int32 // longitude × 10^6
	Lat int32 // latitude × 10^6
}

// FromDegrees converts floating-point degrees into a Coord, rounding to the
// nearest micro-degree.
func FromDegrees(lat, lon float64) Coord {
	return Coord{
		Lon: int32(math.Round(lon * Scale)),
		Lat: int32(math.Round(lat * Scale)),
	}
}

// Degrees returns the coordinate as (lat, lon) in floating-point degrees.
func (c Coord) Degrees() (lat, lon float64) {
	return float64(c.Lat) / Scale, float64(c.Lon) / Scale
}

// Radians returns the coordinate as (lat, lon) in radians.
func (c Coord) Radians() (lat, lon float64) {
	lat, lon = c.Degrees()
	return lat * math.Pi / 180, lon * math.Pi / 180
}

// String renders the coordinate as "lat,lon" with six decimals.
func (c Coord) String() string {
	lat, lon := c.Degrees()
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// Haversine returns the great-circle distance between a and b in meters.
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	c = 2·atan2(√a, √(1−a))
//	d = R·c
func Haversine(a, b Coord) float64 {
	if a == b {
		return 0
	}
	lat1, lon1 := a.Radians()
	lat2, lon2 := b.Radians()

	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLon := math.Sin((lon2 - lon1) / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// rounding can push h a hair above 1 for antipodal points
	if h > 1 {
		h = 1
	}

	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Offset returns the coordinate reached by moving north and east by the given
// number of meters from c, using a local equirectangular approximation.
// It is intended for generating synthetic networks, not for navigation.
func (c Coord) Offset(northMeters, eastMeters float64) Coord {
	lat, lon := c.Degrees()
	dLat := northMeters / EarthRadiusMeters * 180 / math.Pi
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-9 {
		cosLat = 1e-9
	}
	dLon := eastMeters / (EarthRadiusMeters * cosLat) * 180 / math.Pi

	return FromDegrees(lat+dLat, lon+dLon)
}
