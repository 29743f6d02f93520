package geo

import "math"

// earthRadiusMiles is the Earth's radius used by the Haversine formula.
const earthRadiusMiles = 3959

// Point is a geographic coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMiles returns the great-circle distance between two coordinates in
// miles, computed with the Haversine formula. It is used as a filter
// predicate, not for precise geodesy.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// Distance returns the great-circle distance between two points in miles.
func Distance(a, b Point) float64 {
	return DistanceMiles(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}
