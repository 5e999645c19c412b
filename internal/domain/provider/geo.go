package provider

import "math"

const earthRadiusKM = 6371.0

// DistanceFunc computes the distance in kilometers between two locations.
// The recommender takes this as a dependency so that distance is always a
// deterministic function of its inputs.
type DistanceFunc func(a, b Location) float64

// Haversine is the default DistanceFunc: great-circle distance over the
// earth's mean radius.
func Haversine(a, b Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
