// Package geo provides great-circle distance math for the report radius filter.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the radius filter.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// points, via the spherical law of cosines. The acos argument is clamped to
// [-1, 1]: for identical or near-identical points floating-point rounding can
// push it just past 1, which would otherwise produce NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlon := radians(lon2 - lon1)

	arg := math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(dlon) + math.Sin(rlat1)*math.Sin(rlat2)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return EarthRadiusKm * math.Acos(arg)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
