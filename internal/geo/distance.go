package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

func toRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// Distance returns the great-circle distance in kilometers between two
// points given as latitude/longitude pairs in degrees, using the haversine
// formula. The intermediate term is clamped to [0,1] so nearly-antipodal
// inputs cannot push it past 1 through float rounding and produce a NaN.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
