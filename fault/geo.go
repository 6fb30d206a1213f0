package fault

import "math"

// earthRadiusKm is the mean Earth radius used for spherical geodesy.
const earthRadiusKm = 6371.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// distanceKm returns the great-circle distance between two points in
// kilometres (haversine formula).
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// initialBearing returns the bearing from the first point to the second,
// in degrees clockwise from north, normalized to [0, 360).
func initialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	return math.Mod(degrees(math.Atan2(y, x))+360, 360)
}

// destination returns the point reached by travelling distKm kilometres
// from (lat, lon) along the given bearing (degrees from north).
func destination(lat, lon, bearing, distKm float64) (float64, float64) {
	phi := radians(lat)
	lambda := radians(lon)
	theta := radians(bearing)
	delta := distKm / earthRadiusKm

	phi2 := math.Asin(math.Sin(phi)*math.Cos(delta) +
		math.Cos(phi)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi),
		math.Cos(delta)-math.Sin(phi)*math.Sin(phi2),
	)
	return degrees(phi2), math.Mod(degrees(lambda2)+540, 360) - 180
}
