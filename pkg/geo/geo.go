package geo

import "math"

// Mean earth radius in metres, the figure most hobby GPS libraries use
const earthRadius = 6372795.0

// Distance returns the great-circle distance in metres between two points
// given in degrees
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Point is a latitude/longitude pair in degrees
type Point struct {
	Lat float64
	Lon float64
}

// Nearest returns the index of the point closest to (lat, lon) and its
// distance. Returns -1 for an empty list.
func Nearest(lat, lon float64, points []Point) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range points {
		if d := Distance(lat, lon, p.Lat, p.Lon); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
