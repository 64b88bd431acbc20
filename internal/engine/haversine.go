package engine

import (
	"math"

	"github.com/ignite/fieldops-monitor/internal/table"
)

// earthRadiusKM is the mean Earth radius used for great-circle distances.
const earthRadiusKM = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

// haversineCells computes the distance between two rows' coordinate
// cells, returning nil when any cell does not coerce to a number.
func haversineCells(lat1, lon1, lat2, lon2 table.Value) *float64 {
	a, err := lat1.Float()
	if err != nil {
		return nil
	}
	b, err := lon1.Float()
	if err != nil {
		return nil
	}
	c, err := lat2.Float()
	if err != nil {
		return nil
	}
	d, err := lon2.Float()
	if err != nil {
		return nil
	}
	km := Haversine(a, b, c, d)
	rounded := math.Round(km*10) / 10
	return &rounded
}
