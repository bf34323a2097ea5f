// Package geo provides the spherical-geometry primitives used by the spread
// model and the recommendation engine. Simple great-circle math on a
// spherical Earth; no GIS library needed at this scale.
package geo

import "math"

const earthRadiusKM = 6371.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DestinationPoint computes the point reached by travelling distanceKm from
// (lat, lon) along the given initial bearing, following a great circle.
func DestinationPoint(lat, lon, bearingDeg, distanceKm float64) (float64, float64) {
	lat1 := toRad(lat)
	lon1 := toRad(lon)
	bearing := toRad(bearingDeg)
	angularDist := distanceKm / earthRadiusKM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angularDist) +
		math.Cos(lat1)*math.Sin(angularDist)*math.Cos(bearing))

	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angularDist)*math.Cos(lat1),
		math.Cos(angularDist)-math.Sin(lat1)*math.Sin(lat2))

	return toDeg(lat2), toDeg(lon2)
}

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// HaversineMeters is DistanceKm in meters; clustering works at meter scale.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceKm(lat1, lon1, lat2, lon2) * 1000
}

// PointsOnArc samples numPoints+1 points along a circular arc centered at
// (lat, lon), sweeping from startAngleDeg to endAngleDeg.
// Points are returned in GeoJSON [lon, lat] order.
func PointsOnArc(lat, lon, radiusKm, startAngleDeg, endAngleDeg float64, numPoints int) [][]float64 {
	points := make([][]float64, 0, numPoints+1)
	step := (endAngleDeg - startAngleDeg) / float64(numPoints)

	for i := 0; i <= numPoints; i++ {
		angle := startAngleDeg + step*float64(i)
		pLat, pLon := DestinationPoint(lat, lon, angle, radiusKm)
		points = append(points, []float64{pLon, pLat})
	}

	return points
}

// BuildConePolygon constructs a wind-driven cone polygon around an incident
// origin. The cone is an elongated teardrop pointing downwind:
//
//	head (downwind):  lengthKm
//	flanks:           widthKm/2 perpendicular to wind
//	rear (upwind):    lengthKm * 0.15 (backing fire)
//
// windDirDeg is where the wind comes FROM (meteorological convention).
// Returns a single closed outer ring of [lon, lat] vertices.
func BuildConePolygon(lat, lon, windDirDeg, lengthKm, widthKm float64) [][][]float64 {
	// Fire spreads in the direction the wind is blowing TO.
	spreadDirDeg := math.Mod(windDirDeg+180, 360)
	halfWidth := widthKm / 2
	backingDist := lengthKm * 0.15

	headLat, headLon := DestinationPoint(lat, lon, spreadDirDeg, lengthKm)

	rearDirDeg := windDirDeg
	rearLat, rearLon := DestinationPoint(lat, lon, rearDirDeg, backingDist)

	leftFlankDeg := math.Mod(spreadDirDeg-90+360, 360)
	rightFlankDeg := math.Mod(spreadDirDeg+90, 360)

	// rear -> left flank arc -> head -> right flank arc -> rear
	var points [][]float64

	points = append(points, []float64{rearLon, rearLat})

	leftArc := PointsOnArc(lat, lon, halfWidth*0.6, math.Mod(rearDirDeg+360, 360), leftFlankDeg, 6)
	points = append(points, leftArc...)

	mlLat, mlLon := DestinationPoint(lat, lon, leftFlankDeg, halfWidth)
	points = append(points, []float64{mlLon, mlLat})

	hlLat, hlLon := DestinationPoint(headLat, headLon, leftFlankDeg, halfWidth*0.3)
	points = append(points, []float64{hlLon, hlLat})

	points = append(points, []float64{headLon, headLat})

	hrLat, hrLon := DestinationPoint(headLat, headLon, rightFlankDeg, halfWidth*0.3)
	points = append(points, []float64{hrLon, hrLat})

	mrLat, mrLon := DestinationPoint(lat, lon, rightFlankDeg, halfWidth)
	points = append(points, []float64{mrLon, mrLat})

	rightArc := PointsOnArc(lat, lon, halfWidth*0.6, rightFlankDeg, math.Mod(rearDirDeg+360, 360), 6)
	points = append(points, rightArc...)

	// close the ring
	points = append(points, []float64{rearLon, rearLat})

	return [][][]float64{points}
}

// PointInPolygon tests the point against the polygon's outer ring using
// ray casting. Holes are not supported; this domain never produces them.
func PointInPolygon(lat, lon float64, polygon [][][]float64) bool {
	if len(polygon) == 0 {
		return false
	}
	ring := polygon[0]
	inside := false

	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi := ring[i][1] // lat
		yi := ring[i][0] // lon
		xj := ring[j][1]
		yj := ring[j][0]

		intersect := (yi > lon) != (yj > lon) &&
			lat < (xj-xi)*(lon-yi)/(yj-yi)+xi
		if intersect {
			inside = !inside
		}
	}

	return inside
}

// MinDistToPolygon returns the distance in km from a point to the nearest
// vertex of the polygon's outer ring. Approximate by design (nearest vertex,
// not nearest edge); used only for the buffer-zone heuristic.
func MinDistToPolygon(lat, lon float64, polygon [][][]float64) float64 {
	minDist := math.Inf(1)
	if len(polygon) == 0 {
		return minDist
	}
	for _, vertex := range polygon[0] {
		d := DistanceKm(lat, lon, vertex[1], vertex[0])
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}
