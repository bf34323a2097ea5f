package geo

import (
	"math"
	"testing"
)

func TestDestinationPointRoundTrip(t *testing.T) {
	lat, lon := 37.42, -122.17

	dLat, dLon := DestinationPoint(lat, lon, 65, 5)
	dist := DistanceKm(lat, lon, dLat, dLon)
	if math.Abs(dist-5) > 0.01 {
		t.Fatalf("expected destination 5 km away, got %.4f km", dist)
	}
}

func TestDestinationPointDueNorth(t *testing.T) {
	dLat, dLon := DestinationPoint(0, 0, 0, 111.19)
	if math.Abs(dLat-1.0) > 0.01 {
		t.Errorf("expected ~1 degree of latitude, got %.4f", dLat)
	}
	if math.Abs(dLon) > 0.001 {
		t.Errorf("expected longitude unchanged, got %.4f", dLon)
	}
}

func TestDistanceKmZero(t *testing.T) {
	if d := DistanceKm(37.42, -122.17, 37.42, -122.17); d != 0 {
		t.Fatalf("identical points should be 0 km apart, got %f", d)
	}
}

func TestPointsOnArcCount(t *testing.T) {
	points := PointsOnArc(37.42, -122.17, 1.0, 0, 90, 6)
	if len(points) != 7 {
		t.Fatalf("expected n+1 = 7 points, got %d", len(points))
	}
	for _, p := range points {
		d := DistanceKm(37.42, -122.17, p[1], p[0])
		if math.Abs(d-1.0) > 0.01 {
			t.Errorf("arc point not on radius: %.4f km", d)
		}
	}
}

func TestBuildConePolygonClosedRing(t *testing.T) {
	polygon := BuildConePolygon(37.42, -122.17, 245, 2.0, 1.0)
	if len(polygon) != 1 {
		t.Fatalf("expected a single outer ring, got %d rings", len(polygon))
	}
	ring := polygon[0]
	if len(ring) < 4 {
		t.Fatalf("ring too short: %d vertices", len(ring))
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Fatalf("ring not closed: first %v last %v", first, last)
	}
}

func TestBuildConePolygonHeadDownwind(t *testing.T) {
	// Wind from 245 means the head should sit near bearing 65 from origin.
	polygon := BuildConePolygon(37.42, -122.17, 245, 2.0, 1.0)
	headLat, headLon := DestinationPoint(37.42, -122.17, 65, 2.0)

	found := false
	for _, v := range polygon[0] {
		if math.Abs(v[1]-headLat) < 1e-9 && math.Abs(v[0]-headLon) < 1e-9 {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("downwind head vertex missing from cone polygon")
	}
}

func TestPointInPolygon(t *testing.T) {
	polygon := BuildConePolygon(37.42, -122.17, 245, 3.0, 1.5)

	// Point 1 km downwind should be inside the 3 km cone.
	inLat, inLon := DestinationPoint(37.42, -122.17, 65, 1.0)
	if !PointInPolygon(inLat, inLon, polygon) {
		t.Error("downwind interior point should be inside the cone")
	}

	// Point 20 km upwind is nowhere near it.
	outLat, outLon := DestinationPoint(37.42, -122.17, 245, 20.0)
	if PointInPolygon(outLat, outLon, polygon) {
		t.Error("far upwind point should be outside the cone")
	}
}

func TestMinDistToPolygonApproximation(t *testing.T) {
	polygon := BuildConePolygon(37.42, -122.17, 245, 2.0, 1.0)

	// A vertex itself is at distance zero.
	v := polygon[0][3]
	if d := MinDistToPolygon(v[1], v[0], polygon); d > 1e-9 {
		t.Errorf("vertex should be at distance 0, got %f", d)
	}

	// Far away point reports a large distance.
	if d := MinDistToPolygon(40.0, -120.0, polygon); d < 100 {
		t.Errorf("expected far point to be >100 km away, got %f", d)
	}
}
