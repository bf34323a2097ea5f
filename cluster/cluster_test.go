package cluster

import (
	"strings"
	"testing"

	"go-firewatch/types"
)

func hotspot(lat, lon, frp float64) types.FirmsHotspot {
	return types.FirmsHotspot{
		Latitude:   lat,
		Longitude:  lon,
		Brightness: 330,
		AcqDate:    "2026-02-14",
		AcqTime:    "0642",
		Satellite:  "N",
		Instrument: "VIIRS",
		Frp:        frp,
	}
}

func TestClusterHotspotsEmpty(t *testing.T) {
	clusters := ClusterHotspots(nil)
	if len(clusters) != 0 {
		t.Fatalf("expected empty output for empty input, got %d clusters", len(clusters))
	}
}

func TestClusterHotspotsSingleton(t *testing.T) {
	clusters := ClusterHotspots([]types.FirmsHotspot{hotspot(37.42, -122.17, 12.5)})
	if len(clusters) != 1 {
		t.Fatalf("expected 1 singleton cluster, got %d", len(clusters))
	}

	c := clusters[0]
	if c.PointCount != 1 {
		t.Errorf("pointCount = %d, want 1", c.PointCount)
	}
	// 100m floor + 375m pixel half-width
	if c.RadiusMeters < 475 {
		t.Errorf("radiusMeters = %d, want >= 475", c.RadiusMeters)
	}
	if c.MaxFrp != 12.5 || c.TotalFrp != 12.5 {
		t.Errorf("frp aggregation wrong: max %.1f total %.1f", c.MaxFrp, c.TotalFrp)
	}
	if c.LastSeen != "2026-02-14T06:42:00Z" {
		t.Errorf("lastSeen = %q", c.LastSeen)
	}
}

func TestClusterHotspotsGroupsNearbyPoints(t *testing.T) {
	// Two points ~550m apart cluster together; a third ~20km away stays alone.
	hotspots := []types.FirmsHotspot{
		hotspot(37.420, -122.170, 10),
		hotspot(37.425, -122.170, 20),
		hotspot(37.600, -122.170, 5),
	}

	clusters := ClusterHotspots(hotspots)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	if clusters[0].PointCount != 2 {
		t.Errorf("largest cluster should have 2 points, got %d", clusters[0].PointCount)
	}
	if clusters[1].PointCount != 1 {
		t.Errorf("outlier should be a singleton, got %d points", clusters[1].PointCount)
	}
}

func TestClusterHotspotsSortedByTotalFrpDesc(t *testing.T) {
	hotspots := []types.FirmsHotspot{
		hotspot(36.0, -120.0, 3),
		hotspot(37.0, -121.0, 50),
		hotspot(38.0, -122.0, 8),
	}

	clusters := ClusterHotspots(hotspots)
	if len(clusters) != 3 {
		t.Fatalf("expected 3 singleton clusters, got %d", len(clusters))
	}
	for i := 1; i < len(clusters); i++ {
		if clusters[i].TotalFrp > clusters[i-1].TotalFrp {
			t.Fatalf("clusters not sorted by totalFrp descending: %v then %v",
				clusters[i-1].TotalFrp, clusters[i].TotalFrp)
		}
	}
}

func TestClusterHotspotsChainGrowth(t *testing.T) {
	// A chain of points each ~1.1km from the next should form one cluster
	// even though the ends are further than eps apart.
	hotspots := []types.FirmsHotspot{
		hotspot(37.400, -122.170, 1),
		hotspot(37.410, -122.170, 1),
		hotspot(37.420, -122.170, 1),
		hotspot(37.430, -122.170, 1),
	}

	clusters := ClusterHotspots(hotspots)
	if len(clusters) != 1 {
		t.Fatalf("chained points should form one cluster, got %d", len(clusters))
	}
	if clusters[0].PointCount != 4 {
		t.Errorf("cluster should contain all 4 points, got %d", clusters[0].PointCount)
	}
}

func TestClusterIdempotence(t *testing.T) {
	hotspots := []types.FirmsHotspot{
		hotspot(37.420, -122.170, 10),
		hotspot(37.425, -122.170, 20),
	}
	a := ClusterHotspots(hotspots)
	b := ClusterHotspots(hotspots)
	if len(a) != len(b) {
		t.Fatalf("cluster counts differ across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CentroidLat != b[i].CentroidLat || a[i].TotalFrp != b[i].TotalFrp {
			t.Fatalf("cluster %d differs across identical runs", i)
		}
	}
}

func TestToIncident(t *testing.T) {
	clusters := ClusterHotspots([]types.FirmsHotspot{
		hotspot(37.420, -122.170, 10),
		hotspot(37.425, -122.170, 20),
	})
	inc := ToIncident(clusters[0], 0)

	if inc.ID != clusters[0].ID {
		t.Errorf("incident ID should carry the cluster ID, got %q", inc.ID)
	}
	if inc.Lat != clusters[0].CentroidLat || inc.Lon != clusters[0].CentroidLon {
		t.Error("incident should sit at the cluster centroid")
	}
	if inc.Perimeter.Type != "Point" || inc.Perimeter.RadiusMeters != clusters[0].RadiusMeters {
		t.Errorf("perimeter not carried over: %+v", inc.Perimeter)
	}
	if !strings.Contains(inc.Notes, "2 satellite detections") {
		t.Errorf("notes missing detection count: %q", inc.Notes)
	}
	if inc.FuelProxy != types.FuelMixed {
		t.Errorf("fuel proxy for 37.4N/-122.2W should be mixed, got %q", inc.FuelProxy)
	}
}
