// Package cluster groups raw FIRMS satellite detections into discrete fire
// events using density-based clustering over haversine distance.
package cluster

import (
	"fmt"
	"log"
	"sort"
	"time"

	"go-firewatch/geo"
	"go-firewatch/types"
)

const (
	epsMeters = 1500.0 // hotspots within this distance belong to the same fire

	// Every point is clusterable: isolated detections become singleton
	// clusters instead of classic DBSCAN noise. The product requirement is
	// "always show something", so keep this at 1.
	minPoints = 1

	pixelHalfWidthMeters = 375.0 // VIIRS sensor footprint allowance
	minRadiusMeters      = 100.0 // radius floor for single-point clusters
)

// label states during the scan
const (
	labelUnvisited = -1
	labelNoise     = -2
)

// ClusterHotspots groups hotspots into fire clusters, sorted by total FRP
// descending. Empty input yields empty output. The ordering is load-bearing
// for downstream top-N truncation and default UI sort.
func ClusterHotspots(hotspots []types.FirmsHotspot) []types.FireCluster {
	if len(hotspots) == 0 {
		return []types.FireCluster{}
	}

	labels := dbscan(hotspots, epsMeters, minPoints)

	// Group members by cluster ID, preserving first-seen order.
	maxID := 0
	for _, id := range labels {
		if id > maxID {
			maxID = id
		}
	}
	groups := make([][]types.FirmsHotspot, maxID+1)
	for i, id := range labels {
		groups[id] = append(groups[id], hotspots[i])
	}

	clusters := make([]types.FireCluster, 0, len(groups))
	idx := 0
	for _, members := range groups {
		if len(members) == 0 {
			continue
		}
		clusters = append(clusters, buildCluster(fmt.Sprintf("firms_cluster_%d", idx), members))
		idx++
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalFrp > clusters[j].TotalFrp
	})

	log.Printf("[Cluster] %d hotspots -> %d clusters", len(hotspots), len(clusters))

	return clusters
}

// dbscan assigns a cluster ID to every hotspot. Brute-force O(n^2) neighbor
// search; hotspot counts per poll are tens to low hundreds, so no spatial
// index is needed.
func dbscan(hotspots []types.FirmsHotspot, eps float64, minPts int) []int {
	n := len(hotspots)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = labelUnvisited
	}

	regionQuery := func(idx int) []int {
		var neighbors []int
		p := hotspots[idx]
		for j := 0; j < n; j++ {
			if j == idx {
				continue
			}
			dist := geo.HaversineMeters(p.Latitude, p.Longitude, hotspots[j].Latitude, hotspots[j].Longitude)
			if dist <= eps {
				neighbors = append(neighbors, j)
			}
		}
		return neighbors
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if labels[i] != labelUnvisited {
			continue
		}

		neighbors := regionQuery(i)
		if len(neighbors)+1 < minPts {
			labels[i] = labelNoise
			continue
		}

		labels[i] = clusterID
		queue := append([]int(nil), neighbors...)
		visited := map[int]bool{i: true}

		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if visited[j] {
				continue
			}
			visited[j] = true

			if labels[j] == labelNoise {
				labels[j] = clusterID // border point, reclaimed from noise
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = clusterID

			jNeighbors := regionQuery(j)
			if len(jNeighbors)+1 >= minPts {
				queue = append(queue, jNeighbors...)
			}
		}

		clusterID++
	}

	// Promote any remaining noise points to singleton clusters.
	for i := 0; i < n; i++ {
		if labels[i] == labelNoise {
			labels[i] = clusterID
			clusterID++
		}
	}

	return labels
}

// buildCluster aggregates member hotspots into a FireCluster.
func buildCluster(id string, members []types.FirmsHotspot) types.FireCluster {
	var sumLat, sumLon, maxFrp, maxBrightness, totalFrp float64
	latest := time.Time{}

	for _, hs := range members {
		sumLat += hs.Latitude
		sumLon += hs.Longitude
		if hs.Frp > maxFrp {
			maxFrp = hs.Frp
		}
		if hs.Brightness > maxBrightness {
			maxBrightness = hs.Brightness
		}
		totalFrp += hs.Frp
		if dt, ok := parseFirmsDateTime(hs.AcqDate, hs.AcqTime); ok && dt.After(latest) {
			latest = dt
		}
	}

	count := float64(len(members))
	centroidLat := sumLat / count
	centroidLon := sumLon / count

	// Rough radius: max distance from centroid to any member, floored.
	maxDist := minRadiusMeters
	for _, hs := range members {
		dist := geo.HaversineMeters(centroidLat, centroidLon, hs.Latitude, hs.Longitude)
		if dist > maxDist {
			maxDist = dist
		}
	}

	lastSeen := ""
	if !latest.IsZero() {
		lastSeen = latest.UTC().Format(time.RFC3339)
	}

	return types.FireCluster{
		ID:            id,
		CentroidLat:   centroidLat,
		CentroidLon:   centroidLon,
		PointCount:    len(members),
		MaxFrp:        maxFrp,
		MaxBrightness: maxBrightness,
		TotalFrp:      totalFrp,
		LastSeen:      lastSeen,
		RadiusMeters:  int(maxDist + pixelHalfWidthMeters + 0.5),
		Hotspots:      members,
	}
}

// parseFirmsDateTime combines FIRMS acq_date ("2026-02-14") and acq_time
// ("0642", HHMM) into a UTC instant.
func parseFirmsDateTime(acqDate, acqTime string) (time.Time, bool) {
	for len(acqTime) < 4 {
		acqTime = "0" + acqTime
	}
	t, err := time.Parse("2006-01-02 1504", acqDate+" "+acqTime)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
