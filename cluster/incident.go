package cluster

import (
	"fmt"
	"sort"
	"strings"

	"go-firewatch/types"
)

// defaultFirmsResources is the conservative resource assumption attached to
// incidents that came straight from satellite detections (no dispatch data).
var defaultFirmsResources = types.Resources{
	EnginesAvailable:    2,
	DozersAvailable:     0,
	AirSupportAvailable: false,
	EtaMinutesEngine:    25,
	EtaMinutesAir:       60,
}

// DefaultFirmsResources returns a copy of the default resource assumption
// for satellite-sourced incidents.
func DefaultFirmsResources() types.Resources {
	return defaultFirmsResources
}

// inferFuelProxy guesses a fuel category from the latitude band. A crude
// stand-in for real fuel-model data, kept for satellite-only incidents that
// carry no registry metadata.
func inferFuelProxy(lat, lon float64) types.FuelType {
	if lat < 35.5 {
		return types.FuelChaparral
	}
	if lat < 38 && lon > -121 {
		return types.FuelGrass
	}
	return types.FuelMixed
}

// clusterName builds a human-readable name from the dominant satellite and
// the cluster's centroid.
func clusterName(c types.FireCluster, index int) string {
	satCounts := map[string]int{}
	for _, hs := range c.Hotspots {
		sat := hs.Satellite
		if sat == "" {
			sat = "Unknown"
		}
		satCounts[sat]++
	}

	dominant := "Satellite"
	best := 0
	sats := make([]string, 0, len(satCounts))
	for sat := range satCounts {
		sats = append(sats, sat)
	}
	sort.Strings(sats)
	for _, sat := range sats {
		if satCounts[sat] > best {
			best = satCounts[sat]
			dominant = sat
		}
	}

	latDir := "N"
	if c.CentroidLat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if c.CentroidLon < 0 {
		lonDir = "W"
	}

	return fmt.Sprintf("%s Detection %d (%.2f%s, %.2f%s)",
		dominant, index+1, abs(c.CentroidLat), latDir, abs(c.CentroidLon), lonDir)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ToIncident normalizes a FireCluster into an Incident record.
func ToIncident(c types.FireCluster, index int) types.Incident {
	var satellites []string
	seen := map[string]bool{}
	for _, hs := range c.Hotspots {
		if hs.Satellite != "" && !seen[hs.Satellite] {
			seen[hs.Satellite] = true
			satellites = append(satellites, hs.Satellite)
		}
	}

	notes := []string{
		fmt.Sprintf("%d satellite detections", c.PointCount),
		fmt.Sprintf("Max FRP: %.1f MW", c.MaxFrp),
		fmt.Sprintf("Last seen: %s", c.LastSeen),
	}
	if len(satellites) > 0 {
		notes = append(notes, fmt.Sprintf("Satellites: %s", strings.Join(satellites, ", ")))
	}

	return types.Incident{
		ID:           c.ID,
		Name:         clusterName(c, index),
		Lat:          c.CentroidLat,
		Lon:          c.CentroidLon,
		StartTimeISO: c.LastSeen,
		Perimeter: types.Perimeter{
			Type:         "Point",
			RadiusMeters: c.RadiusMeters,
		},
		FuelProxy: inferFuelProxy(c.CentroidLat, c.CentroidLon),
		Notes:     strings.Join(notes, " • "),
	}
}
