package types

// FirmsHotspot is one raw satellite detection from NASA FIRMS.
// Numerous and noisy; only ever consumed through clustering.
type FirmsHotspot struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Brightness float64 `json:"brightness"`
	Scan       float64 `json:"scan"`
	Track      float64 `json:"track"`
	AcqDate    string  `json:"acq_date"` // "2026-02-14"
	AcqTime    string  `json:"acq_time"` // "0642" (HHMM)
	Satellite  string  `json:"satellite"`
	Instrument string  `json:"instrument"`
	Confidence string  `json:"confidence"`
	Version    string  `json:"version"`
	BrightT31  float64 `json:"bright_t31"`
	Frp        float64 `json:"frp"` // fire radiative power, MW
	DayNight   string  `json:"daynight"`
}

// FireCluster groups nearby hotspots into one fire event. Built fresh each
// clustering run; no identity continuity between polling cycles.
type FireCluster struct {
	ID            string         `json:"id"`
	CentroidLat   float64        `json:"centroidLat"`
	CentroidLon   float64        `json:"centroidLon"`
	PointCount    int            `json:"pointCount"`
	MaxFrp        float64        `json:"maxFrp"`
	MaxBrightness float64        `json:"maxBrightness"`
	TotalFrp      float64        `json:"totalFrp"`
	LastSeen      string         `json:"lastSeen"` // RFC3339
	RadiusMeters  int            `json:"radiusMeters"`
	Hotspots      []FirmsHotspot `json:"hotspots"`
}
