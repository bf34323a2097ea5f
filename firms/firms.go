// Package firms pulls near-real-time satellite hotspot detections from the
// NASA FIRMS area API. Responses are CSV; rows that fail coordinate parsing
// are dropped rather than failing the whole fetch.
//
// API docs: https://firms.modaps.eosdis.nasa.gov/api/area/
package firms

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-firewatch/cache"
	"go-firewatch/types"
)

const (
	firmsBase = "https://firms.modaps.eosdis.nasa.gov/api/area/csv"
	cacheTTL  = 3 * time.Minute
)

// CaliforniaBBox is the default query extent (west,south,east,north).
const CaliforniaBBox = "-124.5,32.5,-114.1,42.1"

// Sources lists the supported VIIRS/MODIS near-real-time products.
var Sources = []string{
	"VIIRS_SNPP_NRT",
	"VIIRS_NOAA20_NRT",
	"VIIRS_NOAA21_NRT",
	"MODIS_NRT",
}

// Client fetches and caches hotspot detections. MapKey is required by the
// upstream API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	mapKey     string
	cache      *cache.Cache[[]types.FirmsHotspot]
}

// NewClient builds a FIRMS client. mapKey must be non-empty for fetches to
// succeed.
func NewClient(mapKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    firmsBase,
		mapKey:     mapKey,
		cache:      cache.New[[]types.FirmsHotspot](cacheTTL, nil),
	}
}

// FetchOptions narrow a hotspot query. Zero values select the defaults:
// California, 1 day, VIIRS_SNPP_NRT only.
type FetchOptions struct {
	BBox    string
	Days    int
	Sources []string
}

// FetchHotspots queries each source, merges the results, and sorts them most
// recent first. A single failing source is logged and skipped so one satellite
// outage does not blank the map.
func (c *Client) FetchHotspots(ctx context.Context, opts FetchOptions) ([]types.FirmsHotspot, error) {
	if c.mapKey == "" {
		return nil, fmt.Errorf("FIRMS map key not configured")
	}

	bbox := opts.BBox
	if bbox == "" {
		bbox = CaliforniaBBox
	}
	days := opts.Days
	if days < 1 {
		days = 1
	}
	if days > 10 {
		days = 10
	}
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []string{"VIIRS_SNPP_NRT"}
	}

	var all []types.FirmsHotspot
	for _, src := range sources {
		hotspots, err := c.fetchSource(ctx, src, bbox, days)
		if err != nil {
			log.Printf("[FIRMS] source %s failed: %v", src, err)
			continue
		}
		all = append(all, hotspots...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a := all[i].AcqDate + " " + all[i].AcqTime
		b := all[j].AcqDate + " " + all[j].AcqTime
		return a > b
	})

	log.Printf("[FIRMS] total hotspots across all sources: %d", len(all))
	return all, nil
}

func (c *Client) fetchSource(ctx context.Context, source, bbox string, days int) ([]types.FirmsHotspot, error) {
	key := fmt.Sprintf("firms_%s_%s_%d", source, bbox, days)

	return c.cache.Do(key, func() ([]types.FirmsHotspot, error) {
		url := fmt.Sprintf("%s/%s/%s/%s/%d", c.baseURL, c.mapKey, source, bbox, days)
		log.Printf("[FIRMS] fetching %s (%s, %dd)", source, bbox, days)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("building FIRMS request: %w", err)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching FIRMS %s: %w", source, err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 200))
			return nil, fmt.Errorf("FIRMS API error %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("reading FIRMS response: %w", err)
		}

		text := strings.TrimSpace(string(body))
		if text == "" || strings.HasPrefix(text, "<!DOCTYPE") || strings.HasPrefix(text, "<html") {
			log.Printf("[FIRMS] %s returned non-CSV response, skipping", source)
			return nil, nil
		}

		hotspots, err := ParseCSV(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parsing FIRMS CSV for %s: %w", source, err)
		}

		log.Printf("[FIRMS] %s: %d hotspots parsed", source, len(hotspots))
		return hotspots, nil
	})
}

// ParseCSV reads a FIRMS CSV document with a header row. VIIRS and MODIS use
// different brightness column names (bright_ti4/bright_ti5 vs
// brightness/bright_t31); both are handled.
func ParseCSV(r io.Reader) ([]types.FirmsHotspot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	num := func(row []string, names ...string) float64 {
		for _, name := range names {
			if v, err := strconv.ParseFloat(field(row, name), 64); err == nil {
				return v
			}
		}
		return 0
	}

	var hotspots []types.FirmsHotspot
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(field(row, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(row, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		hotspots = append(hotspots, types.FirmsHotspot{
			Latitude:   lat,
			Longitude:  lon,
			Brightness: num(row, "bright_ti4", "brightness"),
			Scan:       num(row, "scan"),
			Track:      num(row, "track"),
			AcqDate:    field(row, "acq_date"),
			AcqTime:    field(row, "acq_time"),
			Satellite:  field(row, "satellite"),
			Instrument: field(row, "instrument"),
			Confidence: field(row, "confidence"),
			Version:    field(row, "version"),
			BrightT31:  num(row, "bright_ti5", "bright_t31"),
			Frp:        num(row, "frp"),
			DayNight:   field(row, "daynight"),
		})
	}

	return hotspots, nil
}
