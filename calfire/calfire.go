// Package calfire pulls active incidents from the CAL FIRE public incident
// API and normalizes them into the internal Incident shape.
package calfire

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"

	"go-firewatch/cache"
	"go-firewatch/types"
)

const (
	apiBase  = "https://incidents.fire.ca.gov/umbraco/api/IncidentApi"
	cacheTTL = 2 * time.Minute
)

// Client fetches and caches CAL FIRE incidents.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Cache[[]types.CalFireRawIncident]
}

// NewClient builds a CAL FIRE client with a 2 minute response cache.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    apiBase,
		cache:      cache.New[[]types.CalFireRawIncident](cacheTTL, nil),
	}
}

// FetchOptions narrow the incident query. Year 0 means the current year.
type FetchOptions struct {
	Year     int
	Inactive bool
}

// FetchIncidents returns raw incidents from the List endpoint.
func (c *Client) FetchIncidents(ctx context.Context, opts FetchOptions) ([]types.CalFireRawIncident, error) {
	key := fmt.Sprintf("calfire_incidents_%d_%t", opts.Year, opts.Inactive)

	return c.cache.Do(key, func() ([]types.CalFireRawIncident, error) {
		params := url.Values{}
		params.Set("inactive", fmt.Sprintf("%t", opts.Inactive))
		if opts.Year > 0 {
			params.Set("year", fmt.Sprintf("%d", opts.Year))
		}

		reqURL := c.baseURL + "/List?" + params.Encode()
		log.Printf("[CAL FIRE] fetching %s", reqURL)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building CAL FIRE request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching CAL FIRE incidents: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("CAL FIRE API error: %d", res.StatusCode)
		}

		var raw []types.CalFireRawIncident
		if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding CAL FIRE response: %w", err)
		}
		return raw, nil
	})
}

// NormalizedIncident pairs the internal shape with the raw record it came
// from, so handlers can expose upstream fields like containment.
type NormalizedIncident struct {
	Incident types.Incident          `json:"incident"`
	Raw      types.CalFireRawIncident `json:"raw"`
}

// GetIncidents fetches, normalizes, and sorts incidents most recently
// updated first. Records without coordinates are dropped.
func (c *Client) GetIncidents(ctx context.Context, opts FetchOptions) ([]NormalizedIncident, error) {
	raw, err := c.FetchIncidents(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := make([]NormalizedIncident, 0, len(raw))
	for _, r := range raw {
		incident, ok := Normalize(r)
		if !ok {
			continue
		}
		result = append(result, NormalizedIncident{Incident: incident, Raw: r})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Raw.Updated > result[j].Raw.Updated
	})

	return result, nil
}

// Normalize converts a raw CAL FIRE record to the internal Incident shape.
// Returns false when the record has no usable coordinates.
func Normalize(raw types.CalFireRawIncident) (types.Incident, bool) {
	if raw.Latitude == 0 || raw.Longitude == 0 {
		return types.Incident{}, false
	}

	id := raw.UniqueId
	if id == "" {
		id = uuid.NewString()
	}

	name := raw.Name
	if name == "" {
		name = "Unknown Fire"
	}

	started := raw.Started
	if started == "" {
		started = time.Now().UTC().Format(time.RFC3339)
	}

	var notes []string
	if raw.Location != "" {
		notes = append(notes, raw.Location)
	}
	if raw.AcresBurned > 0 {
		notes = append(notes, fmt.Sprintf("%.0f acres", raw.AcresBurned))
	}
	if raw.PercentContained != nil {
		notes = append(notes, fmt.Sprintf("%g%% contained", *raw.PercentContained))
	}
	if raw.County != "" {
		notes = append(notes, fmt.Sprintf("%s County", raw.County))
	}

	return types.Incident{
		ID:           "calfire_" + id,
		Name:         name,
		Lat:          raw.Latitude,
		Lon:          raw.Longitude,
		StartTimeISO: started,
		Perimeter: types.Perimeter{
			Type:         "Point",
			RadiusMeters: acresToRadiusMeters(raw.AcresBurned),
		},
		FuelProxy: inferFuelProxy(raw.County),
		Notes:     joinNotes(notes),
	}, true
}
