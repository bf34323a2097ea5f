package firms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-firewatch/cache"
	"go-firewatch/types"
)

const viirsCSV = `latitude,longitude,bright_ti4,scan,track,acq_date,acq_time,satellite,instrument,confidence,version,bright_ti5,frp,daynight
37.4200,-122.1700,330.5,0.39,0.36,2026-02-14,0642,N,VIIRS,n,2.0NRT,290.1,12.5,N
37.4250,-122.1650,345.2,0.39,0.36,2026-02-14,0642,N,VIIRS,h,2.0NRT,295.8,28.3,N
bad,-122.1,300,0.39,0.36,2026-02-14,0642,N,VIIRS,n,2.0NRT,290,5,N
`

func TestParseCSVViirs(t *testing.T) {
	hotspots, err := ParseCSV(strings.NewReader(viirsCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(hotspots) != 2 {
		t.Fatalf("parsed %d hotspots, want 2 (bad row dropped)", len(hotspots))
	}

	h := hotspots[0]
	if h.Latitude != 37.42 || h.Longitude != -122.17 {
		t.Errorf("coords = %g, %g", h.Latitude, h.Longitude)
	}
	if h.Brightness != 330.5 {
		t.Errorf("brightness = %g, want bright_ti4 value", h.Brightness)
	}
	if h.BrightT31 != 290.1 {
		t.Errorf("brightT31 = %g, want bright_ti5 value", h.BrightT31)
	}
	if h.Frp != 12.5 || h.AcqDate != "2026-02-14" || h.AcqTime != "0642" {
		t.Errorf("unexpected hotspot: %+v", h)
	}
}

func TestParseCSVModisColumns(t *testing.T) {
	modisCSV := `latitude,longitude,brightness,scan,track,acq_date,acq_time,satellite,instrument,confidence,version,bright_t31,frp,daynight
36.0000,-120.0000,320.0,1.0,1.0,2026-02-14,1030,Terra,MODIS,85,6.1NRT,285.0,18.0,D
`
	hotspots, err := ParseCSV(strings.NewReader(modisCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(hotspots) != 1 {
		t.Fatalf("parsed %d hotspots, want 1", len(hotspots))
	}
	if hotspots[0].Brightness != 320.0 || hotspots[0].BrightT31 != 285.0 {
		t.Errorf("MODIS columns not mapped: %+v", hotspots[0])
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		mapKey:     "testkey",
		cache:      cache.New[[]types.FirmsHotspot](3*time.Minute, nil),
	}
}

func TestFetchHotspotsCachesPerSource(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, viirsCSV)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	opts := FetchOptions{}

	first, err := c.FetchHotspots(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d hotspots, want 2", len(first))
	}

	if _, err := c.FetchHotspots(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (cached)", hits)
	}
}

func TestFetchHotspotsSortsMostRecentFirst(t *testing.T) {
	csv := `latitude,longitude,bright_ti4,acq_date,acq_time,frp
37.0,-122.0,300,2026-02-13,2200,5
37.1,-122.1,310,2026-02-14,0642,8
37.2,-122.2,320,2026-02-14,0300,6
`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, csv)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	hotspots, err := c.FetchHotspots(context.Background(), FetchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hotspots) != 3 {
		t.Fatalf("got %d hotspots", len(hotspots))
	}
	if hotspots[0].AcqTime != "0642" || hotspots[2].AcqDate != "2026-02-13" {
		t.Errorf("not sorted most recent first: %+v", hotspots)
	}
}

func TestFetchHotspotsSkipsFailingSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "MODIS_NRT") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, viirsCSV)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	hotspots, err := c.FetchHotspots(context.Background(), FetchOptions{
		Sources: []string{"VIIRS_SNPP_NRT", "MODIS_NRT"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hotspots) != 2 {
		t.Errorf("got %d hotspots, want 2 from the healthy source", len(hotspots))
	}
}

func TestFetchHotspotsHTMLResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>Invalid MAP_KEY</body></html>")
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	hotspots, err := c.FetchHotspots(context.Background(), FetchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hotspots) != 0 {
		t.Errorf("got %d hotspots from an HTML error page", len(hotspots))
	}
}

func TestFetchHotspotsRequiresMapKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.FetchHotspots(context.Background(), FetchOptions{}); err == nil {
		t.Fatal("expected an error without a map key")
	}
}

func TestFetchHotspotsClampsDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/10") {
			t.Errorf("path = %q, want days clamped to 10", r.URL.Path)
		}
		fmt.Fprint(w, viirsCSV)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.FetchHotspots(context.Background(), FetchOptions{Days: 99}); err != nil {
		t.Fatal(err)
	}
}
