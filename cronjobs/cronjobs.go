package cronjobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"go-firewatch/cluster"
	"go-firewatch/firms"
)

const pollTimeout = 2 * time.Minute

// pollSource fetches one satellite product, clusters the detections, and
// logs the result. Polling only warms the cache and surfaces activity in the
// logs; handlers do their own fetches through the same cache.
func pollSource(firmsClient *firms.Client, source, bbox string) {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	hotspots, err := firmsClient.FetchHotspots(ctx, firms.FetchOptions{
		BBox:    bbox,
		Days:    1,
		Sources: []string{source},
	})
	if err != nil {
		log.Printf("[Cron] %s poll failed: %v", source, err)
		return
	}

	clusters := cluster.ClusterHotspots(hotspots)
	for _, cl := range clusters {
		if cl.TotalFrp > 50 {
			log.Printf("[Cron] significant cluster %s: %d points, %.1f MW total FRP at %.3f, %.3f",
				cl.ID, cl.PointCount, cl.TotalFrp, cl.CentroidLat, cl.CentroidLon)
		}
	}
}

// InitCronJobs schedules staggered polling of the satellite feeds. No-op
// when the hotspot feed is not configured.
func InitCronJobs(firmsClient *firms.Client, bbox string) {
	if firmsClient == nil {
		log.Println("Cron jobs skipped: hotspot feed not configured")
		return
	}

	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// VIIRS S-NPP: every 10 minutes at 0 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("\nCronJob: VIIRS S-NPP Poll Running")
		pollSource(firmsClient, "VIIRS_SNPP_NRT", bbox)
	})
	if err != nil {
		log.Println("Error scheduling VIIRS S-NPP poll:", err)
	}

	// VIIRS NOAA-20: every 10 minutes at the 3 minute mark
	_, err = c.AddFunc("3-59/10 * * * *", func() {
		log.Println("\nCronJob: VIIRS NOAA-20 Poll Running")
		pollSource(firmsClient, "VIIRS_NOAA20_NRT", bbox)
	})
	if err != nil {
		log.Println("Error scheduling VIIRS NOAA-20 poll:", err)
	}

	// MODIS: every 10 minutes at the 6 minute mark
	_, err = c.AddFunc("6-59/10 * * * *", func() {
		log.Println("\nCronJob: MODIS Poll Running")
		pollSource(firmsClient, "MODIS_NRT", bbox)
	})
	if err != nil {
		log.Println("Error scheduling MODIS poll:", err)
	}

	c.Start()
}
