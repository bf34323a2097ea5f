package routes

import (
	"github.com/gin-gonic/gin"

	"go-firewatch/advisory"
	"go-firewatch/calfire"
	"go-firewatch/firms"
	"go-firewatch/handlers"
	"go-firewatch/weather"
)

// Clients bundles the external collaborators handlers need. FirmsClient may
// be nil when no map key is configured.
type Clients struct {
	Weather  *weather.Client
	Firms    *firms.Client
	CalFire  *calfire.Client
	Advisory *advisory.Generator
}

func SetupRouter(clients Clients) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Firewatch!",
		})
	})

	// api routes
	api := r.Group("/api/firewatch")
	{
		api.POST("/spread", func(c *gin.Context) {
			handlers.ComputeSpread(c, clients.Weather)
		})
		api.POST("/recommendations", func(c *gin.Context) {
			handlers.GenerateRecommendations(c, clients.Weather)
		})
		api.POST("/brief", func(c *gin.Context) {
			handlers.GenerateBrief(c, clients.Weather)
		})
		api.POST("/insights", func(c *gin.Context) {
			handlers.GenerateInsights(c, clients.Weather, clients.Advisory)
		})
		api.GET("/risk", handlers.ComputeRisk)
		api.GET("/hotspots", func(c *gin.Context) {
			handlers.GetHotspots(c, clients.Firms)
		})
		api.GET("/fires/live", func(c *gin.Context) {
			handlers.GetLiveFires(c, clients.CalFire)
		})
		api.GET("/weather", func(c *gin.Context) {
			handlers.GetWeather(c, clients.Weather)
		})
		api.GET("/scenarios", handlers.GetScenarios)
		api.GET("/scenarios/:id", handlers.GetScenarioByID)
	}

	return r
}
