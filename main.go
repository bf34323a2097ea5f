package main

import (
	"log"

	"github.com/sashabaranov/go-openai"

	"go-firewatch/advisory"
	"go-firewatch/calfire"
	"go-firewatch/config"
	"go-firewatch/cronjobs"
	"go-firewatch/firms"
	"go-firewatch/routes"
	"go-firewatch/weather"
)

func main() {
	cfg := config.FromEnv()

	weatherClient := weather.NewClient()
	calfireClient := calfire.NewClient()

	var firmsClient *firms.Client
	if cfg.FirmsMapKey != "" {
		firmsClient = firms.NewClient(cfg.FirmsMapKey)
	}

	var openaiClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	}
	advisoryGen := advisory.NewGenerator(openaiClient, cfg.OpenAIModel)

	// Poll satellite feeds in the background
	cronjobs.InitCronJobs(firmsClient, cfg.FirmsBBox)

	r := routes.SetupRouter(routes.Clients{
		Weather:  weatherClient,
		Firms:    firmsClient,
		CalFire:  calfireClient,
		Advisory: advisoryGen,
	})
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
