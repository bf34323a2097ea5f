package types

// HistoricalWeather is the condensed weather record kept with an archived
// incident.
type HistoricalWeather struct {
	WindSpeedMps float64 `json:"windSpeedMps"`
	HumidityPct  float64 `json:"humidityPct"`
	TemperatureC float64 `json:"temperatureC"`
}

// HistoricalResources records what was committed to an archived incident.
type HistoricalResources struct {
	Engines    int  `json:"engines"`
	Dozers     int  `json:"dozers"`
	AirSupport bool `json:"airSupport"`
}

// HistoricalIncident is an archived initial-attack incident used for analog
// matching. Feeds the advisory layer and UI only, never the deterministic
// recommendation path.
type HistoricalIncident struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Date                 string              `json:"date"`
	Location             string              `json:"location"`
	Fuel                 FuelType            `json:"fuel"`
	Weather              HistoricalWeather   `json:"weather"`
	Outcome              string              `json:"outcome"` // contained | escaped | partial
	ContainmentTimeHours float64             `json:"containmentTimeHours"`
	FinalAcres           float64             `json:"finalAcres"`
	Resources            HistoricalResources `json:"resources"`
	KeyLesson            string              `json:"keyLesson"`
}
