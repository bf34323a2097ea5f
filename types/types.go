package types

// FuelType is the coarse fuel category used by the spread model.
type FuelType string

const (
	FuelGrass     FuelType = "grass"
	FuelBrush     FuelType = "brush"
	FuelMixed     FuelType = "mixed"
	FuelChaparral FuelType = "chaparral"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Perimeter approximates a fire perimeter as a point plus radius.
type Perimeter struct {
	Type         string `json:"type"` // always "Point"
	RadiusMeters int    `json:"radiusMeters"`
}

// Incident is the normalized fire record every core operation consumes.
// Immutable once constructed; a changed incident is a new value.
type Incident struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	StartTimeISO string    `json:"startTimeISO"`
	Perimeter    Perimeter `json:"perimeter"`
	FuelProxy    FuelType  `json:"fuelProxy"`
	Notes        string    `json:"notes"`
}

// Weather is a snapshot of current conditions at the incident origin.
// Wind direction uses the meteorological "from" convention.
type Weather struct {
	WindSpeedMps float64 `json:"windSpeedMps"`
	WindGustMps  float64 `json:"windGustMps"`
	WindDirDeg   float64 `json:"windDirDeg"`
	TemperatureC float64 `json:"temperatureC"`
	HumidityPct  float64 `json:"humidityPct"`
}

// WindShift is an optional what-if parameter: at AtMinutes from now the wind
// swings to NewDirDeg.
type WindShift struct {
	Enabled   bool    `json:"enabled"`
	AtMinutes int     `json:"atMinutes"`
	NewDirDeg float64 `json:"newDirDeg"`
}

// Asset is a point of value to protect. Read-only to the core.
type Asset struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"` // community | infrastructure | school | hospital
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Priority string  `json:"priority"` // high | medium | low
}

// Resources describes responding units available to the commander.
type Resources struct {
	EnginesAvailable    int  `json:"enginesAvailable"`
	DozersAvailable     int  `json:"dozersAvailable"`
	AirSupportAvailable bool `json:"airSupportAvailable"`
	EtaMinutesEngine    int  `json:"etaMinutesEngine"`
	EtaMinutesAir       int  `json:"etaMinutesAir"`
}
