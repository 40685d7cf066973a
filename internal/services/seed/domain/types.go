// Package domain defines the demo catalog the seeder writes
package domain

import "time"

// Shape picks the generator for a series
type Shape string

const (
	// ShapeSine is a periodic wave around Base
	ShapeSine Shape = "sine"
	// ShapeWalk is a bounded random walk starting at Base
	ShapeWalk Shape = "walk"
	// ShapeNone writes catalog rows only, used for string series
	ShapeNone Shape = "none"
)

// Spec describes one demo series and how its samples are synthesized
type Spec struct {
	ExternalID  string
	Name        string
	Unit        string
	Description string
	IsString    bool

	Shape     Shape
	Base      float64
	Amplitude float64
	Period    time.Duration // sine only
	Noise     float64       // stddev added to sine samples, walk step size
}

// Report summarizes a seeding run
type Report struct {
	Series int   `json:"series"`
	Points int64 `json:"points"`
	Start  time.Time
	End    time.Time
}

// Catalog is the default demo set
func Catalog() []Spec {
	return []Spec{
		{ExternalID: "temperature", Name: "Temperature", Unit: "°C", Description: "Outdoor air temperature",
			Shape: ShapeSine, Base: 12, Amplitude: 8, Period: 24 * time.Hour, Noise: 0.4},
		{ExternalID: "humidity", Name: "Humidity", Unit: "%", Description: "Relative humidity",
			Shape: ShapeSine, Base: 60, Amplitude: 20, Period: 24 * time.Hour, Noise: 1.5},
		{ExternalID: "grid-frequency", Name: "Grid frequency", Unit: "Hz", Description: "Mains frequency",
			Shape: ShapeSine, Base: 50, Amplitude: 0.05, Period: 17 * time.Minute, Noise: 0.01},
		{ExternalID: "cpu-load", Name: "CPU load", Unit: "%", Description: "Host cpu utilisation",
			Shape: ShapeWalk, Base: 35, Amplitude: 35, Noise: 2},
		{ExternalID: "pressure", Name: "Pressure", Unit: "hPa", Description: "Barometric pressure",
			Shape: ShapeWalk, Base: 1013, Amplitude: 25, Noise: 0.3},
		{ExternalID: "pump-state", Name: "Pump state", Description: "Textual pump state",
			IsString: true, Shape: ShapeNone},
	}
}
