package generator

import (
	"fmt"

	"greenhouse_monitor/internal/classify"
	"greenhouse_monitor/internal/models"
)

// Metric keys.
const (
	SoilMoisture   = "soil_moisture"
	SoilPH         = "soil_ph"
	CO2            = "co2"
	LightIntensity = "light_intensity"
)

// DefaultPlantTypes are the plantations of the four micro greenhouses.
var DefaultPlantTypes = []string{"Tomato", "Lettuce", "Basil", "Strawberry"}

// Catalog is the ordered list of tracked metrics.
type Catalog []Profile

// DefaultCatalog returns soil moisture, soil pH, CO₂ and light intensity.
func DefaultCatalog() Catalog {
	zero := 0.0
	return Catalog{
		{
			Spec: models.MetricSpec{
				Key: SoilMoisture, Name: "Soil Moisture", Unit: "%",
				Range:    models.Range{Min: 0, Max: 100},
				Optimal:  models.OptimalRange{Min: 40, Max: 70},
				Alerting: true,
			},
			Baseline: 35, Noise: 30, Amplitude: 10, Frequency: 0.1,
		},
		{
			Spec: models.MetricSpec{
				Key: SoilPH, Name: "Soil pH", Unit: "pH",
				Range:    models.Range{Min: 4.0, Max: 9.0},
				Optimal:  models.OptimalRange{Min: 6.0, Max: 7.5},
				Alerting: true,
			},
			Baseline: 6.2, Noise: 1.6, Amplitude: 0.3, Frequency: 0.15,
		},
		{
			Spec: models.MetricSpec{
				Key: CO2, Name: "CO₂", Unit: "ppm",
				Range:   models.Range{Min: 300, Max: 800},
				Optimal: models.OptimalRange{Min: 400, Max: 600},
			},
			Baseline: 380, Noise: 240, Amplitude: 50, Frequency: 0.2,
		},
		{
			Spec: models.MetricSpec{
				Key: LightIntensity, Name: "Light", Unit: "klux",
				Range:   models.Range{Min: 0, Max: 100},
				Optimal: models.OptimalRange{Min: 20, Max: 80},
			},
			Baseline: 40, Noise: 20, Amplitude: 45, Frequency: 0.3, Floor: &zero,
		},
	}
}

// Validate rejects duplicate keys and unusable ranges.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("metric catalog is empty")
	}
	seen := make(map[string]struct{}, len(c))
	for _, p := range c {
		if _, dup := seen[p.Spec.Key]; dup {
			return fmt.Errorf("duplicate metric key %q", p.Spec.Key)
		}
		seen[p.Spec.Key] = struct{}{}
		if err := classify.ValidateSpec(p.Spec); err != nil {
			return err
		}
	}
	return nil
}

// Specs indexes the metric specs by key.
func (c Catalog) Specs() map[string]models.MetricSpec {
	out := make(map[string]models.MetricSpec, len(c))
	for _, p := range c {
		out[p.Spec.Key] = p.Spec
	}
	return out
}
