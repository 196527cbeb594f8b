// README: Current-conditions weather lookup with fresh, fallback and synthetic tiers.
package weather

import "time"

// Source tells where a Report came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceFallback  Source = "fallback_cache"
	SourceSynthetic Source = "synthetic"
)

const (
	fallbackNote  = "Ces données peuvent ne pas être à jour en raison d'une erreur de connexion à l'API météo."
	syntheticNote = "Ces données sont des estimations basées sur la saison actuelle et ne sont pas des données météo réelles."
)

// Report is a current-conditions observation or estimate.
type Report struct {
	City            string    `json:"city"`
	TemperatureC    float64   `json:"temperature"`
	Condition       string    `json:"weather"`
	Humidity        int       `json:"humidity"`
	WindSpeedKmh    float64   `json:"windSpeed"`
	PrecipitationMM float64   `json:"precipitation"`
	ObservedAt      time.Time `json:"observedAt"`
	Source          Source    `json:"source"`
	Note            string    `json:"note,omitempty"`
}

// Synthetic reports true when the values are a seasonal estimate.
func (r *Report) Synthetic() bool { return r.Source == SourceSynthetic }
