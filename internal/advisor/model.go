// README: Advisor domain types: requests, the tagged result variant and its payloads.
package advisor

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MaxTripDays is the longest trip the advisor will plan.
const MaxTripDays = 14

// Budget accepts either a JSON string or a JSON number and keeps its text form.
type Budget string

func (b *Budget) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Budget(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = Budget(n.String())
	return nil
}

// Request is a free-text roadtrip question plus optional planning hints.
type Request struct {
	Query          string   `json:"query" validate:"required"`
	Location       string   `json:"location,omitempty"`
	Duration       int      `json:"duration,omitempty" validate:"omitempty,min=1"`
	Budget         Budget   `json:"budget,omitempty"`
	TravelStyle    string   `json:"travelStyle,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	IncludeWeather bool     `json:"includeWeather,omitempty"`

	// nil means enabled.
	IncludeAttractions *bool `json:"includeAttractions,omitempty"`
	IncludeDrivingTips *bool `json:"includeDrivingTips,omitempty"`
}

func (r Request) attractionsEnabled() bool {
	return r.IncludeAttractions == nil || *r.IncludeAttractions
}

func (r Request) drivingTipsEnabled() bool {
	return r.IncludeDrivingTips == nil || *r.IncludeDrivingTips
}

// ItineraryRequest asks for a point-to-point plan.
type ItineraryRequest struct {
	StartPoint  string   `json:"startPoint" validate:"required"`
	EndPoint    string   `json:"endPoint" validate:"required"`
	Waypoints   []string `json:"waypoints,omitempty"`
	Duration    int      `json:"duration,omitempty" validate:"omitempty,min=1"`
	TravelStyle string   `json:"travelStyle,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// Kind tags which payload of a Result is set.
type Kind string

const (
	KindItinerary  Kind = "roadtrip_itinerary"
	KindAdvice     Kind = "roadtrip_advice"
	KindValidation Kind = "validation_error"
	KindTechnical  Kind = "technical_error"
)

// Result is the outcome of one advisor run. Exactly one payload matches Kind.
type Result struct {
	Kind       Kind             `json:"kind"`
	Itinerary  *Itinerary       `json:"itinerary,omitempty"`
	Advice     *Advice          `json:"advice,omitempty"`
	Validation *ValidationError `json:"validation,omitempty"`
	Technical  *TechnicalError  `json:"technical,omitempty"`

	GeneratedAt time.Time `json:"generatedAt,omitempty"`
	Location    string    `json:"location,omitempty"`
	Attractions []string  `json:"attractions,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// Err returns the error carried by the validation and technical variants.
func (r *Result) Err() error {
	switch r.Kind {
	case KindValidation:
		return r.Validation
	case KindTechnical:
		return r.Technical
	}
	return nil
}

// Clone returns a deep copy so callers never share cache-owned slices.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Attractions = cloneStrings(r.Attractions)
	if r.Itinerary != nil {
		it := *r.Itinerary
		it.Days = make([]DayPlan, len(r.Itinerary.Days))
		for i, d := range r.Itinerary.Days {
			d.RecommendedStops = cloneStrings(d.RecommendedStops)
			d.Activities = cloneStrings(d.Activities)
			it.Days[i] = d
		}
		if r.Itinerary.Days == nil {
			it.Days = nil
		}
		it.RouteTips = cloneStrings(it.RouteTips)
		it.EssentialGear = cloneStrings(it.EssentialGear)
		if it.RecommendedApps != nil {
			it.RecommendedApps = append([]App{}, it.RecommendedApps...)
		}
		if it.CurrentWeather != nil {
			w := *it.CurrentWeather
			it.CurrentWeather = &w
		}
		out.Itinerary = &it
	}
	if r.Advice != nil {
		a := *r.Advice
		a.Suggestions = cloneStrings(a.Suggestions)
		a.Resources = cloneStrings(a.Resources)
		out.Advice = &a
	}
	if r.Validation != nil {
		v := *r.Validation
		out.Validation = &v
	}
	if r.Technical != nil {
		t := *r.Technical
		out.Technical = &t
	}
	if r.Metadata != nil {
		m := *r.Metadata
		out.Metadata = &m
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

type Itinerary struct {
	Destination         string           `json:"destination"`
	RecommendedDuration string           `json:"recommendedDuration"`
	EstimatedBudget     Budgets          `json:"estimatedBudget"`
	IdealSeason         string           `json:"idealSeason"`
	Days                []DayPlan        `json:"days"`
	RouteTips           []string         `json:"routeTips"`
	EssentialGear       []string         `json:"essentialGear"`
	RecommendedApps     []App            `json:"recommendedApps"`
	CurrentWeather      *WeatherSnapshot `json:"currentWeather,omitempty"`
}

type Budgets struct {
	Amount    string          `json:"amount"`
	Breakdown BudgetBreakdown `json:"breakdown"`
}

type BudgetBreakdown struct {
	Lodging    string `json:"lodging"`
	Food       string `json:"food"`
	Fuel       string `json:"fuel"`
	Activities string `json:"activities"`
}

// DayPlan is one day of an itinerary. DayNumber is always positive.
type DayPlan struct {
	DayNumber        int      `json:"dayNumber"`
	Route            string   `json:"route"`
	Distance         string   `json:"distance"`
	DrivingTime      string   `json:"drivingTime,omitempty"`
	RecommendedStops []string `json:"recommendedStops"`
	Lodging          string   `json:"lodging"`
	Activities       []string `json:"activities"`
}

type App struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Advice struct {
	Subject     string   `json:"subject"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	Resources   []string `json:"resources"`
}

// WeatherSnapshot is the condition summary merged into an itinerary.
type WeatherSnapshot struct {
	Place        string  `json:"place"`
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperatureC"`
	Source       string  `json:"source"`
	Note         string  `json:"note,omitempty"`
}

// TemperatureLabel renders the temperature as "12.5°C".
func (w WeatherSnapshot) TemperatureLabel() string {
	return strconv.FormatFloat(w.TemperatureC, 'f', -1, 64) + "°C"
}

// Metadata echoes the parameters a result was generated for.
type Metadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	Budget      string    `json:"budget"`
	Style       string    `json:"style"`
}
