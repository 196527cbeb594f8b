package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// text accepts a JSON string or number. Models are inconsistent about "850€" vs 850.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = text(n.String())
	return nil
}

type generatedDay struct {
	Day         int      `json:"jour"`
	Route       text     `json:"trajet"`
	Distance    text     `json:"distance"`
	DrivingTime text     `json:"temps_conduite"`
	Stops       []string `json:"etapes_recommandees"`
	Lodging     text     `json:"hebergement"`
	Activities  []string `json:"activites"`
}

type generatedApp struct {
	Name        string `json:"nom"`
	Description string `json:"description"`
}

// generated is the model's wire format.
type generated struct {
	Type string `json:"type"`

	Destination         text `json:"destination"`
	RecommendedDuration text `json:"duree_recommandee"`
	Budget              struct {
		Amount  text `json:"montant"`
		Details struct {
			Lodging    text `json:"hebergement"`
			Food       text `json:"nourriture"`
			Fuel       text `json:"carburant"`
			Activities text `json:"activites"`
		} `json:"details"`
	} `json:"budget_estime"`
	IdealSeason   text           `json:"saison_ideale"`
	Days          []generatedDay `json:"itineraire"`
	RouteTips     []string       `json:"conseils_route"`
	EssentialGear []string       `json:"equipement_essentiel"`
	Apps          []generatedApp `json:"apps_recommandees"`

	Subject     text     `json:"sujet"`
	Answer      text     `json:"reponse"`
	Suggestions []string `json:"recommandations"`
	Resources   []string `json:"ressources_utiles"`
}

var defaultApps = []App{
	{Name: "Maps.me", Description: "Cartes hors ligne avec navigation"},
	{Name: "GasBuddy", Description: "Trouver les stations-service les moins chères"},
	{Name: "Roadtrippers", Description: "Planification d'itinéraire avec points d'intérêt"},
	{Name: "iOverlander", Description: "Emplacements de camping et aires de repos"},
	{Name: "Waze", Description: "Navigation avec alertes trafic en temps réel"},
}

// Normalize parses raw model output into an itinerary or advice result.
// Any parse or shape failure is reported as ErrMalformedResponse.
func Normalize(raw string) (*Result, error) {
	var g generated
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	kind := Kind(g.Type)
	if kind != KindItinerary && kind != KindAdvice {
		switch {
		case len(g.Days) > 0 || g.Destination != "":
			kind = KindItinerary
		case g.Answer != "":
			kind = KindAdvice
		default:
			return nil, fmt.Errorf("%w: unrecognised payload type %q", ErrMalformedResponse, g.Type)
		}
	}

	if kind == KindAdvice {
		if g.Answer == "" {
			return nil, fmt.Errorf("%w: advice without an answer", ErrMalformedResponse)
		}
		return &Result{Kind: KindAdvice, Advice: &Advice{
			Subject:     string(g.Subject),
			Answer:      string(g.Answer),
			Suggestions: nonNil(g.Suggestions),
			Resources:   nonNil(g.Resources),
		}}, nil
	}

	if g.Destination == "" && len(g.Days) == 0 {
		return nil, fmt.Errorf("%w: itinerary without destination or days", ErrMalformedResponse)
	}

	it := &Itinerary{
		Destination:         string(g.Destination),
		RecommendedDuration: string(g.RecommendedDuration),
		EstimatedBudget: Budgets{
			Amount: string(g.Budget.Amount),
			Breakdown: BudgetBreakdown{
				Lodging:    string(g.Budget.Details.Lodging),
				Food:       string(g.Budget.Details.Food),
				Fuel:       string(g.Budget.Details.Fuel),
				Activities: string(g.Budget.Details.Activities),
			},
		},
		IdealSeason:   string(g.IdealSeason),
		Days:          make([]DayPlan, 0, len(g.Days)),
		RouteTips:     nonNil(g.RouteTips),
		EssentialGear: nonNil(g.EssentialGear),
	}
	for i, d := range g.Days {
		n := d.Day
		if n <= 0 {
			n = i + 1
		}
		it.Days = append(it.Days, DayPlan{
			DayNumber:        n,
			Route:            string(d.Route),
			Distance:         string(d.Distance),
			DrivingTime:      string(d.DrivingTime),
			RecommendedStops: nonNil(d.Stops),
			Lodging:          string(d.Lodging),
			Activities:       nonNil(d.Activities),
		})
	}
	if len(g.Apps) > 0 {
		for _, a := range g.Apps {
			it.RecommendedApps = append(it.RecommendedApps, App{Name: a.Name, Description: a.Description})
		}
	} else {
		it.RecommendedApps = append([]App{}, defaultApps...)
	}
	return &Result{Kind: KindItinerary, Itinerary: it}, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
