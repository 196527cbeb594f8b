package advisor

import (
	"fmt"
	"strings"
)

// Prompt is the system instruction and user message sent to the model.
type Prompt struct {
	System string
	User   string
}

// PromptContext carries the resolved duration and enrichment data.
type PromptContext struct {
	Days        int
	Weather     *WeatherSnapshot
	Attractions []string
}

const basePrompt = `Tu es un conseiller expert en roadtrips avec plus de 20 ans d'expérience.
Tu aides les voyageurs à planifier des roadtrips personnalisés selon leurs besoins.

RÈGLE ABSOLUE : un roadtrip ne dépasse jamais %d jours. Ne propose jamais d'itinéraire plus long,
même si la demande le suggère ; propose plutôt la meilleure version possible en %d jours maximum.

Réponds TOUJOURS en JSON valide, avec l'une des deux structures suivantes.

Pour un itinéraire :
{
  "type": "roadtrip_itinerary",
  "destination": "Nom de la région ou du pays",
  "duree_recommandee": "X jours",
  "budget_estime": {
    "montant": "XXX€",
    "details": { "hebergement": "XX€/jour", "nourriture": "XX€/jour", "carburant": "XX€/jour", "activites": "XX€/jour" }
  },
  "saison_ideale": "Printemps/Été/Automne/Hiver",
  "itineraire": [
    {
      "jour": 1,
      "trajet": "Ville A → Ville B",
      "distance": "XXX km",
      "temps_conduite": "X heures",
      "etapes_recommandees": ["Lieu 1", "Lieu 2"],
      "hebergement": "Type ou nom de logement",
      "activites": ["Activité 1", "Activité 2"]
    }
  ],
  "conseils_route": ["Conseil 1", "Conseil 2"],
  "equipement_essentiel": ["Objet 1", "Objet 2"]
}

Pour un conseil général :
{
  "type": "roadtrip_advice",
  "sujet": "Sujet de la question",
  "reponse": "Réponse détaillée",
  "recommandations": ["Recommandation 1", "Recommandation 2"],
  "ressources_utiles": ["Ressource 1", "Ressource 2"]
}

Utilise des lieux réels et adapte les suggestions au climat quand il est connu.`

// BuildPrompt composes the model input for req.
func BuildPrompt(req Request, pc PromptContext) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, basePrompt, MaxTripDays, MaxTripDays)

	if req.TravelStyle != "" {
		fmt.Fprintf(&b, "\n\nL'utilisateur préfère un voyage de style : %s. Adapte tes recommandations en conséquence.", req.TravelStyle)
	}
	if pc.Days > 0 {
		fmt.Fprintf(&b, "\n\nL'utilisateur envisage un voyage d'environ %d jours. Propose un itinéraire adapté à cette durée.", pc.Days)
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, "\n\nL'utilisateur a un budget d'environ %s. Veille à ce que tes suggestions restent abordables.", budgetLabel(req.Budget))
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "\n\nL'utilisateur s'intéresse particulièrement à : %s. Mets l'accent sur ces centres d'intérêt.", strings.Join(req.Interests, ", "))
	}
	if req.drivingTipsEnabled() {
		b.WriteString("\n\nInclus toujours des conseils pratiques de conduite propres à la région : signalisation locale, " +
			"limitations de vitesse, règles de stationnement et précautions de sécurité.")
	}

	var extra []string
	if pc.Weather != nil {
		extra = append(extra, fmt.Sprintf("Météo actuelle à %s : %s, %s.", pc.Weather.Place, pc.Weather.Condition, pc.Weather.TemperatureLabel()))
	}
	if len(pc.Attractions) > 0 {
		extra = append(extra, fmt.Sprintf("Attractions populaires à proximité de %s : %s.", req.Location, strings.Join(pc.Attractions, ", ")))
	}
	if len(extra) > 0 {
		b.WriteString("\n\nInformations supplémentaires à prendre en compte :\n")
		b.WriteString(strings.Join(extra, "\n"))
		b.WriteString("\nIncorpore ces informations dans l'itinéraire, les activités ou les conseils.")
	}

	return Prompt{System: b.String(), User: req.Query}
}

// budgetLabel appends a euro sign to bare amounts.
func budgetLabel(b Budget) string {
	s := string(b)
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != ' ' {
			return s
		}
	}
	return s + "€"
}
