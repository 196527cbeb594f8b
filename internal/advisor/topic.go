package advisor

import (
	"regexp"
	"strings"
	"unicode"
)

// TopicValidator decides whether a query is worth an LLM call.
type TopicValidator interface {
	InScope(query string) bool
}

// KeywordValidator passes a query when it contains a domain keyword or matches
// an intent pattern. Either signal is enough.
type KeywordValidator struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewKeywordValidator returns a validator loaded with the built-in French and
// English vocabulary.
func NewKeywordValidator() *KeywordValidator {
	v := &KeywordValidator{patterns: intentPatterns}
	for _, group := range [][]string{travelTerms, durationTerms, transportTerms, lodgingTerms, activityTerms, budgetTerms, destinations} {
		for _, k := range group {
			v.keywords = append(v.keywords, " "+strings.Join(tokenize(k), " ")+" ")
		}
	}
	return v
}

func (v *KeywordValidator) InScope(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return v.hasKeyword(q) || v.matchesPattern(q)
}

func (v *KeywordValidator) hasKeyword(q string) bool {
	tokens := tokenize(q)
	if len(tokens) == 0 {
		return false
	}
	padded := " " + strings.Join(tokens, " ") + " "
	for _, k := range v.keywords {
		if strings.Contains(padded, k) {
			return true
		}
	}
	return false
}

func (v *KeywordValidator) matchesPattern(q string) bool {
	for _, p := range v.patterns {
		if p.MatchString(q) {
			return true
		}
	}
	return false
}

// tokenize lower-cases s and splits it on anything that is not a letter or digit,
// so "l'Islande" and "états-unis" break into words.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

var travelTerms = []string{
	"roadtrip", "road trip", "road-trip", "voyage", "voyager", "voyages", "trip", "travel", "travelling", "traveling",
	"vacances", "holiday", "holidays", "vacation", "itinéraire", "itineraire", "itinerary", "route", "étape", "étapes",
	"destination", "destinations", "partir", "visiter", "visit", "excursion", "séjour", "sejour", "périple", "tour",
	"circuit", "escapade", "aventure", "explorer", "explore", "touriste", "tourisme", "tourist",
}

var durationTerms = []string{
	"jour", "jours", "journée", "journées", "semaine", "semaines", "mois", "week-end", "weekend",
	"day", "days", "week", "weeks", "month", "months", "nuit", "nuits", "night", "nights",
}

var transportTerms = []string{
	"voiture", "van", "camping-car", "campingcar", "camper", "campervan", "moto", "drive", "driving",
	"conduire", "conduite", "autoroute", "autoroutes", "péage", "péages", "highway", "essence", "carburant",
	"fuel", "location de voiture", "rental car", "ferry", "train",
}

var lodgingTerms = []string{
	"hôtel", "hotel", "hôtels", "hotels", "camping", "campings", "bivouac", "auberge", "hostel", "airbnb",
	"gîte", "gite", "logement", "hébergement", "hebergement", "dormir", "motel",
}

var activityTerms = []string{
	"randonnée", "randonnées", "hiking", "hike", "plage", "plages", "beach", "montagne", "montagnes",
	"mountain", "mountains", "parc national", "national park", "musée", "musées", "museum", "gastronomie",
	"paysage", "paysages", "scenic", "sightseeing", "fjord", "fjords", "lac", "lacs", "côte", "coast",
}

var budgetTerms = []string{
	"budget", "coût", "cout", "prix", "cost", "dépenses", "pas cher", "cheap", "économique",
}

// destinations is the curated list of countries and regions commonly asked about
// as roadtrip destinations.
var destinations = []string{
	"france", "norvège", "norvege", "norway", "islande", "iceland", "écosse", "ecosse", "scotland",
	"irlande", "ireland", "portugal", "italie", "italy", "toscane", "tuscany", "sicile", "sicily", "sardaigne",
	"corse", "bretagne", "provence", "normandie", "alsace", "dordogne", "pyrénées", "alpes", "alps",
	"suisse", "switzerland", "autriche", "austria", "allemagne", "germany", "croatie", "croatia",
	"slovénie", "slovenia", "monténégro", "grèce", "greece", "suède", "sweden", "finlande", "finland",
	"laponie", "lapland", "danemark", "denmark", "pays-bas", "belgique", "roumanie", "pologne",
	"maroc", "morocco", "tunisie", "namibie", "namibia", "afrique du sud", "south africa",
	"états-unis", "etats-unis", "usa", "california", "californie", "arizona", "utah", "nevada", "floride",
	"route 66", "canada", "québec", "quebec", "rocheuses", "rockies", "alaska", "mexique", "mexico",
	"patagonie", "patagonia", "chili", "argentine", "pérou", "costa rica",
	"australie", "australia", "nouvelle-zélande", "new zealand", "tasmanie", "japon", "japan",
	"vietnam", "thaïlande", "thailand", "sri lanka", "balkans", "scandinavie", "scandinavia",
}

var intentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(je veux|je voudrais|j'aimerais|j’aimerais|on voudrait|nous voulons|on aimerait|on veut)\s+(aller|partir|visiter|voyager|découvrir|faire)`),
	regexp.MustCompile(`(i want|i'd like|i would like|we want|we'd like|we would like)\s+to\s+(go|visit|travel|explore|drive|see)`),
	regexp.MustCompile(`(où|quand|comment)\s+(partir|aller|voyager|dormir|se loger|s'arrêter)`),
	regexp.MustCompile(`(where|when|how)\s+(to|should i|should we|can i|can we)\s+(go|travel|stay|leave|drive|sleep)`),
	regexp.MustCompile(`(itinéraire|itineraire|programme|planning|plan)\s+(pour|d'un|d’un|de|du|des)\s`),
	regexp.MustCompile(`(itinerary|plan|schedule)\s+for\s`),
	regexp.MustCompile(`(conseils?|suggestions?|recommandations?|idées?)\s+(pour|de|sur|d')`),
	regexp.MustCompile(`(advice|tips|suggestions|ideas|recommendations)\s+(for|on|about)\s`),
	regexp.MustCompile(`budget\s+(pour|de|du|d'un|d’un|for|of)\s`),
	regexp.MustCompile(`(que|quoi)\s+(faire|voir|visiter)\s+(à|a|en|au|aux|pendant|durant)`),
	regexp.MustCompile(`what\s+to\s+(do|see|visit)\s+(in|during|around)`),
}
