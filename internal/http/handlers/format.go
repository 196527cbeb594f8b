package handlers

import (
	"fmt"
	"strings"

	"roadtrip/internal/advisor"
)

const daySeparator = "\n🔸🔸🔸\n\n"

// FormatResult renders an itinerary or advice result as chat markdown.
// Day stops and activities keep the order the model produced.
func FormatResult(res *advisor.Result) string {
	switch res.Kind {
	case advisor.KindItinerary:
		return formatItinerary(res.Itinerary)
	case advisor.KindAdvice:
		return formatAdvice(res.Advice)
	case advisor.KindValidation:
		return res.Validation.Message
	case advisor.KindTechnical:
		return res.Technical.Message
	}
	return ""
}

func formatItinerary(it *advisor.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n✨ **ROADTRIP : %s**\n", strings.ToUpper(it.Destination))
	fmt.Fprintf(&b, "🗓️ Durée recommandée : **%s**\n", it.RecommendedDuration)
	fmt.Fprintf(&b, "📅 Saison idéale : **%s**\n", it.IdealSeason)
	fmt.Fprintf(&b, "💰 Budget estimé : **%s**\n\n", it.EstimatedBudget.Amount)

	if w := it.CurrentWeather; w != nil {
		fmt.Fprintf(&b, "🌤️ **Météo à %s**\n", w.Place)
		fmt.Fprintf(&b, "   🌤️ %s, %s\n", w.Condition, w.TemperatureLabel())
		if w.Note != "" {
			fmt.Fprintf(&b, "   ℹ️ %s\n", w.Note)
		}
		b.WriteString("\n")
	}

	bd := it.EstimatedBudget.Breakdown
	if bd != (advisor.BudgetBreakdown{}) {
		b.WriteString("📊 **Répartition du budget :**\n")
		fmt.Fprintf(&b, "   🏨 Hébergement : %s\n", bd.Lodging)
		fmt.Fprintf(&b, "   🍽️ Nourriture : %s\n", bd.Food)
		fmt.Fprintf(&b, "   ⛽ Carburant : %s\n", bd.Fuel)
		fmt.Fprintf(&b, "   🎯 Activités : %s\n\n", bd.Activities)
	}

	b.WriteString("🗺️ **ITINÉRAIRE DÉTAILLÉ**\n───\n\n")
	for _, d := range it.Days {
		fmt.Fprintf(&b, "📍 **Jour %d :** %s\n", d.DayNumber, d.Route)
		fmt.Fprintf(&b, "   📏 Distance : %s\n", d.Distance)
		if d.DrivingTime != "" {
			fmt.Fprintf(&b, "   🚗 Temps de conduite : %s\n", d.DrivingTime)
		}
		if len(d.RecommendedStops) > 0 {
			b.WriteString("   🎯 Étapes recommandées :\n")
			for _, s := range d.RecommendedStops {
				fmt.Fprintf(&b, "     • %s\n", s)
			}
		}
		if len(d.Activities) > 0 {
			b.WriteString("   🎨 Activités proposées :\n")
			for _, a := range d.Activities {
				fmt.Fprintf(&b, "     • %s\n", a)
			}
		}
		fmt.Fprintf(&b, "   🏨 Hébergement suggéré : %s\n", d.Lodging)
		b.WriteString(daySeparator)
	}

	if len(it.RouteTips) > 0 {
		b.WriteString("💡 **CONSEILS PRATIQUES**\n───\n")
		for _, tip := range it.RouteTips {
			fmt.Fprintf(&b, "🔸 %s\n", tip)
		}
		b.WriteString("\n")
	}
	if len(it.EssentialGear) > 0 {
		b.WriteString("🎒 **ÉQUIPEMENT ESSENTIEL**\n───\n")
		for _, g := range it.EssentialGear {
			fmt.Fprintf(&b, "✅ %s\n", g)
		}
	}
	if len(it.RecommendedApps) > 0 {
		b.WriteString("\n📱 **APPLICATIONS UTILES**\n───\n")
		for _, a := range it.RecommendedApps {
			fmt.Fprintf(&b, "📲 %s : %s\n", a.Name, a.Description)
		}
	}
	return b.String()
}

func formatAdvice(a *advisor.Advice) string {
	var b strings.Builder
	if a.Subject != "" {
		fmt.Fprintf(&b, "\n💬 **%s**\n\n", a.Subject)
	}
	b.WriteString(a.Answer)
	b.WriteString("\n")
	if len(a.Suggestions) > 0 {
		b.WriteString("\n💡 **RECOMMANDATIONS**\n───\n")
		for _, s := range a.Suggestions {
			fmt.Fprintf(&b, "🔸 %s\n", s)
		}
	}
	if len(a.Resources) > 0 {
		b.WriteString("\n📚 **RESSOURCES UTILES**\n───\n")
		for _, r := range a.Resources {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}
	return b.String()
}
