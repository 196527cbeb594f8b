package advisor

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numberPattern = regexp.MustCompile(`\d+`)

var (
	monthUnits = []string{"mois", "month", "months"}
	weekUnits  = []string{"semaine", "semaines", "week", "weeks"}
	dayUnits   = []string{"jour", "jours", "journée", "journées", "day", "days"}
)

// ExtractDurationDays reads a trip length in days from free text.
//
// Numbers are not bound to their nearest unit: the first positive number is
// scaled by whichever unit appears anywhere in the text, checked as months,
// then weeks, then days. "3 hôtels pour 10 jours" therefore yields 3.
// Counts or products that would overflow saturate at math.MaxInt.
func ExtractDurationDays(query string) (int, bool) {
	q := strings.ToLower(query)
	candidates := numberPattern.FindAllString(q, -1)
	if len(candidates) == 0 {
		return 0, false
	}

	words := make(map[string]struct{})
	for _, t := range strings.FieldsFunc(q, func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[t] = struct{}{}
	}
	has := func(units []string) bool {
		for _, u := range units {
			if _, ok := words[u]; ok {
				return true
			}
		}
		return false
	}

	for _, c := range candidates {
		n, err := strconv.Atoi(c)
		if errors.Is(err, strconv.ErrRange) {
			n, err = math.MaxInt, nil
		}
		if err != nil || n <= 0 {
			continue
		}
		scale := 0
		switch {
		case has(monthUnits):
			scale = 30
		case has(weekUnits):
			scale = 7
		case has(dayUnits):
			scale = 1
		}
		if scale == 0 {
			continue
		}
		if n > math.MaxInt/scale {
			return math.MaxInt, true
		}
		return n * scale, true
	}
	return 0, false
}

// effectiveDuration prefers the explicit field over the text.
func effectiveDuration(req Request) (int, bool) {
	if req.Duration > 0 {
		return req.Duration, true
	}
	return ExtractDurationDays(req.Query)
}
