package advisor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

const keyPrefix = "roadtrip_"

type keyFields struct {
	Query       string   `json:"query"`
	Location    string   `json:"location"`
	Duration    int      `json:"duration"`
	Budget      string   `json:"budget"`
	TravelStyle string   `json:"travelStyle"`
	Interests   []string `json:"interests"`
}

// DeriveKey returns the cache key for a request. Interests are compared as a set.
// IncludeWeather and the enrichment toggles do not take part; an absent field and
// its zero value hash the same.
func DeriveKey(req Request) string {
	interests := make([]string, len(req.Interests))
	copy(interests, req.Interests)
	sort.Strings(interests)

	b, _ := json.Marshal(keyFields{
		Query:       req.Query,
		Location:    req.Location,
		Duration:    req.Duration,
		Budget:      string(req.Budget),
		TravelStyle: req.TravelStyle,
		Interests:   interests,
	})
	sum := sha256.Sum256(b)
	return keyPrefix + hex.EncodeToString(sum[:])
}
