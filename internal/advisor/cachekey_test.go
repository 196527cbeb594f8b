package advisor

import (
	"strings"
	"testing"
)

func TestDeriveKeyInterestOrder(t *testing.T) {
	a := DeriveKey(Request{Query: "roadtrip Écosse", Interests: []string{"a", "b"}})
	b := DeriveKey(Request{Query: "roadtrip Écosse", Interests: []string{"b", "a"}})
	if a != b {
		t.Fatalf("interest order changed the key: %s vs %s", a, b)
	}
}

func TestDeriveKeyDoesNotMutateInterests(t *testing.T) {
	interests := []string{"vin", "architecture"}
	DeriveKey(Request{Query: "q", Interests: interests})
	if interests[0] != "vin" {
		t.Fatalf("DeriveKey sorted the caller's slice: %v", interests)
	}
}

func TestDeriveKeyFields(t *testing.T) {
	base := Request{Query: "roadtrip Norvège", Location: "Oslo", Duration: 7, Budget: "1500", TravelStyle: "nature"}
	k := DeriveKey(base)
	if !strings.HasPrefix(k, keyPrefix) {
		t.Fatalf("key %s missing prefix", k)
	}
	if DeriveKey(base) != k {
		t.Fatalf("key is not deterministic")
	}

	yes := true
	same := base
	same.IncludeWeather = true
	same.IncludeAttractions = &yes
	same.Interests = []string{}
	if DeriveKey(same) != k {
		t.Fatalf("weather, enrichment toggles and empty interests must not change the key")
	}

	for name, mutate := range map[string]func(*Request){
		"query":    func(r *Request) { r.Query = "roadtrip Suède" },
		"location": func(r *Request) { r.Location = "Bergen" },
		"duration": func(r *Request) { r.Duration = 8 },
		"budget":   func(r *Request) { r.Budget = "2000" },
		"style":    func(r *Request) { r.TravelStyle = "luxe" },
		"interest": func(r *Request) { r.Interests = []string{"fjords"} },
	} {
		r := base
		mutate(&r)
		if DeriveKey(r) == k {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}
