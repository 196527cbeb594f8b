package maps

import (
	"testing"

	"googlemaps.github.io/maps"
)

func TestTopRatedFiltersAndLimits(t *testing.T) {
	results := []maps.PlacesSearchResult{
		{Name: "Preikestolen", PlaceID: "a", Rating: 4.9},
		{Name: "Parking", PlaceID: "b", Rating: 3.1},
		{Name: "Preikestolen", PlaceID: "a", Rating: 4.9},
		{Name: "Bryggen", PlaceID: "c", Rating: 4.6},
		{Name: "Fløyen", PlaceID: "d", Rating: 4.7},
		{Name: "Trolltunga", PlaceID: "e", Rating: 4.8},
		{Name: "Geirangerfjord", PlaceID: "f", Rating: 4.9},
		{Name: "Atlanterhavsveien", PlaceID: "g", Rating: 4.8},
	}

	got := topRated(results)
	if len(got) != maxAttractions {
		t.Fatalf("expected %d places, got %d", maxAttractions, len(got))
	}
	want := []string{"Preikestolen", "Bryggen", "Fløyen", "Trolltunga", "Geirangerfjord"}
	for i, p := range got {
		if p.Name != want[i] {
			t.Fatalf("place %d = %s, want %s", i, p.Name, want[i])
		}
	}
}

func TestFormatKm(t *testing.T) {
	tests := map[int]string{0: "0 km", 499: "0 km", 500: "1 km", 463_200: "463 km"}
	for in, want := range tests {
		if got := formatKm(in); got != want {
			t.Errorf("formatKm(%d) = %q, want %q", in, got, want)
		}
	}
}
