package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

const (
	minAttractionRating = 4.0
	maxAttractions      = 5
)

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

// PopularAttractions returns the best-rated tourist attractions around location.
func (s *PlacesService) PopularAttractions(ctx context.Context, location string) ([]Place, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}
	r := &maps.TextSearchRequest{
		Query:    "attractions touristiques à " + location,
		Language: "fr",
		Type:     maps.PlaceTypeTouristAttraction,
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	return topRated(resp.Results), nil
}

// topRated keeps well-rated, distinct results in API order.
func topRated(results []maps.PlacesSearchResult) []Place {
	seen := make(map[string]struct{})
	var out []Place
	for _, result := range results {
		if result.Rating < minAttractionRating {
			continue
		}
		if _, dup := seen[result.PlaceID]; dup {
			continue
		}
		seen[result.PlaceID] = struct{}{}
		out = append(out, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(out) >= maxAttractions {
			break
		}
	}
	return out
}

func newClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
