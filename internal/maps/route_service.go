package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate returns the driving time and distance from origin to
// destination through the given waypoints, summed over every leg.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string, waypoints ...string) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
		Language:    "fr",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found")
	}

	var total time.Duration
	var meters int
	for _, leg := range routes[0].Legs {
		total += leg.Duration
		meters += leg.Distance.Meters
	}
	return total, formatKm(meters), nil
}

func formatKm(meters int) string {
	return fmt.Sprintf("%d km", (meters+500)/1000)
}
