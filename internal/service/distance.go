package service

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"samedayramps-backend/internal/logger"
)

const metersPerMile = 1609.34

type googleDistanceService struct {
	client *maps.Client
}

func NewGoogleDistanceService(apiKey string) (DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &googleDistanceService{client: client}, nil
}

func (s *googleDistanceService) DistanceMiles(ctx context.Context, origin, destination string) (float64, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Units:        maps.UnitsImperial,
	}
	logger.ExternalServiceCall("google_maps", "distance_matrix", "origin", origin, "destination", destination)
	resp, err := s.client.DistanceMatrix(ctx, req)
	if err != nil {
		logger.ExternalServiceResult("google_maps", "distance_matrix", err)
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		err := fmt.Errorf("no route between %q and %q", origin, destination)
		logger.ExternalServiceResult("google_maps", "distance_matrix", err)
		return 0, err
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		err := fmt.Errorf("no route between %q and %q: %s", origin, destination, element.Status)
		logger.ExternalServiceResult("google_maps", "distance_matrix", err)
		return 0, err
	}

	miles := float64(element.Distance.Meters) / metersPerMile
	logger.ExternalServiceResult("google_maps", "distance_matrix", nil, "miles", miles)
	return miles, nil
}
