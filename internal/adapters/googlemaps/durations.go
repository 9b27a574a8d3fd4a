package googlemaps

import (
	"context"
	"fmt"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"

	"googlemaps.github.io/maps"
)

const elementStatusOK = "OK"

type distanceMatrixAPI interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// DurationCalculator считает время в пути через Distance Matrix API
type DurationCalculator struct {
	client   distanceMatrixAPI
	language string
}

func NewDurationCalculator(apiKey string) (*DurationCalculator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google maps: api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google maps: failed to create client: %w", err)
	}
	return &DurationCalculator{client: client, language: "de"}, nil
}

// Calculate делает по одному запросу на каждый способ передвижения.
// Пары без маршрута пропускаются
func (c *DurationCalculator) Calculate(ctx context.Context, origin string, dest domain.Destination) ([]domain.TravelDuration, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "GoogleMapsDurationCalculator",
		"destination": dest.Name,
	})

	modes := dest.Modes
	if len(modes) == 0 {
		modes = []domain.TravelMode{domain.TravelModeTransit}
	}

	durations := make([]domain.TravelDuration, 0, len(modes))
	for _, mode := range modes {
		req := &maps.DistanceMatrixRequest{
			Origins:       []string{origin},
			Destinations:  []string{dest.Address},
			Mode:          maps.Mode(mode),
			Language:      c.language,
			DepartureTime: "now",
		}

		resp, err := c.client.DistanceMatrix(ctx, req)
		if err != nil {
			return durations, fmt.Errorf("google maps: distance matrix for %s (%s): %w", dest.Name, mode, err)
		}
		if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
			logger.Warn("Empty distance matrix response", port.Fields{"mode": string(mode)})
			continue
		}

		element := resp.Rows[0].Elements[0]
		if element.Status != elementStatusOK {
			logger.Debug("No route found", port.Fields{"mode": string(mode), "status": element.Status})
			continue
		}

		durations = append(durations, domain.TravelDuration{
			Destination: dest.Name,
			Mode:        mode,
			Duration:    element.Duration,
			Distance:    element.Distance.HumanReadable,
		})
	}
	return durations, nil
}
