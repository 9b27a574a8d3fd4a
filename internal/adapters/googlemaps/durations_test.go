package googlemaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"flathunter-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type fakeMatrix struct {
	requests []*maps.DistanceMatrixRequest
	byMode   map[maps.Mode]maps.DistanceMatrixElement
	err      error
}

func (f *fakeMatrix) DistanceMatrix(_ context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error) {
	f.requests = append(f.requests, r)
	if f.err != nil {
		return nil, f.err
	}
	element := f.byMode[r.Mode]
	return &maps.DistanceMatrixResponse{
		Rows: []maps.DistanceMatrixElementsRow{{Elements: []*maps.DistanceMatrixElement{&element}}},
	}, nil
}

func TestCalculatePerMode(t *testing.T) {
	api := &fakeMatrix{byMode: map[maps.Mode]maps.DistanceMatrixElement{
		maps.TravelModeTransit:   {Status: "OK", Duration: 25 * time.Minute, Distance: maps.Distance{HumanReadable: "7.4 km"}},
		maps.TravelModeBicycling: {Status: "ZERO_RESULTS"},
	}}
	calc := &DurationCalculator{client: api, language: "de"}

	got, err := calc.Calculate(context.Background(), "Oranienstraße 1, Berlin", domain.Destination{
		Name:    "Work",
		Address: "Alexanderplatz, Berlin",
		Modes:   []domain.TravelMode{domain.TravelModeTransit, domain.TravelModeBicycling},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TravelDuration{Destination: "Work", Mode: domain.TravelModeTransit, Duration: 25 * time.Minute, Distance: "7.4 km"}, got[0])

	require.Len(t, api.requests, 2)
	assert.Equal(t, []string{"Oranienstraße 1, Berlin"}, api.requests[0].Origins)
	assert.Equal(t, []string{"Alexanderplatz, Berlin"}, api.requests[0].Destinations)
}

func TestCalculateDefaultsToTransit(t *testing.T) {
	api := &fakeMatrix{byMode: map[maps.Mode]maps.DistanceMatrixElement{}}
	calc := &DurationCalculator{client: api}

	_, err := calc.Calculate(context.Background(), "a", domain.Destination{Name: "Gym", Address: "b"})
	require.NoError(t, err)
	require.Len(t, api.requests, 1)
	assert.Equal(t, maps.TravelModeTransit, api.requests[0].Mode)
}

func TestCalculateRequestError(t *testing.T) {
	calc := &DurationCalculator{client: &fakeMatrix{err: errors.New("REQUEST_DENIED")}}

	_, err := calc.Calculate(context.Background(), "a", domain.Destination{Name: "Work", Address: "b"})
	assert.Error(t, err)
}

func TestNewDurationCalculatorRequiresKey(t *testing.T) {
	_, err := NewDurationCalculator("")
	assert.Error(t, err)
}
