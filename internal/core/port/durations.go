package port

import (
	"context"
	"flathunter-service/internal/core/domain"
)

// DurationCalculatorPort считает время в пути от адреса объявления
type DurationCalculatorPort interface {
	Calculate(ctx context.Context, origin string, dest domain.Destination) ([]domain.TravelDuration, error)
}
