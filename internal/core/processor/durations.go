package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// DurationCalculator заполняет Durations: время в пути до каждого назначения
type DurationCalculator struct {
	calc         port.DurationCalculatorPort
	destinations []domain.Destination
}

func NewDurationCalculator(calc port.DurationCalculatorPort, destinations []domain.Destination) *DurationCalculator {
	return &DurationCalculator{calc: calc, destinations: destinations}
}

func (d *DurationCalculator) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	if expose.Address == "" || expose.Address == domain.NoAddressGiven {
		return expose, true, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DurationCalculator",
		"expose_id": expose.ID,
	})

	var lines []string
	for _, dest := range d.destinations {
		durations, err := d.calc.Calculate(ctx, expose.Address, dest)
		if err != nil {
			logger.Warn("Failed to calculate durations", port.Fields{"destination": dest.Name, "error": err.Error()})
			continue
		}
		for _, td := range durations {
			lines = append(lines, FormatDuration(td))
		}
	}

	expose.Durations = strings.Join(lines, "\n")
	return expose, true, nil
}

// FormatDuration: "> Work (transit): 25 min (7.4 km)"
func FormatDuration(td domain.TravelDuration) string {
	line := fmt.Sprintf("> %s (%s): %d min", td.Destination, td.Mode, int(td.Duration.Round(time.Minute).Minutes()))
	if td.Distance != "" {
		line += fmt.Sprintf(" (%s)", td.Distance)
	}
	return line
}
