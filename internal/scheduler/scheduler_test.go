package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	logger_adapter "flathunter-service/internal/adapters/logger"
	"flathunter-service/internal/core/domain"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHunt struct {
	calls    atomic.Int32
	maxPages atomic.Int32
}

func (h *countingHunt) Execute(_ context.Context, maxPages int) ([]domain.Expose, error) {
	h.calls.Add(1)
	h.maxPages.Store(int32(maxPages))
	return nil, nil
}

func TestSchedulerRunsImmediately(t *testing.T) {
	hunt := &countingHunt{}
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	s, err := New(hunt, time.Hour, 2, logger, cron.DiscardLogger)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return hunt.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(2), hunt.maxPages.Load())
}

func TestSchedulerRejectsZeroInterval(t *testing.T) {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	_, err := New(&countingHunt{}, 0, 1, logger, cron.DiscardLogger)
	assert.Error(t, err)
}
