package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweep struct {
	runs atomic.Int32
}

func (c *countingSweep) Run(ctx context.Context, now time.Time) (*dto.SweepResponse, error) {
	c.runs.Add(1)
	return &dto.SweepResponse{}, nil
}

func TestInvalidSpecIsRejected(t *testing.T) {
	_, err := New("every tuesday-ish", &countingSweep{}, 0, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestEmptySpecNeverRuns(t *testing.T) {
	sweep := &countingSweep{}
	s, err := New("", sweep, 0, logger.NewNopLogger())
	require.NoError(t, err)

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Zero(t, sweep.runs.Load())
}

func TestScheduledSweepRuns(t *testing.T) {
	sweep := &countingSweep{}
	s, err := New("@every 1s", sweep, time.Second, logger.NewNopLogger())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return sweep.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
