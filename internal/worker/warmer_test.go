package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dice-stats/internal/clock/mocks"
	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingComputer struct {
	mu     sync.Mutex
	calls  []string
	scopes []domain.Scope
	fail   map[string]bool
}

func (r *recordingComputer) Table(_ context.Context, name string, scope domain.Scope, _ service.TableParams) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	r.scopes = append(r.scopes, scope)
	if r.fail[name] {
		return nil, errors.New("boom")
	}
	return struct{}{}, nil
}

func (r *recordingComputer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWarmupWorker_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	clk := mocks.NewMockClock(ctrl)
	clk.EXPECT().Now().Return(now)

	computer := &recordingComputer{fail: map[string]bool{"penalties": true}}
	w := NewWarmupWorker(computer,
		&config.WarmupConfig{Interval: time.Minute, Tables: []string{"summary", "penalties", "finals"}},
		&config.StatsConfig{DefaultRangeDays: 30},
		clk, discardLogger())

	warmed := w.RunOnce(context.Background())

	assert.Equal(t, 2, warmed)
	assert.Equal(t, []string{"summary", "penalties", "finals"}, computer.calls)
	endOfDay := time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	for _, scope := range computer.scopes {
		assert.Equal(t, endOfDay, scope.To)
		assert.Equal(t, endOfDay.AddDate(0, 0, -30), scope.From)
	}
}

func TestWarmupWorker_StartStop(t *testing.T) {
	computer := &recordingComputer{}
	w := NewWarmupWorker(computer,
		&config.WarmupConfig{Interval: 10 * time.Millisecond, Tables: []string{"summary"}},
		&config.StatsConfig{DefaultRangeDays: 30},
		nil, discardLogger())

	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.IsRunning())
	require.NoError(t, w.Start(context.Background()))

	require.Eventually(t, func() bool { return computer.count() >= 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	require.NoError(t, w.Stop())
}

func TestWarmupWorker_Restart(t *testing.T) {
	computer := &recordingComputer{}
	w := NewWarmupWorker(computer,
		&config.WarmupConfig{Interval: time.Hour, Tables: []string{"summary"}},
		&config.StatsConfig{DefaultRangeDays: 30},
		nil, discardLogger())

	for cycle := 1; cycle <= 2; cycle++ {
		require.NoError(t, w.Start(context.Background()))
		require.Eventually(t, func() bool { return computer.count() >= cycle }, time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())
		assert.False(t, w.IsRunning())
	}
	assert.Equal(t, 2, computer.count())
}
