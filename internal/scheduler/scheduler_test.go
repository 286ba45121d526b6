package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNextRun(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)

	t.Run("later today", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 7, 30, 0, 0, loc)
		next := nextRun(now, 9, 0)
		assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), next)
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 9, 30, 0, 0, loc)
		next := nextRun(now, 9, 0)
		assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, loc), next)
	})

	t.Run("exact moment rolls forward", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		next := nextRun(now, 9, 0)
		assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, loc), next)
	})

	t.Run("month boundary", func(t *testing.T) {
		now := time.Date(2026, 3, 31, 23, 0, 0, 0, loc)
		next := nextRun(now, 10, 0)
		assert.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, loc), next)
	})
}

// stubNotifier считает вызовы и, по желанию, паникует.
type stubNotifier struct {
	mu     sync.Mutex
	daily  int
	panics bool
}

func (s *stubNotifier) SendDailyNotifications(_ context.Context, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily++
	if s.panics {
		panic("boom")
	}
	return nil
}

func (s *stubNotifier) PasswordSweep(context.Context) error { return nil }
func (s *stubNotifier) ReminderSweep(context.Context) error { return nil }

func TestRunJob_RecoversFromPanic(t *testing.T) {
	n := &stubNotifier{panics: true}
	s := New(n, 3, zap.NewNop().Sugar())

	assert.NotPanics(t, func() {
		s.runJob(context.Background(), "daily notifications", func(ctx context.Context) error {
			return n.SendDailyNotifications(ctx, 3)
		})
	})
	assert.Equal(t, 1, n.daily)
}

func TestScheduler_StartStopsOnCancel(t *testing.T) {
	n := &stubNotifier{}
	s := New(n, 3, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	// горутины должны завершиться без прогонов: до startupDelay ещё далеко
	time.Sleep(20 * time.Millisecond)
	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Zero(t, n.daily)
}
