package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

func TestLoadDayCachesView(t *testing.T) {
	env := newLoggedInEnv(t)
	ctx := context.Background()

	day, err := env.days.LoadDay(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, testDate, day.Date)
	assert.Len(t, day.Achievements, 3)
	assert.Len(t, day.Todos, 3)

	assert.Same(t, day, env.days.Cached(testDate))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	env := newLoggedInEnv(t)
	ctx := context.Background()

	_, err := env.days.LoadDay(ctx, testDate)
	require.NoError(t, err)

	env.days.Invalidate(testDate)
	assert.Nil(t, env.days.Cached(testDate))

	day, err := env.days.Refresh(ctx, testDate)
	require.NoError(t, err)
	assert.NotNil(t, day)
	assert.NotNil(t, env.days.Cached(testDate))
}

// A load that resolves after a newer load for the same date was issued must
// not overwrite the newer result.
func TestStaleLoadIsDiscarded(t *testing.T) {
	env := newLoggedInEnv(t)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	// Only the first call may block: a sync.Once would also park every later
	// hook call until the first returns, deadlocking the second LoadDay.
	var blocked atomic.Bool
	env.server.SetDayHook(func(string) {
		if blocked.CompareAndSwap(false, true) {
			close(entered)
			<-release
		}
	})

	type result struct {
		day *models.DayView
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		day, err := env.days.LoadDay(ctx, testDate)
		firstDone <- result{day, err}
	}()
	<-entered

	// The world changes while the first response is held.
	_, err := env.client.CreateAchievement(ctx, testDate, models.AchievementCreate{Title: "Shipped the release"})
	require.NoError(t, err)

	second, err := env.days.LoadDay(ctx, testDate)
	require.NoError(t, err)
	assert.Len(t, second.Achievements, 4)

	close(release)
	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrSuperseded)

	cached := env.days.Cached(testDate)
	require.NotNil(t, cached)
	assert.Len(t, cached.Achievements, 4)
}

// Switching dates while a load is in flight: once both resolve, the active
// view must reflect the most recently selected date, whatever the arrival
// order.
func TestActiveViewFollowsSelectedDate(t *testing.T) {
	env := newLoggedInEnv(t)
	ctx := context.Background()

	const otherDate = "2025-06-02"

	entered := make(chan struct{})
	release := make(chan struct{})
	env.server.SetDayHook(func(date string) {
		if date == testDate {
			close(entered)
			<-release
		}
	})

	firstDone := make(chan error, 1)
	go func() {
		_, err := env.days.SelectDate(ctx, testDate)
		firstDone <- err
	}()
	<-entered

	second, err := env.days.SelectDate(ctx, otherDate)
	require.NoError(t, err)
	assert.Equal(t, otherDate, second.Date)

	close(release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, otherDate, env.days.SelectedDate())
	require.NotNil(t, env.days.ActiveView())
	assert.Equal(t, otherDate, env.days.ActiveView().Date)
}

func TestSubscribersSeeActiveViewOnly(t *testing.T) {
	env := newLoggedInEnv(t)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []string
	env.days.Subscribe(func(day *models.DayView) {
		mu.Lock()
		seen = append(seen, day.Date)
		mu.Unlock()
	})

	_, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)

	// A background load for an unselected date stays silent.
	_, err = env.days.LoadDay(ctx, "2025-06-03")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{testDate}, seen)
}
