package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JigneshCalidad/Achivement-Tracker/api"
	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

// ErrSuperseded marks a load whose result arrived after a newer load for the
// same date was issued. The result is discarded, never cached.
var ErrSuperseded = errors.New("load superseded by a newer request")

// ErrNotCached is returned when a mutation targets an entity that is not in
// the cached view for its date.
var ErrNotCached = errors.New("entity not in cached day view")

// DayService holds the per-date aggregates fetched from the server. Loads
// carry an issue sequence per date: only the most recently issued load for a
// date may commit, so responses arriving out of order cannot clobber newer
// state. The active view tracks the selected date.
type DayService struct {
	api *api.Client
	log zerolog.Logger

	mu       sync.Mutex
	views    map[string]*models.DayView
	seq      map[string]uint64
	selected string
	subs     []func(*models.DayView)
}

func NewDayService(client *api.Client) *DayService {
	return &DayService{
		api:   client,
		log:   log.With().Str("component", "days").Logger(),
		views: make(map[string]*models.DayView),
		seq:   make(map[string]uint64),
	}
}

// SelectDate makes date the active date and issues exactly one load for it.
// Any load still pending for a previously selected date can no longer touch
// the active view once it resolves.
func (s *DayService) SelectDate(ctx context.Context, date string) (*models.DayView, error) {
	s.mu.Lock()
	s.selected = date
	s.mu.Unlock()

	return s.LoadDay(ctx, date)
}

func (s *DayService) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LoadDay fetches the aggregate for date and replaces the cached view,
// unless a newer load for the same date was issued while this one was in
// flight, in which case the result is dropped and ErrSuperseded returned.
func (s *DayService) LoadDay(ctx context.Context, date string) (*models.DayView, error) {
	s.mu.Lock()
	s.seq[date]++
	issued := s.seq[date]
	s.mu.Unlock()

	day, err := s.api.Day(ctx, date)

	s.mu.Lock()
	if issued != s.seq[date] {
		s.mu.Unlock()
		s.log.Debug().Str("date", date).Msg("discarding superseded load")
		return nil, ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.views[date] = day
	active := s.selected == date
	s.mu.Unlock()

	if active {
		s.notify(day)
	}
	return day, nil
}

// Invalidate forces the next read of date to refetch.
func (s *DayService) Invalidate(date string) {
	s.mu.Lock()
	delete(s.views, date)
	s.mu.Unlock()
}

// Refresh drops the cached view for date and fetches it again. Called after
// every confirmed non-toggle mutation so the cache never serves stale state.
func (s *DayService) Refresh(ctx context.Context, date string) (*models.DayView, error) {
	s.Invalidate(date)
	return s.LoadDay(ctx, date)
}

// Cached returns the view held for date, or nil when none is cached. The
// returned view is live: optimistic toggles mutate it in place, so it must
// only be read from the control thread that drives the services.
func (s *DayService) Cached(date string) *models.DayView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[date]
}

// ActiveView returns the view for the currently selected date, if cached.
// Like Cached, the view is live and single-thread read only.
func (s *DayService) ActiveView() *models.DayView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[s.selected]
}

// Subscribe registers fn to run whenever the active view changes.
func (s *DayService) Subscribe(fn func(*models.DayView)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *DayService) notify(day *models.DayView) {
	s.mu.Lock()
	subs := make([]func(*models.DayView), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(day)
	}
}

// setTodoCompleted flips the completed flag on a cached todo and returns the
// prior value. Used by the optimistic toggle path and its rollback.
func (s *DayService) setTodoCompleted(date string, id int, completed bool) (bool, error) {
	s.mu.Lock()
	day := s.views[date]
	if day == nil {
		s.mu.Unlock()
		return false, ErrNotCached
	}
	todo := day.Todo(id)
	if todo == nil {
		s.mu.Unlock()
		return false, ErrNotCached
	}
	prev := todo.Completed
	todo.Completed = completed
	active := s.selected == date
	s.mu.Unlock()

	if active {
		s.notify(day)
	}
	return prev, nil
}

func (s *DayService) setAchievementCompleted(date string, id int, completed bool) (bool, error) {
	s.mu.Lock()
	day := s.views[date]
	if day == nil {
		s.mu.Unlock()
		return false, ErrNotCached
	}
	achievement := day.Achievement(id)
	if achievement == nil {
		s.mu.Unlock()
		return false, ErrNotCached
	}
	prev := achievement.Completed
	achievement.Completed = completed
	active := s.selected == date
	s.mu.Unlock()

	if active {
		s.notify(day)
	}
	return prev, nil
}
