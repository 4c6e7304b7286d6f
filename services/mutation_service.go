package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JigneshCalidad/Achivement-Tracker/api"
	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

// toggleCommand captures the state needed to undo an optimistic completion
// flip if the remote update is rejected.
type toggleCommand struct {
	prev bool
	next bool
}

// MutationService issues entity mutations against the server. Completion
// toggles are optimistic: the cached view is updated first and rolled back on
// failure. Everything else is pessimistic: submit, then refresh the day.
// Mutations against the same entity are serialized in issue order; unrelated
// entities proceed concurrently.
type MutationService struct {
	api  *api.Client
	days *DayService
	log  zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMutationService(client *api.Client, days *DayService) *MutationService {
	return &MutationService{
		api:   client,
		days:  days,
		log:   log.With().Str("component", "mutations").Logger(),
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *MutationService) entityLock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

func todoKey(id int) string        { return "todo/" + strconv.Itoa(id) }
func achievementKey(id int) string { return "achievement/" + strconv.Itoa(id) }

// ToggleTodo flips a todo's completion optimistically. On remote failure the
// cached value is restored and the error returned.
func (m *MutationService) ToggleTodo(ctx context.Context, date string, id int) error {
	lock := m.entityLock(todoKey(id))
	lock.Lock()
	defer lock.Unlock()

	day := m.days.Cached(date)
	if day == nil || day.Todo(id) == nil {
		return ErrNotCached
	}
	next := !day.Todo(id).Completed

	prev, err := m.days.setTodoCompleted(date, id, next)
	if err != nil {
		return err
	}
	cmd := toggleCommand{prev: prev, next: next}

	if _, err := m.api.UpdateTodo(ctx, id, models.TodoUpdate{Completed: &cmd.next}); err != nil {
		m.days.setTodoCompleted(date, id, cmd.prev)
		m.log.Warn().Int("id", id).Err(err).Msg("todo toggle reverted")
		return err
	}
	return nil
}

// ToggleAchievement flips an achievement's completion optimistically.
func (m *MutationService) ToggleAchievement(ctx context.Context, date string, id int) error {
	lock := m.entityLock(achievementKey(id))
	lock.Lock()
	defer lock.Unlock()

	day := m.days.Cached(date)
	if day == nil || day.Achievement(id) == nil {
		return ErrNotCached
	}
	next := !day.Achievement(id).Completed

	prev, err := m.days.setAchievementCompleted(date, id, next)
	if err != nil {
		return err
	}
	cmd := toggleCommand{prev: prev, next: next}

	if _, err := m.api.UpdateAchievement(ctx, id, models.AchievementUpdate{Completed: &cmd.next}); err != nil {
		m.days.setAchievementCompleted(date, id, cmd.prev)
		m.log.Warn().Int("id", id).Err(err).Msg("achievement toggle reverted")
		return err
	}
	return nil
}

// AddAchievement creates an achievement for date. A title that is empty
// after trimming is a silent no-op: no call is made and (nil, nil) returned.
func (m *MutationService) AddAchievement(ctx context.Context, date, title, notes string) (*models.Achievement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	create := models.AchievementCreate{Title: title}
	if notes != "" {
		create.Notes = &notes
	}

	achievement, err := m.api.CreateAchievement(ctx, date, create)
	if err != nil {
		return nil, err
	}
	if _, err := m.days.Refresh(ctx, date); err != nil {
		return achievement, err
	}
	return achievement, nil
}

// AddTodo creates a todo for date. Empty priority leaves the server default
// (medium) in effect. Whitespace-only titles are a silent no-op.
func (m *MutationService) AddTodo(ctx context.Context, date, title, notes string, priority models.Priority, dueTime string) (*models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	create := models.TodoCreate{Title: title, Priority: priority}
	if notes != "" {
		create.Notes = &notes
	}
	if dueTime != "" {
		create.DueTime = &dueTime
	}

	todo, err := m.api.CreateTodo(ctx, date, create)
	if err != nil {
		return nil, err
	}
	if _, err := m.days.Refresh(ctx, date); err != nil {
		return todo, err
	}
	return todo, nil
}

// EditAchievement submits a partial update and refreshes the day on success.
// Multi-field edits never touch local state before the server confirms.
func (m *MutationService) EditAchievement(ctx context.Context, date string, id int, update models.AchievementUpdate) (*models.Achievement, error) {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return nil, nil
		}
		update.Title = &trimmed
	}

	lock := m.entityLock(achievementKey(id))
	lock.Lock()
	defer lock.Unlock()

	achievement, err := m.api.UpdateAchievement(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if _, err := m.days.Refresh(ctx, date); err != nil {
		return achievement, err
	}
	return achievement, nil
}

// EditTodo submits a partial update and refreshes the day on success.
func (m *MutationService) EditTodo(ctx context.Context, date string, id int, update models.TodoUpdate) (*models.Todo, error) {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return nil, nil
		}
		update.Title = &trimmed
	}

	lock := m.entityLock(todoKey(id))
	lock.Lock()
	defer lock.Unlock()

	todo, err := m.api.UpdateTodo(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if _, err := m.days.Refresh(ctx, date); err != nil {
		return todo, err
	}
	return todo, nil
}

// RemoveAchievement deletes an achievement and refreshes the day.
func (m *MutationService) RemoveAchievement(ctx context.Context, date string, id int) error {
	lock := m.entityLock(achievementKey(id))
	lock.Lock()
	defer lock.Unlock()

	if err := m.api.DeleteAchievement(ctx, id); err != nil {
		return err
	}
	_, err := m.days.Refresh(ctx, date)
	return err
}

// RemoveTodo deletes a todo and refreshes the day.
func (m *MutationService) RemoveTodo(ctx context.Context, date string, id int) error {
	lock := m.entityLock(todoKey(id))
	lock.Lock()
	defer lock.Unlock()

	if err := m.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	_, err := m.days.Refresh(ctx, date)
	return err
}
