package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

func TestToggleTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("AppliesOptimistically", func(t *testing.T) {
		env := newLoggedInEnv(t)
		day, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		todo := day.Todos[0]
		require.False(t, todo.Completed)

		require.NoError(t, env.mutations.ToggleTodo(ctx, testDate, todo.ID))
		assert.True(t, env.days.Cached(testDate).Todo(todo.ID).Completed)

		// The server applied it too; no refetch was needed for that.
		remote, err := env.client.Day(ctx, testDate)
		require.NoError(t, err)
		assert.True(t, remote.Todo(todo.ID).Completed)
	})

	t.Run("RevertsOnFailure", func(t *testing.T) {
		env := newLoggedInEnv(t)
		day, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		todo := day.Todos[0]
		require.False(t, todo.Completed)

		env.server.FailNextUpdates(1)
		err = env.mutations.ToggleTodo(ctx, testDate, todo.ID)
		require.Error(t, err)

		assert.False(t, env.days.Cached(testDate).Todo(todo.ID).Completed)
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		env := newLoggedInEnv(t)
		_, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		assert.ErrorIs(t, env.mutations.ToggleTodo(ctx, testDate, 9999), ErrNotCached)
	})
}

func TestToggleAchievement(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	day, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)

	achievement := day.Achievements[0]
	require.True(t, achievement.Completed)

	require.NoError(t, env.mutations.ToggleAchievement(ctx, testDate, achievement.ID))
	assert.False(t, env.days.Cached(testDate).Achievement(achievement.ID).Completed)

	env.server.FailNextUpdates(1)
	err = env.mutations.ToggleAchievement(ctx, testDate, achievement.ID)
	require.Error(t, err)
	assert.False(t, env.days.Cached(testDate).Achievement(achievement.ID).Completed)
}

// Two mutations against the same entity must reach the server in the order
// they were issued, while a mutation on a different entity is free to
// complete in between.
func TestSameEntityMutationsAreOrdered(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	day, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)
	target := day.Todos[0]
	other := day.Todos[1]

	var mu sync.Mutex
	var arrivals []int
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	env.server.SetUpdateHook(func(_ string, id int) {
		mu.Lock()
		arrivals = append(arrivals, id)
		mu.Unlock()
		if id == target.ID {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
	})

	firstDone := make(chan error, 1)
	go func() { firstDone <- env.mutations.ToggleTodo(ctx, testDate, target.ID) }()
	<-entered

	// Issued while the first update is still held by the server.
	secondDone := make(chan error, 1)
	go func() { secondDone <- env.mutations.ToggleTodo(ctx, testDate, target.ID) }()

	// An unrelated entity is not blocked behind the held mutation.
	require.NoError(t, env.mutations.ToggleTodo(ctx, testDate, other.ID))

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)

	mu.Lock()
	require.Equal(t, []int{target.ID, other.ID, target.ID}, arrivals)
	mu.Unlock()

	// Toggled twice in order: back to the original value, locally and remote.
	assert.False(t, env.days.Cached(testDate).Todo(target.ID).Completed)
	remote, err := env.client.Day(ctx, testDate)
	require.NoError(t, err)
	assert.False(t, remote.Todo(target.ID).Completed)
}

func TestAddAchievement(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAndRefreshes", func(t *testing.T) {
		env := newLoggedInEnv(t)
		_, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		achievement, err := env.mutations.AddAchievement(ctx, testDate, "  Learned Go generics  ", "")
		require.NoError(t, err)
		require.NotNil(t, achievement)
		assert.Equal(t, "Learned Go generics", achievement.Title)

		cached := env.days.Cached(testDate)
		assert.NotNil(t, cached.Achievement(achievement.ID))
	})

	t.Run("WhitespaceTitleIsSilentNoop", func(t *testing.T) {
		env := newLoggedInEnv(t)
		before, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)
		requests := env.server.RequestCount()

		achievement, err := env.mutations.AddAchievement(ctx, testDate, "   \t ", "")
		assert.NoError(t, err)
		assert.Nil(t, achievement)

		assert.Equal(t, requests, env.server.RequestCount())
		assert.Same(t, before, env.days.Cached(testDate))
	})
}

func TestAddTodo(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	_, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)

	todo, err := env.mutations.AddTodo(ctx, testDate, "Write release notes", "", models.PriorityHigh, "16:30")
	require.NoError(t, err)
	require.NotNil(t, todo)
	assert.Equal(t, models.PriorityHigh, todo.Priority)

	// The refreshed view includes the new todo exactly once.
	cached := env.days.Cached(testDate)
	count := 0
	for _, item := range cached.Todos {
		if item.Title == "Write release notes" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddTodoDefaultsPriority(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	_, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)

	todo, err := env.mutations.AddTodo(ctx, testDate, "Plain task", "", "", "")
	require.NoError(t, err)
	require.NotNil(t, todo)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
}

func TestEditTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("AppliesAllFieldsAfterRefresh", func(t *testing.T) {
		env := newLoggedInEnv(t)
		day, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		target := day.Todos[0]
		title := "Review final proposal"
		notes := "Budget section signed off"
		priority := models.PriorityLow

		_, err = env.mutations.EditTodo(ctx, testDate, target.ID, models.TodoUpdate{
			Title:    &title,
			Notes:    &notes,
			Priority: &priority,
		})
		require.NoError(t, err)

		edited := env.days.Cached(testDate).Todo(target.ID)
		require.NotNil(t, edited)
		assert.Equal(t, title, edited.Title)
		require.NotNil(t, edited.Notes)
		assert.Equal(t, notes, *edited.Notes)
		assert.Equal(t, priority, edited.Priority)
	})

	t.Run("FailureLeavesCacheUntouched", func(t *testing.T) {
		env := newLoggedInEnv(t)
		day, err := env.days.SelectDate(ctx, testDate)
		require.NoError(t, err)

		target := day.Todos[0]
		originalTitle := target.Title
		title := "Doomed edit"

		env.server.FailNextUpdates(1)
		_, err = env.mutations.EditTodo(ctx, testDate, target.ID, models.TodoUpdate{Title: &title})
		require.Error(t, err)

		assert.Equal(t, originalTitle, env.days.Cached(testDate).Todo(target.ID).Title)
	})
}

func TestRemoveTodo(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	day, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)
	target := day.Todos[0]

	require.NoError(t, env.mutations.RemoveTodo(ctx, testDate, target.ID))
	assert.Nil(t, env.days.Cached(testDate).Todo(target.ID))
}

func TestRemoveAchievement(t *testing.T) {
	ctx := context.Background()
	env := newLoggedInEnv(t)

	day, err := env.days.SelectDate(ctx, testDate)
	require.NoError(t, err)
	target := day.Achievements[0]

	require.NoError(t, env.mutations.RemoveAchievement(ctx, testDate, target.ID))
	assert.Nil(t, env.days.Cached(testDate).Achievement(target.ID))
}
