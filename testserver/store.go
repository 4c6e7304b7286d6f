package testserver

import (
	"sort"
	"sync"
	"time"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

type storedUser struct {
	models.User
	PasswordHash []byte
}

// Store keeps all server state in memory, guarded by a single RWMutex.
type Store struct {
	mu           sync.RWMutex
	users        map[int]*storedUser
	achievements map[int]*models.Achievement
	todos        map[int]*models.Todo
	nextID       int
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int]*storedUser),
		achievements: make(map[int]*models.Achievement),
		todos:        make(map[int]*models.Todo),
		nextID:       1,
	}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) AddUser(email string, passwordHash []byte, displayName string, avatarURL, quote *string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	u := &storedUser{
		User: models.User{
			ID:          s.allocID(),
			Email:       email,
			DisplayName: displayName,
			AvatarURL:   avatarURL,
			Quote:       quote,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	out := u.User
	return &out
}

func (s *Store) userByEmail(email string) *storedUser {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) userByID(id int) *storedUser {
	return s.users[id]
}

func (s *Store) achievementsForDay(userID int, date string) []models.Achievement {
	out := []models.Achievement{}
	for _, a := range s.achievements {
		if a.UserID == userID && a.Date == date {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) todosForDay(userID int, date string) []models.Todo {
	out := []models.Todo{}
	for _, t := range s.todos {
		if t.UserID == userID && t.Date == date {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
