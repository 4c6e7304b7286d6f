// Package testserver is an in-memory stand-in for the tracker's REST
// backend. It exists so the client core can be exercised end to end without
// a real deployment: tests run it under httptest, and the CLI's demo mode
// runs it in-process.
package testserver

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

const (
	DemoEmail    = "demo@achievement-tracker.com"
	DemoPassword = "demo123"
)

type Server struct {
	store  *Store
	secret []byte
	engine *gin.Engine

	mu                sync.Mutex
	failUpdates       int
	forceUnauthorized int
	requests          int
	dayHook           func(date string)
	updateHook        func(kind string, id int)
}

func New(secret string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		store:  NewStore(),
		secret: []byte(secret),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		c.Next()
	})

	r.GET("/api/health", s.health)
	r.POST("/api/auth/login", s.login)

	authed := r.Group("/api")
	authed.Use(s.authMiddleware())
	{
		authed.GET("/user/me", s.getMe)
		authed.PATCH("/user/me", s.updateMe)
		authed.GET("/days/:date", s.getDay)
		authed.POST("/achievements/:date", s.createAchievement)
		authed.PATCH("/achievements/:id", s.updateAchievement)
		authed.DELETE("/achievements/:id", s.deleteAchievement)
		authed.POST("/todos/:date", s.createTodo)
		authed.PATCH("/todos/:id", s.updateTodo)
		authed.DELETE("/todos/:id", s.deleteTodo)
	}

	s.engine = r
	return s
}

// Handler returns the router for use with httptest or http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Store() *Store {
	return s.store
}

// FailNextUpdates makes the next n PATCH requests fail with a 500, for
// exercising rollback paths.
func (s *Server) FailNextUpdates(n int) {
	s.mu.Lock()
	s.failUpdates = n
	s.mu.Unlock()
}

// ForceUnauthorized makes the next n authenticated requests fail with a 401
// regardless of credential, simulating a revoked token.
func (s *Server) ForceUnauthorized(n int) {
	s.mu.Lock()
	s.forceUnauthorized = n
	s.mu.Unlock()
}

// RequestCount returns the number of requests served so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// SetDayHook installs fn to run before each day fetch is answered. Tests use
// it to hold one response until a later request has resolved.
func (s *Server) SetDayHook(fn func(date string)) {
	s.mu.Lock()
	s.dayHook = fn
	s.mu.Unlock()
}

func (s *Server) runDayHook(date string) {
	s.mu.Lock()
	hook := s.dayHook
	s.mu.Unlock()
	if hook != nil {
		hook(date)
	}
}

// SetUpdateHook installs fn to run as each PATCH arrives, before it is
// applied. Tests use it to observe arrival order and to hold one update
// while others proceed.
func (s *Server) SetUpdateHook(fn func(kind string, id int)) {
	s.mu.Lock()
	s.updateHook = fn
	s.mu.Unlock()
}

func (s *Server) runUpdateHook(kind string, id int) {
	s.mu.Lock()
	hook := s.updateHook
	s.mu.Unlock()
	if hook != nil {
		hook(kind, id)
	}
}

func (s *Server) takeFailUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdates > 0 {
		s.failUpdates--
		return true
	}
	return false
}

func (s *Server) takeUnauthorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forceUnauthorized > 0 {
		s.forceUnauthorized--
		return true
	}
	return false
}

// SeedDemo creates the demo user plus a day of sample data and returns the
// user. today uses the yyyy-MM-dd key format.
func (s *Server) SeedDemo(today string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	avatar := "https://api.dicebear.com/7.x/avataaars/svg?seed=Alice"
	quote := "Every small step forward is progress. Celebrate the journey."
	user := s.store.AddUser(DemoEmail, hash, "Alice", &avatar, &quote)

	notes := func(v string) *string { return &v }

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, a := range []models.Achievement{
		{Title: "Completed morning workout", Notes: notes("30 minutes of yoga and stretching"), Completed: true},
		{Title: "Finished reading chapter 5", Notes: notes("Made great progress on the book"), Completed: true},
		{Title: "Called mom", Notes: notes("Had a nice 20-minute conversation"), Completed: false},
	} {
		a.ID = s.store.allocID()
		a.UserID = user.ID
		a.Date = today
		stored := a
		s.store.achievements[a.ID] = &stored
	}

	due := "14:00"
	for _, t := range []models.Todo{
		{Title: "Review project proposal", Notes: notes("Need to check the budget section"), Priority: models.PriorityHigh, DueTime: &due},
		{Title: "Buy groceries", Notes: notes("Milk, eggs, bread"), Priority: models.PriorityMedium},
		{Title: "Water the plants", Priority: models.PriorityLow},
	} {
		t.ID = s.store.allocID()
		t.UserID = user.ID
		t.Date = today
		stored := t
		s.store.todos[t.ID] = &stored
	}

	return user
}

// AddUser registers an extra account with the given password.
func (s *Server) AddUser(email, password, displayName string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return s.store.AddUser(email, hash, displayName, nil, nil)
}
