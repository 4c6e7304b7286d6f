package testserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "environment": "test"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.RLock()
	user := s.store.userByEmail(input.Email)
	s.store.mu.RUnlock()

	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, err := generateToken(s.secret, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) getMe(c *gin.Context) {
	userID := c.GetInt("userID")

	s.store.mu.RLock()
	user := s.store.userByID(userID)
	s.store.mu.RUnlock()

	c.JSON(http.StatusOK, user.User)
}

func (s *Server) updateMe(c *gin.Context) {
	userID := c.GetInt("userID")

	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	user := s.store.userByID(userID)
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.AvatarURL != nil {
		user.AvatarURL = update.AvatarURL
	}
	if update.Quote != nil {
		user.Quote = update.Quote
	}
	user.UpdatedAt = time.Now().UTC()
	out := user.User
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) getDay(c *gin.Context) {
	userID := c.GetInt("userID")
	date := c.Param("date")

	s.runDayHook(date)

	s.store.mu.RLock()
	day := models.DayView{
		Date:         date,
		Achievements: s.store.achievementsForDay(userID, date),
		Todos:        s.store.todosForDay(userID, date),
	}
	s.store.mu.RUnlock()

	c.JSON(http.StatusOK, day)
}

func (s *Server) createAchievement(c *gin.Context) {
	userID := c.GetInt("userID")
	date := c.Param("date")

	var create models.AchievementCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	now := time.Now().UTC()
	s.store.mu.Lock()
	achievement := &models.Achievement{
		ID:        s.store.allocID(),
		UserID:    userID,
		Title:     create.Title,
		Notes:     create.Notes,
		Date:      date,
		Completed: create.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.achievements[achievement.ID] = achievement
	out := *achievement
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, out)
}

func (s *Server) updateAchievement(c *gin.Context) {
	userID := c.GetInt("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	s.runUpdateHook("achievement", id)

	if s.takeFailUpdate() {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "injected failure"})
		return
	}

	var update models.AchievementUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	achievement, ok := s.store.achievements[id]
	if !ok || achievement.UserID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Achievement not found"})
		return
	}
	if update.Title != nil {
		achievement.Title = *update.Title
	}
	if update.Notes != nil {
		achievement.Notes = update.Notes
	}
	if update.Completed != nil {
		achievement.Completed = *update.Completed
	}
	achievement.UpdatedAt = time.Now().UTC()
	out := *achievement
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteAchievement(c *gin.Context) {
	userID := c.GetInt("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	s.store.mu.Lock()
	achievement, ok := s.store.achievements[id]
	if !ok || achievement.UserID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Achievement not found"})
		return
	}
	delete(s.store.achievements, id)
	s.store.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) createTodo(c *gin.Context) {
	userID := c.GetInt("userID")
	date := c.Param("date")

	var create models.TodoCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if create.Priority == "" {
		create.Priority = models.PriorityMedium
	}
	if !create.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid priority"})
		return
	}

	now := time.Now().UTC()
	s.store.mu.Lock()
	todo := &models.Todo{
		ID:        s.store.allocID(),
		UserID:    userID,
		Title:     create.Title,
		Notes:     create.Notes,
		Date:      date,
		Completed: create.Completed,
		Priority:  create.Priority,
		DueTime:   create.DueTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.todos[todo.ID] = todo
	out := *todo
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, out)
}

func (s *Server) updateTodo(c *gin.Context) {
	userID := c.GetInt("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	s.runUpdateHook("todo", id)

	if s.takeFailUpdate() {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "injected failure"})
		return
	}

	var update models.TodoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if update.Priority != nil && !update.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid priority"})
		return
	}

	s.store.mu.Lock()
	todo, ok := s.store.todos[id]
	if !ok || todo.UserID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Todo not found"})
		return
	}
	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Notes != nil {
		todo.Notes = update.Notes
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}
	if update.Priority != nil {
		todo.Priority = *update.Priority
	}
	if update.DueTime != nil {
		todo.DueTime = update.DueTime
	}
	todo.UpdatedAt = time.Now().UTC()
	out := *todo
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteTodo(c *gin.Context) {
	userID := c.GetInt("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	s.store.mu.Lock()
	todo, ok := s.store.todos[id]
	if !ok || todo.UserID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Todo not found"})
		return
	}
	delete(s.store.todos, id)
	s.store.mu.Unlock()

	c.Status(http.StatusNoContent)
}
