package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/queue"
	"github.com/tazhibayda/habits-service/internal/repo"
	"github.com/tazhibayda/habits-service/internal/security"
)

// Only these three fields are accepted on signup.
type createUserReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type createUserResp struct {
	InsertedID string `json:"insertedId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

// CreateUser godoc
// @Summary Sign up
// @Tags users
// @Accept json
// @Produce json
// @Param payload body createUserReq true "username, email, password"
// @Success 201 {object} createUserResp
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var in createUserReq
	if err := bindStrictJSON(c, &in); err != nil {
		badInput(c, err)
		return
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" {
		badInput(c, errors.New("username is blank"))
		return
	}

	hash, err := security.HashPassword(in.Password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		badInput(c, errors.New("password is longer than 72 bytes"))
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	u := &domain.User{Username: username, Email: email, Password: hash}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "email or username already exists"})
			return
		}
		h.respondError(c, err)
		return
	}

	h.publish(c, queue.KeyUserRegistered, queue.UserRegistered{UserID: u.ID, Username: u.Username, Email: u.Email})

	c.JSON(http.StatusCreated, createUserResp{InsertedID: u.ID.Hex(), Username: u.Username, Email: u.Email})
}

// UserHabits godoc
// @Summary Habits a user created or is directly assigned
// @Tags users
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {array} domain.Habit
// @Failure 400 {object} map[string]string
// @Router /api/users/{userId}/habits [get]
func (h *Handler) UserHabits(c *gin.Context) {
	uid, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	habits, err := h.Store.HabitsForUser(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// UserGroups godoc
// @Summary Groups a user belongs to
// @Tags users
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {array} domain.Group
// @Failure 400 {object} map[string]string
// @Router /api/users/{userId}/groups [get]
func (h *Handler) UserGroups(c *gin.Context) {
	uid, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	groups, err := h.Store.GroupsForUser(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// UserEntriesOn godoc
// @Summary A user's log entries for one calendar day (UTC)
// @Tags entries
// @Produce json
// @Param userId path string true "user id"
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {array} domain.UserHabitEntry
// @Failure 400 {object} map[string]string
// @Router /api/users/{userId}/habitEntries/{date} [get]
func (h *Handler) UserEntriesOn(c *gin.Context) {
	uid, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	day, ok := h.pathDay(c)
	if !ok {
		return
	}
	entries, err := h.Store.UserEntriesOn(c.Request.Context(), uid, day)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// MostLoggedHabit godoc
// @Summary The habit a user logged most often
// @Tags users
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} domain.MostLogged
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{userId}/mostLoggedHabit [get]
func (h *Handler) MostLoggedHabit(c *gin.Context) {
	uid, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	top, err := h.Store.MostLoggedHabit(c.Request.Context(), uid)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no habit entries found for user"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

// UserCreatedAt godoc
// @Summary Account creation time
// @Tags users
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{userId}/createdAt [get]
func (h *Handler) UserCreatedAt(c *gin.Context) {
	uid, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	at, err := h.Store.UserCreatedAt(c.Request.Context(), uid)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"createdAt": at})
}
