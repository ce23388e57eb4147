package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/queue"
)

type assignedToReq struct {
	Type string `json:"type" binding:"required,oneof=user group"`
	ID   string `json:"id"   binding:"required,objectid"`
}

// No createdAt here; the store stamps it.
type createHabitReq struct {
	Title      string         `json:"title"      binding:"required"`
	CreatedBy  string         `json:"createdBy"  binding:"required,objectid"`
	AssignedTo *assignedToReq `json:"assignedTo" binding:"required"`
	Schedule   any            `json:"schedule"   binding:"required"`
}

// CreateHabit godoc
// @Summary Create habit
// @Tags habits
// @Accept json
// @Produce json
// @Param payload body createHabitReq true "title, createdBy, assignedTo{type,id}, schedule"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/habits [post]
func (h *Handler) CreateHabit(c *gin.Context) {
	var in createHabitReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		badInput(c, errors.New("title is blank"))
		return
	}
	createdBy, err := domain.ParseID(in.CreatedBy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	assignee, err := domain.ParseID(in.AssignedTo.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	habit := &domain.Habit{
		Title:      title,
		CreatedBy:  createdBy,
		AssignedTo: domain.AssignedTo{Type: in.AssignedTo.Type, ID: assignee},
		Schedule:   in.Schedule,
	}
	if err := h.Store.CreateHabit(c.Request.Context(), habit); err != nil {
		h.respondError(c, err)
		return
	}

	h.publish(c, queue.KeyHabitCreated, queue.HabitCreated{
		HabitID: habit.ID, Title: habit.Title, CreatedBy: habit.CreatedBy,
		AssigneeType: habit.AssignedTo.Type, AssigneeID: habit.AssignedTo.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"insertedId": habit.ID, "habit": habit})
}
