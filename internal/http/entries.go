package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/metrics"
	"github.com/tazhibayda/habits-service/internal/queue"
)

type userEntryReq struct {
	HabitID string `json:"habitId" binding:"required,objectid"`
	UserID  string `json:"userId"  binding:"required,objectid"`
	Date    string `json:"date"    binding:"required"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// CreateUserEntry godoc
// @Summary Log a personal habit completion
// @Tags entries
// @Accept json
// @Produce json
// @Param payload body userEntryReq true "habitId, userId, date, status?, notes?"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/userHabitEntries [post]
func (h *Handler) CreateUserEntry(c *gin.Context) {
	var in userEntryReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	habitID, err := domain.ParseID(in.HabitID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	userID, err := domain.ParseID(in.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	day, err := domain.ParseDay(in.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.StatusCompleted
	}

	e := &domain.UserHabitEntry{HabitID: habitID, UserID: userID, Date: day, Status: status, Notes: in.Notes}
	if err := h.Store.CreateUserEntry(c.Request.Context(), e); err != nil {
		h.respondError(c, err)
		return
	}
	metrics.EntriesLogged.WithLabelValues("user").Inc()

	h.publish(c, queue.KeyUserEntryLogged, queue.UserEntryLogged{
		EntryID: e.ID, HabitID: e.HabitID, UserID: e.UserID, Date: e.Date, Status: e.Status,
	})

	c.JSON(http.StatusCreated, gin.H{"insertedId": e.ID, "entry": e})
}

type groupEntryReq struct {
	HabitID   string            `json:"habitId"   binding:"required,objectid"`
	GroupID   string            `json:"groupId"   binding:"required,objectid"`
	Date      string            `json:"date"      binding:"required"`
	CheckedBy []string          `json:"checkedBy" binding:"omitempty,dive,objectid"`
	Notes     map[string]string `json:"notes"     binding:"omitempty,dive,keys,objectid,endkeys"`
}

// CreateGroupEntry godoc
// @Summary Log which members completed a group habit on a day
// @Tags entries
// @Accept json
// @Produce json
// @Param payload body groupEntryReq true "habitId, groupId, date, checkedBy?, notes?"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/groupHabitEntries [post]
func (h *Handler) CreateGroupEntry(c *gin.Context) {
	var in groupEntryReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	habitID, err := domain.ParseID(in.HabitID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	groupID, err := domain.ParseID(in.GroupID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	day, err := domain.ParseDay(in.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	checkedBy, err := domain.ParseIDs(in.CheckedBy)
	if err != nil {
		h.respondError(c, err)
		return
	}

	e := &domain.GroupHabitEntry{HabitID: habitID, GroupID: groupID, Date: day, CheckedBy: checkedBy, Notes: in.Notes}
	if err := h.Store.CreateGroupEntry(c.Request.Context(), e); err != nil {
		h.respondError(c, err)
		return
	}
	metrics.EntriesLogged.WithLabelValues("group").Inc()

	h.publish(c, queue.KeyGroupEntryLogged, queue.GroupEntryLogged{
		EntryID: e.ID, HabitID: e.HabitID, GroupID: e.GroupID, Date: e.Date, CheckedBy: e.CheckedBy,
	})

	c.JSON(http.StatusCreated, gin.H{"insertedId": e.ID, "entry": e})
}
