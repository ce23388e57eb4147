package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/queue"
	"github.com/tazhibayda/habits-service/internal/repo"
)

type createGroupReq struct {
	Name        string   `json:"name"        binding:"required"`
	Description string   `json:"description"`
	OwnerID     string   `json:"ownerId"     binding:"required,objectid"`
	MemberIDs   []string `json:"memberIds"   binding:"omitempty,dive,objectid"`
}

// CreateGroup godoc
// @Summary Create group
// @Tags groups
// @Accept json
// @Produce json
// @Param payload body createGroupReq true "name, ownerId, description?, memberIds?"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/groups [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var in createGroupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		badInput(c, errors.New("name is blank"))
		return
	}
	owner, err := domain.ParseID(in.OwnerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	g := &domain.Group{Name: name, Description: in.Description, OwnerID: owner}
	// omitted memberIds stay nil so the store defaults them to the owner
	if in.MemberIDs != nil {
		if g.MemberIDs, err = domain.ParseIDs(in.MemberIDs); err != nil {
			h.respondError(c, err)
			return
		}
	}

	if err := h.Store.CreateGroup(c.Request.Context(), g); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "group name already exists"})
			return
		}
		h.respondError(c, err)
		return
	}

	h.publish(c, queue.KeyGroupCreated, queue.GroupCreated{
		GroupID: g.ID, Name: g.Name, OwnerID: g.OwnerID, MemberIDs: g.MemberIDs,
	})

	c.JSON(http.StatusCreated, gin.H{"insertedId": g.ID, "group": g})
}

// GroupHabits godoc
// @Summary Habits assigned to a group
// @Tags groups
// @Produce json
// @Param groupId path string true "group id"
// @Success 200 {array} domain.Habit
// @Failure 400 {object} map[string]string
// @Router /api/groups/{groupId}/habits [get]
func (h *Handler) GroupHabits(c *gin.Context) {
	gid, ok := h.pathID(c, "groupId")
	if !ok {
		return
	}
	habits, err := h.Store.HabitsForGroup(c.Request.Context(), gid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// GroupEntriesOn godoc
// @Summary A group's log entries for one calendar day (UTC)
// @Tags entries
// @Produce json
// @Param groupId path string true "group id"
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {array} domain.GroupHabitEntry
// @Failure 400 {object} map[string]string
// @Router /api/groups/{groupId}/habitEntries/{date} [get]
func (h *Handler) GroupEntriesOn(c *gin.Context) {
	gid, ok := h.pathID(c, "groupId")
	if !ok {
		return
	}
	day, ok := h.pathDay(c)
	if !ok {
		return
	}
	entries, err := h.Store.GroupEntriesOn(c.Request.Context(), gid, day)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GroupCompletion godoc
// @Summary Per-member count of distinct group habits confirmed on a day
// @Tags groups
// @Produce json
// @Param groupId path string true "group id"
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {array} domain.MemberCompletion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/groups/{groupId}/members/completion/{date} [get]
func (h *Handler) GroupCompletion(c *gin.Context) {
	gid, ok := h.pathID(c, "groupId")
	if !ok {
		return
	}
	day, ok := h.pathDay(c)
	if !ok {
		return
	}
	rows, err := h.Store.GroupCompletion(c.Request.Context(), gid, day)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
