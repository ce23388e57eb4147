package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/repo"
	"github.com/tazhibayda/habits-service/internal/security"
)

type loginReq struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResp struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "email, password"
// @Success 200 {object} loginResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		h.respondError(c, err)
		return
	}
	// unknown email and wrong password must look the same, in body and in time
	var hash string
	if u != nil {
		hash = u.Password
	}
	if !security.CheckPassword(hash, in.Password) || u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Username, h.TokenTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResp{
		Token: tok,
		User:  loginUser{ID: u.ID.Hex(), Username: u.Username, Email: u.Email},
	})
}

// Logout godoc
// @Summary Logout (client discards its token)
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type statusResp struct {
	Authenticated bool        `json:"authenticated"`
	User          domain.User `json:"user"`
}

// Status godoc
// @Summary Verify bearer token and return its user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} statusResp
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/auth/status [get]
func (h *Handler) Status(c *gin.Context) {
	tok, err := security.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	claims, err := security.ParseAccess(h.JWTSecret, tok)
	if err != nil {
		h.respondError(c, err)
		return
	}
	uid, err := domain.ParseID(claims.UID)
	if err != nil {
		h.respondError(c, security.ErrInvalidToken)
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResp{Authenticated: true, User: *u})
}
