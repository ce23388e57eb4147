package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tazhibayda/habits-service/internal/metrics"
)

func NewRouter(h *Handler, origins []string) *gin.Engine {
	metrics.MustRegister()

	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(h.Log))
	r.Use(Recovery(h.Log))
	r.Use(Metrics())
	r.Use(Trace("habits-service"))
	r.Use(CORS(origins))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/habits", h.CreateHabit)
		api.POST("/users", h.CreateUser)
		api.POST("/groups", h.CreateGroup)
		api.POST("/userHabitEntries", h.CreateUserEntry)
		api.POST("/groupHabitEntries", h.CreateGroupEntry)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/status", h.Status)

		users := api.Group("/users/:userId")
		users.GET("/habits", h.UserHabits)
		users.GET("/groups", h.UserGroups)
		users.GET("/habitEntries/:date", h.UserEntriesOn)
		users.GET("/mostLoggedHabit", h.MostLoggedHabit)
		users.GET("/createdAt", h.UserCreatedAt)

		groups := api.Group("/groups/:groupId")
		groups.GET("/habits", h.GroupHabits)
		groups.GET("/habitEntries/:date", h.GroupEntriesOn)
		groups.GET("/members/completion/:date", h.GroupCompletion)
	}
	return r
}
