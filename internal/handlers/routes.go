package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/middleware"
	"github.com/yukikurage/workmatch-api/internal/models"
)

// Handlers groups every HTTP handler the API mounts
type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Rating      *RatingHandler
	Message     *MessageHandler
	Realtime    *RealtimeHandler
}

// RegisterRoutes mounts the API under api; session middleware must already be installed
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	worker := middleware.RequireRole(models.RoleWorker)
	employer := middleware.RequireRole(models.RoleEmployer)

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		auth.PATCH("/me", middleware.RequireAuth(), h.Auth.UpdateCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())

	profiles := protected.Group("/profiles")
	{
		profiles.GET("/worker", worker, h.Profile.GetWorkerProfile)
		profiles.PUT("/worker", worker, h.Profile.PutWorkerProfile)
		profiles.GET("/employer", employer, h.Profile.GetEmployerProfile)
		profiles.PUT("/employer", employer, h.Profile.PutEmployerProfile)
	}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", h.Job.ListJobs)
		jobs.GET("/mine", employer, h.Job.ListMyJobs)
		jobs.GET("/matches", worker, h.Job.MatchJobs)
		jobs.POST("/suggest-skills", employer, h.Job.SuggestSkills)
		jobs.GET("/:id", h.Job.GetJob)
		jobs.POST("", employer, h.Job.CreateJob)
		jobs.PATCH("/:id", employer, h.Job.UpdateJob)
		jobs.DELETE("/:id", middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), h.Job.DeleteJob)
	}

	applications := protected.Group("/applications")
	{
		applications.GET("", h.Application.ListApplications)
		applications.POST("", worker, h.Application.SubmitApplication)
		applications.PATCH("/:id", h.Application.UpdateApplication)
	}

	protected.POST("/ratings", h.Rating.SubmitRating)
	protected.GET("/users/:id/ratings", h.Rating.ListUserRatings)

	messages := protected.Group("/messages")
	{
		messages.GET("", h.Message.ListMessages)
		messages.POST("", h.Message.SendMessage)
		messages.POST("/:id/read", h.Message.MarkMessageRead)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Message.ListNotifications)
		notifications.POST("/:id/read", h.Message.MarkNotificationRead)
	}

	protected.GET("/ws", h.Realtime.ServeWS)
}
