// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/controller"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/middleware"
)

// Controllers holds every HTTP controller mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Goal        *controller.GoalController
	Report      *controller.ReportController
	Dashboard   *controller.DashboardController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.engine.GET("/health", r.controllers.Health.Check)
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.loginRateLimiter.Middleware(), c.Auth.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", c.User.Me)
		users.DELETE("/me", c.User.DeleteAccount)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", c.Category.List)
		categories.POST("", c.Category.Create)
		categories.PATCH("/:id", c.Category.Rename)
		categories.DELETE("/:id", c.Category.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.POST("", c.Transaction.Create)
		transactions.GET("/:id", c.Transaction.Get)
		transactions.PATCH("/:id", c.Transaction.Update)
		transactions.DELETE("/:id", c.Transaction.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", c.Goal.List)
		goals.POST("", c.Goal.Create)
		goals.GET("/summary", c.Goal.Summary)
		goals.GET("/:id", c.Goal.Get)
		goals.PATCH("/:id", c.Goal.Update)
		goals.DELETE("/:id", c.Goal.Delete)
		goals.POST("/:id/refresh", c.Goal.Refresh)
		goals.POST("/:id/cancel", c.Goal.ChangeStatus(goal.ActionCancel))
		goals.POST("/:id/complete", c.Goal.ChangeStatus(goal.ActionComplete))
		goals.POST("/:id/reactivate", c.Goal.ChangeStatus(goal.ActionReactivate))
		goals.GET("/:id/statistics", c.Goal.Statistics)
		goals.GET("/:id/history", c.Goal.History)
		goals.GET("/:id/suggestions", c.Goal.Suggestions)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("", c.Report.List)
		reports.POST("/generate", c.Report.Generate)
		reports.GET("/compare", c.Report.Compare)
		reports.GET("/summary", c.Report.Summary)
		reports.GET("/categories", c.Report.Categories)
		reports.GET("/:year/:month", c.Report.Get)
		reports.DELETE("/:year/:month", c.Report.Delete)
		reports.GET("/:year/:month/export", c.Report.Export)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", c.Dashboard.Overview)
		dashboard.GET("/quick-stats", c.Dashboard.QuickStats)
		dashboard.GET("/monthly", c.Dashboard.Monthly)
		dashboard.GET("/average-daily", c.Dashboard.AverageDailyExpense)
		dashboard.GET("/spending-report", c.Dashboard.SpendingReport)
		dashboard.GET("/categories/:id/trend", c.Dashboard.CategoryTrend)
	}
}

// Engine returns the configured Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
