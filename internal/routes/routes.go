package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/achariya/ambassador-backend/internal/handlers"
	"github.com/achariya/ambassador-backend/internal/middleware"
)

// RegisterRoutes configures all API routes
func RegisterRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	benefitHandler *handlers.BenefitHandler,
	slabHandler *handlers.SlabHandler,
	settlementHandler *handlers.SettlementHandler,
	referralHandler *handlers.ReferralHandler,
	campusHandler *handlers.CampusHandler,
	rateLimiter *middleware.RateLimiter,
) {
	authGroup := router.Group("/api/auth")
	authGroup.Use(rateLimiter.Middleware())
	{
		authGroup.POST("/login", authHandler.Login)
	}

	userGroup := router.Group("/api/users")
	userGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		userGroup.POST("", authHandler.CreateUser)
	}

	benefitGroup := router.Group("/api/benefits")
	benefitGroup.Use(middleware.AuthMiddleware())
	{
		benefitGroup.GET("/me", benefitHandler.GetMyStats)
		benefitGroup.GET("/users/:id", middleware.AdminMiddleware(), benefitHandler.GetUserStats)
	}

	slabGroup := router.Group("/api/slabs")
	slabGroup.Use(middleware.AuthMiddleware())
	{
		slabGroup.GET("", slabHandler.List)
		slabGroup.POST("", middleware.AdminMiddleware(), slabHandler.Create)
		slabGroup.PUT("/:id", middleware.AdminMiddleware(), slabHandler.Update)
		slabGroup.DELETE("/:id", middleware.AdminMiddleware(), slabHandler.Delete)
		slabGroup.POST("/reset", middleware.AdminMiddleware(), slabHandler.Reset)
	}

	settlementGroup := router.Group("/api/settlements")
	settlementGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		settlementGroup.GET("/users/:id", settlementHandler.ListForUser)
		settlementGroup.POST("", settlementHandler.Create)
		settlementGroup.PUT("/:id/process", settlementHandler.Process)
		settlementGroup.DELETE("/:id", settlementHandler.Delete)
	}

	referralGroup := router.Group("/api/referrals")
	referralGroup.Use(middleware.AuthMiddleware())
	{
		referralGroup.POST("", referralHandler.Create)
		referralGroup.PUT("/:id/status", middleware.AdminMiddleware(), referralHandler.UpdateStatus)
	}

	campusGroup := router.Group("/api/campuses")
	campusGroup.Use(middleware.AuthMiddleware())
	{
		campusGroup.GET("", campusHandler.List)
		campusGroup.POST("", middleware.AdminMiddleware(), campusHandler.Create)
		campusGroup.PUT("/:id/grade-fees", middleware.AdminMiddleware(), campusHandler.SetGradeFee)
	}
}
