package routes

import (
	"adventure/backend/config"
	"adventure/backend/controllers"
	"adventure/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Leaderboard routes
	leaderboardController := controllers.NewLeaderboardController(db, cfg)
	leaderboard := app.Group("/api/leaderboard", authMiddleware)
	leaderboard.Get("/", leaderboardController.GetLeaderboard)
	leaderboard.Post("/update", leaderboardController.UpdatePoints)
	leaderboard.Get("/rank", leaderboardController.GetCurrentRank)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/", progressController.GetProgress)
	progress.Post("/xp", progressController.AddXP)
	progress.Post("/streak", progressController.CheckInStreak)

	// Video routes
	videoController := controllers.NewVideoController(db, cfg)
	videos := app.Group("/api/videos", authMiddleware)
	videos.Get("/theme/:theme", videoController.GetVideosByTheme)
	videos.Get("/completed", videoController.GetCompletedVideos)
	videos.Post("/:id/complete", videoController.CompleteVideo)

	// Admin routes for videos
	adminVideos := app.Group("/api/admin/videos", authMiddleware, adminMiddleware)
	adminVideos.Post("/", videoController.UploadVideo)
}
