package controllers

import (
	"errors"

	"adventure/backend/config"
	"adventure/backend/models"
	"adventure/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLeaderboardController(db *gorm.DB, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{DB: db, Cfg: cfg}
}

// Deterministic ordering: ties broken by email
const leaderboardOrder = "points DESC, email ASC"

// UpdatePoints godoc
// @Summary Add points for an email
// @Description Get-or-create the leaderboard entry and apply the delta, then return the full sorted leaderboard
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Email and point delta"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard/update [post]
func (lc *LeaderboardController) UpdatePoints(c *fiber.Ctx) error {
	type UpdateInput struct {
		Email  string `json:"email"`
		Points int    `json:"points"`
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	// The increment runs in SQL inside the transaction so concurrent
	// submissions for the same email cannot lose updates.
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.LeaderboardEntry
		if err := tx.Where(models.LeaderboardEntry{Email: input.Email}).
			FirstOrCreate(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.LeaderboardEntry{}).
			Where("email = ?", input.Email).
			UpdateColumn("points", gorm.Expr("points + ?", input.Points)).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update points")
	}

	var entries []models.LeaderboardEntry
	if err := lc.DB.Order(leaderboardOrder).Find(&entries).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		result = append(result, fiber.Map{
			"email":  entry.Email,
			"points": entry.Points,
		})
	}

	return c.JSON(result)
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Returns all entries sorted by points descending, with account names resolved by email
// @Tags leaderboard
// @Produce json
// @Success 200 {object} []map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	var entries []models.LeaderboardEntry
	if err := lc.DB.Order(leaderboardOrder).Find(&entries).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		// Entries can exist for emails without an account; show the
		// raw email as the display name in that case.
		name := entry.Email
		var user models.User
		if err := lc.DB.Where("email = ?", entry.Email).First(&user).Error; err == nil {
			name = user.Name
		}

		result = append(result, fiber.Map{
			"name":   name,
			"points": entry.Points,
		})
	}

	return c.JSON(result)
}

// GetCurrentRank godoc
// @Summary Get a user's current standing
// @Description Returns the rank snapshot for the account identified by email
// @Tags leaderboard
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard/rank [get]
func (lc *LeaderboardController) GetCurrentRank(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	var user models.User
	if err := lc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var entry models.LeaderboardEntry
	if err := lc.DB.Where("email = ?", email).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Leaderboard entry not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var progress models.UserProgress
	if err := lc.DB.Where("user_id = ?", user.ID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User progress not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var higher int64
	if err := lc.DB.Model(&models.LeaderboardEntry{}).
		Where("points > ?", entry.Points).
		Count(&higher).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"name":                user.Name,
		"points":              entry.Points,
		"rank":                higher + 1,
		"level":               progress.Level,
		"xp":                  progress.XP,
		"xp_next_level":       progress.XPNextLevel,
		"xp_progress_percent": progress.XPProgressPercent(),
		"streak_days":         progress.StreakDays,
		"badge":               progress.Badge,
	})
}
