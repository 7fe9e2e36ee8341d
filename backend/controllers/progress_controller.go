package controllers

import (
	"time"

	"adventure/backend/config"
	"adventure/backend/models"
	"adventure/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns the authenticated user's gamification state
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progress models.UserProgress
	if err := pc.DB.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return utils.NotFound(c, "User progress not found")
	}

	return c.JSON(progressPayload(&progress))
}

// AddXP godoc
// @Summary Award experience points
// @Description Adds XP to the authenticated user's progress; XP never drops below zero and level is not advanced automatically
// @Tags progress
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "XP delta"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/xp [post]
func (pc *ProgressController) AddXP(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type XPInput struct {
		XP int `json:"xp"`
	}
	var input XPInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		var progress models.UserProgress
		if err := tx.Where(models.UserProgress{UserID: userID}).
			FirstOrCreate(&progress).Error; err != nil {
			return err
		}
		// CASE keeps the floor-at-zero arithmetic inside the store
		return tx.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			UpdateColumn("xp", gorm.Expr(
				"CASE WHEN xp + ? < 0 THEN 0 ELSE xp + ? END",
				input.XP, input.XP)).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update XP")
	}

	var progress models.UserProgress
	if err := pc.DB.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(progressPayload(&progress))
}

// CheckInStreak godoc
// @Summary Daily streak check-in
// @Description Rolls the authenticated user's streak forward; repeat calls on the same day leave it unchanged
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/streak [post]
func (pc *ProgressController) CheckInStreak(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progress models.UserProgress
	if err := pc.DB.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return utils.NotFound(c, "User progress not found")
	}

	progress.ApplyStreak(time.Now())
	if err := persistStreak(pc.DB, &progress); err != nil {
		return utils.InternalServerError(c, "Could not update streak")
	}

	return c.JSON(progressPayload(&progress))
}

// persistStreak writes only the streak columns. A full Save would write
// back every field of the row as read, clobbering an XP increment
// committed between this handler's read and its write.
func persistStreak(db *gorm.DB, p *models.UserProgress) error {
	return db.Model(p).Updates(map[string]interface{}{
		"streak_days": p.StreakDays,
		"last_active": p.LastActive,
	}).Error
}

func progressPayload(p *models.UserProgress) fiber.Map {
	return fiber.Map{
		"level":               p.Level,
		"xp":                  p.XP,
		"xp_next_level":       p.XPNextLevel,
		"xp_progress_percent": p.XPProgressPercent(),
		"streak_days":         p.StreakDays,
		"last_active":         p.LastActive,
		"badge":               p.Badge,
	}
}
