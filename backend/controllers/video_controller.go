package controllers

import (
	"errors"
	"strconv"
	"time"

	"adventure/backend/config"
	"adventure/backend/models"
	"adventure/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VideoController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewVideoController(db *gorm.DB, cfg *config.Config) *VideoController {
	return &VideoController{DB: db, Cfg: cfg}
}

// GetVideosByTheme godoc
// @Summary List videos for a theme
// @Description Case-insensitive exact theme match, newest first; empty list when nothing matches
// @Tags videos
// @Produce json
// @Param theme path string true "Theme tag"
// @Success 200 {object} []map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /videos/theme/{theme} [get]
func (vc *VideoController) GetVideosByTheme(c *fiber.Ctx) error {
	theme := c.Params("theme")

	var videos []models.Video
	if err := vc.DB.Where("LOWER(theme) = LOWER(?)", theme).
		Order("uploaded_at DESC").
		Find(&videos).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(videos))
	for _, video := range videos {
		result = append(result, videoPayload(&video))
	}

	return c.JSON(result)
}

// CompleteVideo godoc
// @Summary Mark a video completed
// @Description Records that the authenticated user finished the video; a second submission conflicts
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /videos/{id}/complete [post]
func (vc *VideoController) CompleteVideo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, vc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	videoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid video ID")
	}

	var video models.Video
	if err := vc.DB.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Video not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var existing models.CompletedVideo
	if err := vc.DB.Where("user_id = ? AND video_id = ?", userID, video.ID).
		First(&existing).Error; err == nil {
		return utils.Conflict(c, "Video already completed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	completed := models.CompletedVideo{
		UserID:      userID,
		VideoID:     video.ID,
		CompletedAt: time.Now(),
	}
	// The composite unique index backstops concurrent duplicates
	if err := vc.DB.Create(&completed).Error; err != nil {
		return utils.Conflict(c, "Video already completed")
	}

	return utils.Created(c, fiber.Map{
		"video_id":     video.ID,
		"completed_at": completed.CompletedAt,
	})
}

// GetCompletedVideos godoc
// @Summary List completed videos
// @Description Returns every video the authenticated user has finished, with completion timestamps
// @Tags videos
// @Produce json
// @Success 200 {object} []map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /videos/completed [get]
func (vc *VideoController) GetCompletedVideos(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, vc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var completions []models.CompletedVideo
	if err := vc.DB.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&completions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(completions))
	for _, completion := range completions {
		var video models.Video
		if err := vc.DB.First(&video, completion.VideoID).Error; err != nil {
			continue
		}

		payload := videoPayload(&video)
		payload["completed_at"] = completion.CompletedAt
		result = append(result, payload)
	}

	return c.JSON(result)
}

// UploadVideo godoc
// @Summary Upload a video (admin)
// @Description Creates video metadata with optional thumbnail/file uploads and/or an external URL
// @Tags videos
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/videos [post]
func (vc *VideoController) UploadVideo(c *fiber.Ctx) error {
	title := c.FormValue("title")
	theme := c.FormValue("theme")
	if title == "" || theme == "" {
		return utils.BadRequest(c, "Title and theme are required")
	}

	video := models.Video{
		Title:       title,
		Theme:       theme,
		Description: c.FormValue("description"),
		VideoURL:    c.FormValue("video_url"),
		UploadedAt:  time.Now(),
	}

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUpload(c, thumb, vc.Cfg.UploadDir)
		if err != nil {
			return utils.InternalServerError(c, "Could not store thumbnail")
		}
		video.Thumbnail = path
	}

	if file, err := c.FormFile("file"); err == nil {
		path, err := utils.SaveUpload(c, file, vc.Cfg.UploadDir)
		if err != nil {
			return utils.InternalServerError(c, "Could not store video file")
		}
		video.File = path
	}

	if err := vc.DB.Create(&video).Error; err != nil {
		return utils.InternalServerError(c, "Could not create video")
	}

	return utils.Created(c, videoPayload(&video))
}

func videoPayload(v *models.Video) fiber.Map {
	return fiber.Map{
		"id":          v.ID,
		"title":       v.Title,
		"theme":       v.Theme,
		"description": v.Description,
		"thumbnail":   v.Thumbnail,
		"file":        v.File,
		"video_url":   v.VideoURL,
		"uploaded_at": v.UploadedAt,
	}
}
