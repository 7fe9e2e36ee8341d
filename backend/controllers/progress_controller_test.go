package controllers_test

import (
	"testing"
	"time"

	"adventure/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestGetProgressDefaults(t *testing.T) {
	token := registerUser(t, "Fresh", "fresh@example.com", "student", "password123")

	resp := doJSON(t, "GET", "/api/progress", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.EqualValues(t, 1, result["level"])
	assert.EqualValues(t, 0, result["xp"])
	assert.EqualValues(t, 1000, result["xp_next_level"])
	assert.EqualValues(t, 0, result["xp_progress_percent"])
}

func TestAddXPDerivesPercent(t *testing.T) {
	token := registerUser(t, "Learner", "learner@example.com", "student", "password123")

	resp := doJSON(t, "POST", "/api/progress/xp", token, map[string]int{"xp": 500})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeMap(t, resp)
	assert.EqualValues(t, 500, result["xp"])
	assert.EqualValues(t, 50, result["xp_progress_percent"])

	// percent clamps at 100 past the threshold, level stays put
	resp = doJSON(t, "POST", "/api/progress/xp", token, map[string]int{"xp": 700})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeMap(t, resp)
	assert.EqualValues(t, 1200, result["xp"])
	assert.EqualValues(t, 100, result["xp_progress_percent"])
	assert.EqualValues(t, 1, result["level"])
}

func TestAddXPFloorsAtZero(t *testing.T) {
	token := registerUser(t, "Penalized", "penalized@example.com", "student", "password123")

	doJSON(t, "POST", "/api/progress/xp", token, map[string]int{"xp": 100})
	resp := doJSON(t, "POST", "/api/progress/xp", token, map[string]int{"xp": -5000})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.EqualValues(t, 0, result["xp"])
}

func TestStreakCheckInExtendsAndIsIdempotent(t *testing.T) {
	token := registerUser(t, "Daily", "daily@example.com", "student", "password123")

	var user models.User
	assert.NoError(t, db.Where("email = ?", "daily@example.com").First(&user).Error)
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	db.Model(&models.UserProgress{}).Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"streak_days": 4, "last_active": yesterday})

	resp := doJSON(t, "POST", "/api/progress/streak", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, decodeMap(t, resp)["streak_days"])

	// same-day repeat must not double-increment
	resp = doJSON(t, "POST", "/api/progress/streak", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, decodeMap(t, resp)["streak_days"])
}

func TestStreakCheckInResetsAfterGap(t *testing.T) {
	token := registerUser(t, "Lapsed", "lapsed@example.com", "student", "password123")

	var user models.User
	assert.NoError(t, db.Where("email = ?", "lapsed@example.com").First(&user).Error)
	db.Model(&models.UserProgress{}).Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"streak_days": 9, "last_active": time.Now().UTC().AddDate(0, 0, -3)})

	resp := doJSON(t, "POST", "/api/progress/streak", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decodeMap(t, resp)["streak_days"])
}
