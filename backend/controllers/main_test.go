package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"adventure/backend/config"
	"adventure/backend/routes"
	"adventure/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
		UploadDir:  os.TempDir(),
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.MigrateModels(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, name, email, role, password string) string {
	t.Helper()

	resp := doJSON(t, "POST", "/api/auth/register", "", map[string]string{
		"name":        name,
		"email":       email,
		"role":        role,
		"institution": "Test University",
		"password":    password,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeMap(t, resp)
	token, _ := result["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func doJSON(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(jsonData)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var result []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
