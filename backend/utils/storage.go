package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SaveUpload stores an uploaded file under dir with a uuid-derived name so
// uploads can never collide or overwrite each other. Returns the stored
// path; callers treat it as an opaque blob reference.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(dir, name)
	if err := c.SaveFile(file, dst); err != nil {
		return "", err
	}

	return dst, nil
}
