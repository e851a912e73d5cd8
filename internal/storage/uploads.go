package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploads stores multipart images on the local filesystem.
type Uploads struct {
	Dir string
}

// SaveImage persists the named form file under a uuid-derived filename and
// returns the stored name. Returns "" without error when the field is absent.
func (u Uploads) SaveImage(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// campo opcional na maioria das rotas
		return "", nil
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(u.Dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// RequireImage behaves like SaveImage but fails when the field is missing.
func (u Uploads) RequireImage(c *gin.Context, field string) (string, error) {
	if _, err := c.FormFile(field); err != nil {
		return "", err
	}
	return u.SaveImage(c, field)
}
