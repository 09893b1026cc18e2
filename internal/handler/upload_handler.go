package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"catalog/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

var allowedImageTypes = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".svg": true,
}

type UploadHandler struct {
	uploader Uploader
	folder   string
	maxBytes int64
}

// NewUploadHandler returns a handler; uploader may be nil when storage is not configured.
func NewUploadHandler(uploader Uploader, folder string, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploader: uploader, folder: folder, maxBytes: maxBytes}
}

// UploadImage handles POST /api/admin/upload (multipart field "file",
// optional "folder" subdirectory). Returns {success, url}.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload is not configured"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperror.Validation("No file provided"))
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		respondError(c, apperror.Validation("File is too large"))
		return
	}
	if !allowedImageTypes[strings.ToLower(filepath.Ext(file.Filename))] {
		respondError(c, apperror.Validation("Only image files are allowed"))
		return
	}

	folder := h.folder
	if sub := strings.Trim(c.PostForm("folder"), "/ "); sub != "" && !strings.Contains(sub, "..") {
		folder += "/" + sub
	}
	publicID := "img_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		respondError(c, apperror.Validation("Could not read file"))
		return
	}
	defer f.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		respondError(c, apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
