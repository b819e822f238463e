package api

import (
	"net/http"
	"strings"

	"notehive/internal/adapters/api/middleware"

	"github.com/gin-gonic/gin"
)

// UploadImage godoc
// @Summary      Upload an image
// @Description  Upload an image file and get the public path it is served under
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image file"
// @Success      201 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      413 {object} map[string]string
// @Router       /images [post]
// @Security     BearerAuth
func (h *Handler) UploadImage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the upload size limit"})
		return
	}
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are accepted"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	path, err := h.mediaService.Save(user.ID, header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_path": path})
}
