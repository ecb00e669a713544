package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogmedia/internal/domain"
	"blogmedia/internal/service"
)

// multipartOverhead is allowed on top of the image size for the title field
// and part headers.
const multipartOverhead = 64 << 10

// multipartMemory is how much of a multipart body is held in memory before
// file parts spill to disk.
const multipartMemory = 32 << 20

// ImageResponse is the JSON form of an uploaded image.
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DisplayURL   string    `json:"display_url"`
	OriginalURL  string    `json:"original_url"`
	UploadedAt   string    `json:"uploaded_at"`
}

// ToImageResponse serializes an image record.
func ToImageResponse(img *domain.Image) ImageResponse {
	return ImageResponse{
		ID:           img.ID,
		Title:        img.Title,
		ThumbnailURL: img.ThumbnailURL,
		DisplayURL:   img.DisplayURL,
		OriginalURL:  img.OriginalURL,
		UploadedAt:   img.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// ImageHandler handles image upload and lookup endpoints.
type ImageHandler struct {
	imageService   service.ImageService
	maxUploadBytes int64
}

// NewImageHandler creates a new ImageHandler. maxUploadBytes <= 0 disables
// the size limit.
func NewImageHandler(imageService service.ImageService, maxUploadBytes int64) *ImageHandler {
	return &ImageHandler{imageService: imageService, maxUploadBytes: maxUploadBytes}
}

// Upload handles POST /api/v1/images
// @Summary Upload an image
// @Description Store the original, a 1000px display copy and a 300px thumbnail as JPEG
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Image title"
// @Param image formData file true "Image file"
// @Success 201 {object} ImageResponse
// @Failure 400 {object} ErrorBody "Missing title or image"
// @Failure 413 {object} ErrorBody "Image too large"
// @Failure 500 {object} ErrorBody "Processing or storage failure"
// @Failure 503 {object} ErrorBody "Processing capacity exhausted"
// @Security BearerAuth
// @Router /images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && isMaxBytesError(err) {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	input := service.ImageUploadInput{
		Title:      c.PostForm("title"),
		UploadedBy: &userID,
	}
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		if input.Data, err = io.ReadAll(file); err != nil {
			log.Printf("imageHandler.Upload: reading %s: %v", header.Filename, err)
			HandleError(c, err)
			return
		}
	}

	img, err := h.imageService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/images/"+img.ID.String())
	c.JSON(http.StatusCreated, ToImageResponse(img))
}

// List handles GET /api/v1/images
// @Summary List images
// @Tags images
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Page[ImageResponse]
// @Security BearerAuth
// @Router /images [get]
func (h *ImageHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	images, total, err := h.imageService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	out := make([]ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, ToImageResponse(&images[i]))
	}
	RespondPage(c, out, total, offset, limit)
}

// GetByID handles GET /api/v1/images/:id
// @Summary Get image by ID
// @Tags images
// @Produce json
// @Param id path string true "Image ID (UUID)"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} ErrorBody "Invalid ID"
// @Failure 404 {object} ErrorBody "Image not found"
// @Security BearerAuth
// @Router /images/{id} [get]
func (h *ImageHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid image ID")
		return
	}

	img, err := h.imageService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToImageResponse(img))
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
