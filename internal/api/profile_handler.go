package api

import (
	"errors"
	"net/http"

	"coachhub/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves profile photo upload and retrieval for both roles.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"` // e.g. "image/jpeg"
}

type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"` // presigned PUT URL
	ObjectKey string `json:"objectKey"`
}

type ConfirmPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type PhotoURLResponse struct {
	URL string `json:"url"` // presigned GET URL
}

// --- Handler Methods ---

// RequestPhotoUpload godoc
// @Summary Request a presigned upload URL for a profile photo
// @Description The client uploads the photo directly to storage with the returned URL, then confirms the key.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PhotoUploadRequest true "Upload details"
// @Success 200 {object} PhotoUploadResponse "Presigned upload URL"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile/photo/upload-url [post]
func (h *ProfileHandler) RequestPhotoUpload(c *gin.Context) {
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	uploadURL, objectKey, err := h.profileService.RequestPhotoUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare photo upload.")
		return
	}
	c.JSON(http.StatusOK, PhotoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// ConfirmPhoto godoc
// @Summary Confirm an uploaded profile photo
// @Description Records the uploaded object as the user's current photo and discards the previous one.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmPhotoRequest true "Uploaded object key"
// @Success 204 "Photo confirmed"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile/photo [put]
func (h *ProfileHandler) ConfirmPhoto(c *gin.Context) {
	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.profileService.ConfirmPhoto(c.Request.Context(), userID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm photo.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPhotoURL godoc
// @Summary Get a download URL for the current profile photo
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PhotoURLResponse "Presigned download URL"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User not found or no photo set"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile/photo [get]
func (h *ProfileHandler) GetPhotoURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	url, err := h.profileService.GetPhotoURL(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrNoPhoto) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photo URL.")
		}
		return
	}
	c.JSON(http.StatusOK, PhotoURLResponse{URL: url})
}
