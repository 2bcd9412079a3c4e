package controllers

import (
	"fmt"
	"log"
	"net/http"

	"caltrack/middlewares"
	"caltrack/services"
	"caltrack/utils"

	"github.com/gin-gonic/gin"
)

type ClassifyController struct {
	chain        services.FoodClassifier
	uploadPhotos bool
}

func NewClassifyController(chain services.FoodClassifier, uploadPhotos bool) *ClassifyController {
	return &ClassifyController{chain: chain, uploadPhotos: uploadPhotos}
}

type ClassifyRequest struct {
	// Image is a data URI ("data:image/jpeg;base64,..."); optional.
	Image       string `json:"image"`
	Description string `json:"description"`
}

type ClassifyResponse struct {
	*services.Classification
	PhotoURL string `json:"photo_url,omitempty"`
}

// Classify runs the provider chain over an image, a text description, or
// both, and optionally stores the image so the guess can be logged with its
// photo attached.
func (h *ClassifyController) Classify(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Image == "" && req.Description == "" {
		respondError(c, http.StatusBadRequest, "an image or a description is required")
		return
	}

	in := services.ClassifyInput{Description: req.Description}
	var contentType string
	if req.Image != "" {
		ct, raw, err := utils.DecodeDataURI(req.Image)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		in.ImageBytes = raw
		contentType = ct
	}

	result, err := h.chain.Classify(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := ClassifyResponse{Classification: result}
	if h.uploadPhotos && len(in.ImageBytes) > 0 {
		url, err := utils.UploadMealImage(c.Request.Context(), in.ImageBytes, contentType, fmt.Sprintf("user-%d", userID))
		if err != nil {
			// The classification is still usable without the photo.
			log.Printf("POST /classify: meal image upload failed: %v", err)
		} else {
			resp.PhotoURL = url
		}
	}
	respondOK(c, http.StatusOK, resp)
}
