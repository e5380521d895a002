package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"typing-tutor/story"
)

// SaveKeyRequest is the body of POST /api/save-key
type SaveKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// GenerateStoryRequest is the body of POST /api/generate-story
type GenerateStoryRequest struct {
	APIKey      string `json:"apiKey"`
	StoryLength string `json:"storyLength"`
}

// saveKeyHandler handles the POST /api/save-key endpoint
func (app *App) saveKeyHandler(c *gin.Context) {
	var req SaveKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Invalid save-key payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "API key is required"})
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "API key is required"})
		return
	}

	if err := app.Credentials.Save(c.Request.Context(), req.APIKey); err != nil {
		// Details stay in the log; the client only learns that saving failed.
		log.Errorf("Error saving API key: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "API key saved successfully"})
}

// getKeyHandler handles the GET /api/get-key endpoint
func (app *App) getKeyHandler(c *gin.Context) {
	apiKey, _ := app.Credentials.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"apiKey": apiKey})
}

// generateStoryHandler handles the POST /api/generate-story endpoint
func (app *App) generateStoryHandler(c *gin.Context) {
	var req GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warnf("Invalid generate-story payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := app.Stories.Generate(c.Request.Context(), story.Request{
		APIKey: req.APIKey,
		Length: story.ParseLength(req.StoryLength),
	})

	var upstreamErr *story.UpstreamError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"story": result})
	case errors.Is(err, story.ErrMissingCredential):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No API key available. Please save an API key first."})
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.StatusCode, gin.H{
			"error":   upstreamErr.Error(),
			"details": upstreamErr.Body,
		})
	default:
		log.Errorf("Error generating story: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
