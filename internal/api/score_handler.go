package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"
	"vitacare/health-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ScoreHandler serves health assessment endpoints.
type ScoreHandler struct {
	scoreService service.ScoreService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoreService service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

type SaveHealthScoreRequest struct {
	HealthScore     int      `json:"health_score" binding:"min=0,max=100"`
	Analysis        string   `json:"analysis" binding:"required"`
	Recommendations []string `json:"recommendations"`
	UserInput       string   `json:"user_input"`
	UploadedFiles   []string `json:"uploaded_files"`
	VoiceTranscript string   `json:"voice_transcript"`
	AIProvider      string   `json:"ai_provider" binding:"required"`
}

// SaveScore persists one AI health assessment for the authenticated user.
func (h *ScoreHandler) SaveScore(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req SaveHealthScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	score := &domain.HealthScore{
		UserID:              userID,
		HealthScore:         req.HealthScore,
		Analysis:            req.Analysis,
		Recommendations:     req.Recommendations,
		UserInput:           req.UserInput,
		UploadedFiles:       req.UploadedFiles,
		VoiceTranscript:     req.VoiceTranscript,
		AIProvider:          req.AIProvider,
		GenerationTimestamp: time.Now().UTC(),
	}
	saved, err := h.scoreService.SaveHealthScore(c.Request.Context(), score)
	if err != nil {
		if errors.Is(err, service.ErrInvalidHealthScore) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save health score")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GetLatestScore returns the user's most recent assessment.
func (h *ScoreHandler) GetLatestScore(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	score, err := h.scoreService.GetLatestHealthScore(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No health score found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load health score")
		return
	}
	c.JSON(http.StatusOK, score)
}
