package api

import (
	"errors"
	"fmt"
	"net/http"

	"vitacare/health-app/internal/repository"
	"vitacare/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentHandler serves mutations on individual generated records:
// activity completion reports, insight reads, recommendation decisions,
// and AI session logging.
type ContentHandler struct {
	integrationService service.IntegrationService
	retrievalService   service.RetrievalService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(integrationService service.IntegrationService, retrievalService service.RetrievalService) *ContentHandler {
	return &ContentHandler{
		integrationService: integrationService,
		retrievalService:   retrievalService,
	}
}

// --- Request Structs ---

type ActivityCompletionRequest struct {
	IsCompleted        *bool          `json:"is_completed"`
	CompletionPercent  *float64       `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
	ActualDuration     *int           `json:"actual_duration" binding:"omitempty,min=0"`
	DifficultyRating   *int           `json:"difficulty_rating" binding:"omitempty,min=1,max=5"`
	SatisfactionRating *int           `json:"satisfaction_rating" binding:"omitempty,min=1,max=5"`
	EnergyLevelBefore  *int           `json:"energy_level_before" binding:"omitempty,min=1,max=10"`
	EnergyLevelAfter   *int           `json:"energy_level_after" binding:"omitempty,min=1,max=10"`
	UserNotes          *string        `json:"user_notes"`
	Metrics            map[string]any `json:"metrics"`
}

type SaveSessionRequest struct {
	SessionType      string         `json:"session_type" binding:"required"`
	SessionPurpose   string         `json:"session_purpose"`
	UserInput        string         `json:"user_input"`
	AIResponse       string         `json:"ai_response"`
	GeneratedContent map[string]any `json:"generated_content"`
	AIModel          string         `json:"ai_model" binding:"required"`
	RelatedPlanID    *string        `json:"related_plan_id"`
}

// --- Handler Methods ---

// UpdateActivityCompletion records the user's report on one activity.
func (h *ContentHandler) UpdateActivityCompletion(c *gin.Context) {
	activityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var req ActivityCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := repository.ActivityCompletionPatch{
		IsCompleted:        req.IsCompleted,
		CompletionPercent:  req.CompletionPercent,
		ActualDuration:     req.ActualDuration,
		DifficultyRating:   req.DifficultyRating,
		SatisfactionRating: req.SatisfactionRating,
		EnergyLevelBefore:  req.EnergyLevelBefore,
		EnergyLevelAfter:   req.EnergyLevelAfter,
		UserNotes:          req.UserNotes,
		Metrics:            req.Metrics,
	}
	if err := h.retrievalService.UpdateActivityCompletion(c.Request.Context(), activityID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Activity not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity updated"})
}

// MarkInsightRead flags one insight as read.
func (h *ContentHandler) MarkInsightRead(c *gin.Context) {
	insightID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid insight ID format")
		return
	}

	if err := h.retrievalService.MarkInsightAsRead(c.Request.Context(), insightID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Insight not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to mark insight as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Insight marked as read"})
}

// AcceptRecommendation marks one recommendation accepted.
func (h *ContentHandler) AcceptRecommendation(c *gin.Context) {
	recID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid recommendation ID format")
		return
	}

	if err := h.retrievalService.AcceptRecommendation(c.Request.Context(), recID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Recommendation not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to accept recommendation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recommendation accepted"})
}

// SaveSession records one AI interaction for the authenticated user.
func (h *ContentHandler) SaveSession(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var relatedPlanID *primitive.ObjectID
	if req.RelatedPlanID != nil && *req.RelatedPlanID != "" {
		id, err := primitive.ObjectIDFromHex(*req.RelatedPlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid related plan ID format")
			return
		}
		relatedPlanID = &id
	}

	session, err := h.integrationService.SaveAISession(c.Request.Context(), userID,
		req.SessionType, req.SessionPurpose, req.UserInput, req.AIResponse,
		req.GeneratedContent, req.AIModel, relatedPlanID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}
	c.JSON(http.StatusCreated, session)
}
