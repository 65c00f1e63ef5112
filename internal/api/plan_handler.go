package api

import (
	"errors"
	"fmt"
	"net/http"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/payload"
	"vitacare/health-app/internal/repository"
	"vitacare/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves plan persistence and retrieval endpoints.
type PlanHandler struct {
	integrationService service.IntegrationService
	retrievalService   service.RetrievalService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(integrationService service.IntegrationService, retrievalService service.RetrievalService) *PlanHandler {
	return &PlanHandler{
		integrationService: integrationService,
		retrievalService:   retrievalService,
	}
}

// --- Request Structs ---

// SavePlanRequest carries a raw AI plan payload plus the generation
// context it was produced under.
type SavePlanRequest struct {
	PlanData  payload.Plan       `json:"plan_data" binding:"required"`
	Profile   domain.UserProfile `json:"profile"`
	AIModel   string             `json:"ai_model" binding:"required"`
	UserInput string             `json:"user_input"`
}

type UpdateStatusRequest struct {
	Status   domain.PlanStatus `json:"status" binding:"required,oneof=draft active paused completed cancelled archived"`
	Progress *float64          `json:"progress" binding:"omitempty,min=0,max=100"`
}

type UpdateProgressRequest struct {
	CurrentWeek           *int     `json:"current_week" binding:"omitempty,min=1"`
	OverallProgress       *float64 `json:"overall_progress" binding:"omitempty,min=0,max=100"`
	WeeklyComplianceRate  *float64 `json:"weekly_compliance_rate" binding:"omitempty,min=0,max=100"`
	MonthlyComplianceRate *float64 `json:"monthly_compliance_rate" binding:"omitempty,min=0,max=100"`
}

// --- Handler Methods ---

// SaveGeneratedPlan persists an AI-generated plan and its derivative
// records for the authenticated user.
func (h *PlanHandler) SaveGeneratedPlan(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.integrationService.SaveGeneratedHealthPlan(c.Request.Context(), userID, req.PlanData, req.Profile, req.AIModel, req.UserInput)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save generated plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetSavedPlanData returns everything persisted for the user across the
// record families.
func (h *PlanHandler) GetSavedPlanData(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := h.retrievalService.GetUserSavedPlanData(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load saved plan data")
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetExistingPlan returns the user's active plan, falling back to their
// most recent one.
func (h *PlanHandler) GetExistingPlan(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	plan, err := h.retrievalService.GetExistingUserPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No plan found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ActivatePlan makes the given plan the user's active one.
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.retrievalService.ActivatePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to activate plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan activated"})
}

// UpdateStatus moves one plan through its lifecycle.
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.retrievalService.UpdatePlanStatus(c.Request.Context(), planID, req.Status, req.Progress); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update plan status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan status updated"})
}

// UpdateProgress applies a progress patch to the user's active plan.
func (h *PlanHandler) UpdateProgress(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := repository.PlanProgressPatch{
		CurrentWeek:           req.CurrentWeek,
		OverallProgress:       req.OverallProgress,
		WeeklyComplianceRate:  req.WeeklyComplianceRate,
		MonthlyComplianceRate: req.MonthlyComplianceRate,
	}
	if err := h.retrievalService.UpdatePlanProgress(c.Request.Context(), userID, patch); err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update plan progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

// GetPatientPlan returns a patient's active plan for a clinician review,
// falling back to the patient's most recent one.
func (h *PlanHandler) GetPatientPlan(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	plan, err := h.retrievalService.GetExistingUserPlan(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No plan found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// userObjectID resolves the authenticated user's ID from the JWT context.
func userObjectID(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID in token")
	}
	return id, nil
}
