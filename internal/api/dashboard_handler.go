package api

import (
	"net/http"

	"vitacare/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardHandler serves the read-only aggregate views the client
// dashboard is built from.
type DashboardHandler struct {
	retrievalService service.RetrievalService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(retrievalService service.RetrievalService) *DashboardHandler {
	return &DashboardHandler{retrievalService: retrievalService}
}

// GetDataStatus reports whether the client should generate new content
// or reuse what is stored.
func (h *DashboardHandler) GetDataStatus(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	status, err := h.retrievalService.CheckUserDataStatus(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to check data status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetToday returns the current date's schedule row and activities plus a
// short head of unread insights and pending recommendations.
func (h *DashboardHandler) GetToday(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	today, err := h.retrievalService.GetTodaySchedule(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load today's schedule")
		return
	}
	c.JSON(http.StatusOK, today)
}

// GetProgress returns trailing-week compliance and goal movement.
func (h *DashboardHandler) GetProgress(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	progress, err := h.retrievalService.GetUserProgressData(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load progress data")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetPatientProgress returns a patient's progress data for a clinician
// review.
func (h *DashboardHandler) GetPatientProgress(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	progress, err := h.retrievalService.GetUserProgressData(c.Request.Context(), patientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load progress data")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetContentByDateRange returns everything generated inside an inclusive
// YYYY-MM-DD window given by the start_date and end_date query params.
func (h *DashboardHandler) GetContentByDateRange(c *gin.Context) {
	userID, err := userObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		abortWithError(c, http.StatusBadRequest, "start_date and end_date query parameters are required")
		return
	}

	content, err := h.retrievalService.GetUserContentByDateRange(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, content)
}
