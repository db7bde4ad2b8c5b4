package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type MedicationHandler struct {
	medicationService services.MedicationService
}

func NewMedicationHandler(medicationService services.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type medicationRequest struct {
	Name               string   `json:"name"`
	Dosage             string   `json:"dosage"`
	Frequency          string   `json:"frequency"`
	TimeOfDay          []string `json:"timeOfDay"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate,omitempty"`
	RefillReminderDate string   `json:"refillReminderDate,omitempty"`
}

func (mr medicationRequest) toInput() (services.MedicationInput, error) {
	in := services.MedicationInput{
		Name:      mr.Name,
		Dosage:    mr.Dosage,
		Frequency: mr.Frequency,
		TimeOfDay: mr.TimeOfDay,
	}
	if mr.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", mr.StartDate)
		if err != nil {
			return in, err
		}
		in.StartDate = startDate
	}
	if mr.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", mr.EndDate)
		if err != nil {
			return in, err
		}
		in.EndDate = &endDate
	}
	if mr.RefillReminderDate != "" {
		refillDate, err := time.Parse("2006-01-02", mr.RefillReminderDate)
		if err != nil {
			return in, err
		}
		in.RefillReminderDate = &refillDate
	}
	return in, nil
}

func (mh *MedicationHandler) Create(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must use the YYYY-MM-DD format"})
		return
	}
	medication, err := mh.medicationService.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medication": medication})
}

func (mh *MedicationHandler) GetMine(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	medications, err := mh.medicationService.GetMine(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medications": medications})
}

func (mh *MedicationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medication id"})
		return
	}
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must use the YYYY-MM-DD format"})
		return
	}
	medication, err := mh.medicationService.Update(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medication": medication})
}

func (mh *MedicationHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medication id"})
		return
	}
	if err := mh.medicationService.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
