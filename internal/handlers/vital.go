package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type VitalHandler struct {
	vitalService services.VitalService
}

func NewVitalHandler(vitalService services.VitalService) *VitalHandler {
	return &VitalHandler{vitalService: vitalService}
}

func (vh *VitalHandler) Create(c *gin.Context) {
	var req struct {
		Type       string `json:"type"`
		Value      string `json:"value"`
		Unit       string `json:"unit,omitempty"`
		Notes      string `json:"notes,omitempty"`
		RecordedAt string `json:"recordedAt,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in := services.VitalInput{
		Type:  req.Type,
		Value: req.Value,
		Unit:  req.Unit,
		Notes: req.Notes,
	}
	if req.RecordedAt != "" {
		recordedAt, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recordedAt must be an RFC3339 timestamp"})
			return
		}
		in.RecordedAt = recordedAt
	}
	vital, err := vh.vitalService.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vital": vital})
}

func (vh *VitalHandler) GetMine(c *gin.Context) {
	vitals, err := vh.vitalService.GetMine(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vitals": vitals})
}

func (vh *VitalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vital id"})
		return
	}
	if err := vh.vitalService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
