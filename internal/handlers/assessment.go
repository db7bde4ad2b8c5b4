package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type AssessmentHandler struct {
	log               *logger.Logger
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{log: log.With("handler", "AssessmentHandler"), assessmentService: assessmentService}
}

func (ah *AssessmentHandler) PredictDisease(c *gin.Context) {
	var req struct {
		DiseaseType string            `json:"diseaseType"`
		InputData   map[string]string `json:"inputData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.InputData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inputData is required"})
		return
	}

	assessment, err := ah.assessmentService.Predict(c.Request.Context(), req.DiseaseType, req.InputData)
	if err != nil {
		respondGatewayError(c, ah.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"riskLevel":       assessment.RiskLevel,
		"riskScore":       assessment.RiskScore,
		"analysis":        assessment.AiAnalysis,
		"recommendations": assessment.Recommendations,
		"assessmentID":    assessment.ID,
	})
}

func (ah *AssessmentHandler) GetAssessments(c *gin.Context) {
	assessments, err := ah.assessmentService.GetUserAssessments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
