package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/prompts"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type AssessmentService interface {
	// Predict asks the model for a risk assessment and persists the result.
	// Gateway errors (rate limit, payment, config) propagate to the caller;
	// a reply the model formats badly never does — it yields the fixed
	// fallback result instead.
	Predict(ctx context.Context, diseaseType string, inputData map[string]string) (*types.DiseaseAssessment, error)
	GetUserAssessments(ctx context.Context) ([]*types.DiseaseAssessment, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	gateway        ai.Gateway
	assessmentRepo repos.AssessmentRepo
}

func NewAssessmentService(db *gorm.DB, log *logger.Logger, gateway ai.Gateway, assessmentRepo repos.AssessmentRepo) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		gateway:        gateway,
		assessmentRepo: assessmentRepo,
	}
}

type assessmentResult struct {
	RiskLevel       string   `json:"riskLevel"`
	RiskScore       float64  `json:"riskScore"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

func fallbackResult() assessmentResult {
	return assessmentResult{
		RiskLevel: "medium",
		RiskScore: 50,
		Analysis:  "We could not generate a detailed analysis for this assessment. The inputs were received, but the result should be treated as indicative only.",
		Recommendations: []string{
			"Consult a healthcare provider to review these results",
			"Verify that the metrics you entered are accurate",
		},
	}
}

func (s *assessmentService) Predict(ctx context.Context, diseaseType string, inputData map[string]string) (*types.DiseaseAssessment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}

	userPrompt, err := prompts.AssessmentUserPrompt(diseaseType, inputData)
	if err != nil {
		return nil, err
	}
	reply, err := s.gateway.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: prompts.AssessmentSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return nil, err
	}

	result := parseAssessmentReply(s.log, reply)

	inputJSON := make(datatypes.JSONMap, len(inputData))
	for k, v := range inputData {
		inputJSON[k] = v
	}
	assessment := &types.DiseaseAssessment{
		UserID:          rd.UserID,
		DiseaseType:     diseaseType,
		InputData:       inputJSON,
		RiskLevel:       result.RiskLevel,
		RiskScore:       result.RiskScore,
		AiAnalysis:      result.Analysis,
		Recommendations: datatypes.NewJSONSlice(result.Recommendations),
	}
	if err := s.assessmentRepo.Create(ctx, nil, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// parseAssessmentReply extracts the first brace-delimited JSON object from the
// model's free-text reply. Any extraction or parse failure yields the fixed
// fallback rather than an error, so malformed model output is non-fatal.
func parseAssessmentReply(log *logger.Logger, reply string) assessmentResult {
	raw, ok := prompts.ExtractJSON(reply)
	if !ok {
		log.Warn("No JSON object found in assessment reply, using fallback", "reply", reply)
		return fallbackResult()
	}
	var result assessmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Warn("Failed to parse JSON from assessment reply, using fallback", "error", err)
		return fallbackResult()
	}
	return result
}

func (s *assessmentService) GetUserAssessments(ctx context.Context) ([]*types.DiseaseAssessment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	return s.assessmentRepo.GetByUserID(ctx, nil, rd.UserID)
}
