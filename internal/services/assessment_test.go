package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type fakeGateway struct {
	reply string
	err   error
}

func (f *fakeGateway) ChatStream(ctx context.Context, req ai.ChatRequest) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.reply)), nil
}

func (f *fakeGateway) Complete(ctx context.Context, req ai.ChatRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeAssessmentRepo struct {
	created []*types.DiseaseAssessment
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, a *types.DiseaseAssessment) error {
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAssessmentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DiseaseAssessment, error) {
	var out []*types.DiseaseAssessment
	for _, a := range f.created {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func authedContext(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func TestPredict_ParsesJSONEmbeddedInProse(t *testing.T) {
	gateway := &fakeGateway{reply: `Here is my assessment of the provided metrics.
{"riskLevel":"high","riskScore":78.5,"analysis":"Elevated glucose and HbA1c.","recommendations":["Reduce sugar intake","Schedule an HbA1c retest"]}
Take care!`}
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), gateway, repo)

	assessment, err := svc.Predict(authedContext(uuid.New()), "diabetes", map[string]string{"glucose": "180"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if assessment.RiskLevel != "high" {
		t.Errorf("RiskLevel = %q, want %q", assessment.RiskLevel, "high")
	}
	if assessment.RiskScore != 78.5 {
		t.Errorf("RiskScore = %v, want 78.5", assessment.RiskScore)
	}
	if assessment.AiAnalysis != "Elevated glucose and HbA1c." {
		t.Errorf("AiAnalysis = %q", assessment.AiAnalysis)
	}
	if len(assessment.Recommendations) != 2 {
		t.Errorf("Recommendations = %v, want 2 entries", assessment.Recommendations)
	}
	if len(repo.created) != 1 {
		t.Fatalf("persisted %d assessments, want 1", len(repo.created))
	}
}

func TestPredict_NoJSONFallsBack(t *testing.T) {
	gateway := &fakeGateway{reply: "I cannot provide a structured assessment for this input."}
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), gateway, repo)

	assessment, err := svc.Predict(authedContext(uuid.New()), "heart", map[string]string{"ldl": "190"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if assessment.RiskLevel != "medium" {
		t.Errorf("RiskLevel = %q, want the medium fallback", assessment.RiskLevel)
	}
	if assessment.RiskScore != 50 {
		t.Errorf("RiskScore = %v, want the 50 fallback", assessment.RiskScore)
	}
	if len(assessment.Recommendations) == 0 {
		t.Error("fallback should carry recommendations")
	}
}

func TestPredict_MalformedJSONFallsBack(t *testing.T) {
	gateway := &fakeGateway{reply: `{"riskLevel": "high", "riskScore": not-a-number}`}
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), gateway, repo)

	assessment, err := svc.Predict(authedContext(uuid.New()), "kidney", map[string]string{"egfr": "45"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if assessment.RiskLevel != "medium" || assessment.RiskScore != 50 {
		t.Errorf("got %q/%v, want the medium/50 fallback", assessment.RiskLevel, assessment.RiskScore)
	}
}

func TestPredict_GatewayErrorPropagates(t *testing.T) {
	gatewayErr := &ai.StatusError{StatusCode: http.StatusTooManyRequests, Body: "rate limited"}
	gateway := &fakeGateway{err: gatewayErr}
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), gateway, repo)

	_, err := svc.Predict(authedContext(uuid.New()), "liver", map[string]string{"alt": "80"})
	var statusErr *ai.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *ai.StatusError", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", statusErr.StatusCode)
	}
	if len(repo.created) != 0 {
		t.Errorf("persisted %d assessments on gateway error, want 0", len(repo.created))
	}
}

func TestPredict_RequiresAuthentication(t *testing.T) {
	svc := NewAssessmentService(nil, testLogger(t), &fakeGateway{reply: "{}"}, &fakeAssessmentRepo{})
	if _, err := svc.Predict(context.Background(), "diabetes", map[string]string{"glucose": "120"}); err == nil {
		t.Fatal("expected error without request data, got nil")
	}
}

func TestPredict_PersistsInputData(t *testing.T) {
	gateway := &fakeGateway{reply: `{"riskLevel":"low","riskScore":12,"analysis":"Nominal.","recommendations":[]}`}
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), gateway, repo)

	userID := uuid.New()
	input := map[string]string{"glucose": "95", "bmi": "22"}
	if _, err := svc.Predict(authedContext(userID), "diabetes", input); err != nil {
		t.Fatalf("Predict: %v", err)
	}

	stored := repo.created[0]
	if stored.UserID != userID {
		t.Errorf("UserID = %v, want %v", stored.UserID, userID)
	}
	if stored.DiseaseType != "diabetes" {
		t.Errorf("DiseaseType = %q, want diabetes", stored.DiseaseType)
	}
	for k, v := range input {
		if stored.InputData[k] != v {
			t.Errorf("InputData[%q] = %v, want %q", k, stored.InputData[k], v)
		}
	}
}
