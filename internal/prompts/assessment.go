package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiseaseProfile pairs a display name with the metric description embedded in
// the assessment prompt.
type DiseaseProfile struct {
	Name    string
	Metrics string
}

var diseaseProfiles = map[string]DiseaseProfile{
	"diabetes": {
		Name:    "Diabetes",
		Metrics: "glucose level, HbA1c, BMI, age, blood pressure, family history",
	},
	"heart": {
		Name:    "Heart Disease",
		Metrics: "total cholesterol, HDL, LDL, blood pressure, resting heart rate, age, smoking status",
	},
	"kidney": {
		Name:    "Chronic Kidney Disease",
		Metrics: "serum creatinine, blood urea nitrogen, eGFR, albumin, hemoglobin",
	},
	"liver": {
		Name:    "Liver Disease",
		Metrics: "ALT, AST, bilirubin, albumin, alkaline phosphatase",
	},
}

// DiseaseProfileFor returns the profile for diseaseType, defaulting to the
// diabetes profile when the type is unrecognized.
func DiseaseProfileFor(diseaseType string) DiseaseProfile {
	if profile, ok := diseaseProfiles[diseaseType]; ok {
		return profile
	}
	return diseaseProfiles["diabetes"]
}

const AssessmentSystemPrompt = `You are a medical risk assessment model. Respond with ONLY a JSON object of the shape {"riskLevel":"low"|"medium"|"high","riskScore":<number 0-100>,"analysis":"<markdown analysis>","recommendations":["<recommendation>", ...]} and no other text.`

// AssessmentUserPrompt embeds the disease name, its metric list and the raw
// input data serialized as JSON.
func AssessmentUserPrompt(diseaseType string, inputData map[string]string) (string, error) {
	profile := DiseaseProfileFor(diseaseType)
	raw, err := json.Marshal(inputData)
	if err != nil {
		return "", fmt.Errorf("serializing input data: %w", err)
	}
	return fmt.Sprintf(
		"Assess the patient's risk of %s. Relevant metrics: %s.\n\nPatient data:\n%s",
		profile.Name, profile.Metrics, string(raw),
	), nil
}

// ExtractJSON returns the first greedy brace-delimited substring of s, i.e.
// everything from the first '{' through the last '}'. It does not validate
// the JSON; callers handle parse failure.
func ExtractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
