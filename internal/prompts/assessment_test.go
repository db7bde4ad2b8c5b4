package prompts

import (
	"strings"
	"testing"
)

func TestDiseaseProfileFor_KnownTypes(t *testing.T) {
	cases := map[string]string{
		"diabetes": "glucose level, HbA1c, BMI, age, blood pressure, family history",
		"heart":    "total cholesterol, HDL, LDL, blood pressure, resting heart rate, age, smoking status",
		"kidney":   "serum creatinine, blood urea nitrogen, eGFR, albumin, hemoglobin",
		"liver":    "ALT, AST, bilirubin, albumin, alkaline phosphatase",
	}
	for diseaseType, metrics := range cases {
		if got := DiseaseProfileFor(diseaseType).Metrics; got != metrics {
			t.Errorf("DiseaseProfileFor(%q).Metrics = %q, want %q", diseaseType, got, metrics)
		}
	}
}

func TestDiseaseProfileFor_UnrecognizedDefaultsToDiabetes(t *testing.T) {
	for _, diseaseType := range []string{"", "lungs", "Heart"} {
		got := DiseaseProfileFor(diseaseType)
		if got.Name != "Diabetes" {
			t.Errorf("DiseaseProfileFor(%q).Name = %q, want Diabetes", diseaseType, got.Name)
		}
	}
}

func TestAssessmentUserPrompt_EmbedsMetricsAndData(t *testing.T) {
	prompt, err := AssessmentUserPrompt("heart", map[string]string{"cholesterol": "240"})
	if err != nil {
		t.Fatalf("AssessmentUserPrompt: %v", err)
	}
	if !strings.Contains(prompt, "Heart Disease") {
		t.Error("prompt missing disease name")
	}
	if !strings.Contains(prompt, DiseaseProfileFor("heart").Metrics) {
		t.Error("prompt missing metric description")
	}
	if !strings.Contains(prompt, `"cholesterol":"240"`) {
		t.Errorf("prompt missing serialized input data: %q", prompt)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"surrounded by prose", "Here you go:\n{\"a\":1}\nHope that helps!", `{"a":1}`, true},
		{"greedy across braces", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`, true},
		{"no braces", "no json here", "", false},
		{"only open brace", "{oops", "", false},
		{"close before open", "} then {", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractJSON(tt.in)
			if found != tt.found || got != tt.want {
				t.Errorf("ExtractJSON(%q) = (%q, %v), want (%q, %v)", tt.in, got, found, tt.want, tt.found)
			}
		})
	}
}
