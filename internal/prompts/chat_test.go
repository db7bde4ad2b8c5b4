package prompts

import (
	"strings"
	"testing"
)

var emergencyNumbers = map[string]string{
	"uk":    "999",
	"us":    "911",
	"india": "112",
}

func TestChatSystemPrompt_RegionEmergencyNumbers(t *testing.T) {
	for region, number := range emergencyNumbers {
		prompt := ChatSystemPrompt(region)
		if !strings.Contains(prompt, number) {
			t.Errorf("region %q: prompt missing emergency number %q", region, number)
		}
		for otherRegion, otherNumber := range emergencyNumbers {
			if otherRegion == region {
				continue
			}
			if strings.Contains(prompt, otherNumber) {
				t.Errorf("region %q: prompt contains %q's emergency number %q", region, otherRegion, otherNumber)
			}
		}
	}
}

func TestChatSystemPrompt_UnrecognizedRegionUsesGlobal(t *testing.T) {
	for _, region := range []string{"", "global", "UK", "france", "us "} {
		prompt := ChatSystemPrompt(region)
		if !strings.Contains(prompt, "local emergency services") {
			t.Errorf("region %q: expected global guidance block", region)
		}
		for _, number := range emergencyNumbers {
			if strings.Contains(prompt, number) {
				t.Errorf("region %q: global prompt contains region emergency number %q", region, number)
			}
		}
	}
}

func TestChatSystemPrompt_ContainsPersona(t *testing.T) {
	if !strings.Contains(ChatSystemPrompt("uk"), "Vitalink community health assistant") {
		t.Error("prompt missing persona block")
	}
}
