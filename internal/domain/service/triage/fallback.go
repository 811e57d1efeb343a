package triage

import (
	"strings"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
)

// Keyword rules used whenever the model is unavailable, over budget, or
// returned garbage twice. Deterministic for a given description.

var majorTraumaKeywords = []string{
	"unconscious",
	"not breathing",
	"no pulse",
	"severe bleeding",
	"heavy bleeding",
	"bleeding heavily",
	"chest pain",
	"choking",
	"seizure",
	"head injury",
	"cardiac",
	"amputat",
	"crushed",
}

type firstAidRule struct {
	keywords []string
	advice   string
}

var firstAidRules = []firstAidRule{
	{
		keywords: []string{"not breathing", "no pulse", "cardiac", "unconscious"},
		advice:   "Check responsiveness and breathing, start CPR if there is no breathing, do not move the person unless in danger.",
	},
	{
		keywords: []string{"bleeding", "cut", "wound", "amputat"},
		advice:   "Apply firm direct pressure with a clean cloth, elevate the injured limb if possible, keep pressure until help arrives.",
	},
	{
		keywords: []string{"burn", "fire", "scald"},
		advice:   "Cool the burn under running water for at least 10 minutes, do not apply ice or ointments, cover loosely with a clean cloth.",
	},
	{
		keywords: []string{"fracture", "broken", "bone", "crushed"},
		advice:   "Keep the injured area still, immobilize with a splint or padding, do not try to straighten the limb.",
	},
	{
		keywords: []string{"choking"},
		advice:   "Encourage coughing, give up to five back blows between the shoulder blades, then abdominal thrusts if still choking.",
	},
	{
		keywords: []string{"seizure"},
		advice:   "Clear the area of hard objects, cushion the head, do not restrain or put anything in the mouth, time the seizure.",
	},
}

const genericFirstAid = "Keep the person calm and still, monitor breathing, do not give food or drink, wait for responders."

func classifyByRules(description, locationHint string) entity.Assessment {
	lower := strings.ToLower(description)

	severity := value.SeverityMinor
	for _, kw := range majorTraumaKeywords {
		if strings.Contains(lower, kw) {
			severity = value.SeverityMajorTrauma
			break
		}
	}

	firstAid := genericFirstAid
	for _, rule := range firstAidRules {
		if matchesAny(lower, rule.keywords) {
			firstAid = rule.advice
			break
		}
	}

	return entity.Assessment{
		Severity: severity,
		FirstAid: firstAid,
		Location: locationHint,
		Summary:  "Emergency reported: " + description,
		Fallback: true,
	}
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
