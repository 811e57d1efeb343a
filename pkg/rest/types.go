// Wire types for the public HTTP API.
package rest

// Case is one inbound accident report with location.
type Case struct {
	Description string  `json:"description" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
}

// CaseResult is the externally visible contract: one per submitted Case.
type CaseResult struct {
	CaseID       string        `json:"caseId"`
	Severity     string        `json:"severity"`
	FirstAid     string        `json:"firstAid"`
	Location     string        `json:"location"`
	Summary      string        `json:"summary"`
	BestFacility *Facility     `json:"bestFacility,omitempty"`
	Facilities   []Facility    `json:"facilities"`
	Notification *Notification `json:"notification,omitempty"`
	Degraded     []string      `json:"degraded,omitempty"`
}

type Facility struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

type Notification struct {
	Status string `json:"status"`
	CallID string `json:"callId,omitempty"`
	Reason string `json:"reason,omitempty"`
	Cause  string `json:"cause,omitempty"`
}

// UsageReport lists per-service daily consumption against configured ceilings.
type UsageReport struct {
	Date      string                  `json:"date"`
	DemoMode  bool                    `json:"demoMode"`
	Services  map[string]ServiceUsage `json:"services"`
	TotalCost float64                 `json:"totalCost"`
}

type ServiceUsage struct {
	Used    int     `json:"used"`
	Limit   int     `json:"limit"`
	Minutes int     `json:"minutes,omitempty"`
	Cost    float64 `json:"cost"`
}

type DemoMode struct {
	Enabled bool `json:"enabled"`
}

// Error is the error envelope for all non-2xx replies.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
