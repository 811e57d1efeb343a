package entity

// Result merges the pipeline outputs into the externally visible contract.
// Notification is nil unless the notify stage was actually attempted.
type Result struct {
	Case         Case
	Assessment   Assessment
	Facilities   FacilityList
	Notification *Notification
}

// Degraded names the stages that substituted fallback data.
func (r Result) Degraded() []string {
	var stages []string

	if r.Assessment.Fallback {
		stages = append(stages, "classify")
	}

	if r.Facilities.Fallback {
		stages = append(stages, "locate")
	}

	return stages
}
