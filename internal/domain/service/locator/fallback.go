package locator

import (
	"emergency_response/internal/domain/entity"
	"github.com/samber/lo"
)

// Static facilities served when the mapping provider is disabled, exhausted
// or unreachable. Kept short on purpose: callers can tell the list is not
// live data by the Fallback flag.
var staticFacilities = []entity.Facility{
	{
		Name:        "City General Hospital",
		Address:     "123 Main St, Downtown",
		Phone:       "+1-555-0123",
		Rating:      lo.ToPtr(4.5),
		ReviewCount: lo.ToPtr(1200),
	},
	{
		Name:        "Emergency Medical Center",
		Address:     "456 Oak Ave, Midtown",
		Phone:       "+1-555-0456",
		Rating:      lo.ToPtr(4.2),
		ReviewCount: lo.ToPtr(850),
	},
}

func fallbackFacilities() entity.FacilityList {
	// Copy so callers cannot mutate the shared slice.
	facilities := make([]entity.Facility, len(staticFacilities))
	copy(facilities, staticFacilities)

	return entity.FacilityList{Facilities: facilities, Fallback: true}
}
