package entity

// Facility is a candidate medical location returned by the locator.
type Facility struct {
	Name        string
	Address     string
	Rating      *float64
	ReviewCount *int
	Phone       string
}

// FacilityList is a ranked facility sequence, most relevant first.
type FacilityList struct {
	Facilities []Facility

	// Fallback marks the fixed static list substituted when the mapping
	// provider is disabled, exhausted or unreachable.
	Fallback bool
}

// Best returns the top-ranked facility, or nil when the list is empty.
func (l FacilityList) Best() *Facility {
	if len(l.Facilities) == 0 {
		return nil
	}

	return &l.Facilities[0]
}
