package aqi

import "fmt"

// Category is the health band an AQI value falls in
type Category int

const (
	Good Category = iota
	Moderate
	UnhealthyForSensitiveGroups
	Unhealthy
	VeryUnhealthy
	Hazardous
	// BeyondIndex covers extrapolated values above 500
	BeyondIndex
)

var categoryNames = [...]string{
	Good:                        "Good",
	Moderate:                    "Moderate",
	UnhealthyForSensitiveGroups: "Unhealthy for Sensitive Groups",
	Unhealthy:                   "Unhealthy",
	VeryUnhealthy:               "Very Unhealthy",
	Hazardous:                   "Hazardous",
	BeyondIndex:                 "Beyond the AQI",
}

func (c Category) String() string {
	if c < Good || c > BeyondIndex {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText lets reports carry the category name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CategoryOf maps an AQI value onto its band. Segments 5 and 6 of the
// breakpoint tables are both Hazardous.
func CategoryOf(aqi int) Category {
	for i := 0; i < BreakCount; i++ {
		if float64(aqi) <= aqiBreaks[i].Hi {
			return min(Category(i), Hazardous)
		}
	}
	return BeyondIndex
}
