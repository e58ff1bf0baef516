package domain

import "time"

// ZoneType classifies economic zones.
type ZoneType string

const (
	ZoneTypeSEZ        ZoneType = "SEZ"
	ZoneTypeIndustrial ZoneType = "Industrial"
	ZoneTypeCommercial ZoneType = "Commercial"
)

// Valid reports whether the zone type is known.
func (t ZoneType) Valid() bool {
	switch t {
	case ZoneTypeSEZ, ZoneTypeIndustrial, ZoneTypeCommercial:
		return true
	}
	return false
}

// Zone is master data for an economic zone.
type Zone struct {
	ID              string
	Country         string
	ZoneCode        string
	ZoneName        *string
	ZoneType        *ZoneType
	Phase           int
	LandAreaHa      float64
	EstablishedDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidZoneCode reports whether a zone code has the expected format:
// 4 to 6 uppercase ASCII letters.
func ValidZoneCode(code string) bool {
	if len(code) < 4 || len(code) > 6 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
