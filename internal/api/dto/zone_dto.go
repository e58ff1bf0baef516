package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/spec-kit/plot-service/internal/domain"
)

// ZoneCreateRequest is the POST /country/zone payload.
type ZoneCreateRequest struct {
	Country         string  `json:"country"`
	ZoneCode        string  `json:"zoneCode"`
	Phase           int     `json:"phase"`
	LandArea        float64 `json:"landArea"`
	ZoneName        *string `json:"zoneName"`
	ZoneType        *string `json:"zoneType"`
	EstablishedDate *string `json:"establishedDate"`
}

// Validate checks the zone creation payload.
func (r ZoneCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Country, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.ZoneCode, validation.Required, zoneCodeRule),
		validation.Field(&r.Phase, validation.Required, validation.Min(1)),
		validation.Field(&r.LandArea, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.ZoneName, validation.Length(0, 100)),
		validation.Field(&r.ZoneType, validation.In(
			string(domain.ZoneTypeSEZ),
			string(domain.ZoneTypeIndustrial),
			string(domain.ZoneTypeCommercial),
		)),
		validation.Field(&r.EstablishedDate, validation.Date(dateLayout)),
	)
}

// ZoneCreateResponse is the zone creation acknowledgement.
type ZoneCreateResponse struct {
	Message  string `json:"message"`
	ZoneCode string `json:"zoneCode"`
}

// ZoneResponse is a single zone in listing responses.
type ZoneResponse struct {
	Country         string  `json:"country"`
	ZoneCode        string  `json:"zoneCode"`
	ZoneName        *string `json:"zoneName,omitempty"`
	ZoneType        *string `json:"zoneType,omitempty"`
	Phase           int     `json:"phase"`
	LandArea        float64 `json:"landArea"`
	EstablishedDate *string `json:"establishedDate,omitempty"`
}

// NewZoneResponse maps the domain model to the wire format.
func NewZoneResponse(zone domain.Zone) ZoneResponse {
	resp := ZoneResponse{
		Country:  zone.Country,
		ZoneCode: zone.ZoneCode,
		ZoneName: zone.ZoneName,
		Phase:    zone.Phase,
		LandArea: zone.LandAreaHa,
	}
	if zone.ZoneType != nil {
		zt := string(*zone.ZoneType)
		resp.ZoneType = &zt
	}
	if zone.EstablishedDate != nil {
		formatted := zone.EstablishedDate.Format(dateLayout)
		resp.EstablishedDate = &formatted
	}
	return resp
}

// ZoneListResponse wraps the zone listing.
type ZoneListResponse struct {
	Zones []ZoneResponse `json:"zones"`
}
