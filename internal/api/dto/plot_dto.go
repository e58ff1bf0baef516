package dto

import (
	"regexp"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/plot-service/internal/domain"
)

var zoneCodePattern = regexp.MustCompile(`^[A-Z]{4,6}$`)

// zoneCodeRule enforces the 4-6 uppercase letter zone code format.
var zoneCodeRule = validation.Match(zoneCodePattern).Error("must be 4-6 uppercase letters (e.g. GSEZ, OSEZ)")

const dateLayout = "2006-01-02"

// AvailablePlotsQuery captures GET /plot/available query filters.
type AvailablePlotsQuery struct {
	Country  string `query:"country"`
	ZoneCode string `query:"zoneCode"`
	Category string `query:"category"`
	Phase    int    `query:"phase"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// Validate checks the optional filters.
func (q AvailablePlotsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Country, validation.Length(0, 50)),
		validation.Field(&q.ZoneCode, validation.When(q.ZoneCode != "", zoneCodeRule)),
		validation.Field(&q.Category, validation.In(
			string(domain.PlotCategoryResidential),
			string(domain.PlotCategoryCommercial),
			string(domain.PlotCategoryIndustrial),
		)),
		validation.Field(&q.Phase, validation.Min(0)),
		validation.Field(&q.Limit, validation.Min(0)),
		validation.Field(&q.Offset, validation.Min(0)),
	)
}

// PlotResponse is a single plot in listing responses.
type PlotResponse struct {
	PlotName   string  `json:"plotName"`
	PlotStatus string  `json:"plotStatus"`
	Category   string  `json:"category"`
	Phase      int     `json:"phase"`
	AreaInSqm  float64 `json:"areaInSqm"`
	AreaInHa   float64 `json:"areaInHa"`
	ZoneCode   string  `json:"zoneCode"`
	Country    string  `json:"country"`
}

// AvailablePlotsResponse wraps the plot listing.
type AvailablePlotsResponse struct {
	Plots []PlotResponse `json:"plots"`
}

// NewPlotResponse maps the domain model to the wire format.
func NewPlotResponse(plot domain.Plot) PlotResponse {
	return PlotResponse{
		PlotName:   plot.PlotName,
		PlotStatus: string(plot.Status),
		Category:   string(plot.Category),
		Phase:      plot.Phase,
		AreaInSqm:  plot.AreaSqm,
		AreaInHa:   plot.AreaHa,
		ZoneCode:   plot.ZoneCode,
		Country:    plot.Country,
	}
}

// PlotUpdateRequest is the PUT /plot/update-plot payload carrying full
// allocation details.
type PlotUpdateRequest struct {
	Country             string   `json:"country"`
	ZoneCode            string   `json:"zoneCode"`
	Phase               int      `json:"phase"`
	PlotName            string   `json:"plotName"`
	CompanyName         *string  `json:"companyName"`
	Sector              *string  `json:"sector"`
	PlotStatus          string   `json:"plotStatus"`
	Activity            *string  `json:"activity"`
	InvestmentAmount    *float64 `json:"investmentAmount"`
	EmploymentGenerated *int     `json:"employmentGenerated"`
	AllocatedDate       *string  `json:"allocatedDate"`
	ExpiryDate          *string  `json:"expiryDate"`
}

// Validate checks the update payload.
func (r PlotUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Country, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.ZoneCode, validation.Required, zoneCodeRule),
		validation.Field(&r.Phase, validation.Required, validation.Min(1)),
		validation.Field(&r.PlotName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.CompanyName, validation.Length(0, 100)),
		validation.Field(&r.Sector, validation.Length(0, 50)),
		validation.Field(&r.PlotStatus, validation.Required, validation.In(
			string(domain.PlotStatusAvailable),
			string(domain.PlotStatusAllocated),
			string(domain.PlotStatusReserved),
		)),
		validation.Field(&r.Activity, validation.Length(0, 100)),
		validation.Field(&r.InvestmentAmount, validation.Min(0.0)),
		validation.Field(&r.EmploymentGenerated, validation.Min(0)),
		validation.Field(&r.AllocatedDate, validation.Date(dateLayout)),
		validation.Field(&r.ExpiryDate, validation.Date(dateLayout)),
	)
}

// PlotUpdateResponse is the update acknowledgement.
type PlotUpdateResponse struct {
	Message  string `json:"message"`
	PlotName string `json:"plotName"`
	Status   string `json:"status"`
}

// PlotReleaseRequest is the PATCH /plot/release-plot payload. Only a
// release back to available is allowed here.
type PlotReleaseRequest struct {
	Country    string `json:"country"`
	ZoneCode   string `json:"zoneCode"`
	PlotName   string `json:"plotName"`
	PlotStatus string `json:"plotStatus"`
}

// Validate checks the release payload.
func (r PlotReleaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Country, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.ZoneCode, validation.Required, zoneCodeRule),
		validation.Field(&r.PlotName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.PlotStatus, validation.Required, validation.In("available", "Available")),
	)
}

// PlotReleaseResponse is the release acknowledgement.
type PlotReleaseResponse struct {
	Message  string `json:"message"`
	PlotName string `json:"plotName"`
	Status   string `json:"status"`
}

// PlotDetailsQuery captures GET /plot/details parameters.
type PlotDetailsQuery struct {
	Country  string `query:"country"`
	ZoneCode string `query:"zoneCode"`
}

// Validate checks the details query.
func (q PlotDetailsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Country, validation.Required, validation.Length(1, 50)),
		validation.Field(&q.ZoneCode, validation.Required, zoneCodeRule),
	)
}

// PlotDetailsMetadata summarizes the requested zone.
type PlotDetailsMetadata struct {
	Country        string `json:"country"`
	ZoneCode       string `json:"zoneCode"`
	TotalPlots     int    `json:"totalPlots"`
	AvailablePlots int    `json:"availablePlots"`
}

// PlotDetailsResponse is the details payload.
type PlotDetailsResponse struct {
	Metadata PlotDetailsMetadata `json:"metadata"`
	Plots    []PlotResponse      `json:"plots"`
}
