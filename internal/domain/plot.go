package domain

import "time"

// PlotCategory enumerates plot land-use categories.
type PlotCategory string

const (
	PlotCategoryResidential PlotCategory = "Residential"
	PlotCategoryCommercial  PlotCategory = "Commercial"
	PlotCategoryIndustrial  PlotCategory = "Industrial"
)

// Valid reports whether the category is known.
func (c PlotCategory) Valid() bool {
	switch c {
	case PlotCategoryResidential, PlotCategoryCommercial, PlotCategoryIndustrial:
		return true
	}
	return false
}

// PlotStatus enumerates allocation states for plots.
type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "Available"
	PlotStatusAllocated PlotStatus = "Allocated"
	PlotStatusReserved  PlotStatus = "Reserved"
)

// Valid reports whether the status is known.
func (s PlotStatus) Valid() bool {
	switch s {
	case PlotStatusAvailable, PlotStatusAllocated, PlotStatusReserved:
		return true
	}
	return false
}

// Plot is the aggregate for a land plot inside an economic zone.
// A plot is identified by (country, zone code, plot name).
type Plot struct {
	ID                  string
	PlotName            string
	Country             string
	ZoneCode            string
	Phase               int
	Category            PlotCategory
	Status              PlotStatus
	AreaSqm             float64
	AreaHa              float64
	CompanyName         *string
	Sector              *string
	Activity            *string
	InvestmentAmount    *float64
	EmploymentGenerated *int
	AllocatedDate       *time.Time
	ExpiryDate          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Release resets the plot to available and clears allocation details.
func (p *Plot) Release() {
	p.Status = PlotStatusAvailable
	p.CompanyName = nil
	p.Sector = nil
	p.Activity = nil
	p.InvestmentAmount = nil
	p.EmploymentGenerated = nil
	p.AllocatedDate = nil
	p.ExpiryDate = nil
}
