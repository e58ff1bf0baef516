package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/plot-service/internal/api/dto"
	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/repository"
	"github.com/spec-kit/plot-service/internal/service"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

// PlotsHandler exposes plot management endpoints.
type PlotsHandler struct {
	plots *service.PlotService
}

// NewPlotsHandler constructs handler.
func NewPlotsHandler(plotService *service.PlotService) *PlotsHandler {
	return &PlotsHandler{plots: plotService}
}

// Available handles GET /plot/available.
func (h *PlotsHandler) Available(c *fiber.Ctx) error {
	var query dto.AvailablePlotsQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := query.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := repository.PlotFilter{Limit: query.Limit, Offset: query.Offset}
	if query.Country != "" {
		filter.Country = &query.Country
	}
	if query.ZoneCode != "" {
		filter.ZoneCode = &query.ZoneCode
	}
	if query.Category != "" {
		category := domain.PlotCategory(query.Category)
		filter.Category = &category
	}
	if query.Phase > 0 {
		filter.Phase = &query.Phase
	}

	plots, err := h.plots.List(c.UserContext(), claims, filter)
	if err != nil {
		return err
	}

	resp := dto.AvailablePlotsResponse{Plots: make([]dto.PlotResponse, 0, len(plots))}
	for _, plot := range plots {
		resp.Plots = append(resp.Plots, dto.NewPlotResponse(plot))
	}
	return c.JSON(resp)
}

// Update handles PUT /plot/update-plot.
func (h *PlotsHandler) Update(c *fiber.Ctx) error {
	var req dto.PlotUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	allocatedDate, err := parseDate(req.AllocatedDate)
	if err != nil {
		return apperrors.NewValidationError("allocatedDate must use the YYYY-MM-DD format", nil)
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return apperrors.NewValidationError("expiryDate must use the YYYY-MM-DD format", nil)
	}

	plot, err := h.plots.Allocate(c.UserContext(), claims, service.PlotAllocationInput{
		Country:             req.Country,
		ZoneCode:            req.ZoneCode,
		PlotName:            req.PlotName,
		Phase:               req.Phase,
		Status:              domain.PlotStatus(req.PlotStatus),
		CompanyName:         req.CompanyName,
		Sector:              req.Sector,
		Activity:            req.Activity,
		InvestmentAmount:    req.InvestmentAmount,
		EmploymentGenerated: req.EmploymentGenerated,
		AllocatedDate:       allocatedDate,
		ExpiryDate:          expiryDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.PlotUpdateResponse{
		Message:  "Plot updated successfully",
		PlotName: plot.PlotName,
		Status:   string(plot.Status),
	})
}

// Release handles PATCH /plot/release-plot.
func (h *PlotsHandler) Release(c *fiber.Ctx) error {
	var req dto.PlotReleaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	plot, err := h.plots.Release(c.UserContext(), claims, service.PlotReleaseInput{
		Country:  req.Country,
		ZoneCode: req.ZoneCode,
		PlotName: req.PlotName,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.PlotReleaseResponse{
		Message:  "Plot released successfully",
		PlotName: plot.PlotName,
		Status:   string(plot.Status),
	})
}

// Details handles GET /plot/details.
func (h *PlotsHandler) Details(c *fiber.Ctx) error {
	var query dto.PlotDetailsQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := query.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	details, err := h.plots.Details(c.UserContext(), claims, query.Country, query.ZoneCode)
	if err != nil {
		return err
	}

	resp := dto.PlotDetailsResponse{
		Metadata: dto.PlotDetailsMetadata{
			Country:        details.Country,
			ZoneCode:       details.ZoneCode,
			TotalPlots:     details.TotalPlots,
			AvailablePlots: details.AvailablePlots,
		},
		Plots: make([]dto.PlotResponse, 0, len(details.Plots)),
	}
	for _, plot := range details.Plots {
		resp.Plots = append(resp.Plots, dto.NewPlotResponse(plot))
	}
	return c.JSON(resp)
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
