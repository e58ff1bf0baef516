package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/plot-service/internal/api/dto"
	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/service"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

// ZonesHandler exposes zone master data endpoints.
type ZonesHandler struct {
	zones *service.ZoneService
}

// NewZonesHandler constructs handler.
func NewZonesHandler(zoneService *service.ZoneService) *ZonesHandler {
	return &ZonesHandler{zones: zoneService}
}

// Create handles POST /country/zone.
func (h *ZonesHandler) Create(c *fiber.Ctx) error {
	var req dto.ZoneCreateRequest
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

	var zoneType *domain.ZoneType
	if req.ZoneType != nil {
		zt := domain.ZoneType(*req.ZoneType)
		zoneType = &zt
	}

	var establishedDate *time.Time
	if req.EstablishedDate != nil && *req.EstablishedDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EstablishedDate)
		if err != nil {
			return apperrors.NewValidationError("establishedDate must use the YYYY-MM-DD format", nil)
		}
		establishedDate = &parsed
	}

	zone, err := h.zones.Create(c.UserContext(), claims, service.ZoneCreateInput{
		Country:         req.Country,
		ZoneCode:        req.ZoneCode,
		Phase:           req.Phase,
		LandAreaHa:      req.LandArea,
		ZoneName:        req.ZoneName,
		ZoneType:        zoneType,
		EstablishedDate: establishedDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ZoneCreateResponse{
		Message:  "Zone created successfully",
		ZoneCode: zone.ZoneCode,
	})
}

// List handles GET /country/zones.
func (h *ZonesHandler) List(c *fiber.Ctx) error {
	zones, err := h.zones.List(c.UserContext())
	if err != nil {
		return err
	}

	resp := dto.ZoneListResponse{Zones: make([]dto.ZoneResponse, 0, len(zones))}
	for _, zone := range zones {
		resp.Zones = append(resp.Zones, dto.NewZoneResponse(zone))
	}
	return c.JSON(resp)
}
