package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/events"
	"github.com/spec-kit/plot-service/internal/repository"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

// PlotAllocationInput carries a full plot update with business
// allocation details.
type PlotAllocationInput struct {
	Country             string
	ZoneCode            string
	PlotName            string
	Phase               int
	Status              domain.PlotStatus
	CompanyName         *string
	Sector              *string
	Activity            *string
	InvestmentAmount    *float64
	EmploymentGenerated *int
	AllocatedDate       *time.Time
	ExpiryDate          *time.Time
}

// PlotReleaseInput identifies a plot to release back to available.
type PlotReleaseInput struct {
	Country  string
	ZoneCode string
	PlotName string
}

// PlotDetails aggregates zone metadata with the matching plots.
type PlotDetails struct {
	Country        string
	ZoneCode       string
	TotalPlots     int
	AvailablePlots int
	Plots          []domain.Plot
}

// PlotService coordinates zone-scoped plot operations over the repository.
type PlotService struct {
	plots      repository.PlotRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPlotService builds the service.
func NewPlotService(plots repository.PlotRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PlotService {
	return &PlotService{plots: plots, dispatcher: dispatcher, logger: logger}
}

// List returns plots matching the filter. Zone admins are always
// restricted to their own zone before caller-supplied filters apply.
func (s *PlotService) List(ctx context.Context, claims *auth.Claims, filter repository.PlotFilter) ([]domain.Plot, error) {
	if claims.Role == domain.RoleZoneAdmin {
		adminZone := claims.Zone
		filter.AdminZone = &adminZone
	}
	plots, err := s.plots.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return plots, nil
}

// Allocate performs a full plot update. The caller must hold plots write
// access; zone admins may only touch plots in their own zone.
func (s *PlotService) Allocate(ctx context.Context, claims *auth.Claims, input PlotAllocationInput) (*domain.Plot, error) {
	if err := authorizeZoneWrite(claims, domain.CategoryPlots, input.ZoneCode); err != nil {
		return nil, err
	}

	plot, err := s.plots.GetByKey(ctx, input.Country, input.ZoneCode, input.PlotName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plot", map[string]any{"plot_name": input.PlotName})
		}
		return nil, apperrors.MapError(err)
	}

	plot.Phase = input.Phase
	plot.Status = input.Status
	plot.CompanyName = input.CompanyName
	plot.Sector = input.Sector
	plot.Activity = input.Activity
	plot.InvestmentAmount = input.InvestmentAmount
	plot.EmploymentGenerated = input.EmploymentGenerated
	plot.AllocatedDate = input.AllocatedDate
	plot.ExpiryDate = input.ExpiryDate

	if err := s.plots.Update(ctx, plot); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPlotAllocated, claims, events.PlotAllocatedPayload{
		PlotName:    plot.PlotName,
		ZoneCode:    plot.ZoneCode,
		Country:     plot.Country,
		Status:      plot.Status,
		CompanyName: plot.CompanyName,
	})
	return plot, nil
}

// Release sets a plot back to available and clears its allocation fields.
func (s *PlotService) Release(ctx context.Context, claims *auth.Claims, input PlotReleaseInput) (*domain.Plot, error) {
	if err := authorizeZoneWrite(claims, domain.CategoryPlots, input.ZoneCode); err != nil {
		return nil, err
	}

	plot, err := s.plots.GetByKey(ctx, input.Country, input.ZoneCode, input.PlotName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plot", map[string]any{"plot_name": input.PlotName})
		}
		return nil, apperrors.MapError(err)
	}

	plot.Release()
	if err := s.plots.Update(ctx, plot); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPlotReleased, claims, events.PlotReleasedPayload{
		PlotName: plot.PlotName,
		ZoneCode: plot.ZoneCode,
		Country:  plot.Country,
	})
	return plot, nil
}

// Details returns the plots of a zone with summary counts. Zone admins may
// only inspect their own zone.
func (s *PlotService) Details(ctx context.Context, claims *auth.Claims, country, zoneCode string) (*PlotDetails, error) {
	if decision := auth.Authorize(claims, domain.CategoryPlots, domain.AccessRead, zoneCode); !decision.Allowed {
		return nil, denyError(decision)
	}

	total, available, err := s.plots.CountByZone(ctx, country, zoneCode)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	plots, err := s.plots.List(ctx, repository.PlotFilter{Country: &country, ZoneCode: &zoneCode})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &PlotDetails{
		Country:        country,
		ZoneCode:       zoneCode,
		TotalPlots:     total,
		AvailablePlots: available,
		Plots:          plots,
	}, nil
}

func (s *PlotService) publish(ctx context.Context, eventType events.EventType, claims *auth.Claims, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Subject: claims.Subject, Role: claims.Role, Zone: claims.Zone},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// authorizeZoneWrite runs the write-permission check with a zone target and
// maps a denial to the forbidden error surface.
func authorizeZoneWrite(claims *auth.Claims, category domain.ResourceCategory, targetZone string) error {
	if decision := auth.Authorize(claims, category, domain.AccessWrite, targetZone); !decision.Allowed {
		return denyError(decision)
	}
	return nil
}

func denyError(decision auth.Decision) error {
	if decision.Reason == auth.DenyZoneMismatch {
		return apperrors.NewForbidden("access denied: resource not in your assigned zone")
	}
	return apperrors.NewForbidden("insufficient permissions for this operation")
}
