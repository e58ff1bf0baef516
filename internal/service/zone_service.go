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

// ZoneCreateInput carries zone master data for creation.
type ZoneCreateInput struct {
	Country         string
	ZoneCode        string
	Phase           int
	LandAreaHa      float64
	ZoneName        *string
	ZoneType        *domain.ZoneType
	EstablishedDate *time.Time
}

// ZoneService manages zone master data.
type ZoneService struct {
	zones      repository.ZoneRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewZoneService builds the service.
func NewZoneService(zones repository.ZoneRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ZoneService {
	return &ZoneService{zones: zones, dispatcher: dispatcher, logger: logger}
}

// Create establishes zone master data. Zone codes are unique across the
// system; zone admins may only create master data for their own zone.
func (s *ZoneService) Create(ctx context.Context, claims *auth.Claims, input ZoneCreateInput) (*domain.Zone, error) {
	if err := authorizeZoneWrite(claims, domain.CategoryZones, input.ZoneCode); err != nil {
		return nil, err
	}

	if _, err := s.zones.GetByCode(ctx, input.ZoneCode); err == nil {
		return nil, apperrors.NewConflict("ZONE_EXISTS", "zone code already exists", map[string]any{
			"zone_code": input.ZoneCode,
			"country":   input.Country,
		})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	zone := &domain.Zone{
		Country:         input.Country,
		ZoneCode:        input.ZoneCode,
		ZoneName:        input.ZoneName,
		ZoneType:        input.ZoneType,
		Phase:           input.Phase,
		LandAreaHa:      input.LandAreaHa,
		EstablishedDate: input.EstablishedDate,
	}
	if err := s.zones.Create(ctx, zone); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventZoneCreated,
			Actor:     events.Actor{Subject: claims.Subject, Role: claims.Role, Zone: claims.Zone},
			Timestamp: time.Now(),
			Payload:   events.ZoneCreatedPayload{ZoneCode: zone.ZoneCode, Country: zone.Country},
		})
	}
	return zone, nil
}

// List returns all zone master records.
func (s *ZoneService) List(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return zones, nil
}
