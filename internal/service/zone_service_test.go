package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/events"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

type stubZoneRepository struct {
	zones map[string]*domain.Zone
}

func newStubZoneRepository(zones ...domain.Zone) *stubZoneRepository {
	repo := &stubZoneRepository{zones: map[string]*domain.Zone{}}
	for i := range zones {
		z := zones[i]
		repo.zones[z.ZoneCode] = &z
	}
	return repo
}

func (r *stubZoneRepository) Create(_ context.Context, zone *domain.Zone) error {
	r.zones[zone.ZoneCode] = zone
	return nil
}

func (r *stubZoneRepository) GetByCode(_ context.Context, zoneCode string) (*domain.Zone, error) {
	zone, ok := r.zones[zoneCode]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *zone
	return &copied, nil
}

func (r *stubZoneRepository) List(_ context.Context) ([]domain.Zone, error) {
	out := []domain.Zone{}
	for _, zone := range r.zones {
		out = append(out, *zone)
	}
	return out, nil
}

func TestZoneServiceCreate(t *testing.T) {
	input := ZoneCreateInput{Country: "Gabon", ZoneCode: "NKOK", Phase: 1, LandAreaHa: 1126}

	t.Run("super admin creates zone", func(t *testing.T) {
		repo := newStubZoneRepository()
		dispatcher := events.NewInMemoryDispatcher()
		var published []events.Event
		dispatcher.Subscribe(events.EventZoneCreated, func(_ context.Context, e events.Event) error {
			published = append(published, e)
			return nil
		})
		svc := NewZoneService(repo, dispatcher, zap.NewNop())

		zone, err := svc.Create(context.Background(), testClaims(domain.RoleSuperAdmin, "GSEZ"), input)
		require.NoError(t, err)
		assert.Equal(t, "NKOK", zone.ZoneCode)
		assert.Len(t, published, 1)
	})

	t.Run("duplicate zone code conflicts", func(t *testing.T) {
		repo := newStubZoneRepository(domain.Zone{Country: "Gabon", ZoneCode: "NKOK"})
		svc := NewZoneService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Create(context.Background(), testClaims(domain.RoleSuperAdmin, "GSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ZONE_EXISTS", domainErr.Code)
	})

	t.Run("zone admin limited to own code", func(t *testing.T) {
		repo := newStubZoneRepository()
		svc := NewZoneService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Create(context.Background(), testClaims(domain.RoleZoneAdmin, "GSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("normal user denied", func(t *testing.T) {
		repo := newStubZoneRepository()
		svc := NewZoneService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Create(context.Background(), testClaims(domain.RoleNormalUser, "GSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestZoneServiceList(t *testing.T) {
	repo := newStubZoneRepository(
		domain.Zone{Country: "Gabon", ZoneCode: "GSEZ"},
		domain.Zone{Country: "Gabon", ZoneCode: "OSEZ"},
	)
	svc := NewZoneService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	zones, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, 2)
}
