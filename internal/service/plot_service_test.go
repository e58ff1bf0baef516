package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/events"
	"github.com/spec-kit/plot-service/internal/repository"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

type stubPlotRepository struct {
	plots      map[string]*domain.Plot
	lastFilter repository.PlotFilter
	updated    []string
}

func plotKey(country, zoneCode, plotName string) string {
	return country + "/" + zoneCode + "/" + plotName
}

func newStubPlotRepository(plots ...domain.Plot) *stubPlotRepository {
	repo := &stubPlotRepository{plots: map[string]*domain.Plot{}}
	for i := range plots {
		p := plots[i]
		repo.plots[plotKey(p.Country, p.ZoneCode, p.PlotName)] = &p
	}
	return repo
}

func (r *stubPlotRepository) Create(_ context.Context, plot *domain.Plot) error {
	r.plots[plotKey(plot.Country, plot.ZoneCode, plot.PlotName)] = plot
	return nil
}

func (r *stubPlotRepository) Update(_ context.Context, plot *domain.Plot) error {
	key := plotKey(plot.Country, plot.ZoneCode, plot.PlotName)
	if _, ok := r.plots[key]; !ok {
		return pgx.ErrNoRows
	}
	r.plots[key] = plot
	r.updated = append(r.updated, key)
	return nil
}

func (r *stubPlotRepository) GetByKey(_ context.Context, country, zoneCode, plotName string) (*domain.Plot, error) {
	plot, ok := r.plots[plotKey(country, zoneCode, plotName)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *plot
	return &copied, nil
}

func (r *stubPlotRepository) List(_ context.Context, filter repository.PlotFilter) ([]domain.Plot, error) {
	r.lastFilter = filter
	out := []domain.Plot{}
	for _, plot := range r.plots {
		if filter.AdminZone != nil && plot.ZoneCode != *filter.AdminZone {
			continue
		}
		if filter.ZoneCode != nil && plot.ZoneCode != *filter.ZoneCode {
			continue
		}
		out = append(out, *plot)
	}
	return out, nil
}

func (r *stubPlotRepository) CountByZone(_ context.Context, country, zoneCode string) (int, int, error) {
	total, available := 0, 0
	for _, plot := range r.plots {
		if plot.Country != country || plot.ZoneCode != zoneCode {
			continue
		}
		total++
		if plot.Status == domain.PlotStatusAvailable {
			available++
		}
	}
	return total, available, nil
}

func testClaims(role domain.Role, zone string) *auth.Claims {
	return &auth.Claims{
		Subject:     "subject-1",
		Role:        role,
		Zone:        zone,
		Permissions: auth.PermissionsForRole(role),
	}
}

func testPlot(zoneCode, plotName string, status domain.PlotStatus) domain.Plot {
	return domain.Plot{
		PlotName: plotName,
		Country:  "Gabon",
		ZoneCode: zoneCode,
		Phase:    1,
		Category: domain.PlotCategoryIndustrial,
		Status:   status,
		AreaSqm:  10000,
		AreaHa:   1,
	}
}

func TestPlotServiceListScopesZoneAdmin(t *testing.T) {
	repo := newStubPlotRepository(
		testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable),
		testPlot("OSEZ", "Plot-2", domain.PlotStatusAvailable),
	)
	svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	plots, err := svc.List(context.Background(), testClaims(domain.RoleZoneAdmin, "GSEZ"), repository.PlotFilter{})
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, "GSEZ", plots[0].ZoneCode)
	require.NotNil(t, repo.lastFilter.AdminZone)
	assert.Equal(t, "GSEZ", *repo.lastFilter.AdminZone)
}

func TestPlotServiceListUnrestrictedForSuperAdmin(t *testing.T) {
	repo := newStubPlotRepository(
		testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable),
		testPlot("OSEZ", "Plot-2", domain.PlotStatusAvailable),
	)
	svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	plots, err := svc.List(context.Background(), testClaims(domain.RoleSuperAdmin, "GSEZ"), repository.PlotFilter{})
	require.NoError(t, err)
	assert.Len(t, plots, 2)
	assert.Nil(t, repo.lastFilter.AdminZone)
}

func TestPlotServiceAllocate(t *testing.T) {
	company := "Acme Industries"
	input := PlotAllocationInput{
		Country:     "Gabon",
		ZoneCode:    "GSEZ",
		PlotName:    "Plot-1",
		Phase:       2,
		Status:      domain.PlotStatusAllocated,
		CompanyName: &company,
	}

	t.Run("super admin allocates any zone", func(t *testing.T) {
		repo := newStubPlotRepository(testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable))
		dispatcher := events.NewInMemoryDispatcher()
		var published []events.Event
		dispatcher.Subscribe(events.EventPlotAllocated, func(_ context.Context, e events.Event) error {
			published = append(published, e)
			return nil
		})
		svc := NewPlotService(repo, dispatcher, zap.NewNop())

		plot, err := svc.Allocate(context.Background(), testClaims(domain.RoleSuperAdmin, "OSEZ"), input)
		require.NoError(t, err)
		assert.Equal(t, domain.PlotStatusAllocated, plot.Status)
		require.NotNil(t, plot.CompanyName)
		assert.Equal(t, company, *plot.CompanyName)
		assert.Len(t, published, 1)
	})

	t.Run("zone admin allocates own zone", func(t *testing.T) {
		repo := newStubPlotRepository(testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable))
		svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Allocate(context.Background(), testClaims(domain.RoleZoneAdmin, "GSEZ"), input)
		assert.NoError(t, err)
	})

	t.Run("zone admin denied outside own zone", func(t *testing.T) {
		repo := newStubPlotRepository(testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable))
		svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Allocate(context.Background(), testClaims(domain.RoleZoneAdmin, "OSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		assert.Empty(t, repo.updated)
	})

	t.Run("normal user denied", func(t *testing.T) {
		repo := newStubPlotRepository(testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable))
		svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Allocate(context.Background(), testClaims(domain.RoleNormalUser, "GSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("unknown plot", func(t *testing.T) {
		repo := newStubPlotRepository()
		svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

		_, err := svc.Allocate(context.Background(), testClaims(domain.RoleSuperAdmin, "GSEZ"), input)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestPlotServiceRelease(t *testing.T) {
	company := "Acme Industries"
	allocated := testPlot("GSEZ", "Plot-1", domain.PlotStatusAllocated)
	allocated.CompanyName = &company

	repo := newStubPlotRepository(allocated)
	svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	plot, err := svc.Release(context.Background(), testClaims(domain.RoleZoneAdmin, "GSEZ"), PlotReleaseInput{
		Country:  "Gabon",
		ZoneCode: "GSEZ",
		PlotName: "Plot-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlotStatusAvailable, plot.Status)
	assert.Nil(t, plot.CompanyName)
	assert.Nil(t, plot.AllocatedDate)
}

func TestPlotServiceDetails(t *testing.T) {
	repo := newStubPlotRepository(
		testPlot("GSEZ", "Plot-1", domain.PlotStatusAvailable),
		testPlot("GSEZ", "Plot-2", domain.PlotStatusAllocated),
		testPlot("OSEZ", "Plot-3", domain.PlotStatusAvailable),
	)
	svc := NewPlotService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	t.Run("normal user reads any zone", func(t *testing.T) {
		details, err := svc.Details(context.Background(), testClaims(domain.RoleNormalUser, "GSEZ"), "Gabon", "GSEZ")
		require.NoError(t, err)
		assert.Equal(t, 2, details.TotalPlots)
		assert.Equal(t, 1, details.AvailablePlots)
		assert.Len(t, details.Plots, 2)
	})

	t.Run("zone admin denied other zone", func(t *testing.T) {
		_, err := svc.Details(context.Background(), testClaims(domain.RoleZoneAdmin, "GSEZ"), "Gabon", "OSEZ")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}
