package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/plot-service/internal/domain"
)

// ZoneRepository encapsulates zone master data persistence.
type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	GetByCode(ctx context.Context, zoneCode string) (*domain.Zone, error)
	List(ctx context.Context) ([]domain.Zone, error)
}

type zoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository returns a Postgres-backed implementation.
func NewZoneRepository(pool *pgxpool.Pool) ZoneRepository {
	return &zoneRepository{pool: pool}
}

func (r *zoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	const query = `
        INSERT INTO zones (country, zone_code, zone_name, zone_type, phase, land_area_ha, established_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		zone.Country,
		zone.ZoneCode,
		zone.ZoneName,
		zone.ZoneType,
		zone.Phase,
		zone.LandAreaHa,
		zone.EstablishedDate,
	).Scan(&zone.ID, &zone.CreatedAt, &zone.UpdatedAt)
}

func (r *zoneRepository) GetByCode(ctx context.Context, zoneCode string) (*domain.Zone, error) {
	const query = `
        SELECT id, country, zone_code, zone_name, zone_type, phase, land_area_ha, established_date, created_at, updated_at
        FROM zones WHERE zone_code=$1`

	var zone domain.Zone
	if err := r.pool.QueryRow(ctx, query, zoneCode).Scan(
		&zone.ID,
		&zone.Country,
		&zone.ZoneCode,
		&zone.ZoneName,
		&zone.ZoneType,
		&zone.Phase,
		&zone.LandAreaHa,
		&zone.EstablishedDate,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	const query = `
        SELECT id, country, zone_code, zone_name, zone_type, phase, land_area_ha, established_date, created_at, updated_at
        FROM zones ORDER BY zone_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := []domain.Zone{}
	for rows.Next() {
		var zone domain.Zone
		if err := rows.Scan(
			&zone.ID,
			&zone.Country,
			&zone.ZoneCode,
			&zone.ZoneName,
			&zone.ZoneType,
			&zone.Phase,
			&zone.LandAreaHa,
			&zone.EstablishedDate,
			&zone.CreatedAt,
			&zone.UpdatedAt,
		); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}
