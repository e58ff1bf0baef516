package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/plot-service/internal/domain"
)

// PlotFilter captures query parameters for plot listings. AdminZone, when
// set, restricts results to a zone admin's own zone regardless of the
// caller-supplied filters.
type PlotFilter struct {
	Country   *string
	ZoneCode  *string
	Category  *domain.PlotCategory
	Phase     *int
	Status    *domain.PlotStatus
	AdminZone *string
	Limit     int
	Offset    int
}

// PlotRepository encapsulates plot persistence.
type PlotRepository interface {
	Create(ctx context.Context, plot *domain.Plot) error
	Update(ctx context.Context, plot *domain.Plot) error
	GetByKey(ctx context.Context, country, zoneCode, plotName string) (*domain.Plot, error)
	List(ctx context.Context, filter PlotFilter) ([]domain.Plot, error)
	CountByZone(ctx context.Context, country, zoneCode string) (total int, available int, err error)
}

type plotRepository struct {
	pool *pgxpool.Pool
}

// NewPlotRepository instantiates a Postgres-backed repository.
func NewPlotRepository(pool *pgxpool.Pool) PlotRepository {
	return &plotRepository{pool: pool}
}

const plotColumns = `id, plot_name, country, zone_code, phase, category, status,
        area_sqm, area_ha, company_name, sector, activity, investment_amount,
        employment_generated, allocated_date, expiry_date, created_at, updated_at`

func (r *plotRepository) Create(ctx context.Context, plot *domain.Plot) error {
	const query = `
        INSERT INTO plots (plot_name, country, zone_code, phase, category, status, area_sqm, area_ha)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		plot.PlotName,
		plot.Country,
		plot.ZoneCode,
		plot.Phase,
		plot.Category,
		plot.Status,
		plot.AreaSqm,
		plot.AreaHa,
	).Scan(&plot.ID, &plot.CreatedAt, &plot.UpdatedAt)
}

func (r *plotRepository) Update(ctx context.Context, plot *domain.Plot) error {
	const query = `
        UPDATE plots SET phase=$1, category=$2, status=$3, company_name=$4, sector=$5,
            activity=$6, investment_amount=$7, employment_generated=$8,
            allocated_date=$9, expiry_date=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		plot.Phase,
		plot.Category,
		plot.Status,
		plot.CompanyName,
		plot.Sector,
		plot.Activity,
		plot.InvestmentAmount,
		plot.EmploymentGenerated,
		plot.AllocatedDate,
		plot.ExpiryDate,
		plot.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *plotRepository) GetByKey(ctx context.Context, country, zoneCode, plotName string) (*domain.Plot, error) {
	query := fmt.Sprintf(`SELECT %s FROM plots WHERE country=$1 AND zone_code=$2 AND plot_name=$3`, plotColumns)

	var plot domain.Plot
	if err := scanPlot(r.pool.QueryRow(ctx, query, country, zoneCode, plotName), &plot); err != nil {
		return nil, err
	}
	return &plot, nil
}

func (r *plotRepository) List(ctx context.Context, filter PlotFilter) ([]domain.Plot, error) {
	conditions := []string{}
	args := []any{}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.AdminZone != nil {
		addCondition("zone_code=$%d", *filter.AdminZone)
	}
	if filter.Country != nil {
		addCondition("LOWER(country)=LOWER($%d)", *filter.Country)
	}
	if filter.ZoneCode != nil {
		addCondition("zone_code=$%d", *filter.ZoneCode)
	}
	if filter.Category != nil {
		addCondition("category=$%d", *filter.Category)
	}
	if filter.Phase != nil {
		addCondition("phase=$%d", *filter.Phase)
	}
	if filter.Status != nil {
		addCondition("status=$%d", *filter.Status)
	}

	query := fmt.Sprintf(`SELECT %s FROM plots`, plotColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY zone_code, plot_name"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plots := []domain.Plot{}
	for rows.Next() {
		var plot domain.Plot
		if err := scanPlot(rows, &plot); err != nil {
			return nil, err
		}
		plots = append(plots, plot)
	}
	return plots, rows.Err()
}

func (r *plotRepository) CountByZone(ctx context.Context, country, zoneCode string) (int, int, error) {
	const query = `
        SELECT COUNT(*), COUNT(*) FILTER (WHERE status='Available')
        FROM plots WHERE country=$1 AND zone_code=$2`

	var total, available int
	if err := r.pool.QueryRow(ctx, query, country, zoneCode).Scan(&total, &available); err != nil {
		return 0, 0, err
	}
	return total, available, nil
}

func scanPlot(row pgx.Row, plot *domain.Plot) error {
	return row.Scan(
		&plot.ID,
		&plot.PlotName,
		&plot.Country,
		&plot.ZoneCode,
		&plot.Phase,
		&plot.Category,
		&plot.Status,
		&plot.AreaSqm,
		&plot.AreaHa,
		&plot.CompanyName,
		&plot.Sector,
		&plot.Activity,
		&plot.InvestmentAmount,
		&plot.EmploymentGenerated,
		&plot.AllocatedDate,
		&plot.ExpiryDate,
		&plot.CreatedAt,
		&plot.UpdatedAt,
	)
}
