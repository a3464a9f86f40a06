package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AnalyticsRepository aggregates ticket counts for dashboard views.
type AnalyticsRepository interface {
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error)
	CountByPriority(ctx context.Context) (map[domain.TicketPriority]int, error)
	CountAssigned(ctx context.Context) (assigned, unassigned int, err error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountByPriority(ctx context.Context) (map[domain.TicketPriority]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT priority, COUNT(*) FROM tickets GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketPriority]int)
	for rows.Next() {
		var priority domain.TicketPriority
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		result[priority] = count
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountAssigned(ctx context.Context) (assigned, unassigned int, err error) {
	const query = `
        SELECT COUNT(*) FILTER (WHERE assigned_to IS NOT NULL),
               COUNT(*) FILTER (WHERE assigned_to IS NULL)
        FROM tickets`
	err = r.pool.QueryRow(ctx, query).Scan(&assigned, &unassigned)
	return assigned, unassigned, err
}
