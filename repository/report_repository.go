package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"
)

// ReportFilter is the common report scope: an inclusive date range plus
// optional genre and status filters (empty or "all" means no filter).
type ReportFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD, inclusive
	Genre     string
	Status    string
}

// ReportRepository runs the aggregate queries behind the admin reports.
type ReportRepository interface {
	ContentStatistics(ctx context.Context, filter ReportFilter) (*model.ReportResult, error)
	UserActivity(ctx context.Context, filter ReportFilter) (*model.ReportResult, error)
	ApprovalStats(ctx context.Context, filter ReportFilter) (*model.ReportResult, error)
}

type mysqlReportRepository struct {
	db *sql.DB
}

// NewMySQLReportRepository creates the MySQL-backed report repository.
func NewMySQLReportRepository(db *sql.DB) ReportRepository {
	return &mysqlReportRepository{db: db}
}

// ContentStatistics groups submissions by type and genre with count and
// view aggregates.
func (r *mysqlReportRepository) ContentStatistics(ctx context.Context, filter ReportFilter) (*model.ReportResult, error) {
	builder := NewQueryBuilder(`
		SELECT me.type AS type,
		       COALESCE(g.name, 'Unknown') AS genre,
		       COUNT(*) AS total_entities,
		       COALESCE(SUM(me.views), 0) AS total_views,
		       ROUND(COALESCE(AVG(me.views), 0), 2) AS avg_views
		FROM music_entity me
		LEFT JOIN genre g ON me.genre_id = g.id`).
		GroupBy("me.type, g.name").
		OrderBy("me.type, genre")

	applyDateRange(builder, "me.created_at", filter)
	if filter.Genre != "" && filter.Genre != model.FilterAll {
		builder.Where("g.name = ?", filter.Genre)
	}
	if filter.Status != "" && filter.Status != model.FilterAll {
		builder.Where("me.status = ?", filter.Status)
	}

	return r.run(ctx, builder)
}

// UserActivity groups submissions by author with approval and view
// aggregates.
func (r *mysqlReportRepository) UserActivity(ctx context.Context, filter ReportFilter) (*model.ReportResult, error) {
	builder := NewQueryBuilder(`
		SELECT u.nickname AS author,
		       COUNT(*) AS submissions,
		       SUM(CASE WHEN me.status = 'approved' THEN 1 ELSE 0 END) AS approved,
		       COALESCE(SUM(me.views), 0) AS total_views
		FROM music_entity me
		INNER JOIN users u ON me.author_id = u.id`).
		GroupBy("u.id, u.nickname").
		OrderBy("submissions DESC, author")

	applyDateRange(builder, "me.created_at", filter)
	if filter.Status != "" && filter.Status != model.FilterAll {
		builder.Where("me.status = ?", filter.Status)
	}

	return r.run(ctx, builder)
}

// ApprovalStats counts moderation outcomes per day and status.
func (r *mysqlReportRepository) ApprovalStats(ctx context.Context, filter ReportFilter) (*model.ReportResult, error) {
	builder := NewQueryBuilder(`
		SELECT DATE(me.updated_at) AS day,
		       me.status AS status,
		       COUNT(*) AS total
		FROM music_entity me`).
		GroupBy("DATE(me.updated_at), me.status").
		OrderBy("day, status")

	applyDateRange(builder, "me.updated_at", filter)
	if filter.Status != "" && filter.Status != model.FilterAll {
		builder.Where("me.status = ?", filter.Status)
	}

	return r.run(ctx, builder)
}

// applyDateRange bounds column to [StartDate, EndDate] with the end date
// inclusive.
func applyDateRange(builder *QueryBuilder, column string, filter ReportFilter) {
	builder.Where(column+" >= ?", filter.StartDate)
	builder.Where(column+" < DATE_ADD(?, INTERVAL 1 DAY)", filter.EndDate)
}

// run executes the built query and captures the result generically:
// column names in statement order plus one value slice per row.
func (r *mysqlReportRepository) run(ctx context.Context, builder *QueryBuilder) (*model.ReportResult, error) {
	query, args := builder.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read report columns: %w", err)
	}

	result := &model.ReportResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		// The MySQL driver hands text columns back as []byte.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}
