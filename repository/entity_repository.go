package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"
)

// Sort options for catalog search.
const (
	SortRelevance = "relevance"
	SortViews     = "views"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

// entityBaseSelect is the shared SELECT head for catalog rows: entity
// columns plus the joined author nickname and genre name.
const entityBaseSelect = `
	SELECT me.id, me.type, me.name,
	       COALESCE(me.description, '') AS description,
	       COALESCE(me.avatar_url, '') AS avatar_url,
	       COALESCE(me.entity_url, '') AS entity_url,
	       me.views, me.status, COALESCE(me.reason, '') AS reason,
	       me.author_id, me.created_at, me.updated_at,
	       COALESCE(u.nickname, '') AS author_name,
	       COALESCE(g.name, '') AS genre_name
	FROM music_entity me
	LEFT JOIN users u ON me.author_id = u.id
	LEFT JOIN genre g ON me.genre_id = g.id`

// SearchParams describes one catalog search. An empty Query skips the
// text predicate so the call degrades to a filtered browse; Type and
// Genre accept the sentinel "all".
type SearchParams struct {
	Query string
	Type  string
	Genre string
	Sort  string
	Limit int
}

// EntityRepository covers public catalog reads and the moderation
// status updates.
type EntityRepository interface {
	NewReleases(ctx context.Context, limit int) ([]model.EntityRow, error)
	FindByType(ctx context.Context, entityType string, limit int, orderBy string) ([]model.EntityRow, error)
	Search(ctx context.Context, params SearchParams) ([]model.EntityRow, error)
	PendingByType(ctx context.Context, entityType string) ([]model.EntityRow, error)
	GetApprovedByID(ctx context.Context, id int64) (*model.EntityRow, error)
	ApprovedTracks(ctx context.Context, entityID int64, entityType string) ([]model.Track, error)
	AddViews(ctx context.Context, id int64, delta int64) error
	SetStatus(ctx context.Context, id int64, entityType, status, reason string) (int64, error)
}

type mysqlEntityRepository struct {
	db *sql.DB
}

// NewMySQLEntityRepository creates the MySQL-backed entity repository.
func NewMySQLEntityRepository(db *sql.DB) EntityRepository {
	return &mysqlEntityRepository{db: db}
}

// NewReleases returns the newest approved entities of any type.
func (r *mysqlEntityRepository) NewReleases(ctx context.Context, limit int) ([]model.EntityRow, error) {
	query, args := NewQueryBuilder(entityBaseSelect).
		Where("me.status = ?", model.StatusApproved).
		OrderBy("me.created_at DESC").
		Limit(limit).
		Build()

	return r.queryRows(ctx, query, args...)
}

// FindByType returns approved entities of one type with the given ordering.
func (r *mysqlEntityRepository) FindByType(ctx context.Context, entityType string, limit int, orderBy string) ([]model.EntityRow, error) {
	query, args := NewQueryBuilder(entityBaseSelect).
		Where("me.status = ?", model.StatusApproved).
		Where("me.type = ?", entityType).
		OrderBy(orderBy).
		Limit(limit).
		Build()

	return r.queryRows(ctx, query, args...)
}

// Search runs the free-text catalog search. The text predicate matches
// name, author nickname, genre name and description case-insensitively;
// relevance ordering ranks name matches above nickname matches above the
// rest, with views as tiebreak. Explicit sort options replace relevance
// ordering entirely.
func (r *mysqlEntityRepository) Search(ctx context.Context, params SearchParams) ([]model.EntityRow, error) {
	query, args := searchStatement(params)
	return r.queryRows(ctx, query, args...)
}

func searchStatement(params SearchParams) (string, []any) {
	builder := NewQueryBuilder(entityBaseSelect).
		Where("me.status = ?", model.StatusApproved)

	pattern := "%" + params.Query + "%"
	if params.Query != "" {
		builder.Where(`(LOWER(me.name) LIKE LOWER(?)
			OR LOWER(u.nickname) LIKE LOWER(?)
			OR LOWER(g.name) LIKE LOWER(?)
			OR LOWER(me.description) LIKE LOWER(?))`,
			pattern, pattern, pattern, pattern)
	}
	if params.Type != "" && params.Type != model.FilterAll {
		builder.Where("me.type = ?", model.CanonicalType(params.Type))
	}
	if params.Genre != "" && params.Genre != model.FilterAll {
		builder.Where("g.name = ?", params.Genre)
	}

	switch params.Sort {
	case SortViews:
		builder.OrderBy("me.views DESC")
	case SortNewest:
		builder.OrderBy("me.created_at DESC")
	case SortOldest:
		builder.OrderBy("me.created_at ASC")
	default:
		if params.Query != "" {
			builder.OrderBy(`CASE
				WHEN LOWER(me.name) LIKE LOWER(?) THEN 1
				WHEN LOWER(u.nickname) LIKE LOWER(?) THEN 2
				ELSE 3
			END, me.views DESC`, pattern, pattern)
		} else {
			builder.OrderBy("me.views DESC")
		}
	}

	return builder.Limit(params.Limit).Build()
}

// PendingByType returns the moderation queue for one entity type.
func (r *mysqlEntityRepository) PendingByType(ctx context.Context, entityType string) ([]model.EntityRow, error) {
	query, args := NewQueryBuilder(entityBaseSelect).
		Where("me.status = ?", model.StatusPending).
		Where("me.type = ?", entityType).
		OrderBy("me.created_at DESC").
		Build()

	return r.queryRows(ctx, query, args...)
}

// GetApprovedByID fetches one approved entity for the public pages.
func (r *mysqlEntityRepository) GetApprovedByID(ctx context.Context, id int64) (*model.EntityRow, error) {
	query, args := NewQueryBuilder(entityBaseSelect).
		Where("me.id = ?", id).
		Where("me.status = ?", model.StatusApproved).
		Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	entity, err := scanEntityRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan entity row for id %d: %w", id, err)
	}
	return entity, nil
}

// ApprovedTracks returns the ordered track list of an approved album or EP.
func (r *mysqlEntityRepository) ApprovedTracks(ctx context.Context, entityID int64, entityType string) ([]model.Track, error) {
	var query string
	switch entityType {
	case model.TypeAlbum:
		query = `
			SELECT at.id, at.name, at.url_link, at.track_order
			FROM album_tracks at
			INNER JOIN album a ON at.album_id = a.id
			INNER JOIN music_entity me ON a.music_entity_id = me.id
			WHERE me.id = ? AND me.status = ?
			ORDER BY at.track_order ASC`
	case model.TypeEP:
		query = `
			SELECT et.id, et.name, et.url_link, et.track_order
			FROM ep_tracks et
			INNER JOIN ep e ON et.ep_id = e.id
			INNER JOIN music_entity me ON e.music_entity_id = me.id
			WHERE me.id = ? AND me.status = ?
			ORDER BY et.track_order ASC`
	default:
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, query, entityID, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks for entity %d: %w", entityID, err)
	}
	defer rows.Close()

	return scanTracks(rows)
}

// AddViews folds a batch of counted views into the stored counter.
func (r *mysqlEntityRepository) AddViews(ctx context.Context, id int64, delta int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE music_entity SET views = views + ? WHERE id = ?", delta, id)
	if err != nil {
		return fmt.Errorf("failed to add views for entity %d: %w", id, err)
	}
	return nil
}

// SetStatus updates status and reason for the entity scoped by (id, type)
// and returns the number of rows affected. A type mismatch matches zero
// rows; the caller decides what that means.
func (r *mysqlEntityRepository) SetStatus(ctx context.Context, id int64, entityType, status, reason string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE music_entity
		SET status = ?, reason = ?, updated_at = NOW()
		WHERE id = ? AND type = ?`,
		status, reason, id, entityType)
	if err != nil {
		return 0, fmt.Errorf("failed to set status for entity %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *mysqlEntityRepository) queryRows(ctx context.Context, query string, args ...any) ([]model.EntityRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var result []model.EntityRow
	for rows.Next() {
		entity, err := scanEntityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		result = append(result, *entity)
	}
	return result, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntityRow(s rowScanner) (*model.EntityRow, error) {
	e := &model.EntityRow{}
	err := s.Scan(
		&e.ID, &e.Type, &e.Name, &e.Description, &e.AvatarURL,
		&e.EntityURL, &e.Views, &e.Status, &e.Reason, &e.AuthorID,
		&e.CreatedAt, &e.UpdatedAt, &e.AuthorName, &e.GenreName,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func scanTracks(rows *sql.Rows) ([]model.Track, error) {
	var tracks []model.Track
	for rows.Next() {
		var t model.Track
		if err := rows.Scan(&t.ID, &t.Name, &t.URLLink, &t.TrackOrder); err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
