package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"
)

// EntityRecord is the internal view of an entity used by the author and
// moderation flows: ownership, status and the extension-row ids.
type EntityRecord struct {
	ID       int64
	Type     string
	Name     string
	Status   string
	AuthorID int64
	SongID   sql.NullInt64
	AlbumID  sql.NullInt64
	EPID     sql.NullInt64
}

// AuthorRepository covers author-owned entity CRUD. Creation and track
// replacement run inside transactions so an entity can never end up
// half-written.
type AuthorRepository interface {
	CreateEntityWithDetails(ctx context.Context, authorID int64, sub *model.EntitySubmission) (int64, error)
	AuthorEntities(ctx context.Context, authorID int64, entityType, status string) ([]model.EntityRow, error)
	GetEntityRecord(ctx context.Context, id int64) (*EntityRecord, error)
	GetEntityWithTracks(ctx context.Context, id int64) (*model.EntityDetail, error)
	UpdateEntityWithTracks(ctx context.Context, id int64, sub *model.EntitySubmission) error
	SetEntityStatus(ctx context.Context, id int64, status string) (int64, error)
}

type mysqlAuthorRepository struct {
	db *sql.DB
}

// NewMySQLAuthorRepository creates the MySQL-backed author repository.
func NewMySQLAuthorRepository(db *sql.DB) AuthorRepository {
	return &mysqlAuthorRepository{db: db}
}

// CreateEntityWithDetails inserts the entity row (status pending), its
// type-specific extension row and, for albums/EPs, the submitted tracks
// with track_order 1..N, all in one transaction.
func (r *mysqlAuthorRepository) CreateEntityWithDetails(ctx context.Context, authorID int64, sub *model.EntitySubmission) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create entity transaction: %w", err)
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx, `
		INSERT INTO music_entity
			(type, name, description, avatar_url, entity_url, genre_id, author_id, status, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, NOW(), NOW())`,
		sub.Type, sub.Name, nullable(sub.Description), nullable(sub.AvatarURL),
		nullable(sub.EntityURL), sub.GenreID, authorID, model.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to insert music entity: %w", err)
	}

	entityID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get music entity id: %w", err)
	}

	switch sub.Type {
	case model.TypeSong:
		_, err = tx.ExecContext(ctx, "INSERT INTO song (music_entity_id) VALUES (?)", entityID)
	case model.TypeAlbum:
		var albumRes sql.Result
		albumRes, err = tx.ExecContext(ctx, "INSERT INTO album (music_entity_id) VALUES (?)", entityID)
		if err == nil {
			var albumID int64
			if albumID, err = albumRes.LastInsertId(); err == nil {
				err = insertTracks(ctx, tx, "album_tracks", "album_id", albumID, sub.Tracks)
			}
		}
	case model.TypeEP:
		var epRes sql.Result
		epRes, err = tx.ExecContext(ctx, "INSERT INTO ep (music_entity_id) VALUES (?)", entityID)
		if err == nil {
			var epID int64
			if epID, err = epRes.LastInsertId(); err == nil {
				err = insertTracks(ctx, tx, "ep_tracks", "ep_id", epID, sub.Tracks)
			}
		}
	default:
		err = fmt.Errorf("unknown entity type %q", sub.Type)
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit create entity transaction: %w", err)
	}
	return entityID, nil
}

// AuthorEntities lists an author's entities with optional type/status
// filters ("all" or empty skips the filter) and the per-entity track count.
func (r *mysqlAuthorRepository) AuthorEntities(ctx context.Context, authorID int64, entityType, status string) ([]model.EntityRow, error) {
	builder := NewQueryBuilder(`
		SELECT me.id, me.type, me.name,
		       COALESCE(me.description, '') AS description,
		       COALESCE(me.avatar_url, '') AS avatar_url,
		       COALESCE(me.entity_url, '') AS entity_url,
		       me.views, me.status, COALESCE(me.reason, '') AS reason,
		       me.author_id, me.created_at, me.updated_at,
		       COALESCE(u.nickname, '') AS author_name,
		       COALESCE(g.name, '') AS genre_name,
		       COALESCE((SELECT COUNT(*) FROM album_tracks WHERE album_id = a.id), 0) +
		       COALESCE((SELECT COUNT(*) FROM ep_tracks WHERE ep_id = e.id), 0) AS track_count
		FROM music_entity me
		LEFT JOIN users u ON me.author_id = u.id
		LEFT JOIN genre g ON me.genre_id = g.id
		LEFT JOIN album a ON me.id = a.music_entity_id AND me.type = 'Album'
		LEFT JOIN ep e ON me.id = e.music_entity_id AND me.type = 'EP'`).
		Where("me.author_id = ?", authorID)

	if entityType != "" && entityType != model.FilterAll {
		builder.Where("me.type = ?", model.CanonicalType(entityType))
	}
	if status != "" && status != model.FilterAll {
		builder.Where("me.status = ?", status)
	}

	query, args := builder.OrderBy("me.created_at DESC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query author entities: %w", err)
	}
	defer rows.Close()

	var result []model.EntityRow
	for rows.Next() {
		e := model.EntityRow{}
		err := rows.Scan(
			&e.ID, &e.Type, &e.Name, &e.Description, &e.AvatarURL,
			&e.EntityURL, &e.Views, &e.Status, &e.Reason, &e.AuthorID,
			&e.CreatedAt, &e.UpdatedAt, &e.AuthorName, &e.GenreName,
			&e.TrackCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author entity row: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetEntityRecord fetches the ownership/status view of an entity in any
// status, with the extension-row ids joined in.
func (r *mysqlAuthorRepository) GetEntityRecord(ctx context.Context, id int64) (*EntityRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT me.id, me.type, me.name, me.status, me.author_id,
		       s.id AS song_id, a.id AS album_id, e.id AS ep_id
		FROM music_entity me
		LEFT JOIN song s ON me.id = s.music_entity_id
		LEFT JOIN album a ON me.id = a.music_entity_id
		LEFT JOIN ep e ON me.id = e.music_entity_id
		WHERE me.id = ?`, id)

	rec := &EntityRecord{}
	err := row.Scan(&rec.ID, &rec.Type, &rec.Name, &rec.Status, &rec.AuthorID,
		&rec.SongID, &rec.AlbumID, &rec.EPID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan entity record for id %d: %w", id, err)
	}
	return rec, nil
}

// GetEntityWithTracks returns the author's view of an entity in any
// status, together with its ordered track list.
func (r *mysqlAuthorRepository) GetEntityWithTracks(ctx context.Context, id int64) (*model.EntityDetail, error) {
	query, args := NewQueryBuilder(entityBaseSelect).
		Where("me.id = ?", id).
		Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	entity, err := scanEntityRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan entity row for id %d: %w", id, err)
	}

	detail := &model.EntityDetail{Entity: *entity, Tracks: []model.Track{}}

	rec, err := r.GetEntityRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	var trackQuery string
	var parentID int64
	switch {
	case rec.Type == model.TypeAlbum && rec.AlbumID.Valid:
		trackQuery = "SELECT id, name, url_link, track_order FROM album_tracks WHERE album_id = ? ORDER BY track_order"
		parentID = rec.AlbumID.Int64
	case rec.Type == model.TypeEP && rec.EPID.Valid:
		trackQuery = "SELECT id, name, url_link, track_order FROM ep_tracks WHERE ep_id = ? ORDER BY track_order"
		parentID = rec.EPID.Int64
	default:
		return detail, nil
	}

	rows, err := r.db.QueryContext(ctx, trackQuery, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks for entity %d: %w", id, err)
	}
	defer rows.Close()

	tracks, err := scanTracks(rows)
	if err != nil {
		return nil, err
	}
	if tracks != nil {
		detail.Tracks = tracks
	}
	return detail, nil
}

// UpdateEntityWithTracks applies an author edit: metadata update, status
// forced back to pending, and for albums/EPs the full track list replaced
// (delete then reinsert with track_order 1..N). The whole edit is one
// transaction.
func (r *mysqlAuthorRepository) UpdateEntityWithTracks(ctx context.Context, id int64, sub *model.EntitySubmission) error {
	rec, err := r.GetEntityRecord(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update entity transaction: %w", err)
	}
	defer rollback(tx)

	_, err = tx.ExecContext(ctx, `
		UPDATE music_entity
		SET name = ?, description = ?, avatar_url = ?, entity_url = ?,
		    genre_id = ?, status = ?, updated_at = NOW()
		WHERE id = ?`,
		sub.Name, nullable(sub.Description), nullable(sub.AvatarURL),
		nullable(sub.EntityURL), sub.GenreID, model.StatusPending, id)
	if err != nil {
		return fmt.Errorf("failed to update music entity %d: %w", id, err)
	}

	switch {
	case rec.Type == model.TypeAlbum && rec.AlbumID.Valid && sub.Tracks != nil:
		if _, err := tx.ExecContext(ctx, "DELETE FROM album_tracks WHERE album_id = ?", rec.AlbumID.Int64); err != nil {
			return fmt.Errorf("failed to delete album tracks: %w", err)
		}
		if err := insertTracks(ctx, tx, "album_tracks", "album_id", rec.AlbumID.Int64, sub.Tracks); err != nil {
			return err
		}
	case rec.Type == model.TypeEP && rec.EPID.Valid && sub.Tracks != nil:
		if _, err := tx.ExecContext(ctx, "DELETE FROM ep_tracks WHERE ep_id = ?", rec.EPID.Int64); err != nil {
			return fmt.Errorf("failed to delete ep tracks: %w", err)
		}
		if err := insertTracks(ctx, tx, "ep_tracks", "ep_id", rec.EPID.Int64, sub.Tracks); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update entity transaction: %w", err)
	}
	return nil
}

// SetEntityStatus updates only the status (soft delete / restore) and
// returns rows affected.
func (r *mysqlAuthorRepository) SetEntityStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE music_entity SET status = ?, updated_at = NOW() WHERE id = ?",
		status, id)
	if err != nil {
		return 0, fmt.Errorf("failed to set status for entity %d: %w", id, err)
	}
	return res.RowsAffected()
}

// orderedTracks returns a copy of the submitted tracks with TrackOrder
// set to a dense 1-based sequence following submission order. Any order
// values supplied by the client are ignored.
func orderedTracks(tracks []model.Track) []model.Track {
	ordered := make([]model.Track, len(tracks))
	for i, track := range tracks {
		track.TrackOrder = i + 1
		ordered[i] = track
	}
	return ordered
}

// insertTracks writes the submitted tracks with dense 1-based ordering.
func insertTracks(ctx context.Context, tx *sql.Tx, table, parentColumn string, parentID int64, tracks []model.Track) error {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s, name, url_link, track_order) VALUES (?, ?, ?, ?)",
		table, parentColumn))
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for _, track := range orderedTracks(tracks) {
		if _, err := stmt.ExecContext(ctx, parentID, track.Name, track.URLLink, track.TrackOrder); err != nil {
			return fmt.Errorf("failed to insert track %d: %w", track.TrackOrder, err)
		}
	}
	return nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logger.Warn("transaction rollback failed", logger.ErrorField(err))
	}
}
