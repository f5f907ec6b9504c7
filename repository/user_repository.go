package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"
)

// profileJoin attaches the most recent profile-history row to each user.
// MySQL has no DISTINCT ON, so the latest row is selected by id through a
// correlated subquery (updated_at first, id as tiebreak).
const profileJoin = `
	LEFT JOIN user_profile_history uph ON uph.user_id = u.id
		AND uph.id = (
			SELECT uph2.id FROM user_profile_history uph2
			WHERE uph2.user_id = u.id
			ORDER BY uph2.updated_at DESC, uph2.id DESC
			LIMIT 1
		)`

// UserRepository covers account storage and the append-only profile
// history.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error)
	NicknameExists(ctx context.Context, nickname string, excludeUserID int64) (bool, error)
	UpdateNickname(ctx context.Context, id int64, nickname string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error

	AppendProfile(ctx context.Context, userID int64, avatarURL, gender, description string) error
	GetProfile(ctx context.Context, userID int64) (*model.Profile, error)
	GetProfileHistory(ctx context.Context, userID int64) ([]model.ProfileEntry, error)

	AllUsers(ctx context.Context) ([]model.Profile, error)
	SearchByNickname(ctx context.Context, nickname string) ([]model.Profile, error)
}

type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates the MySQL-backed user repository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// CreateUser adds a new user to the database.
func (r *mysqlUserRepository) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (nickname, email, password_hash, type, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		user.Nickname, user.Email, user.PasswordHash, user.Type)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by id, password hash included.
func (r *mysqlUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getUser(ctx, "id = ?", id)
}

// GetUserByEmail retrieves a user by email, password hash included.
func (r *mysqlUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, "email = ?", email)
}

func (r *mysqlUserRepository) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, nickname, email, password_hash, type, created_at FROM users WHERE "+where, arg)

	user := &model.User{}
	err := row.Scan(&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.Type, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return user, nil
}

// EmailExists reports whether an email is taken, optionally excluding one
// user id (for settings updates on the own account).
func (r *mysqlUserRepository) EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	return r.fieldExists(ctx, "email", email, excludeUserID)
}

// NicknameExists reports whether a nickname is taken.
func (r *mysqlUserRepository) NicknameExists(ctx context.Context, nickname string, excludeUserID int64) (bool, error) {
	return r.fieldExists(ctx, "nickname", nickname, excludeUserID)
}

func (r *mysqlUserRepository) fieldExists(ctx context.Context, field, value string, excludeUserID int64) (bool, error) {
	builder := NewQueryBuilder("SELECT COUNT(*) FROM users u").
		Where("u."+field+" = ?", value)
	if excludeUserID != 0 {
		builder.Where("u.id != ?", excludeUserID)
	}
	query, args := builder.Build()

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", field, err)
	}
	return count > 0, nil
}

// UpdateNickname changes the account nickname.
func (r *mysqlUserRepository) UpdateNickname(ctx context.Context, id int64, nickname string) error {
	return r.updateField(ctx, id, "nickname", nickname)
}

// UpdateEmail changes the account email.
func (r *mysqlUserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	return r.updateField(ctx, id, "email", email)
}

// UpdatePassword stores a new password hash.
func (r *mysqlUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.updateField(ctx, id, "password_hash", passwordHash)
}

func (r *mysqlUserRepository) updateField(ctx context.Context, id int64, field, value string) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s = ? WHERE id = ?", field), value, id)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", field, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// The connection runs with clientFoundRows, so zero matched rows
		// means the user is gone, not that the value was unchanged.
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the account. Entities authored by the user are left
// in place on purpose.
func (r *mysqlUserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendProfile adds a profile-history row; history is never updated in
// place.
func (r *mysqlUserRepository) AppendProfile(ctx context.Context, userID int64, avatarURL, gender, description string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profile_history (user_id, avatar_url, gender, description, updated_at)
		VALUES (?, ?, ?, ?, NOW())`,
		userID, nullable(avatarURL), nullable(gender), nullable(description))
	if err != nil {
		return fmt.Errorf("failed to append profile history for user %d: %w", userID, err)
	}
	return nil
}

// GetProfile resolves the current profile of a user (latest history row,
// placeholder defaults applied).
func (r *mysqlUserRepository) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.nickname, u.email, u.type, u.created_at,
		       COALESCE(uph.avatar_url, '') AS avatar_url,
		       COALESCE(uph.gender, '') AS gender,
		       COALESCE(uph.description, '') AS description
		FROM users u`+profileJoin+`
		WHERE u.id = ?`, userID)

	p := &model.Profile{}
	err := row.Scan(&p.UserID, &p.Nickname, &p.Email, &p.Type, &p.CreatedAt,
		&p.AvatarURL, &p.Gender, &p.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan profile for user %d: %w", userID, err)
	}

	p.ApplyDefaults()
	return p, nil
}

// GetProfileHistory returns all profile rows of a user, newest first.
func (r *mysqlUserRepository) GetProfileHistory(ctx context.Context, userID int64) ([]model.ProfileEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,
		       COALESCE(avatar_url, '') AS avatar_url,
		       COALESCE(gender, '') AS gender,
		       COALESCE(description, '') AS description,
		       updated_at
		FROM user_profile_history
		WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []model.ProfileEntry
	for rows.Next() {
		var e model.ProfileEntry
		if err := rows.Scan(&e.ID, &e.AvatarURL, &e.Gender, &e.Description, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AllUsers lists every account with its current profile, for the admin
// panel.
func (r *mysqlUserRepository) AllUsers(ctx context.Context) ([]model.Profile, error) {
	return r.queryProfiles(ctx, NewQueryBuilder(profileListSelect).OrderBy("u.id"))
}

// SearchByNickname lists accounts whose nickname contains the given
// substring, case-insensitively.
func (r *mysqlUserRepository) SearchByNickname(ctx context.Context, nickname string) ([]model.Profile, error) {
	builder := NewQueryBuilder(profileListSelect).
		Where("LOWER(u.nickname) LIKE LOWER(?)", "%"+nickname+"%").
		OrderBy("u.id")
	return r.queryProfiles(ctx, builder)
}

const profileListSelect = `
	SELECT u.id, u.nickname, u.email, u.type, u.created_at,
	       COALESCE(uph.avatar_url, '') AS avatar_url,
	       COALESCE(uph.gender, '') AS gender,
	       COALESCE(uph.description, '') AS description
	FROM users u` + profileJoin

func (r *mysqlUserRepository) queryProfiles(ctx context.Context, builder *QueryBuilder) ([]model.Profile, error) {
	query, args := builder.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p := model.Profile{}
		err := rows.Scan(&p.UserID, &p.Nickname, &p.Email, &p.Type, &p.CreatedAt,
			&p.AvatarURL, &p.Gender, &p.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		p.ApplyDefaults()
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
