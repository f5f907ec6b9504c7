package model

import "time"

// User roles. Anything else sent by a client is downgraded to RoleUser.
const (
	RoleUser   = "User"
	RoleAuthor = "Author"
	RoleAdmin  = "Admin"
)

// User represents a registered account.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Nickname     string    `json:"nickname" gorm:"size:100;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Type         string    `json:"type" gorm:"size:20;not null;default:User"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAuthor || role == RoleAdmin
}

// PublicUser is the sanitized view of a user: password hash stripped,
// latest profile fields folded in. This is what sessions store and what
// API responses carry.
type PublicUser struct {
	ID          int64     `json:"id"`
	Nickname    string    `json:"nickname"`
	Email       string    `json:"email"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Sanitize strips the password hash from a user record.
func (u *User) Sanitize() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Email:     u.Email,
		Type:      u.Type,
		CreatedAt: u.CreatedAt,
	}
}
