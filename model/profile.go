package model

import (
	"database/sql"
	"time"
)

// Placeholder values used when a profile history row has empty fields.
const (
	DefaultAvatarURL   = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcR_GrWvA5oKbxeiALyR8O5xG6zkVxgFVFQpQw&s"
	DefaultGender      = "N/A"
	DefaultDescription = "No description provided"
)

// ProfileHistory is an append-only record of profile edits. The current
// profile is the most recent row for a user.
type ProfileHistory struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64          `json:"userId" gorm:"not null;index"`
	AvatarURL   sql.NullString `json:"-" gorm:"size:512"`
	Gender      sql.NullString `json:"-" gorm:"size:20"`
	Description sql.NullString `json:"-" gorm:"type:text"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (ProfileHistory) TableName() string { return "user_profile_history" }

// Profile is the resolved current profile for a user, with placeholder
// defaults applied to missing fields.
type Profile struct {
	UserID      int64     `json:"userId"`
	Nickname    string    `json:"nickname"`
	Email       string    `json:"email"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	AvatarURL   string    `json:"avatarUrl"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
}

// ProfileEntry is one historical profile row as returned to clients.
type ProfileEntry struct {
	ID          int64     `json:"id"`
	AvatarURL   string    `json:"avatarUrl"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplyDefaults fills empty profile fields with the fixed placeholders.
func (p *Profile) ApplyDefaults() {
	if p.AvatarURL == "" {
		p.AvatarURL = DefaultAvatarURL
	}
	if p.Gender == "" {
		p.Gender = DefaultGender
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}
}
