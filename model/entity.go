package model

import (
	"database/sql"
	"strings"
	"time"
)

// Music entity types.
const (
	TypeSong  = "Song"
	TypeAlbum = "Album"
	TypeEP    = "EP"
)

// Music entity statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
	StatusRemoved  = "removed"
)

// FilterAll is the sentinel value meaning "do not filter on this field".
const FilterAll = "all"

// CanonicalType maps a client-supplied type string to its canonical form.
// Unknown strings are returned unchanged so that lookups scoped by type
// simply match nothing.
func CanonicalType(t string) string {
	switch strings.ToLower(t) {
	case "song":
		return TypeSong
	case "album":
		return TypeAlbum
	case "ep":
		return TypeEP
	}
	return t
}

// MusicEntity is a catalog item: a song, an album, or an EP. Each entity
// owns exactly one type-specific extension row (Song/Album/EP).
type MusicEntity struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Type        string         `json:"type" gorm:"size:10;not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description sql.NullString `json:"-" gorm:"type:text"`
	AvatarURL   sql.NullString `json:"-" gorm:"size:512"`
	EntityURL   sql.NullString `json:"-" gorm:"size:512"`
	GenreID     int64          `json:"genreId" gorm:"index"`
	AuthorID    int64          `json:"authorId" gorm:"not null;index"`
	Status      string         `json:"status" gorm:"size:10;not null;default:pending;index"`
	Views       int64          `json:"views" gorm:"not null;default:0"`
	Reason      sql.NullString `json:"-" gorm:"size:512"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (MusicEntity) TableName() string { return "music_entity" }

// Song, Album and EP are the one-to-one extension rows.
type Song struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	MusicEntityID int64 `gorm:"not null;uniqueIndex"`
}

func (Song) TableName() string { return "song" }

type Album struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	MusicEntityID int64 `gorm:"not null;uniqueIndex"`
}

func (Album) TableName() string { return "album" }

type EP struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	MusicEntityID int64 `gorm:"not null;uniqueIndex"`
}

func (EP) TableName() string { return "ep" }

// AlbumTrack and EPTrack are owned exclusively by their parent and are
// replaced wholesale when the entity is updated. TrackOrder is 1-based
// and dense per parent.
type AlbumTrack struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	AlbumID    int64  `json:"-" gorm:"not null;index:idx_album_order,unique,priority:1"`
	Name       string `json:"name" gorm:"size:255;not null"`
	URLLink    string `json:"urlLink" gorm:"size:512"`
	TrackOrder int    `json:"trackOrder" gorm:"not null;index:idx_album_order,unique,priority:2"`
}

func (AlbumTrack) TableName() string { return "album_tracks" }

type EPTrack struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	EPID       int64  `json:"-" gorm:"not null;index:idx_ep_order,unique,priority:1"`
	Name       string `json:"name" gorm:"size:255;not null"`
	URLLink    string `json:"urlLink" gorm:"size:512"`
	TrackOrder int    `json:"trackOrder" gorm:"not null;index:idx_ep_order,unique,priority:2"`
}

func (EPTrack) TableName() string { return "ep_tracks" }

// Track is the transport form of an album/EP track, used on both input
// (submission order defines track_order) and output.
type Track struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	URLLink    string `json:"urlLink"`
	TrackOrder int    `json:"trackOrder,omitempty"`
}

// EntityRow is a catalog listing row with the joined author nickname and
// genre name.
type EntityRow struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AvatarURL   string    `json:"avatarUrl"`
	EntityURL   string    `json:"entityUrl"`
	Views       int64     `json:"views"`
	Status      string    `json:"status,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	AuthorID    int64     `json:"authorId,omitempty"`
	AuthorName  string    `json:"authorName"`
	GenreName   string    `json:"genreName"`
	TrackCount  int       `json:"trackCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// EntityDetail is an entity together with its track list (empty for songs).
type EntityDetail struct {
	Entity EntityRow `json:"entity"`
	Tracks []Track   `json:"tracks"`
}

// EntitySubmission is the author-facing create/update payload.
type EntitySubmission struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AvatarURL   string  `json:"avatarUrl"`
	EntityURL   string  `json:"entityUrl"`
	GenreID     int64   `json:"genreId"`
	Tracks      []Track `json:"tracks"`
}
