package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"song", TypeSong},
		{"Song", TypeSong},
		{"SONG", TypeSong},
		{"album", TypeAlbum},
		{"ep", TypeEP},
		{"EP", TypeEP},
		{"mixtape", "mixtape"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalType(tc.in), "CanonicalType(%q)", tc.in)
	}
}

func TestSanitize_StripsPasswordHash(t *testing.T) {
	u := &User{
		ID:           3,
		Nickname:     "tema",
		Email:        "tema@example.com",
		PasswordHash: "$2a$10$something",
		Type:         RoleAuthor,
	}

	pub := u.Sanitize()

	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, u.Nickname, pub.Nickname)
	assert.Equal(t, u.Type, pub.Type)
}

func TestProfileApplyDefaults(t *testing.T) {
	p := &Profile{}
	p.ApplyDefaults()

	assert.Equal(t, DefaultAvatarURL, p.AvatarURL)
	assert.Equal(t, DefaultGender, p.Gender)
	assert.Equal(t, DefaultDescription, p.Description)

	filled := &Profile{AvatarURL: "https://cdn/x.png", Gender: "Female", Description: "dj"}
	filled.ApplyDefaults()

	assert.Equal(t, "https://cdn/x.png", filled.AvatarURL)
	assert.Equal(t, "Female", filled.Gender)
	assert.Equal(t, "dj", filled.Description)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAuthor))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("Superuser"))
	assert.False(t, ValidRole(""))
}
