package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TemaXo00/musium-web-application/model"
)

func TestOrderedTracksAssignsDenseOneBasedOrder(t *testing.T) {
	tracks := orderedTracks([]model.Track{
		{Name: "Intro", URLLink: "https://cdn.example/intro"},
		{Name: "Midnight", URLLink: "https://cdn.example/midnight"},
		{Name: "Outro", URLLink: "https://cdn.example/outro"},
	})

	assert.Len(t, tracks, 3)
	for i, track := range tracks {
		assert.Equal(t, i+1, track.TrackOrder)
	}
	assert.Equal(t, "Intro", tracks[0].Name)
	assert.Equal(t, "Midnight", tracks[1].Name)
	assert.Equal(t, "Outro", tracks[2].Name)
}

func TestOrderedTracksIgnoresClientSuppliedOrder(t *testing.T) {
	// Gaps and duplicates in the submitted values must not survive; the
	// stored order is always the submission order.
	submitted := []model.Track{
		{Name: "A", TrackOrder: 7},
		{Name: "B", TrackOrder: 7},
		{Name: "C", TrackOrder: 0},
	}

	tracks := orderedTracks(submitted)

	assert.Equal(t, 1, tracks[0].TrackOrder)
	assert.Equal(t, 2, tracks[1].TrackOrder)
	assert.Equal(t, 3, tracks[2].TrackOrder)

	// The caller's slice stays untouched.
	assert.Equal(t, 7, submitted[0].TrackOrder)
}

func TestOrderedTracksEmpty(t *testing.T) {
	assert.Empty(t, orderedTracks(nil))
	assert.Empty(t, orderedTracks([]model.Track{}))
}
