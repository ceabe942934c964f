package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestCanTransitionStatus(t *testing.T) {
	assert.True(t, CanTransitionStatus(StatusDraft, StatusPending))
	assert.True(t, CanTransitionStatus(StatusPending, StatusPublished))
	assert.True(t, CanTransitionStatus(StatusPending, StatusRejected))
	assert.True(t, CanTransitionStatus(StatusPublished, StatusSuspended))
	assert.True(t, CanTransitionStatus(StatusSuspended, StatusPublished))
	assert.True(t, CanTransitionStatus(StatusPublished, StatusArchived))

	assert.False(t, CanTransitionStatus(StatusDraft, StatusPublished))
	assert.False(t, CanTransitionStatus(StatusRejected, StatusPending))
	assert.False(t, CanTransitionStatus(StatusArchived, StatusPublished))
	assert.False(t, CanTransitionStatus(StatusPublished, StatusDraft))
}

func TestValidSubtype(t *testing.T) {
	assert.True(t, ValidSubtype("apartment", "loft"))
	assert.True(t, ValidSubtype("unique", "treehouse"))
	assert.True(t, ValidSubtype("house", ""))

	assert.False(t, ValidSubtype("apartment", "treehouse"))
	assert.False(t, ValidSubtype("spaceship", "pod"))
}

func TestAmenityTags(t *testing.T) {
	l := Listing{Amenities: datatypes.JSON(`[{"category":"essentials","tag":"wifi"},{"category":"outdoor","tag":"bbq"}]`)}

	tags := l.AmenityTags()
	assert.Len(t, tags, 2)
	assert.Equal(t, AmenityTag{Category: "essentials", Tag: "wifi"}, tags[0])

	assert.True(t, l.HasAmenity("bbq"))
	assert.False(t, l.HasAmenity("pool"))
}

func TestAmenityTags_EmptyAndMalformed(t *testing.T) {
	var empty Listing
	assert.Nil(t, empty.AmenityTags())

	bad := Listing{Amenities: datatypes.JSON(`{"tag":`)}
	assert.Nil(t, bad.AmenityTags())
	assert.False(t, bad.HasAmenity("wifi"))
}

func TestIsPublished(t *testing.T) {
	l := Listing{Status: StatusPublished}
	assert.True(t, l.IsPublished())

	l.Status = StatusDraft
	assert.False(t, l.IsPublished())
}
