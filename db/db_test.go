package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/spotify/basic-pitch-go/model"
)

func TestEntryToItemThenItemToEntryRoundTrips(t *testing.T) {
	entry := model.CacheEntry{
		Key: "deadbeef",
		Notes: []model.NoteEventTime{
			{StartTimeSeconds: 0.5, DurationSeconds: 1.25, PitchMIDI: 64, PitchBends: []int{0, 1, -1}},
		},
	}

	item, err := entryToItem(entry)
	assert.NoError(t, err)

	got, err := itemToEntry(item)
	assert.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestItemToEntryRejectsMissingPK(t *testing.T) {
	_, err := itemToEntry(map[string]*dynamodb.AttributeValue{})
	assert.Error(t, err)
}
