package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"eventhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Run("lowercases and replaces spaces", func(t *testing.T) {
		assert.Equal(t, "tech-conference-2025", model.Slugify("Tech Conference 2025"))
	})

	t.Run("keeps punctuation", func(t *testing.T) {
		assert.Equal(t, "rock-&-roll-night!", model.Slugify("Rock & Roll Night!"))
	})

	t.Run("each space becomes a hyphen", func(t *testing.T) {
		assert.Equal(t, "a--b", model.Slugify("A  B"))
	})

	t.Run("already lowercase unchanged", func(t *testing.T) {
		assert.Equal(t, "meetup", model.Slugify("meetup"))
	})
}

func TestBuildEventURL(t *testing.T) {
	url := model.BuildEventURL("http://localhost:8080", "tech-conference-2025")
	assert.Equal(t, "http://localhost:8080/api/v1/event/tech-conference-2025", url)
}

func TestEventStatusAt(t *testing.T) {
	end := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	event := &model.Event{EndDate: model.NewDateTime(end)}

	t.Run("before end date is upcoming", func(t *testing.T) {
		assert.Equal(t, model.EventStatusUpcoming, event.StatusAt(end.Add(-time.Hour)))
	})

	t.Run("exactly at end date is upcoming", func(t *testing.T) {
		// completed 需要嚴格晚於 end_date
		assert.Equal(t, model.EventStatusUpcoming, event.StatusAt(end))
	})

	t.Run("after end date is completed", func(t *testing.T) {
		assert.Equal(t, model.EventStatusCompleted, event.StatusAt(end.Add(time.Second)))
	})
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, model.StatusFilterCompleted, model.ParseStatusFilter("completed"))
	assert.Equal(t, model.StatusFilterUpcoming, model.ParseStatusFilter("upcoming"))
	assert.Equal(t, model.StatusFilterNone, model.ParseStatusFilter(""))
	assert.Equal(t, model.StatusFilterNone, model.ParseStatusFilter("cancelled"))
}

func TestDateTimeJSON(t *testing.T) {
	t.Run("marshals with fixed layout", func(t *testing.T) {
		d := model.NewDateTime(time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC))
		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-01 10:30:00"`, string(b))
	})

	t.Run("unmarshals the same layout", func(t *testing.T) {
		var d model.DateTime
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-01 10:30:00"`), &d))
		assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), d.Time)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d model.DateTime
		assert.Error(t, json.Unmarshal([]byte(`"2025-03-01T10:30:00Z"`), &d))
	})
}

func TestParseDateTime(t *testing.T) {
	d, err := model.ParseDateTime("2025-12-31 23:59:59")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), d.Time)

	_, err = model.ParseDateTime("2025-12-31")
	assert.Error(t, err)
}

func TestTagsRoundTrip(t *testing.T) {
	t.Run("preserves membership and order", func(t *testing.T) {
		tags := model.Tags{"Networking", "Tech Event", "Others"}

		encoded, err := tags.Encode()
		require.NoError(t, err)

		decoded, err := model.DecodeTags(encoded)
		require.NoError(t, err)
		assert.Equal(t, tags, decoded)
	})

	t.Run("nil encodes as empty set", func(t *testing.T) {
		var tags model.Tags
		encoded, err := tags.Encode()
		require.NoError(t, err)
		assert.Equal(t, "[]", encoded)
	})

	t.Run("empty text decodes as empty set", func(t *testing.T) {
		decoded, err := model.DecodeTags("")
		require.NoError(t, err)
		assert.Equal(t, model.Tags{}, decoded)
	})

	t.Run("rejects malformed text", func(t *testing.T) {
		_, err := model.DecodeTags("{not json")
		assert.Error(t, err)
	})
}

func TestUpdateEventParamsIsEmpty(t *testing.T) {
	assert.True(t, model.UpdateEventParams{}.IsEmpty())

	name := "Renamed"
	assert.False(t, model.UpdateEventParams{Name: &name}.IsEmpty())
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, model.EventTypes, 14)
	assert.Len(t, model.EventTags, 9)
	assert.Equal(t, "Conference", model.EventTypes[0])
	assert.Equal(t, "Festival", model.EventTypes[13])
	assert.Equal(t, "Networking", model.EventTags[0])
	assert.Equal(t, "Others", model.EventTags[8])
}
