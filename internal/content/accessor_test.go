package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editfolio/editfolio-backend/internal/store"
)

func newTestAccessor() (*Accessor, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	acc := NewAccessor(mem)
	return acc, mem
}

func TestSaveCreateStampsTimestamps(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	id, err := acc.Save(ctx, CollectionSections, store.Fields{"name": "Reels"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := mem.GetOnce(ctx, CollectionSections, id)
	require.NoError(t, err)
	assert.Equal(t, "Reels", got["name"])
	assert.IsType(t, time.Time{}, got["createdAt"])
	assert.IsType(t, time.Time{}, got["updatedAt"])
}

func TestSaveUpdateMergesAndRefreshesUpdatedAt(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	acc.now = func() time.Time { return base }

	id, err := acc.Save(ctx, CollectionPortfolioItems, store.Fields{
		"title":     "Showreel",
		"videoUrl":  "https://youtube.com/embed/x",
		"sectionId": "sec1",
		"tools":     "Premiere",
	})
	require.NoError(t, err)

	acc.now = func() time.Time { return base.Add(time.Minute) }
	_, err = acc.Save(ctx, CollectionPortfolioItems, store.Fields{
		"id":        id,
		"title":     "Showreel",
		"videoUrl":  "https://youtube.com/embed/x",
		"sectionId": "sec1",
		"client":    "ACME",
	})
	require.NoError(t, err)

	got, err := mem.GetOnce(ctx, CollectionPortfolioItems, id)
	require.NoError(t, err)
	assert.Equal(t, "Premiere", got["tools"], "omitted field preserved by merge")
	assert.Equal(t, "ACME", got["client"])
	created := got["createdAt"].(time.Time)
	updated := got["updatedAt"].(time.Time)
	assert.True(t, updated.After(created), "updatedAt must advance past createdAt")
	assert.Equal(t, base, created, "createdAt is only stamped on create")
}

func TestSavePartialUpdateSkipsAbsentFields(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	id, err := acc.Save(ctx, CollectionPortfolioItems, store.Fields{
		"title":     "Showreel",
		"videoUrl":  "https://youtube.com/embed/x",
		"sectionId": "sec1",
	})
	require.NoError(t, err)

	// a merge-update carrying only one field must not trip the required
	// checks for everything it leaves out
	_, err = acc.Save(ctx, CollectionPortfolioItems, store.Fields{"id": id, "client": "ACME"})
	require.NoError(t, err)

	got, err := mem.GetOnce(ctx, CollectionPortfolioItems, id)
	require.NoError(t, err)
	assert.Equal(t, "ACME", got["client"])
	assert.Equal(t, "Showreel", got["title"], "untouched field survives the merge")
}

func TestSavePartialUpdateStillChecksPresentFields(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	id, err := acc.Save(ctx, CollectionSkills, store.Fields{"name": "Resolve", "level": 70})
	require.NoError(t, err)

	var verr *ValidationError

	// blanking out a required text field is still refused
	_, err = acc.Save(ctx, CollectionSkills, store.Fields{"id": id, "name": "  "})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	// and range checks apply to whatever the payload does carry
	_, err = acc.Save(ctx, CollectionSkills, store.Fields{"id": id, "level": 120})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "level", verr.Field)

	got, err := mem.GetOnce(ctx, CollectionSkills, id)
	require.NoError(t, err)
	assert.Equal(t, "Resolve", got["name"])
	assert.Equal(t, float64(70), got["level"])
}

func TestSaveRejectsMissingRequiredFields(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	tests := []struct {
		name       string
		collection string
		rec        store.Fields
		field      string
	}{
		{"portfolio item without videoUrl", CollectionPortfolioItems, store.Fields{"title": "X", "sectionId": "s"}, "videoUrl"},
		{"portfolio item without sectionId", CollectionPortfolioItems, store.Fields{"title": "X", "videoUrl": "u"}, "sectionId"},
		{"section with blank name", CollectionSections, store.Fields{"name": "   "}, "name"},
		{"skill without level", CollectionSkills, store.Fields{"name": "Premiere"}, "level"},
		{"faq without answer", CollectionFAQs, store.Fields{"question": "q"}, "answer"},
		{"review without rating", CollectionReviews, store.Fields{"name": "Sam", "review": "Nice"}, "rating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := acc.Save(ctx, tt.collection, tt.rec)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)

			docs, err := mem.List(ctx, tt.collection)
			require.NoError(t, err)
			assert.Empty(t, docs, "no store call may happen on validation failure")
		})
	}
}

func TestSaveCoercesNumericFields(t *testing.T) {
	acc, mem := newTestAccessor()
	ctx := context.Background()

	id, err := acc.Save(ctx, CollectionSkills, store.Fields{"name": "DaVinci", "level": "85"})
	require.NoError(t, err)

	got, err := mem.GetOnce(ctx, CollectionSkills, id)
	require.NoError(t, err)
	assert.Equal(t, float64(85), got["level"])
}

func TestSaveRejectsOutOfRangeNumbers(t *testing.T) {
	acc, _ := newTestAccessor()
	ctx := context.Background()

	_, err := acc.Save(ctx, CollectionSkills, store.Fields{"name": "X", "level": 120})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = acc.Save(ctx, CollectionReviews, store.Fields{"name": "Sam", "review": "ok", "rating": 0})
	require.ErrorAs(t, err, &verr)
}

func TestRemoveGuardsEmptyID(t *testing.T) {
	acc, _ := newTestAccessor()
	err := acc.Remove(context.Background(), CollectionStats, "")
	require.ErrorIs(t, err, store.ErrMissingID)
}

func TestUnknownCollectionRejected(t *testing.T) {
	acc, _ := newTestAccessor()
	ctx := context.Background()

	_, err := acc.Save(ctx, "not_a_collection", store.Fields{"name": "x"})
	require.ErrorIs(t, err, ErrUnknownCollection)
	err = acc.Remove(ctx, "not_a_collection", "id")
	require.ErrorIs(t, err, ErrUnknownCollection)
	_, err = acc.Query(ctx, "not_a_collection")
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestTypedWrappers(t *testing.T) {
	acc, _ := newTestAccessor()
	ctx := context.Background()

	secID, err := acc.SaveSection(ctx, "Commercials")
	require.NoError(t, err)

	itemID, err := acc.SavePortfolioItem(ctx, PortfolioItem{
		Title:     "Brand Spot",
		VideoURL:  "https://youtube.com/embed/abc",
		SectionID: secID,
	})
	require.NoError(t, err)

	recs, err := acc.Query(ctx, CollectionPortfolioItems)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, itemID, recs[0]["id"])
	assert.Equal(t, secID, recs[0]["sectionId"])

	_, err = acc.SaveReview(ctx, Review{Name: "Sam", Review: "Superb", Rating: 5})
	require.NoError(t, err)

	require.NoError(t, acc.DeletePortfolioItem(ctx, itemID))
	recs, err = acc.Query(ctx, CollectionPortfolioItems)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
