package event

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makePhotos(n int) []Photo {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	photos := make([]Photo, n)
	for i := range photos {
		photos[i] = Photo{
			ID:           fmt.Sprintf("photo-%02d", i),
			URL:          fmt.Sprintf("https://cdn.example/photo-%02d.jpg", i),
			LastModified: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return photos
}

func TestPaginateWalksWholeSequence(t *testing.T) {
	photos := makePhotos(25)

	page1 := paginate(photos, PageRequest{Limit: 10})
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, "10", page1.NextCursor)
	assert.Equal(t, "photo-00", page1.Items[0].ID)

	page2 := paginate(photos, PageRequest{Limit: 10, Cursor: page1.NextCursor})
	assert.Len(t, page2.Items, 10)
	assert.Equal(t, 25, page2.Total)
	assert.Equal(t, "20", page2.NextCursor)
	assert.Equal(t, "photo-10", page2.Items[0].ID)

	page3 := paginate(photos, PageRequest{Limit: 10, Cursor: page2.NextCursor})
	assert.Len(t, page3.Items, 5)
	assert.Equal(t, 25, page3.Total)
	assert.Empty(t, page3.NextCursor)
	assert.Equal(t, "photo-24", page3.Items[4].ID)
}

func TestPaginateLimitClamping(t *testing.T) {
	photos := makePhotos(30)

	assert.Len(t, paginate(photos, PageRequest{}).Items, DefaultPageLimit)
	assert.Len(t, paginate(photos, PageRequest{Limit: -5}).Items, 1)
	assert.Len(t, paginate(photos, PageRequest{Limit: 1000}).Items, 30)

	page := paginate(makePhotos(150), PageRequest{Limit: 1000})
	assert.Len(t, page.Items, MaxPageLimit)
	assert.Equal(t, strconv.Itoa(MaxPageLimit), page.NextCursor)
}

func TestPaginateOffsetAndPage(t *testing.T) {
	photos := makePhotos(25)

	byOffset := paginate(photos, PageRequest{Limit: 10, Offset: "20"})
	assert.Len(t, byOffset.Items, 5)
	assert.Empty(t, byOffset.NextCursor)

	byPage := paginate(photos, PageRequest{Limit: 10, Page: "3"})
	assert.Equal(t, byOffset.Items, byPage.Items)

	// cursor wins over offset, offset wins over page
	mixed := paginate(photos, PageRequest{Limit: 10, Cursor: "0", Offset: "20", Page: "3"})
	assert.Equal(t, "photo-00", mixed.Items[0].ID)
	mixed = paginate(photos, PageRequest{Limit: 10, Offset: "10", Page: "3"})
	assert.Equal(t, "photo-10", mixed.Items[0].ID)
}

func TestPaginateEdgeCases(t *testing.T) {
	photos := makePhotos(5)

	past := paginate(photos, PageRequest{Limit: 10, Cursor: "99"})
	assert.Empty(t, past.Items)
	assert.Empty(t, past.NextCursor)
	assert.Equal(t, 5, past.Total)

	// negative and non-numeric inputs clamp to the start
	assert.Equal(t, "photo-00", paginate(photos, PageRequest{Cursor: "-3"}).Items[0].ID)
	assert.Equal(t, "photo-00", paginate(photos, PageRequest{Offset: "junk"}).Items[0].ID)
	assert.Equal(t, "photo-00", paginate(photos, PageRequest{Page: "-1"}).Items[0].ID)
	assert.Equal(t, "photo-00", paginate(photos, PageRequest{Page: "zero"}).Items[0].ID)

	empty := paginate(nil, PageRequest{})
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.NextCursor)
}
