package event

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsly/service/internal/storage"
)

const testPublicBase = "http://localhost:9000/keepsly"

func newTestRepo(t *testing.T) (*Repository, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage(testPublicBase)
	return NewRepository(store), store
}

func TestMetaRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ev := &Event{
		ID:             "V1StGXR8_Z",
		Name:           "Sara's wedding",
		MaxPhotos:      12,
		UploadDeadline: time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC),
		BannerURL:      testPublicBase + "/events/V1StGXR8_Z/banner.jpg",
		HostKey:        "bUKfi9vXT2pV8A3mQw4Lc",
	}
	require.NoError(t, repo.SaveMeta(ctx, ev))

	got, err := repo.GetMeta(ctx, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ev, got)

	// saving again is an idempotent overwrite
	require.NoError(t, repo.SaveMeta(ctx, ev))
	got, err = repo.GetMeta(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestGetMetaMissingEvent(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetMeta(context.Background(), "never-created")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPhotosFiltersAndSorts(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	eventID := "V1StGXR8_Z"

	require.NoError(t, repo.SaveMeta(ctx, &Event{ID: eventID, Name: "party", MaxPhotos: 15, HostKey: "k"}))
	for _, id := range []string{"first00000", "second0000", "third00000"} {
		require.NoError(t, repo.PutPhoto(ctx, eventID, id, strings.NewReader("jpeg"), 4))
	}
	_, err := repo.PutBanner(ctx, eventID, strings.NewReader("banner"), 6)
	require.NoError(t, err)
	// a stray non-jpg key under the prefix is ignored
	require.NoError(t, store.Put(ctx, "events/"+eventID+"/notes.txt", strings.NewReader("x"), 1, "text/plain"))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.SetLastModified("events/"+eventID+"/first00000.jpg", base)
	store.SetLastModified("events/"+eventID+"/second0000.jpg", base.Add(time.Minute))
	store.SetLastModified("events/"+eventID+"/third00000.jpg", base.Add(2*time.Minute))

	photos, err := repo.ListPhotos(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	// newest first
	assert.Equal(t, "third00000", photos[0].ID)
	assert.Equal(t, "second0000", photos[1].ID)
	assert.Equal(t, "first00000", photos[2].ID)

	for _, p := range photos {
		assert.True(t, strings.HasSuffix(p.URL, ".jpg"))
		assert.False(t, strings.HasSuffix(p.URL, "banner.jpg"))
		assert.True(t, strings.HasPrefix(p.URL, testPublicBase+"/events/"+eventID+"/"))
	}
}

func TestListPhotosEmptyEvent(t *testing.T) {
	repo, _ := newTestRepo(t)

	photos, err := repo.ListPhotos(context.Background(), "V1StGXR8_Z")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestDeletePhotoIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	eventID := "V1StGXR8_Z"

	require.NoError(t, repo.PutPhoto(ctx, eventID, "fV_9aB3kQx", bytes.NewReader([]byte{1}), 1))
	require.NoError(t, repo.DeletePhoto(ctx, eventID, "fV_9aB3kQx"))

	photos, err := repo.ListPhotos(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	// deleting again, or deleting an id that never existed, still succeeds
	assert.NoError(t, repo.DeletePhoto(ctx, eventID, "fV_9aB3kQx"))
	assert.NoError(t, repo.DeletePhoto(ctx, eventID, "neverthere"))
}

func TestPutBannerReturnsPublicURL(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	url, err := repo.PutBanner(ctx, "V1StGXR8_Z", strings.NewReader("banner"), 6)
	require.NoError(t, err)
	assert.Equal(t, testPublicBase+"/events/V1StGXR8_Z/banner.jpg", url)

	data, err := store.Get(ctx, "events/V1StGXR8_Z/banner.jpg")
	require.NoError(t, err)
	assert.Equal(t, "banner", string(data))
}

func TestPresignPhotoPut(t *testing.T) {
	repo, _ := newTestRepo(t)

	uploadURL, publicURL, err := repo.PresignPhotoPut(context.Background(), "V1StGXR8_Z", "fV_9aB3kQx", UploadURLTTL)
	require.NoError(t, err)
	assert.Contains(t, uploadURL, "events/V1StGXR8_Z/fV_9aB3kQx.jpg")
	assert.Contains(t, uploadURL, "X-Amz-Expires=600")
	assert.Equal(t, testPublicBase+"/events/V1StGXR8_Z/fV_9aB3kQx.jpg", publicURL)
}
