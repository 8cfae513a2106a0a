package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/keepsly/service/internal/storage"
)

// Store key scheme. The layout is shared with every other reader of the
// bucket, so it must not change:
//
//	events/{eventId}/meta.json   event metadata document
//	events/{eventId}/{photoId}.jpg
//	events/{eventId}/banner.jpg  fixed banner slot, never listed as a photo
const (
	metaFileName   = "meta.json"
	bannerFileName = "banner.jpg"
	photoExt       = ".jpg"
)

// Repository translates event-shaped operations into object store calls.
type Repository struct {
	store storage.Storage
}

// NewRepository creates a Repository backed by the given store.
func NewRepository(store storage.Storage) *Repository {
	return &Repository{store: store}
}

func eventPrefix(eventID string) string {
	return "events/" + eventID + "/"
}

func metaKey(eventID string) string {
	return eventPrefix(eventID) + metaFileName
}

func photoKey(eventID, photoID string) string {
	return eventPrefix(eventID) + photoID + photoExt
}

func bannerKey(eventID string) string {
	return eventPrefix(eventID) + bannerFileName
}

// SaveMeta writes the event document. Used both at creation and for banner
// updates, which overwrite the whole document in place.
func (r *Repository) SaveMeta(ctx context.Context, ev *Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event meta: %w", err)
	}
	if err := r.store.Put(ctx, metaKey(ev.ID), bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return fmt.Errorf("save event meta: %w", err)
	}
	return nil
}

// GetMeta loads the event document. A missing document is not an error: the
// result is (nil, nil) and callers decide whether absence means "defaults"
// (guest reads) or "forbidden" (privileged operations).
func (r *Repository) GetMeta(ctx context.Context, eventID string) (*Event, error) {
	data, err := r.store.Get(ctx, metaKey(eventID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event meta: %w", err)
	}

	ev := &Event{}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decode event meta: %w", err)
	}
	return ev, nil
}

// PutPhoto persists a photo blob under the event's namespace.
func (r *Repository) PutPhoto(ctx context.Context, eventID, photoID string, body io.Reader, size int64) error {
	if err := r.store.Put(ctx, photoKey(eventID, photoID), body, size, "image/jpeg"); err != nil {
		return fmt.Errorf("put photo: %w", err)
	}
	return nil
}

// ListPhotos derives the gallery from a flat key listing: only ".jpg" keys
// count, the banner slot is excluded, and entries are sorted by last-modified
// descending (newest first). Entries with equal timestamps have no defined
// relative order.
func (r *Repository) ListPhotos(ctx context.Context, eventID string) ([]Photo, error) {
	prefix := eventPrefix(eventID)
	objects, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	photos := []Photo{}
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, photoExt) {
			continue
		}
		if strings.HasSuffix(obj.Key, bannerFileName) {
			continue
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		photos = append(photos, Photo{
			ID:           strings.TrimSuffix(name, photoExt),
			URL:          r.store.PublicURL(obj.Key),
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(photos, func(i, j int) bool {
		return photos[i].LastModified.After(photos[j].LastModified)
	})
	return photos, nil
}

// DeletePhoto removes a photo blob. Deleting an id that never existed is a
// no-op at the store level.
func (r *Repository) DeletePhoto(ctx context.Context, eventID, photoID string) error {
	if err := r.store.Delete(ctx, photoKey(eventID, photoID)); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// PutBanner persists the banner blob at its fixed slot and returns its public URL.
func (r *Repository) PutBanner(ctx context.Context, eventID string, body io.Reader, size int64) (string, error) {
	key := bannerKey(eventID)
	if err := r.store.Put(ctx, key, body, size, "image/jpeg"); err != nil {
		return "", fmt.Errorf("put banner: %w", err)
	}
	return r.store.PublicURL(key), nil
}

// PresignPhotoPut returns a time-limited URL for writing the photo blob
// directly to the store, plus the public URL the photo will have afterwards.
func (r *Repository) PresignPhotoPut(ctx context.Context, eventID, photoID string, expiry time.Duration) (uploadURL, publicURL string, err error) {
	key := photoKey(eventID, photoID)
	uploadURL, err = r.store.PresignedPut(ctx, key, expiry)
	if err != nil {
		return "", "", fmt.Errorf("presign photo put: %w", err)
	}
	return uploadURL, r.store.PublicURL(key), nil
}
