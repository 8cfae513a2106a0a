package event

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
)

// UploadURLTTL is how long a presigned direct-upload URL stays valid. After
// this window the store itself rejects the write.
const UploadURLTTL = 600 * time.Second

// Service contains the business rules for event galleries: creation,
// listing, the upload gate and host-key authorization.
type Service struct {
	repo *Repository
}

// NewService creates a new event Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// PresignedUpload is the result of preparing a direct-to-store upload.
type PresignedUpload struct {
	PhotoID   string `json:"photoId"`
	UploadURL string `json:"uploadUrl"`
	PhotoURL  string `json:"photoUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// Create generates a new event: fresh id and host key, clamped photo cap,
// deadline computed from the duration code. The host key in the returned
// event is shown to the caller exactly once.
func (s *Service) Create(ctx context.Context, name, durationCode string, maxPhotos int) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	duration, err := ParseDuration(durationCode)
	if err != nil {
		return nil, err
	}

	ev := &Event{
		ID:             NewID(IDLength),
		Name:           name,
		MaxPhotos:      ClampPhotoCap(maxPhotos),
		UploadDeadline: time.Now().Add(duration).UTC().Truncate(time.Second),
		HostKey:        NewID(HostKeyLength),
	}

	if err := s.repo.SaveMeta(ctx, ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return ev, nil
}

// Gallery returns the event metadata (nil when the event was never created)
// and the full sorted photo list. The full list is intentionally unbounded;
// the photo cap is enforced at upload time only.
func (s *Service) Gallery(ctx context.Context, eventID string) (*Event, []Photo, error) {
	if !ValidEventID(eventID) {
		return nil, nil, ErrInvalidEventID
	}

	ev, err := s.repo.GetMeta(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	photos, err := s.repo.ListPhotos(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	return ev, photos, nil
}

// GalleryPage returns one window of the sorted photo sequence.
func (s *Service) GalleryPage(ctx context.Context, eventID string, req PageRequest) (*Event, Page, error) {
	ev, photos, err := s.Gallery(ctx, eventID)
	if err != nil {
		return nil, Page{}, err
	}
	return ev, paginate(photos, req), nil
}

// Upload runs the full gate and persists the photo when every check passes.
//
// Gate order: event id shape, deadline, capacity, non-empty body. An event
// without a metadata document gets the defaults (cap 5, no deadline).
//
// The capacity count and the write are separate store calls with no
// transaction between them, so concurrent uploads near the cap can both pass
// the check and overshoot MaxPhotos. Accepted: the cap is a soft bound.
func (s *Service) Upload(ctx context.Context, eventID string, body []byte) (string, error) {
	if !ValidEventID(eventID) {
		return "", ErrInvalidEventID
	}

	ev, err := s.repo.GetMeta(ctx, eventID)
	if err != nil {
		return "", err
	}

	if ev != nil && !ev.UploadDeadline.IsZero() && time.Now().After(ev.UploadDeadline) {
		return "", ErrDeadlinePassed
	}

	maxPhotos := DefaultPhotoCap
	if ev != nil {
		maxPhotos = ev.MaxPhotos
	}
	photos, err := s.repo.ListPhotos(ctx, eventID)
	if err != nil {
		return "", err
	}
	if len(photos) >= maxPhotos {
		return "", ErrCapacityReached
	}

	if len(body) == 0 {
		return "", ErrEmptyUpload
	}

	photoID := NewID(IDLength)
	if err := s.repo.PutPhoto(ctx, eventID, photoID, bytes.NewReader(body), int64(len(body))); err != nil {
		return "", err
	}
	return photoID, nil
}

// PresignUpload prepares a direct-to-store upload for a client-chosen photo
// id. Only the shape and deadline checks run here: the bytes never pass
// through the service, so the capacity gate cannot see them and is
// deliberately not applied on this path.
func (s *Service) PresignUpload(ctx context.Context, eventID, photoID string) (PresignedUpload, error) {
	if !ValidEventID(eventID) {
		return PresignedUpload{}, ErrInvalidEventID
	}
	if !ValidPhotoID(photoID) {
		return PresignedUpload{}, ErrInvalidPhotoID
	}

	ev, err := s.repo.GetMeta(ctx, eventID)
	if err != nil {
		return PresignedUpload{}, err
	}
	if ev != nil && !ev.UploadDeadline.IsZero() && time.Now().After(ev.UploadDeadline) {
		return PresignedUpload{}, ErrDeadlinePassed
	}

	uploadURL, photoURL, err := s.repo.PresignPhotoPut(ctx, eventID, photoID, UploadURLTTL)
	if err != nil {
		return PresignedUpload{}, err
	}
	return PresignedUpload{
		PhotoID:   photoID,
		UploadURL: uploadURL,
		PhotoURL:  photoURL,
		ExpiresIn: int(UploadURLTTL.Seconds()),
	}, nil
}

// Authorize gates host-only operations. Possession of the exact host key is
// the entire trust boundary: the comparison is a plain string equality
// against the stored secret, and a missing metadata document fails closed.
func (s *Service) Authorize(ctx context.Context, eventID, key string) (*Event, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	ev, err := s.repo.GetMeta(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil || ev.HostKey != key {
		return nil, ErrForbidden
	}
	return ev, nil
}

// DeletePhoto removes a photo after host-key authorization. Deleting an id
// that is already gone succeeds.
func (s *Service) DeletePhoto(ctx context.Context, eventID, photoID, key string) error {
	if !ValidEventID(eventID) {
		return ErrInvalidEventID
	}
	if !ValidPhotoID(photoID) {
		return ErrInvalidPhotoID
	}
	if _, err := s.Authorize(ctx, eventID, key); err != nil {
		return err
	}
	return s.repo.DeletePhoto(ctx, eventID, photoID)
}

// Manage returns the full event document plus the photo list for the host
// view. Unlike Gallery, the host key is echoed back so the page can keep it.
func (s *Service) Manage(ctx context.Context, eventID, key string) (*Event, []Photo, error) {
	if !ValidEventID(eventID) {
		return nil, nil, ErrInvalidEventID
	}
	ev, err := s.Authorize(ctx, eventID, key)
	if err != nil {
		return nil, nil, err
	}
	photos, err := s.repo.ListPhotos(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	return ev, photos, nil
}

// SetBanner stores the banner blob at its fixed slot and records its public
// URL in the event document. The metadata write is an overwrite of the whole
// document; if it fails after the blob write, the blob stays with no
// compensation step.
func (s *Service) SetBanner(ctx context.Context, eventID, key string, body []byte) (string, error) {
	if !ValidEventID(eventID) {
		return "", ErrInvalidEventID
	}
	ev, err := s.Authorize(ctx, eventID, key)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", ErrEmptyUpload
	}

	url, err := s.repo.PutBanner(ctx, eventID, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", err
	}

	ev.BannerURL = url
	if err := s.repo.SaveMeta(ctx, ev); err != nil {
		return "", err
	}
	return url, nil
}
