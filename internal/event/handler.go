package event

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keepsly/service/internal/response"
)

// Handler holds HTTP handlers for event and photo endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler creates a new event Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

type createEventRequest struct {
	EventName string `json:"eventName" validate:"required" example:"Sara's wedding"`
	MaxPhotos any    `json:"maxPhotos" swaggertype:"integer" example:"10"`
	Duration  string `json:"duration"  validate:"required,oneof=1d 3d 7d 14d 30d" example:"7d"`
}

type createEventData struct {
	EventID        string    `json:"eventId"        example:"V1StGXR8_Z"`
	HostKey        string    `json:"hostKey"        example:"bUKfi9vXT2pV8A3mQw4Lc"`
	Name           string    `json:"name"           example:"Sara's wedding"`
	MaxPhotos      int       `json:"maxPhotos"      example:"10"`
	UploadDeadline time.Time `json:"uploadDeadline"`
}

// eventDisplay holds the guest-visible metadata fields. When the event
// document does not exist the name and deadline stay null and the cap falls
// back to the default, mirroring what guests see for a dead link.
type eventDisplay struct {
	EventName      *string    `json:"eventName"`
	MaxPhotos      int        `json:"maxPhotos"`
	UploadDeadline *time.Time `json:"uploadDeadline"`
	BannerURL      string     `json:"bannerUrl,omitempty"`
}

func displayFor(ev *Event) eventDisplay {
	d := eventDisplay{MaxPhotos: DefaultPhotoCap}
	if ev == nil {
		return d
	}
	d.EventName = &ev.Name
	d.MaxPhotos = ev.MaxPhotos
	if !ev.UploadDeadline.IsZero() {
		deadline := ev.UploadDeadline
		d.UploadDeadline = &deadline
	}
	d.BannerURL = ev.BannerURL
	return d
}

type galleryData struct {
	eventDisplay
	Photos []string `json:"photos"`
}

type galleryPageData struct {
	eventDisplay
	Photos     []Photo `json:"photos"`
	Total      int     `json:"total"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

type uploadData struct {
	PhotoID string `json:"photoId" example:"fV_9aB3kQx"`
}

type manageData struct {
	EventID        string    `json:"eventId"`
	HostKey        string    `json:"hostKey"`
	EventName      string    `json:"eventName"`
	MaxPhotos      int       `json:"maxPhotos"`
	UploadDeadline time.Time `json:"uploadDeadline"`
	BannerURL      string    `json:"bannerUrl,omitempty"`
	Photos         []Photo   `json:"photos"`
}

type bannerData struct {
	BannerURL string `json:"bannerUrl"`
}

// Create godoc
//
//	@Summary		Create event
//	@Description	Creates a photo gallery with a photo cap (clamped to 5–15) and an upload deadline derived from the duration code. The host key in the response is shown exactly once.
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createEventRequest	true	"Event settings"
//	@Success		201		{object}	response.Envelope{data=createEventData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, createRequestMessage(err))
		return
	}

	ev, err := h.svc.Create(r.Context(), req.EventName, req.Duration, CoercePhotoCap(req.MaxPhotos))
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Location", "/events/"+ev.ID)
	response.Created(w, createEventData{
		EventID:        ev.ID,
		HostKey:        ev.HostKey,
		Name:           ev.Name,
		MaxPhotos:      ev.MaxPhotos,
		UploadDeadline: ev.UploadDeadline,
	})
}

// createRequestMessage maps a validation failure to the message for the field
// that caused it.
func createRequestMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "EventName":
				return ErrNameRequired.Error()
			case "Duration":
				return ErrInvalidDuration.Error()
			}
		}
	}
	return "invalid request body"
}

// Gallery godoc
//
//	@Summary		List event photos
//	@Description	Returns the event display fields plus the photo gallery, newest first. With limit, cursor, offset or page the gallery is returned as one page; the cursor from a previous page takes precedence over offset, which takes precedence over page.
//	@Tags			photos
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Param			limit	query		int		false	"Page size, clamped to [1,100]"	default(20)
//	@Param			cursor	query		string	false	"Cursor from a previous page"
//	@Param			offset	query		int		false	"Zero-based offset"
//	@Param			page	query		int		false	"One-based page number"
//	@Success		200		{object}	response.Envelope{data=galleryPageData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/photos [get]
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	q := r.URL.Query()

	paginated := q.Has("limit") || q.Has("cursor") || q.Has("offset") || q.Has("page")
	if !paginated {
		ev, photos, err := h.svc.Gallery(r.Context(), eventID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		urls := make([]string, 0, len(photos))
		for _, p := range photos {
			urls = append(urls, p.URL)
		}
		response.OK(w, galleryData{eventDisplay: displayFor(ev), Photos: urls})
		return
	}

	req := PageRequest{
		Limit:  atoiOr(q.Get("limit"), 0),
		Cursor: q.Get("cursor"),
		Offset: q.Get("offset"),
		Page:   q.Get("page"),
	}
	ev, page, err := h.svc.GalleryPage(r.Context(), eventID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, galleryPageData{
		eventDisplay: displayFor(ev),
		Photos:       page.Items,
		Total:        page.Total,
		NextCursor:   page.NextCursor,
	})
}

// Upload godoc
//
//	@Summary		Upload photo
//	@Description	Accepts raw image bytes and stores them under a fresh photo id after the deadline and capacity checks pass.
//	@Tags			photos
//	@Accept			octet-stream
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Success		201		{object}	response.Envelope{data=uploadData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/photos [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}

	photoID, err := h.svc.Upload(r.Context(), eventID, body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.Created(w, uploadData{PhotoID: photoID})
}

// UploadURL godoc
//
//	@Summary		Get direct upload URL
//	@Description	Returns a 600-second presigned URL for PUTting the photo bytes straight to the object store. This path skips the capacity check because the bytes never pass through the service.
//	@Tags			photos
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Param			photoId	path		string	true	"Client-chosen photo ID"
//	@Success		200		{object}	response.Envelope{data=PresignedUpload}
//	@Failure		400		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/photos/{photoId}/upload-url [get]
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	photoID := chi.URLParam(r, "photoId")

	upload, err := h.svc.PresignUpload(r.Context(), eventID, photoID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, upload)
}

// Delete godoc
//
//	@Summary		Delete photo
//	@Description	Removes a photo. Requires the event's host key; deleting an id that is already gone still succeeds.
//	@Tags			photos
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Param			photoId	path		string	true	"Photo ID"
//	@Param			key		query		string	true	"Host key"
//	@Success		200		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/photos/{photoId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	photoID := chi.URLParam(r, "photoId")
	key := r.URL.Query().Get("key")

	if err := h.svc.DeletePhoto(r.Context(), eventID, photoID, key); err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, map[string]bool{"deleted": true})
}

// Manage godoc
//
//	@Summary		Host management view
//	@Description	Returns the full event document (host key echoed back) plus the photo list. Requires the host key.
//	@Tags			events
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Param			key		query		string	true	"Host key"
//	@Success		200		{object}	response.Envelope{data=manageData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/manage [get]
func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	key := r.URL.Query().Get("key")

	ev, photos, err := h.svc.Manage(r.Context(), eventID, key)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, manageData{
		EventID:        ev.ID,
		HostKey:        ev.HostKey,
		EventName:      ev.Name,
		MaxPhotos:      ev.MaxPhotos,
		UploadDeadline: ev.UploadDeadline,
		BannerURL:      ev.BannerURL,
		Photos:         photos,
	})
}

// SetBanner godoc
//
//	@Summary		Set event banner
//	@Description	Accepts raw image bytes, stores them at the event's banner slot and records the public URL in the event document. Requires the host key.
//	@Tags			events
//	@Accept			octet-stream
//	@Produce		json
//	@Param			eventId	path		string	true	"Event ID"
//	@Param			key		query		string	true	"Host key"
//	@Success		200		{object}	response.Envelope{data=bannerData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/{eventId}/banner [post]
func (h *Handler) SetBanner(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	key := r.URL.Query().Get("key")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}

	url, err := h.svc.SetBanner(r.Context(), eventID, key, body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, bannerData{BannerURL: url})
}

// respondError maps domain errors onto the HTTP taxonomy: shape errors are
// 400, the key checks are 401/403, deadline and capacity rejections are 403,
// and anything else is a logged 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEventID),
		errors.Is(err, ErrInvalidPhotoID),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrEmptyUpload):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrKeyRequired):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrDeadlinePassed),
		errors.Is(err, ErrCapacityReached):
		response.Forbidden(w, err.Error())
	default:
		slog.Error("event handler", "error", err)
		response.InternalError(w)
	}
}
