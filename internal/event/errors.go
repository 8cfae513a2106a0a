package event

import "errors"

// Shape errors: the caller sent something malformed. Never retried.
var (
	ErrInvalidEventID  = errors.New("invalid event id")
	ErrInvalidPhotoID  = errors.New("invalid photo id")
	ErrNameRequired    = errors.New("event name is required")
	ErrInvalidDuration = errors.New("invalid event duration")
	ErrEmptyUpload     = errors.New("no file provided")
)

// Policy errors: the request is well-formed but a business rule rejects it.
// Not transient, never retried.
var (
	ErrDeadlinePassed  = errors.New("upload deadline has passed")
	ErrCapacityReached = errors.New("photo limit reached for this event")
	ErrKeyRequired     = errors.New("host key required")
	ErrForbidden       = errors.New("invalid host key")
)
