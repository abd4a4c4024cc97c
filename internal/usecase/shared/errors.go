package shared

import "venue-booking/internal/pkg/errs"

var (
	ErrBookingNotFound   = errs.New("booking not found")
	ErrPersistenceFailed = errs.New("booking storage unavailable")
)
