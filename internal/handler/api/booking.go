package api

import (
	"net/http"
	"strconv"

	"venue-booking/internal/domain/booking"
	reqdto "venue-booking/internal/handler/dto/request"
	resdto "venue-booking/internal/handler/dto/response"
	"venue-booking/internal/handler/httperr"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/notification"
	"venue-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	MsgSlotUnavailable     = "La data e l'orario selezionati non sono disponibili. Seleziona un altro orario o data."
	MsgNotificationWarning = "Prenotazione salvata, ma non è stato possibile avvisare il gestore."
	MsgStorageUnavailable  = "Servizio di prenotazione temporaneamente non disponibile. Riprova più tardi."
)

type BookingHandler struct {
	cmds    commands.BookingCommands
	q       queries.BookingQueries
	catalog queries.CatalogQueries
	locale  booking.Locale
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, catalog queries.CatalogQueries, locale booking.Locale) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, catalog: catalog, locale: locale}
}

// @Summary Booking form options
// @Description Time slots, guest ranges and event types with labels
// @Tags bookings
// @Produce json
// @Param lang query string false "Label language (it, en)"
// @Success 200 {object} resdto.CatalogResponse
// @Router /catalog [get]
func (h *BookingHandler) Catalog(c *gin.Context) {
	locale := h.locale
	if lang := c.Query("lang"); lang != "" {
		locale = booking.ParseLocale(lang)
	}
	res, err := resdto.FromCatalogView(h.catalog.Catalog(locale))
	renderJSON(c, http.StatusOK, res, err)
}

// @Summary Slot availability
// @Description Whether each time slot of a date can still be requested
// @Tags bookings
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *BookingHandler) Availability(c *gin.Context) {
	view, err := h.q.Availability(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	res, err := resdto.FromAvailabilityView(view)
	renderJSON(c, http.StatusOK, res, err)
}

// @Summary Submit booking
// @Description Request a date and time slot. The operator is notified in the background.
// @Tags bookings
// @Accept json
// @Produce json
// @Param await_notification query bool false "Wait for the operator notification outcome"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.SubmitBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), commands.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		EventType: req.EventType,
		Message:   req.Message,
	})
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", fieldErrors(err))
		case errs.Is(err, commands.ErrSlotUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, MsgSlotUnavailable, nil)
		case errs.Is(err, commands.ErrPersistenceFailed):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, MsgStorageUnavailable, nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := resdto.FromBookingView(result.Booking)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	res := &resdto.SubmitBookingResponse{
		Booking:      view,
		Notification: &resdto.NotificationResponse{Status: "pending"},
	}

	if await, _ := strconv.ParseBool(c.Query("await_notification")); await {
		select {
		case outcome := <-result.Notification:
			res.Notification = notificationResponse(outcome)
		case <-c.Request.Context().Done():
		}
	}

	c.JSON(http.StatusCreated, res)
}

func notificationResponse(o notification.Outcome) *resdto.NotificationResponse {
	if o.Delivered() {
		return &resdto.NotificationResponse{Status: string(notification.StatusDelivered)}
	}
	return &resdto.NotificationResponse{
		Status:  string(notification.StatusFailed),
		Warning: MsgNotificationWarning,
	}
}

var fieldErrorTable = []struct {
	field string
	err   error
}{
	{"name", booking.ErrInvalidName},
	{"email", booking.ErrInvalidEmail},
	{"phone", booking.ErrInvalidPhone},
	{"date", booking.ErrInvalidDate},
	{"date", booking.ErrDateInPast},
	{"time", booking.ErrInvalidTimeSlot},
	{"guests", booking.ErrInvalidGuestRange},
	{"eventType", booking.ErrInvalidEventType},
	{"message", booking.ErrMessageTooLong},
}

func fieldErrors(err error) []resdto.FieldErrorResponse {
	var out []resdto.FieldErrorResponse
	for _, fe := range fieldErrorTable {
		if errs.Is(err, fe.err) {
			out = append(out, resdto.FieldErrorResponse{Field: fe.field, Message: fe.err.Error()})
		}
	}
	return out
}
