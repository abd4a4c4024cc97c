package api

import (
	"net/http"

	reqdto "venue-booking/internal/handler/dto/request"
	resdto "venue-booking/internal/handler/dto/response"
	"venue-booking/internal/handler/httperr"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminBookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewAdminBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *AdminBookingHandler {
	return &AdminBookingHandler{cmds: cmds, q: q}
}

// @Summary List bookings
// @Description All bookings in submission order with per-status counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed, cancelled or all"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminBookingHandler) List(c *gin.Context) {
	list, err := h.q.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
		return
	}
	res, err := resdto.FromBookingList(list)
	renderJSON(c, http.StatusOK, res, err)
}

// @Summary Get booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [get]
func (h *AdminBookingHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	renderJSON(c, http.StatusOK, res, err)
}

// @Summary Change booking status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/status [patch]
func (h *AdminBookingHandler) ChangeStatus(c *gin.Context) {
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	renderJSON(c, http.StatusOK, res, err)
}

// @Summary Delete booking
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [delete]
func (h *AdminBookingHandler) Delete(c *gin.Context) {
	if err := h.cmds.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Send test notification
// @Description Sends a canned message through the configured channel
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.NotificationResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /admin/notifications/test [post]
func (h *AdminBookingHandler) SendTestNotification(c *gin.Context) {
	outcome := h.cmds.SendTestNotification(c.Request.Context())
	if !outcome.Delivered() {
		httperr.AbortWithError(c, http.StatusBadGateway, outcome.Err, "Test notification failed", nil)
		return
	}
	c.JSON(http.StatusOK, notificationResponse(outcome))
}

func abortWithBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, commands.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
	case errs.Is(err, commands.ErrSlotAlreadyConfirmed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Another booking is already confirmed for this date and time", nil)
	case errs.Is(err, commands.ErrPersistenceFailed):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, MsgStorageUnavailable, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// renderJSON writes res, or a 500 when it could not be mapped to its response DTO.
func renderJSON(c *gin.Context, status int, res any, err error) {
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
