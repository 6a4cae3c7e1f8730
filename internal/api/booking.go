package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vtc-portal/internal/booking"
	"vtc-portal/internal/validator"
)

type updateBookingStatusRequest struct {
	Status booking.Status `json:"status" validate:"required,oneof=pending approved rejected hold"`
}

func (h *handlers) ListEvents(c *gin.Context) {
	events, err := h.bookings.ListEvents(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list events")
		InternalServerError(c)
		return
	}
	SuccessResponse(c, events)
}

func (h *handlers) ListBookings(c *gin.Context) {
	events, err := h.bookings.ListEventsWithBookings(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list bookings")
		InternalServerError(c)
		return
	}
	SuccessResponse(c, events)
}

func (h *handlers) CreateBooking(c *gin.Context) {
	var input booking.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequestError(c, msgInvalidJSON, nil)
		return
	}

	eventID, areaID := c.Param("eventId"), c.Param("areaId")
	res, err := h.bookings.CreateBooking(c.Request.Context(), eventID, areaID, input)
	if err != nil {
		h.log.Error().Err(err).Str("event_id", eventID).Str("area_id", areaID).Msg("failed to create booking")
		InternalServerError(c)
		return
	}

	c.JSON(resultStatus(res.Success, res.NotFound, http.StatusCreated), res)
}

func (h *handlers) UpdateBookingStatus(c *gin.Context) {
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, msgInvalidJSON, nil)
		return
	}
	if fieldErrors := validator.Validate(c.Request.Context(), req, nil); fieldErrors != nil {
		BadRequestError(c, "Invalid status update.", fieldErrors)
		return
	}

	eventID, areaID, bookingID := c.Param("eventId"), c.Param("areaId"), c.Param("bookingId")
	res, err := h.bookings.UpdateBookingStatus(c.Request.Context(), eventID, areaID, bookingID, req.Status)
	if err != nil {
		h.log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to update booking status")
		InternalServerError(c)
		return
	}

	c.JSON(resultStatus(res.Success, res.NotFound, http.StatusOK), res)
}

func (h *handlers) DeleteBooking(c *gin.Context) {
	eventID, areaID, bookingID := c.Param("eventId"), c.Param("areaId"), c.Param("bookingId")
	res, err := h.bookings.DeleteBooking(c.Request.Context(), eventID, areaID, bookingID)
	if err != nil {
		h.log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to delete booking")
		InternalServerError(c)
		return
	}

	c.JSON(resultStatus(res.Success, res.NotFound, http.StatusOK), res)
}
