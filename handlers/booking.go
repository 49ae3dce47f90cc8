package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookable/models"
	"bookable/services/booking"
	"bookable/utils"
)

// BookingHandler maps HTTP requests onto the booking service.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// GetConfig returns the public booking configuration.
func (h *BookingHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.PublicConfig())
}

// GetSlots returns the available slots for the default window.
func (h *BookingHandler) GetSlots(c *gin.Context) {
	slots, err := h.Service.AvailableSlots(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to compute available slots", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch available slots", "")
		return
	}
	if slots == nil {
		slots = []models.AvailableSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateBooking validates and commits a booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		var vErr *booking.ValidationError
		var cErr *booking.ConflictError
		switch {
		case errors.As(err, &vErr):
			utils.JSONError(c, http.StatusBadRequest, vErr.Message, "")
		case errors.As(err, &cErr):
			utils.JSONError(c, http.StatusConflict, cErr.Message, "")
		default:
			h.Logger.Error("booking failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Failed to create booking", "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting booked successfully",
		"event":   event,
	})
}
