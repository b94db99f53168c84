package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yumres/models"
	availabilitySvc "yumres/services/availability"
	reservationSvc "yumres/services/reservation"
)

// ReservationHandler exposes reservation CRUD and availability lookups for
// the dashboard.
type ReservationHandler struct {
	Service      *reservationSvc.Service
	Availability *availabilitySvc.Service
}

func NewReservationHandler(service *reservationSvc.Service, availability *availabilitySvc.Service) *ReservationHandler {
	return &ReservationHandler{Service: service, Availability: availability}
}

// ListReservationsHandler returns reservations filtered by date, status, or
// customer.
func (h *ReservationHandler) ListReservationsHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	filter := models.ReservationFilter{
		Date:       c.Query("date"),
		Status:     c.Query("status"),
		CustomerID: c.Query("customerId"),
	}
	reservations, err := h.Service.List(c.Request.Context(), restaurantID, filter)
	if err != nil {
		logger.Error("Failed to list reservations", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// GetReservationHandler returns a single reservation.
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	id := c.Param("id")

	reservation, err := h.Service.GetByID(c.Request.Context(), restaurantID, id)
	if err != nil {
		logger.Error("Reservation not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CreateReservationHandler creates a dashboard reservation.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	var reservation models.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.Create(c.Request.Context(), restaurantID, &reservation)
	if err != nil {
		logger.Error("Failed to create reservation", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReservationHandler applies a partial update to a reservation.
func (h *ReservationHandler) UpdateReservationHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.Service.Update(c.Request.Context(), restaurantID, id, updates)
	if err != nil {
		logger.Error("Failed to update reservation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservationStatusHandler moves a reservation through its lifecycle.
func (h *ReservationHandler) UpdateReservationStatusHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	id := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.Service.UpdateStatus(c.Request.Context(), restaurantID, id, input.Status)
	if err != nil {
		logger.Error("Failed to update reservation status",
			zap.String("id", id), zap.String("status", input.Status), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservationHandler removes a reservation.
func (h *ReservationHandler) DeleteReservationHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	id := c.Param("id")

	if err := h.Service.Delete(c.Request.Context(), restaurantID, id); err != nil {
		logger.Error("Failed to delete reservation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

// CheckAvailabilityHandler answers a dashboard availability query. Time is
// optional; omit it to list all open slots for the day.
func (h *ReservationHandler) CheckAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	partySize, err := strconv.Atoi(c.DefaultQuery("partySize", "2"))
	if err != nil || partySize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "partySize must be a positive integer"})
		return
	}

	result, err := h.Availability.CheckAvailability(c.Request.Context(), restaurantID, date, c.Query("time"), partySize)
	if err != nil {
		logger.Error("Availability check failed", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}
	c.JSON(http.StatusOK, result)
}
