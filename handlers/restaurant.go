package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yumres/models"
	restaurantSvc "yumres/services/restaurant"
)

// RestaurantHandler exposes restaurant profile and table management
// endpoints.
type RestaurantHandler struct {
	Service *restaurantSvc.Service
}

func NewRestaurantHandler(service *restaurantSvc.Service) *RestaurantHandler {
	return &RestaurantHandler{Service: service}
}

// GetRestaurantHandler returns the authenticated restaurant's profile.
func (h *RestaurantHandler) GetRestaurantHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	restaurant, err := h.Service.GetProfile(c.Request.Context(), restaurantID)
	if err != nil {
		logger.Error("Failed to retrieve restaurant", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurantHandler applies a partial update to the restaurant profile.
func (h *RestaurantHandler) UpdateRestaurantHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	restaurant, err := h.Service.Update(c.Request.Context(), restaurantID, updates)
	if err != nil {
		logger.Error("Failed to update restaurant", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// ListTablesHandler returns the restaurant's tables. Pass ?active=true to
// restrict to active tables.
func (h *RestaurantHandler) ListTablesHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	tables, err := h.Service.GetTables(c.Request.Context(), restaurantID, activeOnly)
	if err != nil {
		logger.Error("Failed to list tables", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

// CreateTableHandler adds a table to the restaurant.
func (h *RestaurantHandler) CreateTableHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")

	var table models.Table
	if err := c.ShouldBindJSON(&table); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if table.Capacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Table capacity must be positive"})
		return
	}

	created, err := h.Service.CreateTable(c.Request.Context(), restaurantID, &table)
	if err != nil {
		logger.Error("Failed to create table", zap.String("restaurantID", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTableHandler applies a partial update to an existing table.
func (h *RestaurantHandler) UpdateTableHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	tableID := c.Param("tableId")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateTable(c.Request.Context(), restaurantID, tableID, updates); err != nil {
		logger.Error("Failed to update table",
			zap.String("restaurantID", restaurantID), zap.String("tableID", tableID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table updated"})
}

// DeleteTableHandler removes a table.
func (h *RestaurantHandler) DeleteTableHandler(c *gin.Context) {
	logger := getLogger(c)
	restaurantID := c.GetString("restaurantID")
	tableID := c.Param("tableId")

	if err := h.Service.DeleteTable(c.Request.Context(), restaurantID, tableID); err != nil {
		logger.Error("Failed to delete table",
			zap.String("restaurantID", restaurantID), zap.String("tableID", tableID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
