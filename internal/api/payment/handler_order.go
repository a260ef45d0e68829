package payment

import (
	"errors"
	"net/http"

	"payments-app/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetOrder returns the read-only order projection. GET /payment/order/:id
func (h *Handler) GetOrder(c *gin.Context) {
	var order orders.Order
	err := h.db.Where("id = ?", c.Param("id")).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   newOrderView(&order),
	})
}
