package order_controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// GetOrders godoc
// @Summary List orders (CMS)
// @Description Returns orders for the CMS table view, newest first, with optional status filter
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param status query string false "Filter by status" Enums(paid,shipped,out_for_delivery,delivered,cancelled,returned)
// @Success 200 {object} models.ApiResponse{data=[]models.Order,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	log.Printf("[admin.orders] start rawQuery=%s", c.Request.URL.RawQuery)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	db := config.ShopGorm.WithContext(ctx).Model(&models.Order{})

	if status := strings.TrimSpace(strings.ToLower(c.Query("status"))); status != "" {
		switch status {
		case models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusOutForDelivery,
			models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusReturned:
			db = db.Where("status = ?", status)
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid status"))
			return
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		log.Printf("[admin.orders] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	var orders []models.Order
	if err := db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		log.Printf("[admin.orders] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	log.Printf("[admin.orders] respond 200 total=%d page=%d", total, page)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders retrieved successfully", orders, meta))
}
