package customer_controller

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

// GetCustomers godoc
// @Summary Get customers (CMS)
// @Description Fetch customers for the CMS table view with order count and total spend
// @Tags Admin - Customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param q query string false "Search by name or email"
// @Param status query string false "Filter by status" Enums(active,suspended,blacklisted)
// @Success 200 {object} models.ApiResponse{data=[]models.CustomerRow,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/customers [get]
func GetCustomers(c *gin.Context) {
	log.Printf("[admin.customers] start rawQuery=%s", c.Request.URL.RawQuery)

	// ================================
	// Pagination
	// ================================
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	// ================================
	// Filters
	// ================================
	q := strings.TrimSpace(c.Query("q"))
	status := strings.TrimSpace(strings.ToLower(c.Query("status")))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	db := config.ShopGorm.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleUser)

	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if status != "" {
		switch status {
		case "active", "suspended", "blacklisted":
			db = db.Where("status = ?", status)
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid status"))
			return
		}
	}

	// ================================
	// Count
	// ================================
	var total int64
	if err := db.Count(&total).Error; err != nil {
		log.Printf("[admin.customers] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customers"))
		return
	}

	// ================================
	// Page of users
	// ================================
	var users []models.User
	if err := db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		log.Printf("[admin.customers] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customers"))
		return
	}

	// ================================
	// Order summary per customer email
	// ================================
	rows := []models.CustomerRow{}
	if len(users) > 0 {
		emails := make([]string, 0, len(users))
		for _, u := range users {
			emails = append(emails, u.Email)
		}

		type orderSummary struct {
			CustomerEmail string
			OrderCount    int
			TotalSpend    float64
		}
		var summaries []orderSummary
		if err := config.ShopGorm.WithContext(ctx).
			Model(&models.Order{}).
			Select("customer_email", "COUNT(*) AS order_count", "COALESCE(SUM(grand_total), 0) AS total_spend").
			Where("customer_email IN ?", emails).
			Where("status IN ?", models.FulfilledStatuses).
			Group("customer_email").
			Scan(&summaries).Error; err != nil {
			log.Printf("[admin.customers] ERROR order summary failed err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customers"))
			return
		}
		byEmail := make(map[string]orderSummary, len(summaries))
		for _, s := range summaries {
			byEmail[s.CustomerEmail] = s
		}

		for _, u := range users {
			summary := byEmail[u.Email]
			rows = append(rows, models.CustomerRow{
				ID:         u.ID,
				Name:       u.Name,
				Email:      u.Email,
				Status:     u.Status,
				State:      u.State,
				OrderCount: summary.OrderCount,
				TotalSpend: summary.TotalSpend,
				CreatedAt:  u.CreatedAt,
			})
		}
	}

	// ================================
	// Meta
	// ================================
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[admin.customers] respond 200 total=%d page=%d", total, page)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Customers retrieved successfully", rows, meta))
}
