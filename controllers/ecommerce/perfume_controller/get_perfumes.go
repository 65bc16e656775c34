package perfume_controller

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

// GetPerfumes godoc
// @Summary List perfumes
// @Description Returns the storefront catalog, newest first, with optional search and category filter
// @Tags Perfumes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(12)
// @Param q query string false "Search by name"
// @Param category query string false "Filter by category"
// @Success 200 {object} models.ApiResponse{data=[]models.Perfume,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse
// @Router /perfumes [get]
func GetPerfumes(c *gin.Context) {
	log.Printf("[shop.perfumes] start rawQuery=%s", c.Request.URL.RawQuery)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 12
	}
	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	db := config.ShopGorm.WithContext(ctx).Model(&models.Perfume{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		// Categories are stored as a JSON array
		db = db.Where("categories LIKE ?", "%\""+category+"\"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		log.Printf("[shop.perfumes] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch perfumes"))
		return
	}

	var perfumes []models.Perfume
	if err := db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&perfumes).Error; err != nil {
		log.Printf("[shop.perfumes] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch perfumes"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	log.Printf("[shop.perfumes] respond 200 total=%d page=%d", total, page)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Perfumes retrieved successfully", perfumes, meta))
}
