package review_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// GetReviews godoc
// @Summary List reviews for a perfume
// @Description Returns a perfume's reviews, newest first
// @Tags Reviews
// @Produce json
// @Param id path string true "Perfume ID"
// @Success 200 {object} models.ApiResponse{data=[]models.Review}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /perfumes/{id}/reviews [get]
func GetReviews(c *gin.Context) {
	perfumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume ID"))
		return
	}

	log.Printf("[shop.reviews] start perfume=%s", perfumeID)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var reviews []models.Review
	if err := config.ShopGorm.WithContext(ctx).
		Where("perfume_id = ?", perfumeID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		log.Printf("[shop.reviews] ERROR perfume=%s err=%v", perfumeID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch reviews"))
		return
	}

	log.Printf("[shop.reviews] respond 200 perfume=%s reviews=%d", perfumeID, len(reviews))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reviews retrieved successfully", reviews))
}
