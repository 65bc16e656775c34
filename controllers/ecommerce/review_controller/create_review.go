package review_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
)

// CreateReview godoc
// @Summary Create a review
// @Description Adds a product review by the signed-in customer
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.ApiResponse{data=models.Review}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /reviews [post]
func CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserUUIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authentication required"))
		return
	}
	userName, _ := c.Get("userName")
	name, _ := userName.(string)

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid review payload"))
		return
	}

	log.Printf("[shop.review-create] start user=%s perfume=%s", userID, req.PerfumeID)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	perfumeID := uuid.MustParse(req.PerfumeID)
	var perfume models.Perfume
	if err := config.ShopGorm.WithContext(ctx).
		Select("id").
		First(&perfume, "id = ?", perfumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Perfume not found"))
			return
		}
		log.Printf("[shop.review-create] ERROR fetch perfume err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create review"))
		return
	}

	review := models.Review{
		PerfumeID: perfumeID,
		UserID:    userID,
		UserName:  name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := config.ShopGorm.WithContext(ctx).Create(&review).Error; err != nil {
		log.Printf("[shop.review-create] ERROR create err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create review"))
		return
	}

	log.Printf("[shop.review-create] respond 201 id=%s", review.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Review created successfully", review))
}
