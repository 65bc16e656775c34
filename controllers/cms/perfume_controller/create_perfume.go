package perfume_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// CreatePerfume godoc
// @Summary Create a perfume (CMS)
// @Description Adds a product to the catalog
// @Tags Admin - Perfumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.ApiResponse{data=models.Perfume}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/perfumes [post]
func CreatePerfume(c *gin.Context) {
	log.Printf("[admin.perfume-create] start")

	var req models.CreatePerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume payload"))
		return
	}

	promoType := req.PromoType
	if promoType == "" {
		promoType = models.PromoTypeDiscount
	}

	perfume := models.Perfume{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		Images:         datatypes.NewJSONSlice(req.Images),
		MainImageIndex: req.MainImageIndex,
		PromoEnabled:   req.PromoEnabled,
		PromoType:      promoType,
		PromoValue:     req.PromoValue,
		PromoStart:     req.PromoStart,
		PromoEnd:       req.PromoEnd,
		Categories:     datatypes.NewJSONSlice(req.Categories),
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.ShopGorm.WithContext(ctx).Create(&perfume).Error; err != nil {
		log.Printf("[admin.perfume-create] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create perfume"))
		return
	}

	if adminID, ok := middleware.GetUserUUIDFromContext(c); ok {
		services.LogAdminAction(c, adminID, "perfume_create:"+perfume.ID.String())
	}

	log.Printf("[admin.perfume-create] respond 201 id=%s", perfume.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Perfume created successfully", perfume))
}
