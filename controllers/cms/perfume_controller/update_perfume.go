package perfume_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// UpdatePerfume godoc
// @Summary Update a perfume (CMS)
// @Description Applies a partial update to a catalog product
// @Tags Admin - Perfumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Perfume ID"
// @Success 200 {object} models.ApiResponse{data=models.Perfume}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/perfumes/{id} [put]
func UpdatePerfume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume ID"))
		return
	}

	log.Printf("[admin.perfume-update] start id=%s", id)

	var req models.UpdatePerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume payload"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var perfume models.Perfume
	if err := config.ShopGorm.WithContext(ctx).First(&perfume, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Perfume not found"))
			return
		}
		log.Printf("[admin.perfume-update] ERROR fetch id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update perfume"))
		return
	}

	if req.Name != nil {
		perfume.Name = *req.Name
	}
	if req.Description != nil {
		perfume.Description = *req.Description
	}
	if req.Price != nil {
		perfume.Price = *req.Price
	}
	if req.Stock != nil {
		perfume.Stock = *req.Stock
	}
	if req.Images != nil {
		perfume.Images = datatypes.NewJSONSlice(req.Images)
	}
	if req.MainImageIndex != nil {
		perfume.MainImageIndex = *req.MainImageIndex
	}
	if req.PromoEnabled != nil {
		perfume.PromoEnabled = *req.PromoEnabled
	}
	if req.PromoType != nil {
		perfume.PromoType = *req.PromoType
	}
	if req.PromoValue != nil {
		perfume.PromoValue = req.PromoValue
	}
	if req.PromoStart != nil {
		perfume.PromoStart = req.PromoStart
	}
	if req.PromoEnd != nil {
		perfume.PromoEnd = req.PromoEnd
	}
	if req.Categories != nil {
		perfume.Categories = datatypes.NewJSONSlice(req.Categories)
	}

	if err := config.ShopGorm.WithContext(ctx).Save(&perfume).Error; err != nil {
		log.Printf("[admin.perfume-update] ERROR save id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update perfume"))
		return
	}

	if adminID, ok := middleware.GetUserUUIDFromContext(c); ok {
		services.LogAdminAction(c, adminID, "perfume_update:"+perfume.ID.String())
	}

	log.Printf("[admin.perfume-update] respond 200 id=%s", id)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Perfume updated successfully", perfume))
}
