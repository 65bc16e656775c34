package perfume_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// GetPerfumeByID godoc
// @Summary Get a perfume
// @Description Returns one perfume and increments its view counter
// @Tags Perfumes
// @Produce json
// @Param id path string true "Perfume ID"
// @Success 200 {object} models.ApiResponse{data=models.Perfume}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /perfumes/{id} [get]
func GetPerfumeByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume ID"))
		return
	}

	log.Printf("[shop.perfume] start id=%s", id)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var perfume models.Perfume
	if err := config.ShopGorm.WithContext(ctx).First(&perfume, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Perfume not found"))
			return
		}
		log.Printf("[shop.perfume] ERROR id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch perfume"))
		return
	}

	// Atomic counter bump, feeds the conversion-rate report
	if err := config.ShopGorm.WithContext(ctx).
		Model(&models.Perfume{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		log.Printf("[shop.perfume] failed to bump views id=%s err=%v", id, err)
	} else {
		perfume.Views++
	}

	log.Printf("[shop.perfume] respond 200 id=%s views=%d", id, perfume.Views)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Perfume retrieved successfully", perfume))
}
