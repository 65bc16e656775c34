package perfume_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// DeletePerfume godoc
// @Summary Delete a perfume (CMS)
// @Description Removes a product from the catalog. Past order lines keep their snapshot of it
// @Tags Admin - Perfumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Perfume ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/perfumes/{id} [delete]
func DeletePerfume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid perfume ID"))
		return
	}

	log.Printf("[admin.perfume-delete] start id=%s", id)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result := config.ShopGorm.WithContext(ctx).Delete(&models.Perfume{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("[admin.perfume-delete] ERROR id=%s err=%v", id, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete perfume"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Perfume not found"))
		return
	}

	if adminID, ok := middleware.GetUserUUIDFromContext(c); ok {
		services.LogAdminAction(c, adminID, "perfume_delete:"+id.String())
	}

	log.Printf("[admin.perfume-delete] respond 200 id=%s", id)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Perfume deleted successfully", nil))
}
