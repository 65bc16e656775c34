package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/controllers/cms/perfume_controller"
)

func SetupPerfumeRoutes(rg *gin.RouterGroup) {
	perfumes := rg.Group("/perfumes")

	perfumes.POST("", perfume_controller.CreatePerfume)
	perfumes.PUT("/:id", perfume_controller.UpdatePerfume)
	perfumes.DELETE("/:id", perfume_controller.DeletePerfume)
}
