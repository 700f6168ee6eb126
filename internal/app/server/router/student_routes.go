package router

import (
	"github.com/gang678/studentdocument/internal/model"

	"github.com/gin-gonic/gin"
)

// setupCheckInfoRoutes 体检信息路由，删除需要 checkInfo:delete
func (r *Router) setupCheckInfoRoutes(authed *gin.RouterGroup) {
	h := r.studentModule.CheckInfoHandler

	checkInfo := authed.Group("/checkInfo")
	{
		checkInfo.GET("", h.FindAll)
		checkInfo.GET("/:id", h.FindByID)
		checkInfo.POST("", h.Save)
		checkInfo.PUT("", h.Update)
		checkInfo.DELETE("/:id", r.middlewareManager.GinRequirePermission(model.PermCheckInfoDelete), h.Delete)
	}
}
