package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 不需要认证的路由
func (r *Router) setupPublicRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", r.authModule.LoginHandler.Login)
		auth.POST("/refresh", r.authModule.RefreshHandler.RefreshToken)
	}

	// 以下两个查询接口不声明权限
	api.GET("/role/list", r.systemModule.RoleHandler.List)
	api.GET("/checkInfo/judgeCheckIsExist", r.studentModule.CheckInfoHandler.JudgeCheckIsExist)
}
