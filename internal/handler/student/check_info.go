/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 体检信息接口
 * @func:
 * 	1.增删改查(基础控制器)
 * 	2.JudgeCheckIsExist - true 表示该用户该年度还没有体检记录
 */
package student

import (
	"net/http"
	"strconv"

	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/service/student"

	"github.com/gin-gonic/gin"
)

// CheckInfoHandler 体检信息处理器
type CheckInfoHandler struct {
	*base.BaseController[model.CheckInfo, uint, *model.CheckInfo]
	checkInfoService *student.CheckInfoService
}

// NewCheckInfoHandler 创建体检信息处理器
func NewCheckInfoHandler(checkInfoService *student.CheckInfoService) *CheckInfoHandler {
	return &CheckInfoHandler{
		BaseController:   base.NewBaseController[model.CheckInfo, uint, *model.CheckInfo](checkInfoService, "check_info"),
		checkInfoService: checkInfoService,
	}
}

// JudgeCheckIsExist 判断体检记录是否不存在
// 缺省的参数按空值匹配，不返回 400
// @Router /api/checkInfo/judgeCheckIsExist [get]
func (h *CheckInfoHandler) JudgeCheckIsExist(c *gin.Context) {
	var userID *uint
	if raw, ok := c.GetQuery("userId"); ok && raw != "" {
		n, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			base.RespondError(c, "judge_check_is_exist", system.NewValidationError("userId", "invalid userId: "+raw))
			return
		}
		id := uint(n)
		userID = &id
	}

	var checkYear *string
	if raw, ok := c.GetQuery("checkYear"); ok {
		checkYear = &raw
	}

	notExist, err := h.checkInfoService.JudgeCheckIsExist(c.Request.Context(), userID, checkYear)
	if err != nil {
		base.RespondError(c, "judge_check_is_exist", err)
		return
	}
	c.JSON(http.StatusOK, notExist)
}
