/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 泛型基础控制器，把 HTTP 动词映射到通用服务操作
 * @func:
 * 	Save     - POST        新增
 * 	Update   - PUT         更新(请求体中携带ID，未携带的字段保持原值)
 * 	Delete   - DELETE /:id 删除
 * 	FindByID - GET /:id    查询单个
 * 	FindAll  - GET         查询全部
 * 权限校验不在此处，由路由上的权限中间件在进入处理函数前完成
 */
package base

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// CrudService 控制器依赖的服务能力，crud.Service 及其特化服务均满足
type CrudService[T any, ID model.Key] interface {
	SelectAll(ctx context.Context) ([]*T, error)
	SelectByID(ctx context.Context, id ID) (*T, error)
	Insert(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id ID, entity *T) (*T, error)
	DeleteByID(ctx context.Context, id ID) error
}

// EntityPtr 实体指针约束，用于在泛型代码中读写主键
type EntityPtr[T any, ID model.Key] interface {
	*T
	model.Entity[ID]
}

// BaseController 泛型基础控制器
type BaseController[T any, ID model.Key, PT EntityPtr[T, ID]] struct {
	service  CrudService[T, ID]
	resource string
}

// NewBaseController 创建基础控制器
func NewBaseController[T any, ID model.Key, PT EntityPtr[T, ID]](service CrudService[T, ID], resource string) *BaseController[T, ID, PT] {
	return &BaseController[T, ID, PT]{service: service, resource: resource}
}

// Resource 资源名
func (b *BaseController[T, ID, PT]) Resource() string {
	return b.resource
}

func (b *BaseController[T, ID, PT]) logSuccess(c *gin.Context, operation string, id ID) {
	meta := utils.GetRequestMeta(c)
	logger.LogBusinessOperation(operation, meta.UserID, meta.Username, meta.ClientIP, meta.RequestID, "success",
		b.resource+" "+operation, map[string]interface{}{
			"resource":    b.resource,
			"resource_id": id,
		})
}

// Save 新增实体，忽略请求体中的ID
func (b *BaseController[T, ID, PT]) Save(c *gin.Context) {
	operation := "create_" + b.resource

	entity := PT(new(T))
	if err := c.ShouldBindJSON(entity); err != nil {
		BindError(c, operation, err)
		return
	}
	var zero ID
	entity.SetID(zero)

	created, err := b.service.Insert(c.Request.Context(), (*T)(entity))
	if err != nil {
		RespondError(c, operation, err)
		return
	}

	b.logSuccess(c, operation, PT(created).GetID())
	c.JSON(http.StatusOK, created)
}

// Update 更新实体，请求体中必须携带ID
func (b *BaseController[T, ID, PT]) Update(c *gin.Context) {
	operation := "update_" + b.resource

	body, err := c.GetRawData()
	if err != nil {
		BindError(c, operation, err)
		return
	}
	head := PT(new(T))
	if err := json.Unmarshal(body, head); err != nil {
		BindError(c, operation, err)
		return
	}
	id := head.GetID()
	var zero ID
	if id == zero {
		RespondError(c, operation, system.NewValidationError("id", "id is required"))
		return
	}

	// 请求体覆盖到已存储的记录上，未携带的字段保持原值
	stored, err := b.service.SelectByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, operation, err)
		return
	}
	entity := PT(stored)
	if err := binding.JSON.BindBody(body, entity); err != nil {
		BindError(c, operation, err)
		return
	}
	entity.SetID(id)

	updated, err := b.service.Update(c.Request.Context(), id, stored)
	if err != nil {
		RespondError(c, operation, err)
		return
	}

	b.logSuccess(c, operation, id)
	c.JSON(http.StatusOK, updated)
}

// Delete 按路径参数ID删除，记录不存在时同样返回成功
func (b *BaseController[T, ID, PT]) Delete(c *gin.Context) {
	operation := "delete_" + b.resource

	id, err := ParseID[ID](c.Param("id"))
	if err != nil {
		RespondError(c, operation, err)
		return
	}

	if err := b.service.DeleteByID(c.Request.Context(), id); err != nil {
		RespondError(c, operation, err)
		return
	}

	b.logSuccess(c, operation, id)
	c.JSON(http.StatusOK, true)
}

// FindByID 按路径参数ID查询
func (b *BaseController[T, ID, PT]) FindByID(c *gin.Context) {
	id, err := ParseID[ID](c.Param("id"))
	if err != nil {
		RespondError(c, "get_"+b.resource, err)
		return
	}

	entity, err := b.service.SelectByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, "get_"+b.resource, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// FindAll 查询全部
func (b *BaseController[T, ID, PT]) FindAll(c *gin.Context) {
	entities, err := b.service.SelectAll(c.Request.Context())
	if err != nil {
		RespondError(c, "list_"+b.resource, err)
		return
	}
	c.JSON(http.StatusOK, entities)
}

// ParseID 解析正整数主键
func ParseID[ID model.Key](raw string) (ID, error) {
	var zero ID
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return zero, system.NewValidationError("id", "invalid id: "+raw)
	}
	id := ID(n)
	if id < zero || uint64(id) != n {
		return zero, system.NewValidationError("id", "id out of range: "+raw)
	}
	return id, nil
}
