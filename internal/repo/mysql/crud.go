/*
 * 仓库层:通用CRUD数据访问
 * @author: gang678
 * @date: 2026.10.17
 * @description: 按实体类型参数化的基础数据访问，MySQL 与 PostgreSQL 驱动共用
 * @func:
 * 	SelectAll       - 查询全部
 * 	SelectByExample - 按等值条件查询
 * 	SelectByID      - 按主键查询，不存在返回 nil, nil
 * 	Insert          - 新增
 * 	Update          - 按主键全字段更新(不含创建时间与关联)
 * 	DeleteByID      - 按主键删除，幂等
 * 	CountByExample  - 按等值条件计数
 */

package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CrudRepository 通用仓库
type CrudRepository[T any, ID model.Key] struct {
	db       *gorm.DB
	resource string // 日志中的资源名
}

// NewCrudRepository 创建通用仓库
func NewCrudRepository[T any, ID model.Key](db *gorm.DB, resource string) *CrudRepository[T, ID] {
	return &CrudRepository[T, ID]{db: db, resource: resource}
}

// DB 返回底层连接，供具体仓库扩展查询
func (r *CrudRepository[T, ID]) DB() *gorm.DB {
	return r.db
}

func (r *CrudRepository[T, ID]) logError(err error, operation, method string, extra map[string]interface{}) {
	fields := map[string]interface{}{
		"operation": operation,
		"resource":  r.resource,
		"timestamp": logger.NowFormatted(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.LogError(err, "", 0, "", r.resource, method, fields)
}

// SelectAll 查询全部记录，无记录返回空切片
func (r *CrudRepository[T, ID]) SelectAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		r.logError(err, "select_all", "GET", nil)
		return nil, err
	}
	return entities, nil
}

// SelectByExample 按等值条件查询，条件之间为 AND
func (r *CrudRepository[T, ID]) SelectByExample(ctx context.Context, criteria *query.Criteria) ([]*T, error) {
	tx, err := criteria.Apply(r.db.WithContext(ctx).Model(new(T)))
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0)
	if err := tx.Find(&entities).Error; err != nil {
		r.logError(err, "select_by_example", "GET", nil)
		return nil, err
	}
	return entities, nil
}

// CountByExample 按等值条件计数
func (r *CrudRepository[T, ID]) CountByExample(ctx context.Context, criteria *query.Criteria) (int64, error) {
	tx, err := criteria.Apply(r.db.WithContext(ctx).Model(new(T)))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		r.logError(err, "count_by_example", "GET", nil)
		return 0, err
	}
	return count, nil
}

// SelectByID 按主键查询
// 记录不存在时返回 nil, nil，由业务层决定如何处理
func (r *CrudRepository[T, ID]) SelectByID(ctx context.Context, id ID) (*T, error) {
	entity := new(T)
	err := r.db.WithContext(ctx).First(entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logError(err, "select_by_id", "GET", map[string]interface{}{"id": id})
		return nil, err
	}
	return entity, nil
}

// Insert 新增记录，关联关系不随实体写入
func (r *CrudRepository[T, ID]) Insert(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		r.logError(err, "insert", "POST", nil)
		return err
	}
	return nil
}

// Update 按主键更新全部字段(包括零值)，创建时间与关联关系保持不变
// 主键不存在时返回 gorm.ErrRecordNotFound
func (r *CrudRepository[T, ID]) Update(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Model(entity).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(entity)
	if result.Error != nil {
		r.logError(result.Error, "update", "PUT", nil)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByID 按主键删除
// 删除具有幂等性，记录不存在不视为错误
func (r *CrudRepository[T, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := r.db.WithContext(ctx).Delete(new(T), id).Error; err != nil {
		r.logError(err, "delete_by_id", "DELETE", map[string]interface{}{"id": id})
		return err
	}
	return nil
}

// IsDuplicateKey 是否为唯一键冲突
// TranslateError 未生效的方言回退到按驱动错误信息判断
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
