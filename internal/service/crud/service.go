/**
 * 通用服务层:CRUD
 * @author: gang678
 * @date: 2026.10.17
 * @description: 按实体类型参数化的增删改查服务，不缓存任何状态，每次调用都访问存储
 * @func:
 * 	SelectAll / SelectByExample / SelectByID / Insert / Update / DeleteByID
 */
package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/query"

	"gorm.io/gorm"
)

// Repository 通用数据访问能力
type Repository[T any, ID model.Key] interface {
	SelectAll(ctx context.Context) ([]*T, error)
	SelectByExample(ctx context.Context, criteria *query.Criteria) ([]*T, error)
	SelectByID(ctx context.Context, id ID) (*T, error)
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id ID) error
}

// Service 通用CRUD服务
type Service[T any, ID model.Key] struct {
	repo     Repository[T, ID]
	resource string
}

// NewService 创建通用服务
func NewService[T any, ID model.Key](repo Repository[T, ID], resource string) *Service[T, ID] {
	return &Service[T, ID]{repo: repo, resource: resource}
}

// Resource 资源名，用于日志
func (s *Service[T, ID]) Resource() string {
	return s.resource
}

// dataAccess 包装存储错误，保留原始错误链
func (s *Service[T, ID]) dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", system.ErrDataAccess, s.resource, op, err)
}

// SelectAll 查询全部，无记录返回空切片
func (s *Service[T, ID]) SelectAll(ctx context.Context) ([]*T, error) {
	entities, err := s.repo.SelectAll(ctx)
	if err != nil {
		return nil, s.dataAccess("select all", err)
	}
	if entities == nil {
		entities = []*T{}
	}
	return entities, nil
}

// SelectByExample 按等值条件查询，无匹配返回空切片
func (s *Service[T, ID]) SelectByExample(ctx context.Context, criteria *query.Criteria) ([]*T, error) {
	entities, err := s.repo.SelectByExample(ctx, criteria)
	if err != nil {
		return nil, s.dataAccess("select by example", err)
	}
	if entities == nil {
		entities = []*T{}
	}
	return entities, nil
}

// SelectByID 按主键查询，不存在返回 ErrNotFound
func (s *Service[T, ID]) SelectByID(ctx context.Context, id ID) (*T, error) {
	entity, err := s.repo.SelectByID(ctx, id)
	if err != nil {
		return nil, s.dataAccess("select by id", err)
	}
	if entity == nil {
		return nil, fmt.Errorf("%w: %s %v", system.ErrNotFound, s.resource, id)
	}
	return entity, nil
}

// Insert 新增并返回持久化后的实体
func (s *Service[T, ID]) Insert(ctx context.Context, entity *T) (*T, error) {
	if err := s.repo.Insert(ctx, entity); err != nil {
		return nil, s.dataAccess("insert", err)
	}
	return entity, nil
}

// Update 更新并返回存储中的最新实体
func (s *Service[T, ID]) Update(ctx context.Context, id ID, entity *T) (*T, error) {
	if err := s.repo.Update(ctx, entity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %v", system.ErrNotFound, s.resource, id)
		}
		return nil, s.dataAccess("update", err)
	}
	return s.SelectByID(ctx, id)
}

// DeleteByID 按主键删除
func (s *Service[T, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.dataAccess("delete", err)
	}
	return nil
}
