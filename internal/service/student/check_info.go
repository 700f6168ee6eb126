/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 体检信息服务
 * @func:
 * 	1.通用CRUD(继承 crud.Service)
 * 	2.JudgeCheckIsExist - 判断用户某年度是否还可以新建体检记录
 * 	3.Insert/Update     - 同一用户同一年度重复时返回 ErrCheckInfoExists
 */
package student

import (
	"context"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/query"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/crud"
)

// CheckInfoService 体检信息服务
type CheckInfoService struct {
	*crud.Service[model.CheckInfo, uint]
}

// NewCheckInfoService 创建体检信息服务
func NewCheckInfoService(repo crud.Repository[model.CheckInfo, uint]) *CheckInfoService {
	return &CheckInfoService{Service: crud.NewService[model.CheckInfo, uint](repo, "check_info")}
}

// JudgeCheckIsExist 按 (用户, 年度) 查询体检记录
// 返回 true 表示记录不存在(可以新建)，false 表示已存在
// 参数为 nil 时按 IS NULL 匹配，通常没有记录
func (s *CheckInfoService) JudgeCheckIsExist(ctx context.Context, userID *uint, checkYear *string) (bool, error) {
	criteria := query.NewCriteria().
		AndEqualTo(model.CheckInfoColumnUserID, userID).
		AndEqualTo(model.CheckInfoColumnCheckYear, checkYear)

	records, err := s.SelectByExample(ctx, criteria)
	if err != nil {
		return false, err
	}
	return len(records) == 0, nil
}

// Insert 新增体检记录
func (s *CheckInfoService) Insert(ctx context.Context, info *model.CheckInfo) (*model.CheckInfo, error) {
	created, err := s.Service.Insert(ctx, info)
	if err != nil {
		return nil, translateDuplicate(err)
	}
	return created, nil
}

// Update 更新体检记录
func (s *CheckInfoService) Update(ctx context.Context, id uint, info *model.CheckInfo) (*model.CheckInfo, error) {
	updated, err := s.Service.Update(ctx, id, info)
	if err != nil {
		return nil, translateDuplicate(err)
	}
	return updated, nil
}

func translateDuplicate(err error) error {
	if mysql.IsDuplicateKey(err) {
		return system.ErrCheckInfoExists
	}
	return err
}
