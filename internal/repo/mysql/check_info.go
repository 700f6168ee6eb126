/*
 * 体检信息仓库层
 * @author: gang678
 * @date: 2026.10.17
 * @description: 体检信息的通用CRUD；(user_id, check_year) 重复插入返回唯一键冲突
 */

package mysql

import (
	"github.com/gang678/studentdocument/internal/model"

	"gorm.io/gorm"
)

// CheckInfoRepository 体检信息仓库
type CheckInfoRepository struct {
	*CrudRepository[model.CheckInfo, uint]
}

// NewCheckInfoRepository 创建体检信息仓库实例
func NewCheckInfoRepository(db *gorm.DB) *CheckInfoRepository {
	return &CheckInfoRepository{CrudRepository: NewCrudRepository[model.CheckInfo, uint](db, "check_info")}
}
