/**
 * 模型:体检信息模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 学生年度体检记录，同一用户同一年度只允许一条
 * @func: CheckInfo 结构体及列名常量
 */
package model

import (
	"time"
)

// 体检信息列名，供查询条件使用
const (
	CheckInfoColumnUserID    = "user_id"
	CheckInfoColumnCheckYear = "check_year"
)

// CheckInfo 体检信息
// (user_id, check_year) 由联合唯一索引约束，并发重复创建时第二次插入失败
type CheckInfo struct {
	ID             uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_check_user_year,priority:1" binding:"required"`
	CheckYear      string     `json:"check_year" gorm:"not null;size:10;uniqueIndex:idx_check_user_year,priority:2" binding:"required"`
	Height         float64    `json:"height" gorm:"comment:身高(cm)"`
	Weight         float64    `json:"weight" gorm:"comment:体重(kg)"`
	VisionLeft     string     `json:"vision_left" gorm:"size:10;comment:左眼视力"`
	VisionRight    string     `json:"vision_right" gorm:"size:10;comment:右眼视力"`
	BloodPressure  string     `json:"blood_pressure" gorm:"size:20;comment:血压"`
	HeartRate      int        `json:"heart_rate" gorm:"comment:心率"`
	LungCapacity   int        `json:"lung_capacity" gorm:"comment:肺活量(ml)"`
	MedicalHistory string     `json:"medical_history" gorm:"size:500;comment:既往病史"`
	Conclusion     string     `json:"conclusion" gorm:"size:500;comment:体检结论"`
	Doctor         string     `json:"doctor" gorm:"size:50;comment:体检医生"`
	CheckDate      *time.Time `json:"check_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName 指定体检信息表名
func (CheckInfo) TableName() string {
	return "check_info"
}

func (c *CheckInfo) GetID() uint   { return c.ID }
func (c *CheckInfo) SetID(id uint) { c.ID = id }
