package models

import (
	"time"

	"gorm.io/gorm"
)

// UserSetting 用户设置模型
// 每个用户一行，首次读取时自动创建，deduct_mpf 默认开启。
type UserSetting struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	DeductMPF bool           `json:"deduct_mpf" gorm:"default:true"` // 汇总时是否扣除强积金
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (UserSetting) TableName() string {
	return "user_settings"
}
