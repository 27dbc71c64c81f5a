package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkEntry 工时记录模型
// 每条记录对应一段工作时间，hours_worked 与 total_wages 在创建/更新时
// 由服务端根据起止时间和时薪计算后写入，不接受客户端直接提交。
type WorkEntry struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	WorkType    string         `json:"work_type" gorm:"size:50;not null;index"` // 工作类型（自由文本）
	Date        time.Time      `json:"date" gorm:"type:date;not null;index"`    // 工作日期
	StartTime   string         `json:"start_time" gorm:"size:5;not null"`       // 开始时间 HH:MM
	EndTime     string         `json:"end_time" gorm:"size:5;not null"`         // 结束时间 HH:MM，早于开始时间视为跨夜
	HourlyWage  float64        `json:"hourly_wage" gorm:"type:decimal(10,2);not null"`
	HoursWorked float64        `json:"hours_worked" gorm:"type:decimal(6,2);not null"`
	TotalWages  float64        `json:"total_wages" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

func (WorkEntry) TableName() string {
	return "work_entries"
}
