package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 所有家庭数据表共用的主键和时间戳。
// 删除一律走软删：孩子的积分流水、照片这类记录宁可留底也不真删。
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
