package category

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Icon      string    `gorm:"column:icon"`
	IsDefault bool      `gorm:"column:is_default;default:false"`
	UserID    *int64    `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string { return "categories" }
