package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            int64           `gorm:"primaryKey"`
	Title         string          `gorm:"column:title;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	PaymentDate   time.Time       `gorm:"column:payment_date;type:date;not null"`
	PaymentMethod string          `gorm:"column:payment_method;default:cash"`
	Notes         *string         `gorm:"column:notes"`
	CategoryID    int64           `gorm:"column:category_id;not null"`
	UserID        int64           `gorm:"column:user_id;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string { return "expenses" }
