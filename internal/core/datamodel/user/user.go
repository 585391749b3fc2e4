package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Phone        string     `gorm:"column:phone"`
	PasswordHash string     `gorm:"column:password_hash"`
	Gender       string     `gorm:"column:gender"`
	BirthDate    *time.Time `gorm:"column:birth_date;type:date"`
	AppleID      *string    `gorm:"column:apple_id"`
	GoogleID     *string    `gorm:"column:google_id"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
