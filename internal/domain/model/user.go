package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 会員。EmailとPhoneはユニーク（Phoneは任意）。
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        *string   `gorm:"uniqueIndex" json:"phone,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	NickName     string    `gorm:"type:varchar(255);not null" json:"nick_name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
