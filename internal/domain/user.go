package domain

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"size:30"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:'client'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
