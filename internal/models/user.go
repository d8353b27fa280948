package models

import (
	"time"

	"heartchain/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Phone        string         `gorm:"size:20" json:"phone"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // donor | orphanage | admin
	ProfileImage string         `gorm:"size:512" json:"profile_image"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Orphanage *Orphanage `gorm:"foreignKey:UserID" json:"orphanage,omitempty"`
}

func (u *User) IsAdmin() bool        { return u.Role == domain.RoleAdmin }
func (u *User) IsDonor() bool        { return u.Role == domain.RoleDonor }
func (u *User) IsOrphanageRole() bool { return u.Role == domain.RoleOrphanage }
