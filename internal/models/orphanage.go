package models

import (
	"time"

	"gorm.io/gorm"
)

type Orphanage struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	UserID             uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Name               string `gorm:"size:255;not null;index" json:"name"`
	RegistrationNumber string `gorm:"size:64;uniqueIndex;not null" json:"registration_number"`
	Description        string `gorm:"type:text" json:"description"`

	Email   string `gorm:"size:255;not null" json:"email"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Website string `gorm:"size:255" json:"website"`

	Address string `gorm:"size:255;not null" json:"address"`
	City    string `gorm:"size:100;not null;index" json:"city"`
	State   string `gorm:"size:100;not null;index" json:"state"`
	Pincode string `gorm:"size:10;not null" json:"pincode"`
	Country string `gorm:"size:100;default:'India'" json:"country"`

	Capacity         int  `gorm:"not null" json:"capacity"`
	CurrentOccupancy int  `gorm:"default:0" json:"current_occupancy"`
	EstablishedYear  *int `json:"established_year"`

	Logo   string   `gorm:"size:512" json:"logo"`
	Images []string `gorm:"serializer:json" json:"images"`

	// pending | verified | rejected | suspended; mutated only by admin action
	Status                string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	VerificationDocuments []string   `gorm:"serializer:json" json:"verification_documents"`
	VerifiedByID          *uint      `json:"verified_by"`
	VerifiedAt            *time.Time `json:"verified_at"`
	RejectionReason       string     `gorm:"size:512" json:"rejection_reason,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Orphanage) TableName() string {
	return "orphanages"
}
