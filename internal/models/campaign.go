package models

import (
	"time"

	"gorm.io/gorm"
)

type Campaign struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrphanageID uint   `gorm:"not null;index" json:"orphanage_id"`
	Title       string `gorm:"size:255;not null;index" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:32;not null;index" json:"category"`

	TargetAmount    float64 `gorm:"not null" json:"target_amount"`
	RaisedAmount    float64 `gorm:"not null;default:0" json:"raised_amount"`
	DisbursedAmount float64 `gorm:"not null;default:0" json:"disbursed_amount"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// pending_approval | active | completed | rejected
	Status          string     `gorm:"size:20;not null;default:'pending_approval';index" json:"status"`
	ApprovedByID    *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason string     `gorm:"size:512" json:"rejection_reason,omitempty"`

	Images      []string `gorm:"serializer:json" json:"images"`
	TotalDonors int      `gorm:"default:0" json:"total_donors"`
	IsFeatured  bool     `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Orphanage Orphanage `gorm:"foreignKey:OrphanageID" json:"-"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// Progress returns the funding percentage, capped at 100.
func (c *Campaign) Progress() float64 {
	if c.TargetAmount <= 0 {
		return 0
	}
	p := c.RaisedAmount / c.TargetAmount * 100
	if p > 100 {
		p = 100
	}
	return p
}
