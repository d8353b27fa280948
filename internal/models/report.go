package models

import (
	"time"

	"gorm.io/gorm"
)

type Report struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CampaignID  uint   `gorm:"not null;index" json:"campaign_id"`
	OrphanageID uint   `gorm:"not null;index" json:"orphanage_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// utilization | progress | completion | quarterly
	ReportType string `gorm:"size:20;not null;default:'utilization';index" json:"report_type"`

	AmountUtilized      float64  `gorm:"not null" json:"amount_utilized"`
	BeneficiariesCount  int      `gorm:"not null" json:"beneficiaries_count"`
	ActivitiesConducted []string `gorm:"serializer:json" json:"activities_conducted"`

	Images    []string `gorm:"serializer:json" json:"images"`
	Receipts  []string `gorm:"serializer:json" json:"receipts"`
	Documents []string `gorm:"serializer:json" json:"documents"`

	// submitted | verified | rejected; admin-only, one-way
	Status            string     `gorm:"size:20;not null;default:'submitted';index" json:"status"`
	VerifiedByID      *uint      `json:"verified_by"`
	VerifiedAt        *time.Time `json:"verified_at"`
	VerificationNotes string     `gorm:"size:512" json:"verification_notes,omitempty"`
	RejectionReason   string     `gorm:"size:512" json:"rejection_reason,omitempty"`

	ReportingPeriodStart time.Time `gorm:"not null" json:"reporting_period_start"`
	ReportingPeriodEnd   time.Time `gorm:"not null" json:"reporting_period_end"`
	SubmittedAt          time.Time `json:"submitted_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Campaign  Campaign  `gorm:"foreignKey:CampaignID" json:"-"`
	Orphanage Orphanage `gorm:"foreignKey:OrphanageID" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
