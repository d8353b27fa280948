package models

import (
	"time"

	"gorm.io/gorm"
)

type Donation struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	DonorID     *uint `gorm:"index" json:"donor_id"` // nil once anonymised
	CampaignID  uint  `gorm:"not null;index" json:"campaign_id"`
	OrphanageID uint  `gorm:"not null;index" json:"orphanage_id"`

	// Donor snapshot so the record stays meaningful if the account goes away.
	DonorName  string `gorm:"size:255" json:"donor_name"`
	DonorEmail string `gorm:"size:255" json:"donor_email"`
	DonorPhone string `gorm:"size:20" json:"donor_phone"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;default:'INR'" json:"currency"`

	RazorpayOrderID   string `gorm:"size:128;uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID string `gorm:"size:128" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `gorm:"size:255" json:"-"`

	// initiated | completed | failed
	Status          string     `gorm:"size:20;not null;default:'initiated';index" json:"status"`
	IsAnonymous     bool       `gorm:"default:false" json:"is_anonymous"`
	Message         string     `gorm:"size:512" json:"message,omitempty"`
	ReceiptNumber   string     `gorm:"size:64" json:"receipt_number,omitempty"`
	TransactionDate *time.Time `json:"transaction_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}
