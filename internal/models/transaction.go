package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is the unified money ledger: one row per completed donation and
// one per disbursement (payout). All aggregates derive from this and the
// donations table rather than from stored balances.
type Transaction struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID string  `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	Type          string  `gorm:"size:20;not null;index" json:"transaction_type"` // donation | disbursement
	Amount        float64 `gorm:"not null" json:"amount"`
	Currency      string  `gorm:"size:3;default:'INR'" json:"currency"`
	Status        string  `gorm:"size:20;not null;index" json:"status"` // pending | completed | failed

	CampaignID  *uint `gorm:"index" json:"campaign_id,omitempty"`
	OrphanageID *uint `gorm:"index" json:"orphanage_id,omitempty"`
	DonorID     *uint `gorm:"index" json:"donor_id,omitempty"`
	DonationID  *uint `gorm:"index" json:"donation_id,omitempty"`

	PaymentGateway       string `gorm:"size:32" json:"payment_gateway,omitempty"`
	GatewayTransactionID string `gorm:"size:128" json:"gateway_transaction_id,omitempty"`
	GatewayOrderID       string `gorm:"size:128" json:"gateway_order_id,omitempty"`

	DisbursedByID         *uint  `json:"disbursed_by,omitempty"`
	DisbursementMethod    string `gorm:"size:32" json:"method,omitempty"`
	DisbursementReference string `gorm:"size:128" json:"reference,omitempty"`

	Description     string    `gorm:"size:512" json:"description,omitempty"`
	TransactionDate time.Time `gorm:"index" json:"transaction_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
