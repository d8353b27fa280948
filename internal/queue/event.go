// Package queue defines message payloads exchanged over the message broker.
package queue

// DonationConfirmedEvent is published after a donation is confirmed and the
// campaign ledger updated. Downstream consumers (receipts, notifications,
// analytics) get enough context to act without querying the primary database.
type DonationConfirmedEvent struct {
	DonationID    uint    `json:"donation_id"`
	TransactionID string  `json:"transaction_id"`
	CampaignID    uint    `json:"campaign_id"`
	CampaignTitle string  `json:"campaign_title"`
	OrphanageID   uint    `json:"orphanage_id"`
	DonorName     string  `json:"donor_name"`
	DonorEmail    string  `json:"donor_email"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	IsAnonymous   bool    `json:"is_anonymous"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
