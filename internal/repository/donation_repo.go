package repository

import (
	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(d *models.Donation) error {
	return r.db.Create(d).Error
}

func (r *DonationRepository) GetByID(id uint) (*models.Donation, error) {
	var d models.Donation
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepository) GetByOrderID(orderID string) (*models.Donation, error) {
	var d models.Donation
	if err := r.db.Where("razorpay_order_id = ?", orderID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByDonor returns the donor's history, newest first.
func (r *DonationRepository) ListByDonor(donorID uint) ([]models.Donation, error) {
	var out []models.Donation
	err := r.db.Preload("Campaign").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListRecentByOrphanage feeds the orphanage dashboard.
func (r *DonationRepository) ListRecentByOrphanage(orphanageID uint, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []models.Donation
	err := r.db.Where("orphanage_id = ?", orphanageID).
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

// SumCompletedByCampaign is the ledger-consistency check: it must equal the
// campaign's raised_amount at all times.
func (r *DonationRepository) SumCompletedByCampaign(campaignID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Donation{}).
		Where("campaign_id = ? AND status = ?", campaignID, domain.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CompletedTotals returns the platform-wide completed donation sum and the
// distinct completed donor count for the admin dashboard.
func (r *DonationRepository) CompletedTotals() (total float64, donors int64, err error) {
	err = r.db.Model(&models.Donation{}).
		Where("status = ?", domain.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.Donation{}).
		Where("status = ? AND donor_id IS NOT NULL", domain.DonationCompleted).
		Distinct("donor_id").
		Count(&donors).Error
	return total, donors, err
}
