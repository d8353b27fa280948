package repository

import (
	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(c *models.Campaign) error {
	return r.db.Create(c).Error
}

func (r *CampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) GetByIDWithOrphanage(id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.Preload("Orphanage").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

type CampaignFilter struct {
	Status      string
	Category    string
	OrphanageID uint
	Limit       int
	Offset      int

	// VerifiedOwnerOnly restricts results to campaigns of verified
	// orphanages. Set for every donor-facing listing; only admin queries
	// leave it off.
	VerifiedOwnerOnly bool
}

func (r *CampaignRepository) List(f CampaignFilter) ([]models.Campaign, error) {
	q := r.db.Model(&models.Campaign{}).Preload("Orphanage")
	if f.VerifiedOwnerOnly {
		q = q.Joins("JOIN orphanages ON orphanages.id = campaigns.orphanage_id AND orphanages.status = ? AND orphanages.deleted_at IS NULL", domain.OrphanageVerified)
	}
	if f.Status != "" {
		q = q.Where("campaigns.status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("campaigns.category = ?", f.Category)
	}
	if f.OrphanageID != 0 {
		q = q.Where("campaigns.orphanage_id = ?", f.OrphanageID)
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	var out []models.Campaign
	err := q.Order("campaigns.created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, err
}

// ListPublicActive returns donor-facing campaigns: active and owned by a
// verified orphanage. Visibility is derived at query time, never stored.
func (r *CampaignRepository) ListPublicActive(limit, offset int) ([]models.Campaign, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []models.Campaign
	err := r.db.
		Joins("JOIN orphanages ON orphanages.id = campaigns.orphanage_id AND orphanages.status = ? AND orphanages.deleted_at IS NULL", domain.OrphanageVerified).
		Where("campaigns.status = ?", domain.CampaignActive).
		Preload("Orphanage").
		Order("campaigns.is_featured DESC, campaigns.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *CampaignRepository) ListByOrphanage(orphanageID uint) ([]models.Campaign, error) {
	var out []models.Campaign
	err := r.db.Where("orphanage_id = ?", orphanageID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *CampaignRepository) Update(c *models.Campaign) error {
	return r.db.Save(c).Error
}

func (r *CampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

func (r *CampaignRepository) CountByStatus(status string) (int64, error) {
	var n int64
	q := r.db.Model(&models.Campaign{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
