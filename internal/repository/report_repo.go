package repository

import (
	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(rep *models.Report) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var rep models.Report
	if err := r.db.First(&rep, id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) GetByIDWithRelations(id uint) (*models.Report, error) {
	var rep models.Report
	if err := r.db.Preload("Campaign").Preload("Orphanage").First(&rep, id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

type ReportFilter struct {
	Status      string
	OrphanageID uint
	CampaignID  uint
}

func (r *ReportRepository) List(f ReportFilter) ([]models.Report, error) {
	q := r.db.Model(&models.Report{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OrphanageID != 0 {
		q = q.Where("orphanage_id = ?", f.OrphanageID)
	}
	if f.CampaignID != 0 {
		q = q.Where("campaign_id = ?", f.CampaignID)
	}
	var out []models.Report
	err := q.Order("submitted_at DESC").Find(&out).Error
	return out, err
}

// ListRecentVerified powers the public impact feed.
func (r *ReportRepository) ListRecentVerified(limit int) ([]models.Report, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}
	var out []models.Report
	err := r.db.Preload("Campaign").Preload("Orphanage").
		Where("status = ?", domain.ReportVerified).
		Order("submitted_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

// SumVerifiedUtilizedByCampaign totals verified utilization for a campaign,
// optionally excluding one report (used when deciding that report's own
// verification).
func (r *ReportRepository) SumVerifiedUtilizedByCampaign(campaignID uint, excludeID uint) (float64, error) {
	var total float64
	q := r.db.Model(&models.Report{}).
		Where("campaign_id = ? AND status = ?", campaignID, domain.ReportVerified)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Select("COALESCE(SUM(amount_utilized), 0)").Scan(&total).Error
	return total, err
}

// SumUtilizedByOrphanage totals reported utilization regardless of status,
// feeding the unreported_funds dashboard stat.
func (r *ReportRepository) SumUtilizedByOrphanage(orphanageID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Report{}).
		Where("orphanage_id = ?", orphanageID).
		Select("COALESCE(SUM(amount_utilized), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ReportRepository) Update(rep *models.Report) error {
	return r.db.Save(rep).Error
}
