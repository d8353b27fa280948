package handler

import (
	"net/http"
	"strconv"
	"time"

	"heartchain/internal/middleware"
	"heartchain/internal/repository"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportRepo *repository.ReportRepository
	reportSvc  *service.ReportService
}

func NewReportHandler(reportRepo *repository.ReportRepository, reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportRepo: reportRepo, reportSvc: reportSvc}
}

// Submit handles POST /reports — an orphanage files a utilization report
// against one of its own campaigns.
func (h *ReportHandler) Submit(c *gin.Context) {
	var req struct {
		CampaignID           uint      `json:"campaign_id" binding:"required"`
		Title                string    `json:"title" binding:"required"`
		Description          string    `json:"description"`
		ReportType           string    `json:"report_type" binding:"required"`
		AmountUtilized       float64   `json:"amount_utilized"`
		BeneficiariesCount   int       `json:"beneficiaries_count"`
		ActivitiesConducted  []string  `json:"activities_conducted"`
		Images               []string  `json:"images"`
		Receipts             []string  `json:"receipts"`
		Documents            []string  `json:"documents"`
		ReportingPeriodStart time.Time `json:"reporting_period_start" binding:"required"`
		ReportingPeriodEnd   time.Time `json:"reporting_period_end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.reportSvc.Submit(middleware.GetUserID(c), service.ReportInput{
		CampaignID:           req.CampaignID,
		Title:                req.Title,
		Description:          req.Description,
		ReportType:           req.ReportType,
		AmountUtilized:       req.AmountUtilized,
		BeneficiariesCount:   req.BeneficiariesCount,
		ActivitiesConducted:  req.ActivitiesConducted,
		Images:               req.Images,
		Receipts:             req.Receipts,
		Documents:            req.Documents,
		ReportingPeriodStart: req.ReportingPeriodStart,
		ReportingPeriodEnd:   req.ReportingPeriodEnd,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// List handles GET /reports?status=. Admins see everything; orphanage
// users see only their own.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reportSvc.List(middleware.GetUserID(c), middleware.GetRole(c), c.Query("status"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// ByCampaign handles GET /reports/campaign/:id — verified reports for a
// campaign, donor-visible.
func (h *ReportHandler) ByCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reports, err := h.reportRepo.List(repository.ReportFilter{
		CampaignID: id,
		Status:     c.DefaultQuery("status", "verified"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// RecentVerified handles GET /reports/public/recent — transparency feed
// for the landing page.
func (h *ReportHandler) RecentVerified(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	reports, err := h.reportRepo.ListRecentVerified(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// Get handles GET /reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.reportRepo.GetByIDWithRelations(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Verify handles POST /reports/:id/verify — admin decision on a
// submitted report.
func (h *ReportHandler) Verify(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status          string `json:"status" binding:"required"`
		Notes           string `json:"notes"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.reportSvc.Verify(middleware.GetUserID(c), id, req.Status, req.Notes, req.RejectionReason)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
