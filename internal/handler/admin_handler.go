package handler

import (
	"net/http"

	"heartchain/internal/domain"
	"heartchain/internal/middleware"
	"heartchain/internal/repository"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orphRepo     *repository.OrphanageRepository
	campaignRepo *repository.CampaignRepository
	donationRepo *repository.DonationRepository
	reportRepo   *repository.ReportRepository
	orphSvc      *service.OrphanageService
	campaignSvc  *service.CampaignService
	disbSvc      *service.DisbursementService
}

func NewAdminHandler(
	orphRepo *repository.OrphanageRepository,
	campaignRepo *repository.CampaignRepository,
	donationRepo *repository.DonationRepository,
	reportRepo *repository.ReportRepository,
	orphSvc *service.OrphanageService,
	campaignSvc *service.CampaignService,
	disbSvc *service.DisbursementService,
) *AdminHandler {
	return &AdminHandler{
		orphRepo:     orphRepo,
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		reportRepo:   reportRepo,
		orphSvc:      orphSvc,
		campaignSvc:  campaignSvc,
		disbSvc:      disbSvc,
	}
}

// VerifyOrphanage handles POST /admin/orphanages/:id/verify — the
// verification decision. Rejections must carry a reason.
func (h *AdminHandler) VerifyOrphanage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status          string `json:"status" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.orphSvc.Verify(middleware.GetUserID(c), id, req.Status, req.RejectionReason)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ApproveCampaign handles POST /admin/campaigns/:id/approve.
func (h *AdminHandler) ApproveCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Approved        *bool  `json:"approved" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.campaignSvc.Approve(middleware.GetUserID(c), id, *req.Approved, req.RejectionReason)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Disburse handles POST /admin/campaigns/:id/disburse — release funds
// against a campaign backed by at least one verified report.
func (h *AdminHandler) Disburse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Amount    float64 `json:"amount" binding:"required"`
		Method    string  `json:"method"`
		Reference string  `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txn, err := h.disbSvc.Disburse(c.Request.Context(), middleware.GetUserID(c), id, req.Amount, req.Method, req.Reference)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// PendingVerifications handles GET /admin/pending-verifications — the
// review queue of orgs, campaigns, and reports awaiting a decision.
func (h *AdminHandler) PendingVerifications(c *gin.Context) {
	orgs, err := h.orphRepo.List(repository.OrphanageFilter{Status: domain.OrphanagePending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load queue"})
		return
	}
	campaigns, err := h.campaignRepo.List(repository.CampaignFilter{Status: domain.CampaignPendingApproval})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load queue"})
		return
	}
	reports, err := h.reportRepo.List(repository.ReportFilter{Status: domain.ReportSubmitted})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orphanages": orgs,
		"campaigns":  campaigns,
		"reports":    reports,
	})
}

// Dashboard handles GET /admin/dashboard — platform-wide counts and
// totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts := gin.H{}
	for _, s := range []string{domain.OrphanagePending, domain.OrphanageVerified, domain.OrphanageRejected, domain.OrphanageSuspended} {
		n, err := h.orphRepo.CountByStatus(s)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}
		counts[s] = n
	}
	activeCampaigns, err := h.campaignRepo.CountByStatus(domain.CampaignActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	pendingCampaigns, err := h.campaignRepo.CountByStatus(domain.CampaignPendingApproval)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	totalRaised, distinctDonors, err := h.donationRepo.CompletedTotals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orphanages": counts,
		"campaigns": gin.H{
			"active":           activeCampaigns,
			"pending_approval": pendingCampaigns,
		},
		"donations": gin.H{
			"total_raised":    totalRaised,
			"distinct_donors": distinctDonors,
		},
	})
}
