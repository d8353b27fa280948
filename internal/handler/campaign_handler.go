package handler

import (
	"net/http"
	"time"

	"heartchain/internal/domain"
	"heartchain/internal/middleware"
	"heartchain/internal/repository"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignRepo *repository.CampaignRepository
	campaignSvc  *service.CampaignService
}

func NewCampaignHandler(campaignRepo *repository.CampaignRepository, campaignSvc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo, campaignSvc: campaignSvc}
}

// ListPublicActive handles GET /campaigns/public/active — the donor-facing
// feed. Only active campaigns of verified orphanages appear, featured
// first.
func (h *CampaignHandler) ListPublicActive(c *gin.Context) {
	limit, offset := parsePagination(c)
	campaigns, err := h.campaignRepo.ListPublicActive(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns, "limit": limit, "offset": offset})
}

// List handles GET /campaigns with status/category/orphanage_id filters.
// Non-admin callers are pinned to active campaigns of verified orphanages
// regardless of the filters they ask for.
func (h *CampaignHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	f := repository.CampaignFilter{
		Status:            domain.CampaignActive,
		Category:          c.Query("category"),
		Limit:             limit,
		Offset:            offset,
		VerifiedOwnerOnly: true,
	}
	if id, ok := queryUint(c, "orphanage_id"); ok {
		f.OrphanageID = id
	}
	if middleware.GetRole(c) == domain.RoleAdmin {
		f.Status = c.Query("status")
		f.VerifiedOwnerOnly = false
	}
	campaigns, err := h.campaignRepo.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns, "limit": limit, "offset": offset})
}

// Get handles GET /campaigns/:id.
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	campaign, err := h.campaignRepo.GetByIDWithOrphanage(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// My handles GET /campaigns/my — all of the caller's campaigns, every
// status included.
func (h *CampaignHandler) My(c *gin.Context) {
	campaigns, err := h.campaignSvc.ListMine(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns})
}

// Create handles POST /campaigns. The caller's orphanage must be
// verified; the new campaign awaits admin approval.
func (h *CampaignHandler) Create(c *gin.Context) {
	var req struct {
		Title        string     `json:"title" binding:"required"`
		Description  string     `json:"description"`
		Category     string     `json:"category" binding:"required"`
		TargetAmount float64    `json:"target_amount" binding:"required"`
		EndDate      *time.Time `json:"end_date"`
		Images       []string   `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.campaignSvc.Create(middleware.GetUserID(c), service.CampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		EndDate:      req.EndDate,
		Images:       req.Images,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// Update handles PUT /campaigns/:id — owner-only edits.
func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		TargetAmount *float64   `json:"target_amount"`
		EndDate      *time.Time `json:"end_date"`
		Images       []string   `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.campaignSvc.Update(middleware.GetUserID(c), id, service.CampaignUpdate{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		EndDate:      req.EndDate,
		Images:       req.Images,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// Delete handles DELETE /campaigns/:id. Campaigns that have taken
// donations cannot be removed.
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	isAdmin := middleware.GetRole(c) == domain.RoleAdmin
	if err := h.campaignSvc.Delete(middleware.GetUserID(c), id, isAdmin); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "campaign deleted"})
}
