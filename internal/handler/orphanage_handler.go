package handler

import (
	"net/http"

	"heartchain/internal/domain"
	"heartchain/internal/middleware"
	"heartchain/internal/repository"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type OrphanageHandler struct {
	orphRepo   *repository.OrphanageRepository
	orphSvc    *service.OrphanageService
	summarySvc *service.SummaryService
	disbSvc    *service.DisbursementService
}

func NewOrphanageHandler(
	orphRepo *repository.OrphanageRepository,
	orphSvc *service.OrphanageService,
	summarySvc *service.SummaryService,
	disbSvc *service.DisbursementService,
) *OrphanageHandler {
	return &OrphanageHandler{
		orphRepo:   orphRepo,
		orphSvc:    orphSvc,
		summarySvc: summarySvc,
		disbSvc:    disbSvc,
	}
}

// List handles GET /orphanages. Public callers only ever see verified
// orgs; the status filter is honored for admins alone.
func (h *OrphanageHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	f := repository.OrphanageFilter{
		Status: domain.OrphanageVerified,
		City:   c.Query("city"),
		State:  c.Query("state"),
		Limit:  limit,
		Offset: offset,
	}
	if middleware.GetRole(c) == domain.RoleAdmin {
		f.Status = c.Query("status")
	}
	orgs, err := h.orphRepo.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orphanages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orgs, "limit": limit, "offset": offset})
}

// Get handles GET /orphanages/:id.
func (h *OrphanageHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	o, err := h.orphRepo.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// My handles GET /orphanages/my — the caller's own org record.
func (h *OrphanageHandler) My(c *gin.Context) {
	o, err := h.orphRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Update handles PUT /orphanages/:id — owner-only profile edits. Status
// never moves through this path.
func (h *OrphanageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name             *string  `json:"name"`
		Description      *string  `json:"description"`
		Email            *string  `json:"email"`
		Phone            *string  `json:"phone"`
		Website          *string  `json:"website"`
		Address          *string  `json:"address"`
		City             *string  `json:"city"`
		State            *string  `json:"state"`
		Pincode          *string  `json:"pincode"`
		Capacity         *int     `json:"capacity"`
		CurrentOccupancy *int     `json:"current_occupancy"`
		Logo             *string  `json:"logo"`
		Images           []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.orphSvc.UpdateProfile(middleware.GetUserID(c), id, service.OrphanageUpdate{
		Name:             req.Name,
		Description:      req.Description,
		Email:            req.Email,
		Phone:            req.Phone,
		Website:          req.Website,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Pincode:          req.Pincode,
		Capacity:         req.Capacity,
		CurrentOccupancy: req.CurrentOccupancy,
		Logo:             req.Logo,
		Images:           req.Images,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Summary handles GET /orphanages/my/summary — the dashboard aggregates.
func (h *OrphanageHandler) Summary(c *gin.Context) {
	s, err := h.summarySvc.ForOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Payouts handles GET /orphanages/my/payouts — disbursement history.
func (h *OrphanageHandler) Payouts(c *gin.Context) {
	o, err := h.orphRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	payouts, total, err := h.disbSvc.Payouts(o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payouts, "total_disbursed": total})
}
