package handler

import (
	"net/http"

	"heartchain/internal/middleware"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /auth/register — donor signup.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, token, err := h.authSvc.Register(req.Email, req.Password, req.FullName, req.Phone, req.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "access_token": token})
}

type orphanageFields struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Description        string `json:"description"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required"`
	Website            string `json:"website"`
	Address            string `json:"address" binding:"required"`
	City               string `json:"city" binding:"required"`
	State              string `json:"state" binding:"required"`
	Pincode            string `json:"pincode" binding:"required"`
	Country            string `json:"country"`
	Capacity           int    `json:"capacity" binding:"required"`
	CurrentOccupancy   int    `json:"current_occupancy"`
	EstablishedYear    *int   `json:"established_year"`
}

// RegisterOrphanage handles POST /auth/register-orphanage. User and
// orphanage are created together or not at all; the org starts pending
// review.
func (h *AuthHandler) RegisterOrphanage(c *gin.Context) {
	var req struct {
		Email     string          `json:"email" binding:"required,email"`
		Password  string          `json:"password" binding:"required,min=8"`
		FullName  string          `json:"full_name" binding:"required"`
		Phone     string          `json:"phone"`
		Orphanage orphanageFields `json:"orphanage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	org := service.OrphanagePayload{
		Name:               req.Orphanage.Name,
		RegistrationNumber: req.Orphanage.RegistrationNumber,
		Description:        req.Orphanage.Description,
		Email:              req.Orphanage.Email,
		Phone:              req.Orphanage.Phone,
		Website:            req.Orphanage.Website,
		Address:            req.Orphanage.Address,
		City:               req.Orphanage.City,
		State:              req.Orphanage.State,
		Pincode:            req.Orphanage.Pincode,
		Country:            req.Orphanage.Country,
		Capacity:           req.Orphanage.Capacity,
		CurrentOccupancy:   req.Orphanage.CurrentOccupancy,
		EstablishedYear:    req.Orphanage.EstablishedYear,
	}
	u, o, token, err := h.authSvc.RegisterOrphanage(req.Email, req.Password, req.FullName, req.Phone, org)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "orphanage": o, "access_token": token})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, token, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "access_token": token})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.authSvc.CurrentUser(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.authSvc.ChangePassword(middleware.GetUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// RefreshToken handles POST /auth/refresh. The role is re-read from the
// store so a demoted or deactivated account cannot mint a fresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := h.authSvc.RefreshToken(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
