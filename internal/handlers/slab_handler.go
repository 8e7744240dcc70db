package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/achariya/ambassador-backend/internal/models"
	slabsvc "github.com/achariya/ambassador-backend/internal/services/slab"
)

// SlabHandler manages the benefit slab table
type SlabHandler struct {
	slabSvc *slabsvc.Service
}

// NewSlabHandler creates a new slab handler
func NewSlabHandler(slabSvc *slabsvc.Service) *SlabHandler {
	return &SlabHandler{slabSvc: slabSvc}
}

// SlabRequest is the create/update request body
type SlabRequest struct {
	ReferralCount         int     `json:"referral_count" binding:"required,min=1,max=5"`
	TierName              string  `json:"tier_name"`
	YearFeeBenefitPercent float64 `json:"year_fee_benefit_percent" binding:"required,min=0,max=100"`
	BaseLongTermPercent   float64 `json:"base_long_term_percent" binding:"min=0,max=100"`
	LongTermExtraPercent  float64 `json:"long_term_extra_percent" binding:"min=0,max=100"`
}

// List returns the slab table ordered by referral count
func (h *SlabHandler) List(c *gin.Context) {
	slabs, err := h.slabSvc.GetSlabs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slabs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slabs": slabs})
}

// Create adds a slab tier
func (h *SlabHandler) Create(c *gin.Context) {
	var req SlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.SlabEntry{
		ReferralCount:         req.ReferralCount,
		TierName:              req.TierName,
		YearFeeBenefitPercent: req.YearFeeBenefitPercent,
		BaseLongTermPercent:   req.BaseLongTermPercent,
		LongTermExtraPercent:  req.LongTermExtraPercent,
	}
	if err := h.slabSvc.CreateSlab(&entry); err != nil {
		if errors.Is(err, slabsvc.ErrDuplicateReferralCount) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slab"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Update modifies a slab tier
func (h *SlabHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slab id"})
		return
	}

	var req SlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.slabSvc.UpdateSlab(id, &models.SlabEntry{
		ReferralCount:         req.ReferralCount,
		TierName:              req.TierName,
		YearFeeBenefitPercent: req.YearFeeBenefitPercent,
		BaseLongTermPercent:   req.BaseLongTermPercent,
		LongTermExtraPercent:  req.LongTermExtraPercent,
	})
	if err != nil {
		switch {
		case errors.Is(err, slabsvc.ErrSlabNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Slab not found"})
		case errors.Is(err, slabsvc.ErrDuplicateReferralCount):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slab"})
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete removes a slab tier
func (h *SlabHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slab id"})
		return
	}

	if err := h.slabSvc.DeleteSlab(id); err != nil {
		if errors.Is(err, slabsvc.ErrSlabNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slab not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slab"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Reset restores the stock slab table
func (h *SlabHandler) Reset(c *gin.Context) {
	if err := h.slabSvc.ResetToDefault(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset slabs"})
		return
	}
	slabs, err := h.slabSvc.GetSlabs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slabs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slabs": slabs})
}
