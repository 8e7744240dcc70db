package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/achariya/ambassador-backend/internal/services/revenue"
)

// BenefitHandler serves ambassador benefit statistics
type BenefitHandler struct {
	revenueSvc *revenue.Service
}

// NewBenefitHandler creates a new benefit handler
func NewBenefitHandler(revenueSvc *revenue.Service) *BenefitHandler {
	return &BenefitHandler{revenueSvc: revenueSvc}
}

// GetMyStats returns the authenticated ambassador's benefit stats
func (h *BenefitHandler) GetMyStats(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	h.respondStats(c, userID.(uuid.UUID))
}

// GetUserStats returns any ambassador's benefit stats (admin only)
func (h *BenefitHandler) GetUserStats(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	h.respondStats(c, userID)
}

func (h *BenefitHandler) respondStats(c *gin.Context, userID uuid.UUID) {
	stats, err := h.revenueSvc.GetUserRevenueStats(userID)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, revenue.ErrNoCurrentYear):
			c.JSON(http.StatusConflict, gin.H{"error": "No current academic year configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute benefit stats"})
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}
