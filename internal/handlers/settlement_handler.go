package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	settlementsvc "github.com/achariya/ambassador-backend/internal/services/settlement"
)

// SettlementHandler manages the settlement ledger endpoints
type SettlementHandler struct {
	settlementSvc *settlementsvc.Service
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementSvc *settlementsvc.Service) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

// CreateSettlementRequest is the create request body
type CreateSettlementRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Amount float64   `json:"amount" binding:"required"`
	Notes  string    `json:"notes"`
}

// ProcessSettlementRequest is the process request body
type ProcessSettlementRequest struct {
	BankReference string `json:"bank_reference" binding:"required"`
}

// ListForUser returns a user's settlements, newest first
func (h *SettlementHandler) ListForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	settlements, err := h.settlementSvc.ListSettlements(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settlements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

// Create writes a balance-checked settlement record
func (h *SettlementHandler) Create(c *gin.Context) {
	var req CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.settlementSvc.CreateSettlement(req.UserID, req.Amount, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, settlementsvc.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, settlementsvc.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, settlementsvc.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create settlement"})
		}
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

// Process attaches a bank reference and marks the settlement processed
func (h *SettlementHandler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settlement id"})
		return
	}

	var req ProcessSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	adminID, ok := adminVal.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	settlement, err := h.settlementSvc.ProcessSettlement(id, req.BankReference, adminID)
	if err != nil {
		switch {
		case errors.Is(err, settlementsvc.ErrSettlementNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		case errors.Is(err, settlementsvc.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, settlementsvc.ErrInvalidBankReference):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process settlement"})
		}
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// Delete removes a pending settlement
func (h *SettlementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settlement id"})
		return
	}

	if err := h.settlementSvc.DeleteSettlement(id); err != nil {
		switch {
		case errors.Is(err, settlementsvc.ErrSettlementNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		case errors.Is(err, settlementsvc.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete settlement"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
