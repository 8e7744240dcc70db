package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/jobs"
	"github.com/achariya/ambassador-backend/internal/models"
)

// ReferralHandler manages referral lead transitions
type ReferralHandler struct {
	db         *gorm.DB
	recountJob *jobs.BenefitRecountJob
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(db *gorm.DB, recountJob *jobs.BenefitRecountJob) *ReferralHandler {
	return &ReferralHandler{db: db, recountJob: recountJob}
}

// CreateReferralRequest is the lead submission request body
type CreateReferralRequest struct {
	ParentName      string         `json:"parent_name" binding:"required"`
	ParentMobile    string         `json:"parent_mobile" binding:"required"`
	StudentName     string         `json:"student_name" binding:"required"`
	CampusID        uuid.UUID      `json:"campus_id" binding:"required"`
	GradeInterested string         `json:"grade_interested"`
	SelectedFeeType models.FeeType `json:"selected_fee_type"`
}

// Create submits a new referral lead owned by the authenticated ambassador
func (h *ReferralHandler) Create(c *gin.Context) {
	userVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	ambassadorID, ok := userVal.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feeType := req.SelectedFeeType
	if feeType != models.FeeTypeWOTP {
		feeType = models.FeeTypeOTP
	}

	lead := models.ReferralLead{
		AmbassadorID:    ambassadorID,
		ParentName:      req.ParentName,
		ParentMobile:    req.ParentMobile,
		StudentName:     req.StudentName,
		CampusID:        req.CampusID,
		GradeInterested: req.GradeInterested,
		LeadStatus:      models.LeadStatusNew,
		SelectedFeeType: feeType,
	}
	if err := h.db.Create(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create referral"})
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// UpdateStatusRequest is the status transition request body
type UpdateStatusRequest struct {
	LeadStatus   models.LeadStatus `json:"lead_status" binding:"required"`
	AdmittedYear *string           `json:"admitted_year"`
}

var validLeadStatuses = map[models.LeadStatus]bool{
	models.LeadStatusNew:       true,
	models.LeadStatusFollowUp:  true,
	models.LeadStatusConfirmed: true,
	models.LeadStatusAdmitted:  true,
	models.LeadStatusRejected:  true,
}

// UpdateStatus transitions a lead's status. Confirmation stamps the date
// and triggers an async benefit recount for the ambassador.
func (h *ReferralHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validLeadStatuses[req.LeadStatus] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown lead status"})
		return
	}

	var lead models.ReferralLead
	if err := h.db.First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referral"})
		return
	}

	lead.LeadStatus = req.LeadStatus
	if req.AdmittedYear != nil {
		lead.AdmittedYear = req.AdmittedYear
	}
	if req.LeadStatus == models.LeadStatusConfirmed || req.LeadStatus == models.LeadStatusAdmitted {
		if lead.ConfirmedDate == nil {
			now := time.Now()
			lead.ConfirmedDate = &now
		}
	}

	if err := h.db.Save(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update referral"})
		return
	}

	// Best effort: the nightly sweep covers a missed enqueue
	if err := h.recountJob.EnqueueRecount(lead.AmbassadorID); err != nil {
		log.Printf("Failed to enqueue recount for %s: %v", lead.AmbassadorID, err)
	}

	c.JSON(http.StatusOK, lead)
}
