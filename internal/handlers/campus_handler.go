package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/models"
)

// CampusHandler manages campuses and their grade fee schedules
type CampusHandler struct {
	db *gorm.DB
}

// NewCampusHandler creates a new campus handler
func NewCampusHandler(db *gorm.DB) *CampusHandler {
	return &CampusHandler{db: db}
}

// CreateCampusRequest is the campus create request body
type CreateCampusRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}

// GradeFeeRequest is the fee schedule upsert request body
type GradeFeeRequest struct {
	Grade        string  `json:"grade" binding:"required"`
	AcademicYear string  `json:"academic_year" binding:"required"`
	OTPFee       float64 `json:"otp_fee" binding:"required,min=0"`
	WOTPFee      float64 `json:"wotp_fee" binding:"required,min=0"`
}

// List returns all active campuses
func (h *CampusHandler) List(c *gin.Context) {
	var campuses []models.Campus
	if err := h.db.Where("is_active = ?", true).Order("name ASC").Find(&campuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campuses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campuses": campuses})
}

// Create adds a campus with a slugged code
func (h *CampusHandler) Create(c *gin.Context) {
	var req CreateCampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campus := models.Campus{
		Name:     req.Name,
		Code:     slug.Make(req.Name),
		City:     req.City,
		IsActive: true,
	}
	if err := h.db.Create(&campus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campus"})
		return
	}
	c.JSON(http.StatusCreated, campus)
}

// SetGradeFee upserts a fee schedule row for a campus
func (h *CampusHandler) SetGradeFee(c *gin.Context) {
	campusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campus id"})
		return
	}

	var req GradeFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fee models.GradeFee
	err = h.db.Where("campus_id = ? AND grade = ? AND academic_year = ?",
		campusID, req.Grade, req.AcademicYear).First(&fee).Error
	if err == gorm.ErrRecordNotFound {
		fee = models.GradeFee{
			CampusID:     campusID,
			Grade:        req.Grade,
			AcademicYear: req.AcademicYear,
			OTPFee:       req.OTPFee,
			WOTPFee:      req.WOTPFee,
		}
		if err := h.db.Create(&fee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grade fee"})
			return
		}
		c.JSON(http.StatusCreated, fee)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load grade fee"})
		return
	}

	fee.OTPFee = req.OTPFee
	fee.WOTPFee = req.WOTPFee
	if err := h.db.Save(&fee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update grade fee"})
		return
	}
	c.JSON(http.StatusOK, fee)
}
