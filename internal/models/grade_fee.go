package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeFee is the per-campus, per-grade, per-academic-year fee schedule.
// The grade-1 row supplies the baseline for cash-payout benefit math.
type GradeFee struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CampusID     uuid.UUID `gorm:"type:uuid;not null;index:idx_grade_fee,unique" json:"campus_id"`
	Campus       Campus    `gorm:"foreignKey:CampusID" json:"-"`
	Grade        string    `gorm:"type:varchar(20);not null;index:idx_grade_fee,unique" json:"grade"`
	AcademicYear string    `gorm:"type:varchar(9);not null;index:idx_grade_fee,unique" json:"academic_year"`
	OTPFee       float64   `gorm:"type:decimal(12,2);not null" json:"otp_fee"`
	WOTPFee      float64   `gorm:"type:decimal(12,2);not null" json:"wotp_fee"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Grade1 is the grade key used for cash-payout baselines
const Grade1 = "1"

// FeeFor returns the fee for the given fee type
func (f GradeFee) FeeFor(feeType FeeType) float64 {
	if feeType == FeeTypeWOTP {
		return f.WOTPFee
	}
	return f.OTPFee
}
