package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student represents an admitted student linked back to the referral lead
// that brought them in. Once linked, its fee figures are authoritative over
// the lead's own estimate.
type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReferralLeadID  *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"referral_lead_id"`
	Name            string     `gorm:"type:varchar(150);not null" json:"name"`
	CampusID        uuid.UUID  `gorm:"type:uuid;not null" json:"campus_id"`
	Campus          Campus     `gorm:"foreignKey:CampusID" json:"-"`
	Grade           string     `gorm:"type:varchar(20)" json:"grade"`
	AcademicYear    string     `gorm:"type:varchar(9)" json:"academic_year"`
	AnnualFee       float64    `gorm:"type:decimal(12,2);default:0" json:"annual_fee"`
	BaseFee         float64    `gorm:"type:decimal(12,2);default:0" json:"base_fee"`
	SelectedFeeType FeeType    `gorm:"type:varchar(10);default:'OTP'" json:"selected_fee_type"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
