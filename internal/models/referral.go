package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadStatus defines the lifecycle state of a referral lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusFollowUp  LeadStatus = "Follow_up"
	LeadStatusConfirmed LeadStatus = "Confirmed"
	LeadStatusAdmitted  LeadStatus = "Admitted"
	LeadStatusRejected  LeadStatus = "Rejected"
)

// FeeType selects which fee schedule column applies to a referral
type FeeType string

const (
	FeeTypeOTP  FeeType = "OTP"  // one-time-payment plan
	FeeTypeWOTP FeeType = "WOTP" // without one-time-payment plan
)

// ReferralLead represents a prospective student referred by an ambassador
type ReferralLead struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AmbassadorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"ambassador_id"`
	Ambassador      User       `gorm:"foreignKey:AmbassadorID" json:"-"`
	ParentName      string     `gorm:"type:varchar(150);not null" json:"parent_name"`
	ParentMobile    string     `gorm:"type:varchar(20);not null" json:"parent_mobile"`
	StudentName     string     `gorm:"type:varchar(150);not null" json:"student_name"`
	CampusID        uuid.UUID  `gorm:"type:uuid;not null" json:"campus_id"`
	Campus          Campus     `gorm:"foreignKey:CampusID" json:"-"`
	GradeInterested string     `gorm:"type:varchar(20)" json:"grade_interested"`
	LeadStatus      LeadStatus `gorm:"type:varchar(20);not null;default:'New'" json:"lead_status"`
	SelectedFeeType FeeType    `gorm:"type:varchar(10);default:'OTP'" json:"selected_fee_type"`

	// AdmittedYear is the explicit "YYYY-YYYY" tag set at admission time.
	// Spreadsheet-migrated rows may lack it; classification then falls back
	// to the linked student's academic year, then to CreatedAt.
	AdmittedYear  *string    `gorm:"type:varchar(9)" json:"admitted_year"`
	ConfirmedDate *time.Time `json:"confirmed_date"`

	Student *Student `gorm:"foreignKey:ReferralLeadID" json:"student,omitempty"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
