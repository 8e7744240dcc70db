package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies which ambassador category a user belongs to
type Role string

const (
	RoleParent Role = "Parent"
	RoleStaff  Role = "Staff"
	RoleAlumni Role = "Alumni"
	RoleOthers Role = "Others"
)

// BenefitStatus tracks where an ambassador sits in the benefit lifecycle
type BenefitStatus string

const (
	BenefitStatusNone     BenefitStatus = "none"
	BenefitStatusEligible BenefitStatus = "eligible"
	BenefitStatusSettled  BenefitStatus = "settled"
)

// User represents an ambassador (or admin) in the system
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100)" json:"last_name"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Mobile       *string    `gorm:"type:varchar(20)" json:"mobile"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'Parent'" json:"role"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CampusID     *uuid.UUID `gorm:"type:uuid" json:"campus_id"`
	Campus       *Campus    `gorm:"foreignKey:CampusID" json:"-"`

	// ChildInAchariya switches a Staff user onto the fee-waiver track.
	// IsFiveStarMember switches the percent function onto the linear
	// long-term track.
	ChildInAchariya  bool    `gorm:"default:false" json:"child_in_achariya"`
	StudentFee       float64 `gorm:"type:decimal(12,2);default:0" json:"student_fee"`
	IsFiveStarMember bool    `gorm:"default:false" json:"is_five_star_member"`

	// Cached aggregates maintained by the recount job. Display only: money
	// calculations always recompute from raw referrals.
	ConfirmedReferralCount int           `gorm:"default:0" json:"confirmed_referral_count"`
	YearFeeBenefitPercent  float64       `gorm:"type:decimal(5,2);default:0" json:"year_fee_benefit_percent"`
	BenefitStatus          BenefitStatus `gorm:"type:varchar(20);default:'none'" json:"benefit_status"`

	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
