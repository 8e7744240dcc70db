package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bonus eligibility tags carried by GlobalBenefitConfig
const (
	BonusTagParent       = "PARENT"
	BonusTagStaffChild   = "STAFF_CHILD"
	BonusTagStaffPayout  = "STAFF_PAYOUT"
	BonusTagAlumniOthers = "ALUMNI_OTHERS"
)

// SlabEntry is one tier of the referral-count to benefit-percent table.
// ReferralCount values 1..5 are unique keys; benefit caps at tier 5.
type SlabEntry struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReferralCount         int       `gorm:"uniqueIndex;not null" json:"referral_count"`
	TierName              string    `gorm:"type:varchar(50)" json:"tier_name"`
	YearFeeBenefitPercent float64   `gorm:"type:decimal(5,2);not null" json:"year_fee_benefit_percent"`
	BaseLongTermPercent   float64   `gorm:"type:decimal(5,2);default:0" json:"base_long_term_percent"`
	LongTermExtraPercent  float64   `gorm:"type:decimal(5,2);default:0" json:"long_term_extra_percent"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GlobalBenefitConfig holds the app-bonus settings that apply across all
// slab tiers: which role tags earn the flat bonus and at what percent.
type GlobalBenefitConfig struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AppBonusPercent     float64    `gorm:"type:decimal(5,2);default:0" json:"app_bonus_percent"`
	AppBonusEligibility StringList `gorm:"type:jsonb" json:"app_bonus_eligibility"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
