package benefit

import (
	"github.com/achariya/ambassador-backend/internal/models"
)

// ReferralData carries the two fee figures the calculator needs per
// referral: the admitted student's actual fee and the grade-1 fee of the
// campus the referred student is entering.
type ReferralData struct {
	ActualFee       float64
	CampusGrade1Fee float64
}

// UserContext describes the ambassador whose benefit is being computed
type UserContext struct {
	Role                  models.Role
	ChildInAchariya       bool
	StudentFee            float64
	IsFiveStar            bool
	PreviousYearReferrals []ReferralData
}

// Track selects which benefit formula applies to an ambassador. Resolved
// once per calculation from role and child flags.
type Track int

const (
	// TrackFeeWaiver: the benefit is a waiver against the ambassador's own
	// child's fee (parents, and staff with a child enrolled)
	TrackFeeWaiver Track = iota

	// TrackCashPayout: the benefit is cash computed per referral against
	// the referred student's campus grade-1 fee
	TrackCashPayout
)

// ResolveTrack maps an ambassador onto their benefit track
func ResolveTrack(ctx UserContext) Track {
	if ctx.Role == models.RoleParent || (ctx.Role == models.RoleStaff && ctx.ChildInAchariya) {
		return TrackFeeWaiver
	}
	return TrackCashPayout
}

// BonusTag returns the eligibility tag checked against the global benefit
// config for the app bonus
func BonusTag(ctx UserContext) string {
	switch {
	case ctx.Role == models.RoleParent:
		return models.BonusTagParent
	case ctx.Role == models.RoleStaff && ctx.ChildInAchariya:
		return models.BonusTagStaffChild
	case ctx.Role == models.RoleStaff:
		return models.BonusTagStaffPayout
	default:
		return models.BonusTagAlumniOthers
	}
}

// Result is the calculator output. Breakdown preserves one human-readable
// line per contributing term; finance staff audit disputes against it.
type Result struct {
	TotalAmount        float64  `json:"total_amount"`
	CurrentYearAmount  float64  `json:"current_year_amount"`
	LongTermBaseAmount float64  `json:"long_term_base_amount"`
	TierPercent        float64  `json:"tier_percent"`
	IsLongActive       bool     `json:"is_long_active"`
	Breakdown          []string `json:"breakdown"`
}
