package benefit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achariya/ambassador-backend/internal/models"
)

func standardSlabs() []models.SlabEntry {
	return []models.SlabEntry{
		{ReferralCount: 1, YearFeeBenefitPercent: 5},
		{ReferralCount: 2, YearFeeBenefitPercent: 10},
		{ReferralCount: 3, YearFeeBenefitPercent: 25},
		{ReferralCount: 4, YearFeeBenefitPercent: 30},
		{ReferralCount: 5, YearFeeBenefitPercent: 50},
	}
}

func referrals(fees ...float64) []ReferralData {
	data := make([]ReferralData, len(fees))
	for i, f := range fees {
		data[i] = ReferralData{ActualFee: f, CampusGrade1Fee: f}
	}
	return data
}

func TestZeroReferralsEarnsNothing(t *testing.T) {
	ctx := UserContext{
		Role:                  models.RoleParent,
		StudentFee:            60000,
		IsFiveStar:            true,
		PreviousYearReferrals: referrals(80000, 50000),
	}

	res := CalculateTotalBenefit(nil, ctx, standardSlabs(), nil)

	assert.Zero(t, res.TotalAmount)
	assert.Zero(t, res.CurrentYearAmount)
	assert.Zero(t, res.LongTermBaseAmount)
	assert.Zero(t, res.TierPercent)
	assert.False(t, res.IsLongActive)
}

func TestParentTwoReferralsStandardSlab(t *testing.T) {
	ctx := UserContext{Role: models.RoleParent, StudentFee: 60000}

	res := CalculateTotalBenefit(referrals(100000, 100000), ctx, standardSlabs(), nil)

	assert.Equal(t, 10.0, res.TierPercent)
	assert.Equal(t, 6000.0, res.CurrentYearAmount)
	assert.Equal(t, 6000.0, res.TotalAmount)
	assert.Zero(t, res.LongTermBaseAmount)
	require.NotEmpty(t, res.Breakdown)
}

func TestAlumniOneReferralMarginalSlice(t *testing.T) {
	ctx := UserContext{Role: models.RoleAlumni}

	res := CalculateTotalBenefit([]ReferralData{{CampusGrade1Fee: 100000}}, ctx, standardSlabs(), nil)

	assert.Equal(t, 5.0, res.TierPercent)
	assert.Equal(t, 5000.0, res.CurrentYearAmount)
}

func TestFiveStarStaffWithChild(t *testing.T) {
	ctx := UserContext{
		Role:                  models.RoleStaff,
		ChildInAchariya:       true,
		StudentFee:            70000,
		IsFiveStar:            true,
		PreviousYearReferrals: referrals(80000, 50000),
	}

	res := CalculateTotalBenefit(referrals(90000), ctx, standardSlabs(), nil)

	assert.Equal(t, 3900.0, res.LongTermBaseAmount) // floor(80000*3%) + floor(50000*3%)
	assert.Equal(t, 3500.0, res.CurrentYearAmount)  // 5% of 70000
	assert.Equal(t, 7400.0, res.TotalAmount)
	assert.True(t, res.IsLongActive)
}

func TestFiveStarForfeitsHistoricBaseWithoutCurrentReferral(t *testing.T) {
	ctx := UserContext{
		Role:                  models.RoleAlumni,
		IsFiveStar:            true,
		PreviousYearReferrals: referrals(80000),
	}

	res := CalculateTotalBenefit(nil, ctx, standardSlabs(), nil)

	assert.Zero(t, res.LongTermBaseAmount)
	assert.Zero(t, res.TotalAmount)
}

func TestHistoricBaseCapsAtFivePriorReferrals(t *testing.T) {
	ctx := UserContext{
		Role:                  models.RoleOthers,
		IsFiveStar:            true,
		PreviousYearReferrals: referrals(60000, 60000, 60000, 60000, 60000, 60000, 60000),
	}

	res := CalculateTotalBenefit(referrals(60000), ctx, standardSlabs(), nil)

	// floor(60000*3%) = 1800 per referral, first five only
	assert.Equal(t, 5*1800.0, res.LongTermBaseAmount)
}

func TestCumulativePercentCapsAtFive(t *testing.T) {
	slabs := standardSlabs()
	for n := 6; n <= 10; n++ {
		assert.Equal(t, GetPercent(5, false, slabs), GetPercent(n, false, slabs))
		assert.Equal(t, GetPercent(5, true, slabs), GetPercent(n, true, slabs))
	}
}

func TestReferralsBeyondFiveContributeNothing(t *testing.T) {
	ctx := UserContext{Role: models.RoleAlumni}
	slabs := standardSlabs()

	five := CalculateTotalBenefit(referrals(80000, 80000, 80000, 80000, 80000), ctx, slabs, nil)
	eight := CalculateTotalBenefit(referrals(80000, 80000, 80000, 80000, 80000, 80000, 80000, 80000), ctx, slabs, nil)

	assert.Equal(t, five.CurrentYearAmount, eight.CurrentYearAmount)
}

func TestMarginalSumIdentity(t *testing.T) {
	slabs := standardSlabs()
	ctx := UserContext{Role: models.RoleOthers}

	// With a uniform fee the marginal slices must sum to the cumulative
	// tier percent applied once
	const fee = 100000.0
	for n := 1; n <= 8; n++ {
		fees := make([]float64, n)
		for i := range fees {
			fees[i] = fee
		}
		res := CalculateTotalBenefit(referrals(fees...), ctx, slabs, nil)

		capped := n
		if capped > 5 {
			capped = 5
		}
		expected := GetPercent(capped, false, slabs) / 100 * fee
		assert.InDelta(t, expected, res.CurrentYearAmount, 0.001, "count %d", n)
	}
}

func TestFiveStarLinearity(t *testing.T) {
	slabs := standardSlabs()
	expected := []float64{0, 5, 10, 15, 20, 25, 25, 25}
	for n, want := range expected {
		assert.Equal(t, want, GetPercent(n, true, slabs), "count %d", n)
	}
}

func TestMissingFeesDefaultToBase(t *testing.T) {
	// Parent with no recorded student fee falls back to 60000
	ctx := UserContext{Role: models.RoleParent, StudentFee: 0}
	res := CalculateTotalBenefit(referrals(0), ctx, standardSlabs(), nil)
	assert.Equal(t, 3000.0, res.CurrentYearAmount) // 5% of 60000

	// Cash-payout referral with no grade-1 fee likewise
	ctx = UserContext{Role: models.RoleOthers}
	res = CalculateTotalBenefit([]ReferralData{{}}, ctx, standardSlabs(), nil)
	assert.Equal(t, 3000.0, res.CurrentYearAmount)
}

func TestEmptySlabTableResolvesToZero(t *testing.T) {
	ctx := UserContext{Role: models.RoleParent, StudentFee: 60000}

	res := CalculateTotalBenefit(referrals(60000, 60000), ctx, nil, nil)

	assert.Zero(t, res.TierPercent)
	assert.Zero(t, res.CurrentYearAmount)
	assert.Zero(t, res.TotalAmount)
}

func TestAppBonusFeeWaiverTrack(t *testing.T) {
	cfg := &models.GlobalBenefitConfig{
		AppBonusPercent:     2,
		AppBonusEligibility: models.StringList{models.BonusTagParent},
	}
	ctx := UserContext{Role: models.RoleParent, StudentFee: 60000}

	res := CalculateTotalBenefit(referrals(60000), ctx, standardSlabs(), cfg)

	// 5% waiver + 2% app bonus, both against the student fee
	assert.Equal(t, 3000.0+1200.0, res.CurrentYearAmount)
}

func TestAppBonusCashPayoutTrack(t *testing.T) {
	cfg := &models.GlobalBenefitConfig{
		AppBonusPercent:     1,
		AppBonusEligibility: models.StringList{models.BonusTagAlumniOthers},
	}
	ctx := UserContext{Role: models.RoleAlumni}

	res := CalculateTotalBenefit(referrals(100000, 100000), ctx, standardSlabs(), cfg)

	// 10% of 100000 in marginal slices + 1% of 60000 per referral
	assert.Equal(t, 10000.0+1200.0, res.CurrentYearAmount)
}

func TestFiveStarGetsNoAppBonus(t *testing.T) {
	cfg := &models.GlobalBenefitConfig{
		AppBonusPercent:     2,
		AppBonusEligibility: models.StringList{models.BonusTagParent},
	}
	ctx := UserContext{Role: models.RoleParent, StudentFee: 60000, IsFiveStar: true}

	res := CalculateTotalBenefit(referrals(60000), ctx, standardSlabs(), cfg)

	assert.Equal(t, 3000.0, res.CurrentYearAmount) // 5% linear, no bonus
}

func TestResolveTrack(t *testing.T) {
	tests := []struct {
		name string
		ctx  UserContext
		want Track
	}{
		{"parent", UserContext{Role: models.RoleParent}, TrackFeeWaiver},
		{"staff with child", UserContext{Role: models.RoleStaff, ChildInAchariya: true}, TrackFeeWaiver},
		{"staff without child", UserContext{Role: models.RoleStaff}, TrackCashPayout},
		{"alumni", UserContext{Role: models.RoleAlumni}, TrackCashPayout},
		{"others", UserContext{Role: models.RoleOthers}, TrackCashPayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTrack(tt.ctx))
		})
	}
}

func TestBonusTag(t *testing.T) {
	assert.Equal(t, models.BonusTagParent, BonusTag(UserContext{Role: models.RoleParent}))
	assert.Equal(t, models.BonusTagStaffChild, BonusTag(UserContext{Role: models.RoleStaff, ChildInAchariya: true}))
	assert.Equal(t, models.BonusTagStaffPayout, BonusTag(UserContext{Role: models.RoleStaff}))
	assert.Equal(t, models.BonusTagAlumniOthers, BonusTag(UserContext{Role: models.RoleAlumni}))
	assert.Equal(t, models.BonusTagAlumniOthers, BonusTag(UserContext{Role: models.RoleOthers}))
}

func TestBreakdownListsEveryContributingTerm(t *testing.T) {
	cfg := &models.GlobalBenefitConfig{
		AppBonusPercent:     1,
		AppBonusEligibility: models.StringList{models.BonusTagAlumniOthers},
	}
	ctx := UserContext{
		Role:                  models.RoleAlumni,
		IsFiveStar:            false,
		PreviousYearReferrals: nil,
	}

	res := CalculateTotalBenefit(referrals(100000, 100000, 100000), ctx, standardSlabs(), cfg)

	// one line per referral slice plus the bonus line
	assert.Len(t, res.Breakdown, 4)
}
