package benefit

import (
	"fmt"
	"math"

	"github.com/achariya/ambassador-backend/internal/models"
	slabsvc "github.com/achariya/ambassador-backend/internal/services/slab"
)

const (
	// DefaultBaseFee stands in whenever a fee figure is missing
	DefaultBaseFee = 60000

	// FiveStarPercentPerReferral is the linear rate on the 5-star track
	FiveStarPercentPerReferral = 5

	// LongTermRate applies to each prior-cycle confirmed referral of a
	// 5-star ambassador
	LongTermRate = 0.03
)

// GetPercent returns the cumulative benefit percent at the given referral
// count. 5-star ambassadors earn a flat 5% per referral; everyone else is on
// the slab table. Counts clamp at 5 either way.
func GetPercent(count int, isFiveStar bool, slabs []models.SlabEntry) float64 {
	if count <= 0 {
		return 0
	}
	if count > slabsvc.MaxLookupCount {
		count = slabsvc.MaxLookupCount
	}
	if isFiveStar {
		return float64(count * FiveStarPercentPerReferral)
	}
	return slabsvc.PercentFor(count, slabs)
}

// CalculateTotalBenefit computes an ambassador's benefit from their
// current-cycle referrals, context and the slab table. Pure: no I/O, no
// error paths; missing configuration degrades to safe defaults.
//
// An ambassador with zero current-cycle referrals earns nothing this cycle
// and, if 5-star, forfeits the historic base too.
func CalculateTotalBenefit(current []ReferralData, ctx UserContext, slabs []models.SlabEntry, cfg *models.GlobalBenefitConfig) Result {
	res := Result{Breakdown: []string{}}

	if len(current) == 0 {
		res.Breakdown = append(res.Breakdown, "No current-cycle referrals: benefit inactive")
		return res
	}

	if ctx.IsFiveStar {
		res.IsLongActive = true
		res.LongTermBaseAmount = historicBase(ctx.PreviousYearReferrals, &res.Breakdown)
	}

	res.TierPercent = GetPercent(len(current), ctx.IsFiveStar, slabs)

	switch ResolveTrack(ctx) {
	case TrackFeeWaiver:
		res.CurrentYearAmount = feeWaiverAmount(len(current), ctx, slabs, cfg, &res.Breakdown)
	case TrackCashPayout:
		res.CurrentYearAmount = cashPayoutAmount(current, ctx, slabs, cfg, &res.Breakdown)
	}

	res.TotalAmount = res.CurrentYearAmount + res.LongTermBaseAmount
	return res
}

// historicBase sums floor(fee * 3%) over the first five prior-cycle
// confirmed referrals. It rewards past performance as a guaranteed floor,
// unlocked by at least one current referral.
func historicBase(prior []ReferralData, breakdown *[]string) float64 {
	total := 0.0
	for i, r := range prior {
		if i >= slabsvc.MaxLookupCount {
			break
		}
		fee := orDefault(r.ActualFee)
		amount := math.Floor(fee * LongTermRate)
		total += amount
		*breakdown = append(*breakdown,
			fmt.Sprintf("Long-term base: prior referral #%d fee %.0f x %.0f%% = %.0f", i+1, fee, LongTermRate*100, amount))
	}
	return total
}

// feeWaiverAmount computes the Group-A benefit: the cumulative tier percent
// applied once to the ambassador's own child's fee, plus the app bonus for
// eligible non-5-star roles.
func feeWaiverAmount(count int, ctx UserContext, slabs []models.SlabEntry, cfg *models.GlobalBenefitConfig, breakdown *[]string) float64 {
	fee := orDefault(ctx.StudentFee)
	percent := GetPercent(count, ctx.IsFiveStar, slabs)

	amount := percent / 100 * fee
	*breakdown = append(*breakdown,
		fmt.Sprintf("Fee waiver: %.0f%% of student fee %.0f = %.2f", percent, fee, amount))

	if bonus := appBonus(ctx, cfg, fee, 1); bonus > 0 {
		amount += bonus
		*breakdown = append(*breakdown,
			fmt.Sprintf("App bonus: %.0f%% of student fee %.0f = %.2f", cfg.AppBonusPercent, fee, bonus))
	}

	return amount
}

// cashPayoutAmount computes the Group-B benefit: each referral earns the
// marginal percent slice between its tier and the previous one, applied to
// the grade-1 fee of the campus the referred student is entering. Referrals
// beyond the fifth contribute nothing.
func cashPayoutAmount(current []ReferralData, ctx UserContext, slabs []models.SlabEntry, cfg *models.GlobalBenefitConfig, breakdown *[]string) float64 {
	amount := 0.0
	for i, r := range current {
		count := i + 1
		if count > slabsvc.MaxLookupCount {
			break
		}
		marginal := GetPercent(count, ctx.IsFiveStar, slabs) - GetPercent(count-1, ctx.IsFiveStar, slabs)
		fee := orDefault(r.CampusGrade1Fee)
		slice := marginal / 100 * fee
		amount += slice
		*breakdown = append(*breakdown,
			fmt.Sprintf("Referral #%d: marginal %.0f%% of grade-1 fee %.0f = %.2f", count, marginal, fee, slice))
	}

	bonusCount := len(current)
	if bonusCount > slabsvc.MaxLookupCount {
		bonusCount = slabsvc.MaxLookupCount
	}
	if bonus := appBonus(ctx, cfg, DefaultBaseFee, bonusCount); bonus > 0 {
		amount += bonus
		*breakdown = append(*breakdown,
			fmt.Sprintf("App bonus: %.0f%% of base fee %d x %d referrals = %.2f", cfg.AppBonusPercent, DefaultBaseFee, bonusCount, bonus))
	}

	return amount
}

// appBonus returns the flat bonus for eligible non-5-star roles, or 0
func appBonus(ctx UserContext, cfg *models.GlobalBenefitConfig, baseFee float64, multiplier int) float64 {
	if ctx.IsFiveStar || cfg == nil || cfg.AppBonusPercent <= 0 {
		return 0
	}
	if !cfg.AppBonusEligibility.Contains(BonusTag(ctx)) {
		return 0
	}
	return cfg.AppBonusPercent / 100 * baseFee * float64(multiplier)
}

func orDefault(fee float64) float64 {
	if fee <= 0 {
		return DefaultBaseFee
	}
	return fee
}
