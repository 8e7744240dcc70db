package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/achariya/ambassador-backend/internal/models"
)

func fullTable() []models.SlabEntry {
	return []models.SlabEntry{
		{ReferralCount: 1, YearFeeBenefitPercent: 5},
		{ReferralCount: 2, YearFeeBenefitPercent: 10},
		{ReferralCount: 3, YearFeeBenefitPercent: 25},
		{ReferralCount: 4, YearFeeBenefitPercent: 30},
		{ReferralCount: 5, YearFeeBenefitPercent: 50},
	}
}

func TestPercentForExactTiers(t *testing.T) {
	slabs := fullTable()
	assert.Equal(t, 5.0, PercentFor(1, slabs))
	assert.Equal(t, 10.0, PercentFor(2, slabs))
	assert.Equal(t, 25.0, PercentFor(3, slabs))
	assert.Equal(t, 30.0, PercentFor(4, slabs))
	assert.Equal(t, 50.0, PercentFor(5, slabs))
}

func TestPercentForClampsAboveFive(t *testing.T) {
	slabs := fullTable()
	assert.Equal(t, 50.0, PercentFor(6, slabs))
	assert.Equal(t, 50.0, PercentFor(100, slabs))
}

func TestPercentForZeroAndNegative(t *testing.T) {
	slabs := fullTable()
	assert.Zero(t, PercentFor(0, slabs))
	assert.Zero(t, PercentFor(-3, slabs))
}

func TestPercentForFallsBackToLowerTier(t *testing.T) {
	// Sparse table missing tier 4: count 4 resolves to tier 3
	slabs := []models.SlabEntry{
		{ReferralCount: 1, YearFeeBenefitPercent: 5},
		{ReferralCount: 3, YearFeeBenefitPercent: 25},
		{ReferralCount: 5, YearFeeBenefitPercent: 50},
	}
	assert.Equal(t, 5.0, PercentFor(2, slabs))
	assert.Equal(t, 25.0, PercentFor(4, slabs))
}

func TestPercentForBelowLowestTier(t *testing.T) {
	slabs := []models.SlabEntry{
		{ReferralCount: 3, YearFeeBenefitPercent: 25},
	}
	assert.Zero(t, PercentFor(2, slabs))
}

func TestPercentForEmptyTable(t *testing.T) {
	assert.Zero(t, PercentFor(3, nil))
	assert.Zero(t, PercentFor(3, []models.SlabEntry{}))
}

func TestDefaultSlabsAreWellFormed(t *testing.T) {
	defaults := DefaultSlabs()
	assert.Len(t, defaults, 5)

	seen := make(map[int]bool)
	prevPercent := 0.0
	for i, s := range defaults {
		assert.False(t, seen[s.ReferralCount], "duplicate referral count %d", s.ReferralCount)
		seen[s.ReferralCount] = true
		assert.Equal(t, i+1, s.ReferralCount)
		assert.GreaterOrEqual(t, s.YearFeeBenefitPercent, prevPercent)
		prevPercent = s.YearFeeBenefitPercent
	}
}
