package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/achariya/ambassador-backend/internal/models"
)

func ledgerSlabs() []models.SlabEntry {
	return []models.SlabEntry{
		{ReferralCount: 1, YearFeeBenefitPercent: 5},
		{ReferralCount: 2, YearFeeBenefitPercent: 10},
		{ReferralCount: 3, YearFeeBenefitPercent: 25},
		{ReferralCount: 4, YearFeeBenefitPercent: 30},
		{ReferralCount: 5, YearFeeBenefitPercent: 50},
	}
}

func TestDeriveBenefitPercent(t *testing.T) {
	slabs := ledgerSlabs()

	assert.Zero(t, DeriveBenefitPercent(0, slabs))
	assert.Equal(t, 5.0, DeriveBenefitPercent(1, slabs))
	assert.Equal(t, 25.0, DeriveBenefitPercent(3, slabs))
	assert.Equal(t, 50.0, DeriveBenefitPercent(5, slabs))
	// Beyond the table the top tier still applies
	assert.Equal(t, 50.0, DeriveBenefitPercent(9, slabs))
}

func TestDeriveBenefitPercentEmptyTable(t *testing.T) {
	assert.Zero(t, DeriveBenefitPercent(4, nil))
}

func TestDeriveBenefitPercentSparseTable(t *testing.T) {
	slabs := []models.SlabEntry{
		{ReferralCount: 2, YearFeeBenefitPercent: 10},
		{ReferralCount: 5, YearFeeBenefitPercent: 50},
	}
	assert.Zero(t, DeriveBenefitPercent(1, slabs))
	assert.Equal(t, 10.0, DeriveBenefitPercent(4, slabs))
}

func TestTotalEarnedLedgerFormula(t *testing.T) {
	// Flat fee x percent x count, not the marginal-slice projection
	assert.Equal(t, 12000.0, TotalEarned(60000, 10, 2))
	assert.Equal(t, 0.0, TotalEarned(60000, 5, 0))
}

func TestPendingAfterClampsAtZero(t *testing.T) {
	assert.Equal(t, 4000.0, PendingAfter(10000, 6000))
	assert.Zero(t, PendingAfter(10000, 12000))
	assert.Zero(t, PendingAfter(0, 0))
}

func TestCreateSettlementRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.CreateSettlement(uuid.New(), 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateSettlement(uuid.New(), -50, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestProcessSettlementRejectsMalformedBankReference(t *testing.T) {
	svc := NewService(nil, nil)

	for _, ref := range []string{"", "abc", "has spaces here", "way!bad#chars"} {
		_, err := svc.ProcessSettlement(uuid.New(), ref, uuid.New())
		assert.ErrorIs(t, err, ErrInvalidBankReference, "ref %q", ref)
	}
}

func TestBankReferenceAcceptsCommonFormats(t *testing.T) {
	for _, ref := range []string{"UTR123456789", "NEFT/2026/001234", "IMPS-555123", "hdfc0001234567"} {
		assert.True(t, bankReferencePattern.MatchString(ref), "ref %q", ref)
	}
}

func TestBalanceCheckLocksUserRow(t *testing.T) {
	// The non-overdraw check is only safe if the user read carries a
	// row-level lock; verify the generated SQL actually emits it
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var user models.User
	stmt := lockedUserQuery(db, uuid.New()).First(&user).Statement

	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestOverdrawComparisonUsesEpsilon(t *testing.T) {
	// A request a fraction over pending within epsilon passes the check
	pending := PendingAfter(6000, 0)
	assert.False(t, 6000.005 > pending+BalanceEpsilon)
	assert.True(t, 6000.02 > pending+BalanceEpsilon)
}
