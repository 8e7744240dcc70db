package benefit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/achariya/ambassador-backend/internal/models"
)

var (
	testCurrentYear = models.AcademicYear{
		Year:      "2026-2027",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC),
		IsCurrent: true,
	}
	testPreviousYear = models.AcademicYear{
		Year:      "2025-2026",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
)

func strPtr(s string) *string { return &s }

func TestPriorYearTagOverridesCreationDate(t *testing.T) {
	// Tagged with the previous year but created well inside the current
	// one: the explicit tag wins
	lead := models.ReferralLead{
		AdmittedYear: strPtr("2025-2026"),
		LeadStatus:   models.LeadStatusConfirmed,
		CreatedAt:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, &testPreviousYear)

	assert.Empty(t, out.CurrentCycle)
	assert.Len(t, out.PriorCycleConfirmed, 1)
}

func TestCurrentYearTagClassifiesCurrent(t *testing.T) {
	lead := models.ReferralLead{
		AdmittedYear: strPtr("2026-2027"),
		LeadStatus:   models.LeadStatusNew,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), // before boundary
	}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, &testPreviousYear)

	assert.Len(t, out.CurrentCycle, 1)
}

func TestRollForwardToleranceForAdvancedStudents(t *testing.T) {
	// A student who advanced a grade carries next year's tag but still
	// belongs to the current cycle
	lead := models.ReferralLead{
		AdmittedYear: strPtr("2027-2028"),
		LeadStatus:   models.LeadStatusConfirmed,
	}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, &testPreviousYear)

	assert.Len(t, out.CurrentCycle, 1)
	assert.Empty(t, out.PriorCycleConfirmed)
}

func TestStudentAcademicYearUsedWhenLeadUntagged(t *testing.T) {
	lead := models.ReferralLead{
		LeadStatus: models.LeadStatusConfirmed,
		CreatedAt:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Student:    &models.Student{AcademicYear: "2025-2026"},
	}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, &testPreviousYear)

	assert.Empty(t, out.CurrentCycle)
	assert.Len(t, out.PriorCycleConfirmed, 1)
}

func TestLeadTagOutranksStudentTag(t *testing.T) {
	lead := models.ReferralLead{
		AdmittedYear: strPtr("2026-2027"),
		LeadStatus:   models.LeadStatusConfirmed,
		Student:      &models.Student{AcademicYear: "2025-2026"},
	}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, &testPreviousYear)

	assert.Len(t, out.CurrentCycle, 1)
}

func TestCreatedAtFallback(t *testing.T) {
	inCurrent := models.ReferralLead{
		LeadStatus: models.LeadStatusNew,
		CreatedAt:  time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	}
	inPrior := models.ReferralLead{
		LeadStatus: models.LeadStatusConfirmed,
		CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	out := ClassifyReferrals([]models.ReferralLead{inCurrent, inPrior}, testCurrentYear, &testPreviousYear)

	assert.Len(t, out.CurrentCycle, 1)
	assert.Len(t, out.PriorCycleConfirmed, 1)
}

func TestPriorCycleFiltersToFinalizedLeads(t *testing.T) {
	leads := []models.ReferralLead{
		{AdmittedYear: strPtr("2025-2026"), LeadStatus: models.LeadStatusConfirmed},
		{AdmittedYear: strPtr("2025-2026"), LeadStatus: models.LeadStatusAdmitted},
		{AdmittedYear: strPtr("2025-2026"), LeadStatus: models.LeadStatusNew},
		{AdmittedYear: strPtr("2025-2026"), LeadStatus: models.LeadStatusRejected},
		{AdmittedYear: strPtr("2025-2026"), LeadStatus: models.LeadStatusFollowUp},
	}

	out := ClassifyReferrals(leads, testCurrentYear, &testPreviousYear)

	assert.Len(t, out.PriorCycleConfirmed, 2)
	assert.Empty(t, out.CurrentCycle)
}

func TestNoSignalFailsOpenToCurrent(t *testing.T) {
	// Zero CreatedAt and no tags: the lead still shows as current cycle
	lead := models.ReferralLead{LeadStatus: models.LeadStatusNew}

	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, nil)

	assert.Len(t, out.CurrentCycle, 1)
}

func TestNilPreviousYearNeverClassifiesPriorByTag(t *testing.T) {
	lead := models.ReferralLead{
		AdmittedYear: strPtr("2024-2025"),
		LeadStatus:   models.LeadStatusConfirmed,
		CreatedAt:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	// Unknown tag falls through to the CreatedAt comparison
	out := ClassifyReferrals([]models.ReferralLead{lead}, testCurrentYear, nil)

	assert.Len(t, out.CurrentCycle, 1)
}

func TestNextYearString(t *testing.T) {
	assert.Equal(t, "2027-2028", NextYearString("2026-2027"))
	assert.Equal(t, "", NextYearString("garbage"))
	assert.Equal(t, "", NextYearString("2026"))
	assert.Equal(t, "", NextYearString("abcd-efgh"))
}
