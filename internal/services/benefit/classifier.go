package benefit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achariya/ambassador-backend/internal/models"
)

// Classified partitions an ambassador's referral leads by academic cycle
type Classified struct {
	CurrentCycle        []models.ReferralLead
	PriorCycleConfirmed []models.ReferralLead
}

// ClassifyReferrals splits leads into the current cycle and the confirmed
// prior cycle. Signals are tried in priority order: the explicit admitted
// year tag on the lead, then the linked student's academic year, then the
// creation timestamp against the current year boundary. The tag order exists
// because spreadsheet-migrated rows carry inconsistent tagging; an explicit
// tag always outranks the derived timestamp. With no usable signal a lead
// counts as current cycle, failing open toward showing the benefit.
func ClassifyReferrals(leads []models.ReferralLead, currentYear models.AcademicYear, previousYear *models.AcademicYear) Classified {
	var out Classified

	nextYear := NextYearString(currentYear.Year)

	for _, lead := range leads {
		tag := yearTag(lead)

		prior := false
		switch {
		case previousYear != nil && tag != "" && tag == previousYear.Year:
			prior = true
		case tag == currentYear.Year || (nextYear != "" && tag == nextYear):
			prior = false
		default:
			prior = !lead.CreatedAt.IsZero() && lead.CreatedAt.Before(currentYear.StartDate)
		}

		if prior {
			if lead.LeadStatus == models.LeadStatusConfirmed || lead.LeadStatus == models.LeadStatusAdmitted {
				out.PriorCycleConfirmed = append(out.PriorCycleConfirmed, lead)
			}
		} else {
			out.CurrentCycle = append(out.CurrentCycle, lead)
		}
	}

	return out
}

// yearTag returns the explicit academic-year signal for a lead: its own
// admitted-year tag, falling back to the linked student's academic year
func yearTag(lead models.ReferralLead) string {
	if lead.AdmittedYear != nil && *lead.AdmittedYear != "" {
		return *lead.AdmittedYear
	}
	if lead.Student != nil && lead.Student.AcademicYear != "" {
		return lead.Student.AcademicYear
	}
	return ""
}

// NextYearString rolls a "YYYY-YYYY" academic year forward by one, e.g.
// "2025-2026" becomes "2026-2027". Returns "" for malformed input.
func NextYearString(year string) string {
	parts := strings.Split(year, "-")
	if len(parts) != 2 {
		return ""
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", start+1, end+1)
}
