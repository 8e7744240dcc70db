package revenue

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/models"
	"github.com/achariya/ambassador-backend/internal/services/benefit"
	slabsvc "github.com/achariya/ambassador-backend/internal/services/slab"
)

// ErrNoCurrentYear is returned when no academic year is flagged current
var ErrNoCurrentYear = errors.New("no current academic year configured")

// ErrUserNotFound is returned when the ambassador does not exist
var ErrUserNotFound = errors.New("user not found")

// Service aggregates referrals, fee schedules and slabs into benefit stats
type Service struct {
	db      *gorm.DB
	slabSvc *slabsvc.Service
}

// NewService creates a new revenue service
func NewService(db *gorm.DB, slabSvc *slabsvc.Service) *Service {
	return &Service{db: db, slabSvc: slabSvc}
}

// Stats is the aggregate returned for display and drill-down
type Stats struct {
	UserID             uuid.UUID             `json:"user_id"`
	TotalAmount        float64               `json:"total_amount"`
	CurrentYearAmount  float64               `json:"current_year_amount"`
	LongTermBaseAmount float64               `json:"long_term_base_amount"`
	TierPercent        float64               `json:"tier_percent"`
	IsLongActive       bool                  `json:"is_long_active"`
	ConfirmedCount     int                   `json:"confirmed_count"`
	CurrentCycleCount  int                   `json:"current_cycle_count"`
	PriorCycleCount    int                   `json:"prior_cycle_count"`
	Breakdown          []string              `json:"breakdown"`
	CurrentReferrals   []models.ReferralLead `json:"current_referrals"`
}

// GetUserRevenueStats computes an ambassador's projected benefit. Referrals
// are fetched in creation order so the marginal-slice math stays
// deterministic across reads.
func (s *Service) GetUserRevenueStats(userID uuid.UUID) (*Stats, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	currentYear, previousYear, err := s.ResolveYears()
	if err != nil {
		return nil, err
	}

	leads, err := s.loadReferrals(userID)
	if err != nil {
		return nil, err
	}

	classified := benefit.ClassifyReferrals(leads, *currentYear, previousYear)

	feeSchedule, err := s.loadGrade1Fees(classified.CurrentCycle, currentYear.Year)
	if err != nil {
		return nil, err
	}

	slabs, err := s.slabSvc.GetSlabs()
	if err != nil {
		return nil, err
	}
	cfg, err := s.slabSvc.GetGlobalConfig()
	if err != nil {
		return nil, err
	}

	ctx := benefit.UserContext{
		Role:                  user.Role,
		ChildInAchariya:       user.ChildInAchariya,
		StudentFee:            user.StudentFee,
		IsFiveStar:            user.IsFiveStarMember,
		PreviousYearReferrals: BuildReferralData(classified.PriorCycleConfirmed, feeSchedule),
	}

	result := benefit.CalculateTotalBenefit(
		BuildReferralData(classified.CurrentCycle, feeSchedule), ctx, slabs, cfg)

	confirmed := 0
	for _, lead := range leads {
		if lead.LeadStatus == models.LeadStatusConfirmed || lead.LeadStatus == models.LeadStatusAdmitted {
			confirmed++
		}
	}

	return &Stats{
		UserID:             userID,
		TotalAmount:        result.TotalAmount,
		CurrentYearAmount:  result.CurrentYearAmount,
		LongTermBaseAmount: result.LongTermBaseAmount,
		TierPercent:        result.TierPercent,
		IsLongActive:       result.IsLongActive,
		ConfirmedCount:     confirmed,
		CurrentCycleCount:  len(classified.CurrentCycle),
		PriorCycleCount:    len(classified.PriorCycleConfirmed),
		Breakdown:          result.Breakdown,
		CurrentReferrals:   classified.CurrentCycle,
	}, nil
}

// ResolveYears returns the current academic year and the most recent year
// ending before it. The previous year may be nil on a fresh install.
func (s *Service) ResolveYears() (*models.AcademicYear, *models.AcademicYear, error) {
	var current models.AcademicYear
	if err := s.db.First(&current, "is_current = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNoCurrentYear
		}
		return nil, nil, fmt.Errorf("error loading current academic year: %w", err)
	}

	var previous models.AcademicYear
	err := s.db.Where("end_date < ?", current.StartDate).
		Order("end_date DESC").
		First(&previous).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &current, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error loading previous academic year: %w", err)
	}

	return &current, &previous, nil
}

// loadReferrals fetches all leads for an ambassador with linked students,
// in stable creation order
func (s *Service) loadReferrals(userID uuid.UUID) ([]models.ReferralLead, error) {
	var leads []models.ReferralLead
	if err := s.db.Preload("Student").
		Where("ambassador_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("error loading referrals: %w", err)
	}
	return leads, nil
}

// loadGrade1Fees fetches the grade-1 fee row for each distinct campus
// referenced by the given leads, keyed by campus id
func (s *Service) loadGrade1Fees(leads []models.ReferralLead, academicYear string) (map[uuid.UUID]models.GradeFee, error) {
	schedule := make(map[uuid.UUID]models.GradeFee)
	if len(leads) == 0 {
		return schedule, nil
	}

	seen := make(map[uuid.UUID]bool)
	var campusIDs []uuid.UUID
	for _, lead := range leads {
		if !seen[lead.CampusID] {
			seen[lead.CampusID] = true
			campusIDs = append(campusIDs, lead.CampusID)
		}
	}

	var fees []models.GradeFee
	if err := s.db.Where("campus_id IN ? AND grade = ? AND academic_year = ?",
		campusIDs, models.Grade1, academicYear).
		Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("error loading grade fees: %w", err)
	}

	for _, fee := range fees {
		schedule[fee.CampusID] = fee
	}
	return schedule, nil
}

// BuildReferralData maps leads onto calculator inputs. The linked student's
// annual fee is authoritative once admission is finalized; the campus
// grade-1 fee is selected by the lead's fee type. Missing figures stay zero
// and default inside the calculator.
func BuildReferralData(leads []models.ReferralLead, schedule map[uuid.UUID]models.GradeFee) []benefit.ReferralData {
	data := make([]benefit.ReferralData, 0, len(leads))
	for _, lead := range leads {
		var d benefit.ReferralData
		if lead.Student != nil {
			d.ActualFee = lead.Student.AnnualFee
			if d.ActualFee <= 0 {
				d.ActualFee = lead.Student.BaseFee
			}
		}
		if fee, ok := schedule[lead.CampusID]; ok {
			d.CampusGrade1Fee = fee.FeeFor(lead.SelectedFeeType)
		}
		data = append(data, d)
	}
	return data
}

// RecountUserBenefit refreshes the cached aggregates on the user row from
// raw referrals. Called by the recount job after lead confirmations; the
// cached fields are display-only.
func (s *Service) RecountUserBenefit(userID uuid.UUID) error {
	leads, err := s.loadReferrals(userID)
	if err != nil {
		return err
	}

	confirmed := 0
	for _, lead := range leads {
		if lead.LeadStatus == models.LeadStatusConfirmed || lead.LeadStatus == models.LeadStatusAdmitted {
			confirmed++
		}
	}

	slabs, err := s.slabSvc.GetSlabs()
	if err != nil {
		return err
	}
	percent := slabsvc.PercentFor(confirmed, slabs)

	status := models.BenefitStatusNone
	if confirmed > 0 {
		status = models.BenefitStatusEligible
	}

	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"confirmed_referral_count": confirmed,
			"year_fee_benefit_percent": percent,
			"benefit_status":           status,
		}).Error; err != nil {
		return fmt.Errorf("error updating user benefit aggregates: %w", err)
	}
	return nil
}
