package slab

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/models"
)

// MaxLookupCount caps slab lookups: benefit tops out at tier 5
const MaxLookupCount = 5

var (
	// ErrDuplicateReferralCount is returned when a mutation would leave two
	// slab rows with the same referral count
	ErrDuplicateReferralCount = errors.New("slab with this referral count already exists")

	// ErrSlabNotFound is returned when the referenced slab row does not exist
	ErrSlabNotFound = errors.New("slab not found")
)

// PercentFor returns the year-fee benefit percent for the given referral
// count against an ascending slab table. Counts above 5 clamp to 5. When no
// exact tier exists the highest tier at or below the clamped count applies;
// an empty table resolves to 0 rather than erroring.
func PercentFor(count int, slabs []models.SlabEntry) float64 {
	if count <= 0 || len(slabs) == 0 {
		return 0
	}
	if count > MaxLookupCount {
		count = MaxLookupCount
	}

	percent := 0.0
	for _, s := range slabs {
		if s.ReferralCount > count {
			break
		}
		percent = s.YearFeeBenefitPercent
	}
	return percent
}

// Service manages the slab table and global benefit config
type Service struct {
	db *gorm.DB
}

// NewService creates a new slab service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetSlabs returns the slab table ordered by referral count ascending
func (s *Service) GetSlabs() ([]models.SlabEntry, error) {
	var slabs []models.SlabEntry
	if err := s.db.Order("referral_count ASC").Find(&slabs).Error; err != nil {
		return nil, fmt.Errorf("error loading slabs: %w", err)
	}
	return slabs, nil
}

// GetGlobalConfig returns the global benefit config, or nil when none exists
func (s *Service) GetGlobalConfig() (*models.GlobalBenefitConfig, error) {
	var cfg models.GlobalBenefitConfig
	err := s.db.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading global benefit config: %w", err)
	}
	return &cfg, nil
}

// CreateSlab inserts a new slab tier, rejecting duplicate referral counts
func (s *Service) CreateSlab(entry *models.SlabEntry) error {
	var count int64
	if err := s.db.Model(&models.SlabEntry{}).
		Where("referral_count = ?", entry.ReferralCount).
		Count(&count).Error; err != nil {
		return fmt.Errorf("error checking slab uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicateReferralCount
	}

	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("error creating slab: %w", err)
	}
	return nil
}

// UpdateSlab updates an existing slab tier, keeping referral counts unique
func (s *Service) UpdateSlab(id uuid.UUID, update *models.SlabEntry) (*models.SlabEntry, error) {
	var entry models.SlabEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlabNotFound
		}
		return nil, fmt.Errorf("error finding slab: %w", err)
	}

	if update.ReferralCount != entry.ReferralCount {
		var count int64
		if err := s.db.Model(&models.SlabEntry{}).
			Where("referral_count = ? AND id != ?", update.ReferralCount, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("error checking slab uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateReferralCount
		}
	}

	entry.ReferralCount = update.ReferralCount
	entry.TierName = update.TierName
	entry.YearFeeBenefitPercent = update.YearFeeBenefitPercent
	entry.BaseLongTermPercent = update.BaseLongTermPercent
	entry.LongTermExtraPercent = update.LongTermExtraPercent

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("error updating slab: %w", err)
	}
	return &entry, nil
}

// DeleteSlab removes a slab tier
func (s *Service) DeleteSlab(id uuid.UUID) error {
	result := s.db.Delete(&models.SlabEntry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("error deleting slab: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSlabNotFound
	}
	return nil
}

// DefaultSlabs returns the stock five-tier table used at first boot and by
// the reset operation
func DefaultSlabs() []models.SlabEntry {
	return []models.SlabEntry{
		{ReferralCount: 1, TierName: "Bronze", YearFeeBenefitPercent: 5, BaseLongTermPercent: 3},
		{ReferralCount: 2, TierName: "Silver", YearFeeBenefitPercent: 10, BaseLongTermPercent: 3},
		{ReferralCount: 3, TierName: "Gold", YearFeeBenefitPercent: 25, BaseLongTermPercent: 3},
		{ReferralCount: 4, TierName: "Platinum", YearFeeBenefitPercent: 30, BaseLongTermPercent: 3},
		{ReferralCount: 5, TierName: "Five Star", YearFeeBenefitPercent: 50, BaseLongTermPercent: 3, LongTermExtraPercent: 2},
	}
}

// ResetToDefault replaces the slab table with the stock tiers atomically
func (s *Service) ResetToDefault() error {
	defaults := DefaultSlabs()
	sort.Slice(defaults, func(i, j int) bool {
		return defaults[i].ReferralCount < defaults[j].ReferralCount
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.SlabEntry{}).Error; err != nil {
			return fmt.Errorf("error clearing slab table: %w", err)
		}
		for i := range defaults {
			if err := tx.Create(&defaults[i]).Error; err != nil {
				return fmt.Errorf("error seeding slab %d: %w", defaults[i].ReferralCount, err)
			}
		}
		return nil
	})
}
