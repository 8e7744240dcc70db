package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/models"
)

// RunSeeds applies versioned seed migrations: the default slab table, the
// academic year calendar and the global benefit config. Schema itself is
// handled by AutoMigrate before this runs.
func RunSeeds(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		seedSlabTable(),
		seedAcademicYears(),
		seedGlobalBenefitConfig(),
	})
	return m.Migrate()
}

func seedSlabTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_seed_slab_table",
		Migrate: func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.SlabEntry{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			slabs := []models.SlabEntry{
				{ReferralCount: 1, TierName: "Bronze", YearFeeBenefitPercent: 5, BaseLongTermPercent: 3},
				{ReferralCount: 2, TierName: "Silver", YearFeeBenefitPercent: 10, BaseLongTermPercent: 3},
				{ReferralCount: 3, TierName: "Gold", YearFeeBenefitPercent: 25, BaseLongTermPercent: 3},
				{ReferralCount: 4, TierName: "Platinum", YearFeeBenefitPercent: 30, BaseLongTermPercent: 3},
				{ReferralCount: 5, TierName: "Five Star", YearFeeBenefitPercent: 50, BaseLongTermPercent: 3, LongTermExtraPercent: 2},
			}
			for i := range slabs {
				if err := tx.Create(&slabs[i]).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Unscoped().Where("1 = 1").Delete(&models.SlabEntry{}).Error
		},
	}
}

func seedAcademicYears() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_seed_academic_years",
		Migrate: func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.AcademicYear{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			years := []models.AcademicYear{
				{
					Year:      "2025-2026",
					StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
					IsCurrent: false,
					IsActive:  true,
				},
				{
					Year:      "2026-2027",
					StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC),
					IsCurrent: true,
					IsActive:  true,
				},
			}
			for i := range years {
				if err := tx.Create(&years[i]).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Unscoped().Where("1 = 1").Delete(&models.AcademicYear{}).Error
		},
	}
}

func seedGlobalBenefitConfig() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_seed_global_benefit_config",
		Migrate: func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.GlobalBenefitConfig{}).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			cfg := models.GlobalBenefitConfig{
				AppBonusPercent: 1,
				AppBonusEligibility: models.StringList{
					models.BonusTagParent,
					models.BonusTagStaffChild,
					models.BonusTagStaffPayout,
					models.BonusTagAlumniOthers,
				},
			}
			return tx.Create(&cfg).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Unscoped().Where("1 = 1").Delete(&models.GlobalBenefitConfig{}).Error
		},
	}
}
