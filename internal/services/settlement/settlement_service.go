package settlement

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/achariya/ambassador-backend/internal/models"
	"github.com/achariya/ambassador-backend/internal/services/benefit"
	"github.com/achariya/ambassador-backend/internal/utils"
)

// BalanceEpsilon absorbs float rounding in the overdraw comparison
const BalanceEpsilon = 0.01

var (
	// ErrInvalidAmount is returned for non-positive settlement amounts
	ErrInvalidAmount = errors.New("settlement amount must be positive")

	// ErrInsufficientBalance is returned when the requested amount exceeds
	// the recomputed pending balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSettlementNotFound is returned when the settlement does not exist
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrAlreadyProcessed is returned when mutating a processed settlement
	ErrAlreadyProcessed = errors.New("settlement already processed")

	// ErrInvalidBankReference is returned for malformed bank references
	ErrInvalidBankReference = errors.New("invalid bank reference format")

	// ErrUserNotFound is returned when the ambassador does not exist
	ErrUserNotFound = errors.New("user not found")
)

var bankReferencePattern = regexp.MustCompile(`^[A-Za-z0-9/-]{6,40}$`)

// Notifier receives fire-and-forget settlement events. Failures are logged
// by the caller, never propagated.
type Notifier interface {
	NotifySettlement(settlementID uuid.UUID, event string)
}

// Service manages the settlement ledger
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates a new settlement service. notifier may be nil.
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// DeriveBenefitPercent finds the highest slab tier the confirmed count has
// reached: a descending search for the first slab whose referral count the
// user meets. Slabs must be ordered ascending; an empty table yields 0.
func DeriveBenefitPercent(confirmedCount int, slabs []models.SlabEntry) float64 {
	for i := len(slabs) - 1; i >= 0; i-- {
		if confirmedCount >= slabs[i].ReferralCount {
			return slabs[i].YearFeeBenefitPercent
		}
	}
	return 0
}

// TotalEarned is the ledger-truth entitlement formula: fee x percent x
// confirmed count. Deliberately simpler than the live calculator's
// marginal-slice math; changing it would change historical payout amounts.
func TotalEarned(studentFee, benefitPercent float64, confirmedCount int) float64 {
	return studentFee * benefitPercent / 100 * float64(confirmedCount)
}

// PendingAfter derives the withdrawable balance, clamped at zero
func PendingAfter(totalEarned, totalSettled float64) float64 {
	pending := totalEarned - totalSettled
	if pending < 0 {
		return 0
	}
	return pending
}

// lockedUserQuery scopes an ambassador read with a row-level update lock so
// concurrent balance checks for the same user serialize
func lockedUserQuery(tx *gorm.DB, userID uuid.UUID) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID)
}

// CreateSettlement writes a payout record for an ambassador. The pending
// balance is re-derived inside the transaction, with the user row locked,
// so concurrent requests for the same ambassador cannot both pass the check
// against a stale snapshot.
func (s *Service) CreateSettlement(userID uuid.UUID, amount float64, notes string) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var created models.Settlement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := lockedUserQuery(tx, userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("error locking user: %w", err)
		}

		var slabs []models.SlabEntry
		if err := tx.Order("referral_count ASC").Find(&slabs).Error; err != nil {
			return fmt.Errorf("error loading slabs: %w", err)
		}

		fee := user.StudentFee
		if fee <= 0 {
			fee = benefit.DefaultBaseFee
		}
		percent := DeriveBenefitPercent(user.ConfirmedReferralCount, slabs)
		totalEarned := TotalEarned(fee, percent, user.ConfirmedReferralCount)

		var totalSettled float64
		if err := tx.Model(&models.Settlement{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalSettled).Error; err != nil {
			return fmt.Errorf("error summing settlements: %w", err)
		}

		pending := PendingAfter(totalEarned, totalSettled)
		if amount > pending+BalanceEpsilon {
			return fmt.Errorf("%w: requested %.2f, available %.2f (earned %.2f, settled %.2f)",
				ErrInsufficientBalance, amount, pending, totalEarned, totalSettled)
		}

		created = models.Settlement{
			ID:        uuid.New(),
			UserID:    userID,
			Amount:    amount,
			Status:    models.SettlementStatusPending,
			Reference: utils.GenerateReference("SET"),
			Notes:     notes,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("error creating settlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifySettlement(created.ID, "created")
	}
	return &created, nil
}

// ProcessSettlement transitions a pending settlement to processed once a
// bank reference is attached
func (s *Service) ProcessSettlement(id uuid.UUID, bankReference string, processedBy uuid.UUID) (*models.Settlement, error) {
	if !bankReferencePattern.MatchString(bankReference) {
		return nil, ErrInvalidBankReference
	}

	var settlement models.Settlement
	if err := s.db.First(&settlement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettlementNotFound
		}
		return nil, fmt.Errorf("error finding settlement: %w", err)
	}
	if settlement.Status == models.SettlementStatusProcessed {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()
	settlement.Status = models.SettlementStatusProcessed
	settlement.BankReference = &bankReference
	settlement.PayoutDate = &now
	settlement.ProcessedBy = &processedBy

	if err := s.db.Save(&settlement).Error; err != nil {
		return nil, fmt.Errorf("error updating settlement: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifySettlement(settlement.ID, "processed")
	}
	return &settlement, nil
}

// DeleteSettlement removes a pending settlement. Processed records are part
// of the finance ledger and stay.
func (s *Service) DeleteSettlement(id uuid.UUID) error {
	var settlement models.Settlement
	if err := s.db.First(&settlement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettlementNotFound
		}
		return fmt.Errorf("error finding settlement: %w", err)
	}
	if settlement.Status == models.SettlementStatusProcessed {
		return ErrAlreadyProcessed
	}

	if err := s.db.Delete(&settlement).Error; err != nil {
		return fmt.Errorf("error deleting settlement: %w", err)
	}
	return nil
}

// ListSettlements returns a user's settlements, newest first
func (s *Service) ListSettlements(userID uuid.UUID) ([]models.Settlement, error) {
	var settlements []models.Settlement
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&settlements).Error; err != nil {
		return nil, fmt.Errorf("error loading settlements: %w", err)
	}
	return settlements, nil
}
