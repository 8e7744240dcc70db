package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettlementStatus defines the status of a settlement
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "Pending"
	SettlementStatusProcessed SettlementStatus = "Processed"
)

// Settlement represents a payout record against an ambassador's earned
// benefit. The sum of a user's settlements never exceeds their recomputed
// entitlement; the check runs inside the creation transaction.
type Settlement struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User             `gorm:"foreignKey:UserID" json:"-"`
	Amount        float64          `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status        SettlementStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Reference     string           `gorm:"type:varchar(100);uniqueIndex" json:"reference"`
	BankReference *string          `gorm:"type:varchar(100)" json:"bank_reference"`
	PayoutDate    *time.Time       `json:"payout_date"`
	ProcessedBy   *uuid.UUID       `gorm:"type:uuid" json:"processed_by"`
	Notes         string           `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
