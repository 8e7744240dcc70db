package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campus represents a school campus
type Campus struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	Code      string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"code"`
	City      string         `gorm:"type:varchar(100)" json:"city"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
