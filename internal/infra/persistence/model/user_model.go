// Package model holds the GORM persistence models, kept separate from the
// pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The unique index on email is the atomicity guarantee
// for concurrent registrations of the same identifier: one insert wins, the
// other surfaces a unique violation.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(50);not null"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
