package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pix key types
const (
	PixKeyTypeCPF    = "cpf"
	PixKeyTypeCNPJ   = "cnpj"
	PixKeyTypeEmail  = "email"
	PixKeyTypePhone  = "phone"
	PixKeyTypeRandom = "random"
)

// Pix key statuses
const (
	PixKeyStatusActive   = "active"
	PixKeyStatusInactive = "inactive"
	PixKeyStatusPending  = "pending"
)

// PixKey is a registered withdrawal destination for an account.
// Only active, non-deleted keys are usable as withdrawal targets.
type PixKey struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID string         `gorm:"type:uuid;index;not null" json:"account_id"`
	Account   *Account       `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	KeyType   string         `gorm:"not null" json:"key_type"`
	KeyValue  string         `gorm:"not null" json:"key_value"`
	Status    string         `gorm:"not null;default:'active'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (k *PixKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}
