package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workflow statuses stored on a remittance row. These track verification by
// the org treasurer; the per-class COMPLETED/PARTIAL/NOT_REMITTED view in the
// report package is derived separately and never written back.
const (
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusVerified            = "VERIFIED"
	StatusRejected            = "REJECTED"
)

type Remittance struct {
	RemittanceID   int64           `gorm:"primaryKey;autoIncrement"`
	FeeID          int64           `gorm:"not null;index:idx_remittance_fee_account"`
	AccountID      int64           `gorm:"not null;index:idx_remittance_fee_account"`
	AmountRemitted decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(30);not null;default:'PENDING_VERIFICATION';index"`
	RemittanceDate time.Time       `gorm:"not null;index"`
	Note           *string         `gorm:"type:text"`
	VerifiedBy     *int64
	VerifiedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Remittance) TableName() string {
	return "remittances"
}
