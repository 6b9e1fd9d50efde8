package fee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Fee struct {
	FeeID     int64           `gorm:"primaryKey;autoIncrement"`
	FeeType   string          `gorm:"type:varchar(120);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DueDate   *time.Time      `gorm:"type:date;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Fee) TableName() string {
	return "fees"
}
