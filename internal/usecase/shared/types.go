package shared

import (
	"time"

	"voucher-service/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots keep command code independent of read-side query types
type VoucherSnapshot struct {
	ID             uuid.UUID
	Code           string
	DiscountType   string
	DiscountValue  decimal.Decimal
	StartAt        time.Time
	EndAt          time.Time
	MinSpend       *decimal.Decimal
	QuotaTotal     int32
	QuotaRemaining int32
	Status         string
}

// ToEntity rebuilds the domain voucher from a stored snapshot.
func (s *VoucherSnapshot) ToEntity() (*voucher.Voucher, error) {
	code, err := voucher.NewCode(s.Code)
	if err != nil {
		return nil, err
	}

	discountType, err := voucher.ParseDiscountType(s.DiscountType)
	if err != nil {
		return nil, err
	}

	discount, err := voucher.NewDiscount(discountType, s.DiscountValue)
	if err != nil {
		return nil, err
	}

	return voucher.Reconstruct(
		s.ID,
		code,
		discount,
		s.StartAt,
		s.EndAt,
		s.MinSpend,
		s.QuotaTotal,
		s.QuotaRemaining,
		voucher.Status(s.Status),
	), nil
}

type RedemptionSnapshot struct {
	ID              uuid.UUID
	VoucherID       uuid.UUID
	OrderID         string
	OrderAmount     decimal.Decimal
	DiscountApplied decimal.Decimal
	ClaimedAt       time.Time
}
