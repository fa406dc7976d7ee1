//go:build unit || e2e

package builder

import (
	"time"

	domvoucher "voucher-service/internal/domain/voucher"
	reqdto "voucher-service/internal/handler/dto/request"
	"voucher-service/internal/usecase/queries"
	"voucher-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VoucherBuilder struct {
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

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &VoucherBuilder{
		Code:           "DEMO10",
		DiscountType:   "PERCENT",
		DiscountValue:  decimal.NewFromInt(10),
		StartAt:        now.Add(-time.Hour),
		EndAt:          now.Add(24 * time.Hour),
		MinSpend:       nil,
		QuotaTotal:     100,
		QuotaRemaining: 100,
		Status:         "ACTIVE",
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *VoucherBuilder) BuildDomain() (*domvoucher.Voucher, error) {
	code, err := domvoucher.NewCode(b.Code)
	if err != nil {
		return nil, err
	}
	discountType, err := domvoucher.ParseDiscountType(b.DiscountType)
	if err != nil {
		return nil, err
	}
	discount, err := domvoucher.NewDiscount(discountType, b.DiscountValue)
	if err != nil {
		return nil, err
	}
	return domvoucher.NewVoucher(code, discount, b.StartAt, b.EndAt, b.MinSpend, b.QuotaTotal)
}

func (b *VoucherBuilder) BuildSnapshot() *shared.VoucherSnapshot {
	return &shared.VoucherSnapshot{
		ID:             uuid.New(),
		Code:           b.Code,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		MinSpend:       b.MinSpend,
		QuotaTotal:     b.QuotaTotal,
		QuotaRemaining: b.QuotaRemaining,
		Status:         b.Status,
	}
}

func (b *VoucherBuilder) BuildCreateRequestDTO() reqdto.CreateVoucherRequest {
	return reqdto.CreateVoucherRequest{
		Code:          b.Code,
		DiscountType:  b.DiscountType,
		DiscountValue: b.DiscountValue,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		MinSpend:      b.MinSpend,
		QuotaTotal:    b.QuotaTotal,
	}
}

func (b *VoucherBuilder) BuildPublicView() *queries.PublicVoucherView {
	return &queries.PublicVoucherView{
		Code:           b.Code,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		MinSpend:       b.MinSpend,
		QuotaRemaining: b.QuotaRemaining,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
	}
}
