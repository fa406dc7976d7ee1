package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod  = errors.New("endAt must be after startAt")
	ErrInvalidQuota   = errors.New("quotaTotal must be at least 1")
	ErrNegativeSpend  = errors.New("minSpend must not be negative")
	ErrInactive       = errors.New("voucher inactive")
	ErrNotInPeriod    = errors.New("voucher not in active period")
	ErrQuotaExhausted = errors.New("voucher quota exhausted")
	ErrMinSpendNotMet = errors.New("minimum spend not met")
)

type Voucher struct {
	id             uuid.UUID
	code           Code
	discount       Discount
	startAt        time.Time
	endAt          time.Time
	minSpend       *decimal.Decimal
	quotaTotal     int32
	quotaRemaining int32
	status         Status
}

// NewVoucher builds a voucher at creation time: status ACTIVE and the full
// quota remaining.
func NewVoucher(
	code Code,
	discount Discount,
	startAt, endAt time.Time,
	minSpend *decimal.Decimal,
	quotaTotal int32,
) (*Voucher, error) {
	if !endAt.After(startAt) {
		return nil, ErrInvalidPeriod
	}
	if quotaTotal < 1 {
		return nil, ErrInvalidQuota
	}
	if minSpend != nil && minSpend.IsNegative() {
		return nil, ErrNegativeSpend
	}

	return &Voucher{
		id:             uuid.New(),
		code:           code,
		discount:       discount,
		startAt:        startAt,
		endAt:          endAt,
		minSpend:       minSpend,
		quotaTotal:     quotaTotal,
		quotaRemaining: quotaTotal,
		status:         StatusActive,
	}, nil
}

// Reconstruct rebuilds a voucher from stored state without re-running
// creation-time validation.
func Reconstruct(
	id uuid.UUID,
	code Code,
	discount Discount,
	startAt, endAt time.Time,
	minSpend *decimal.Decimal,
	quotaTotal, quotaRemaining int32,
	status Status,
) *Voucher {
	return &Voucher{
		id:             id,
		code:           code,
		discount:       discount,
		startAt:        startAt,
		endAt:          endAt,
		minSpend:       minSpend,
		quotaTotal:     quotaTotal,
		quotaRemaining: quotaRemaining,
		status:         status,
	}
}

// CheckClaimable runs the eligibility predicates in their fixed order; the
// first failing predicate determines the returned error.
func (v *Voucher) CheckClaimable(now time.Time, orderAmount decimal.Decimal) error {
	if v.status != StatusActive {
		return ErrInactive
	}
	if now.Before(v.startAt) || now.After(v.endAt) {
		return ErrNotInPeriod
	}
	if v.quotaRemaining <= 0 {
		return ErrQuotaExhausted
	}
	if v.minSpend != nil && orderAmount.LessThan(*v.minSpend) {
		return ErrMinSpendNotMet
	}
	return nil
}

func (v *Voucher) ID() uuid.UUID              { return v.id }
func (v *Voucher) Code() Code                 { return v.code }
func (v *Voucher) Discount() Discount         { return v.discount }
func (v *Voucher) StartAt() time.Time         { return v.startAt }
func (v *Voucher) EndAt() time.Time           { return v.endAt }
func (v *Voucher) MinSpend() *decimal.Decimal { return v.minSpend }
func (v *Voucher) QuotaTotal() int32          { return v.quotaTotal }
func (v *Voucher) QuotaRemaining() int32      { return v.quotaRemaining }
func (v *Voucher) Status() Status             { return v.status }
