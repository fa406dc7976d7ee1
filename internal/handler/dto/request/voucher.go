package request

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrBlankOrderID        = errors.New("orderId must not be blank")
	ErrNegativeOrderAmount = errors.New("orderAmount must be >= 0")
	ErrNegativeMinSpend    = errors.New("minSpend must be >= 0")
	ErrNonPositiveDiscount = errors.New("discountValue must be positive")
)

type ClaimVoucherRequest struct {
	Code        string          `json:"code" binding:"required,max=64"`
	OrderID     string          `json:"orderId" binding:"required,max=64"`
	OrderAmount decimal.Decimal `json:"orderAmount"`
}

// Validate covers what the binding validator cannot inspect: decimal fields
// and whitespace-only values that still satisfy `required`.
func (r ClaimVoucherRequest) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return ErrBlankOrderID
	}
	if r.OrderAmount.IsNegative() {
		return ErrNegativeOrderAmount
	}
	return nil
}

type ValidateVoucherRequest struct {
	Code        string          `json:"code" binding:"required,max=64"`
	OrderAmount decimal.Decimal `json:"orderAmount"`
}

func (r ValidateVoucherRequest) Validate() error {
	if r.OrderAmount.IsNegative() {
		return ErrNegativeOrderAmount
	}
	return nil
}

type CreateVoucherRequest struct {
	Code          string           `json:"code" binding:"required,max=64"`
	DiscountType  string           `json:"discountType" binding:"required,oneof=PERCENT FIXED"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	StartAt       time.Time        `json:"startAt" binding:"required"`
	EndAt         time.Time        `json:"endAt" binding:"required"`
	MinSpend      *decimal.Decimal `json:"minSpend,omitempty"`
	QuotaTotal    int32            `json:"quotaTotal" binding:"required,min=1"`
}

func (r CreateVoucherRequest) Validate() error {
	if !r.DiscountValue.IsPositive() {
		return ErrNonPositiveDiscount
	}
	if r.MinSpend != nil && r.MinSpend.IsNegative() {
		return ErrNegativeMinSpend
	}
	return nil
}
