package voucher

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCode            = errors.New("voucher code must not be blank")
	ErrCodeTooLong          = errors.New("voucher code must be at most 64 characters")
	ErrDiscountNotPositive  = errors.New("discount value must be positive")
	ErrPercentDiscountRange = errors.New("percent discount must be <= 100")
)

const maxCodeLength = 64

// Code is a voucher code normalized to its canonical form: trimmed and
// uppercased. All lookups and storage go through this normalization.
type Code string

func NewCode(raw string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrEmptyCode
	}
	if len(code) > maxCodeLength {
		return "", ErrCodeTooLong
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

var oneHundred = decimal.NewFromInt(100)

type Discount struct {
	discountType DiscountType
	value        decimal.Decimal
}

func NewDiscount(discountType DiscountType, value decimal.Decimal) (Discount, error) {
	if !value.IsPositive() {
		return Discount{}, ErrDiscountNotPositive
	}
	if discountType == DiscountPercent && value.GreaterThan(oneHundred) {
		return Discount{}, ErrPercentDiscountRange
	}
	return Discount{discountType: discountType, value: value}, nil
}

func (d Discount) Type() DiscountType {
	return d.discountType
}

func (d Discount) Value() decimal.Decimal {
	return d.value
}

// Amount computes the discount for an order total: PERCENT is
// orderAmount*value/100, FIXED is the value itself. The result never exceeds
// the order total and is rounded half-up to 2 decimal places.
func (d Discount) Amount(orderAmount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if d.discountType == DiscountPercent {
		// Shift(-2) divides by 100 exactly, keeping the math fixed-point.
		discount = orderAmount.Mul(d.value).Shift(-2)
	} else {
		discount = d.value
	}
	if discount.GreaterThan(orderAmount) {
		discount = orderAmount
	}
	return discount.Round(2)
}
