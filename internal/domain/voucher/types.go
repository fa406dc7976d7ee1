package voucher

import "errors"

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

var ErrInvalidDiscountType = errors.New("discount type must be PERCENT or FIXED")

func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(s) {
	case DiscountPercent, DiscountFixed:
		return DiscountType(s), nil
	default:
		return "", ErrInvalidDiscountType
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)
