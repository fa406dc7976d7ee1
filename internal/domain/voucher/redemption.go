package voucher

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Redemption records one completed claim. The (voucherID, orderID) pair is
// unique across all redemptions; a redemption is never mutated or deleted.
type Redemption struct {
	id              uuid.UUID
	voucherID       uuid.UUID
	orderID         string
	orderAmount     decimal.Decimal
	discountApplied decimal.Decimal
}

func NewRedemption(voucherID uuid.UUID, orderID string, orderAmount, discountApplied decimal.Decimal) *Redemption {
	return &Redemption{
		id:              uuid.New(),
		voucherID:       voucherID,
		orderID:         orderID,
		orderAmount:     orderAmount,
		discountApplied: discountApplied,
	}
}

func (r *Redemption) ID() uuid.UUID                    { return r.id }
func (r *Redemption) VoucherID() uuid.UUID             { return r.voucherID }
func (r *Redemption) OrderID() string                  { return r.orderID }
func (r *Redemption) OrderAmount() decimal.Decimal     { return r.orderAmount }
func (r *Redemption) DiscountApplied() decimal.Decimal { return r.discountApplied }
