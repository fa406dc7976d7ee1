package queries

import (
	"context"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra"
	"voucher-service/internal/pkg/clock"
	"voucher-service/internal/pkg/errs"
	"voucher-service/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// PublicVoucherView is the catalog projection: public-safe fields only, no
// internal id or status.
type PublicVoucherView struct {
	Code           string
	DiscountType   string
	DiscountValue  decimal.Decimal
	MinSpend       *decimal.Decimal
	QuotaRemaining int32
	StartAt        time.Time
	EndAt          time.Time
}

// ValidationResult is the read-only eligibility preview; it never mutates
// anything and reports business outcomes through Valid/Message.
type ValidationResult struct {
	Valid          bool
	Code           string
	OrderAmount    decimal.Decimal
	DiscountAmount *decimal.Decimal
	Message        string
}

type VoucherReadStore interface {
	FindByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error)
	ListActive(ctx context.Context, now time.Time) ([]shared.VoucherSnapshot, error)
}

type VoucherQueries interface {
	ListActive(ctx context.Context) ([]*PublicVoucherView, error)
	Validate(ctx context.Context, rawCode string, orderAmount decimal.Decimal) (*ValidationResult, error)
}

type voucherQueriesImpl struct {
	readStore VoucherReadStore
	clock     clock.Clock
}

func NewVoucherQueries(readStore VoucherReadStore, clk clock.Clock) VoucherQueries {
	return &voucherQueriesImpl{
		readStore: readStore,
		clock:     clk,
	}
}

func (q *voucherQueriesImpl) ListActive(ctx context.Context) ([]*PublicVoucherView, error) {
	snapshots, err := q.readStore.ListActive(ctx, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*PublicVoucherView, len(snapshots))
	for i, s := range snapshots {
		views[i] = &PublicVoucherView{
			Code:           s.Code,
			DiscountType:   s.DiscountType,
			DiscountValue:  s.DiscountValue,
			MinSpend:       s.MinSpend,
			QuotaRemaining: s.QuotaRemaining,
			StartAt:        s.StartAt,
			EndAt:          s.EndAt,
		}
	}
	return views, nil
}

// Validate runs the unlocked eligibility-and-discount preview. No row lock,
// no ledger interaction, no mutation.
func (q *voucherQueriesImpl) Validate(ctx context.Context, rawCode string, orderAmount decimal.Decimal) (*ValidationResult, error) {
	code, err := voucher.NewCode(rawCode)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()

	snapshot, err := q.readStore.FindByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &ValidationResult{
				Code:        code.String(),
				OrderAmount: orderAmount,
				Message:     "voucher not found",
			}, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := snapshot.ToEntity()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if checkErr := entity.CheckClaimable(now, orderAmount); checkErr != nil {
		return &ValidationResult{
			Code:        code.String(),
			OrderAmount: orderAmount,
			Message:     checkErr.Error(),
		}, nil
	}

	discount := entity.Discount().Amount(orderAmount)
	return &ValidationResult{
		Valid:          true,
		Code:           code.String(),
		OrderAmount:    orderAmount,
		DiscountAmount: &discount,
		Message:        "ok",
	}, nil
}
