package commands

import (
	"context"
	"strings"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra"
	"voucher-service/internal/pkg/clock"
	"voucher-service/internal/pkg/errs"
	"voucher-service/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

const (
	msgOK              = "ok"
	msgVoucherNotFound = "voucher not found"
	msgAlreadyClaimed  = "already claimed for this orderId"
)

type CreateVoucherInput struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	StartAt       time.Time
	EndAt         time.Time
	MinSpend      *decimal.Decimal
	QuotaTotal    int32
}

type ClaimInput struct {
	Code        string
	OrderID     string
	OrderAmount decimal.Decimal
}

// ClaimResult is the structured outcome of a claim. Business failures
// (not-found, ineligible) live here as Success=false with a message; only
// infrastructure failures surface as errors.
type ClaimResult struct {
	Success         bool
	Idempotent      bool
	Code            string
	OrderID         string
	OrderAmount     decimal.Decimal
	DiscountApplied *decimal.Decimal
	QuotaRemaining  *int32
	Message         string
}

type VoucherCommands interface {
	CreateVoucher(ctx context.Context, input CreateVoucherInput) (*shared.VoucherSnapshot, error)
	Claim(ctx context.Context, input ClaimInput) (*ClaimResult, error)
}

type voucherCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVoucherCommands(uow shared.UnitOfWork, clk clock.Clock) VoucherCommands {
	return &voucherCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (u *voucherCommandsImpl) CreateVoucher(ctx context.Context, input CreateVoucherInput) (*shared.VoucherSnapshot, error) {
	code, err := voucher.NewCode(input.Code)
	if err != nil {
		return nil, err
	}

	discountType, err := voucher.ParseDiscountType(input.DiscountType)
	if err != nil {
		return nil, err
	}

	discount, err := voucher.NewDiscount(discountType, input.DiscountValue)
	if err != nil {
		if errs.Is(err, voucher.ErrPercentDiscountRange) {
			return nil, errs.Mark(err, errs.ErrInvalidDiscount)
		}
		return nil, err
	}

	entity, err := voucher.NewVoucher(code, discount, input.StartAt, input.EndAt, input.MinSpend, input.QuotaTotal)
	if err != nil {
		if errs.Is(err, voucher.ErrInvalidPeriod) {
			return nil, errs.Mark(err, errs.ErrInvalidRange)
		}
		return nil, err
	}

	var created *shared.VoucherSnapshot
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, createErr := tx.Vouchers().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return errs.Mark(createErr, errs.ErrDuplicateCode)
			}
			return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
		}
		created = snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Claim runs the whole claim state machine inside one transaction: lock the
// voucher row, take the idempotency pre-check, run the eligibility predicates,
// append the ledger row and write the decremented quota back. A lost insert
// race resolves to the winner's redemption instead of an error.
func (u *voucherCommandsImpl) Claim(ctx context.Context, input ClaimInput) (*ClaimResult, error) {
	code, err := voucher.NewCode(input.Code)
	if err != nil {
		return nil, err
	}
	orderID := strings.TrimSpace(input.OrderID)
	orderAmount := input.OrderAmount
	now := u.clock.Now()

	var result *ClaimResult
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, findErr := tx.Vouchers().FindByCodeForUpdate(ctx, tx.DB(), code.String())
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				result = &ClaimResult{
					Code:        code.String(),
					OrderID:     orderID,
					OrderAmount: orderAmount,
					Message:     msgVoucherNotFound,
				}
				return nil
			}
			return errs.Mark(findErr, errs.ErrDatabaseOperationFailed)
		}

		existing, findErr := tx.Redemptions().FindByVoucherAndOrder(ctx, tx.DB(), snapshot.ID, orderID)
		if findErr != nil && !infra.IsKind(findErr, infra.KindNotFound) {
			return errs.Mark(findErr, errs.ErrDatabaseOperationFailed)
		}
		if existing != nil {
			result = idempotentResult(code.String(), orderID, existing, snapshot.QuotaRemaining)
			return nil
		}

		entity, entityErr := snapshot.ToEntity()
		if entityErr != nil {
			return errs.Mark(entityErr, errs.ErrDatabaseOperationFailed)
		}

		if checkErr := entity.CheckClaimable(now, orderAmount); checkErr != nil {
			remaining := snapshot.QuotaRemaining
			result = &ClaimResult{
				Code:           code.String(),
				OrderID:        orderID,
				OrderAmount:    orderAmount,
				QuotaRemaining: &remaining,
				Message:        checkErr.Error(),
			}
			return nil
		}

		discount := entity.Discount().Amount(orderAmount)

		outcome, insertErr := tx.Redemptions().Insert(ctx, tx.DB(),
			voucher.NewRedemption(snapshot.ID, orderID, orderAmount, discount))
		if insertErr != nil {
			return errs.Mark(insertErr, errs.ErrDatabaseOperationFailed)
		}

		if !outcome.Inserted {
			// A concurrent transaction won the race between the pre-check and
			// the insert; resolve to its redemption.
			winner, rereadErr := tx.Redemptions().FindByVoucherAndOrder(ctx, tx.DB(), snapshot.ID, orderID)
			if rereadErr != nil {
				return errs.Mark(rereadErr, errs.ErrDatabaseOperationFailed)
			}
			result = idempotentResult(code.String(), orderID, winner, snapshot.QuotaRemaining)
			return nil
		}

		applied, decErr := tx.Vouchers().DecrementQuota(ctx, tx.DB(), snapshot.ID, now)
		if decErr != nil {
			return errs.Mark(decErr, errs.ErrDatabaseOperationFailed)
		}
		if !applied {
			// Cannot happen while the row lock is held and the quota predicate
			// passed; aborting rolls the ledger row back with the transaction.
			return errs.ErrQuotaConflict
		}

		remaining := snapshot.QuotaRemaining - 1
		result = &ClaimResult{
			Success:         true,
			Code:            code.String(),
			OrderID:         orderID,
			OrderAmount:     orderAmount,
			DiscountApplied: &discount,
			QuotaRemaining:  &remaining,
			Message:         msgOK,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// idempotentResult echoes the original redemption's amounts, not the retried
// request's.
func idempotentResult(code, orderID string, redemption *shared.RedemptionSnapshot, quotaRemaining int32) *ClaimResult {
	discount := redemption.DiscountApplied
	remaining := quotaRemaining
	return &ClaimResult{
		Success:         true,
		Idempotent:      true,
		Code:            code,
		OrderID:         orderID,
		OrderAmount:     redemption.OrderAmount,
		DiscountApplied: &discount,
		QuotaRemaining:  &remaining,
		Message:         msgAlreadyClaimed,
	}
}
