//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra"
	"voucher-service/internal/infra/db"
	"voucher-service/internal/pkg/clock"
	"voucher-service/internal/pkg/errs"
	"voucher-service/internal/usecase/commands"
	"voucher-service/internal/usecase/shared"
	"voucher-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) Create(ctx context.Context, db db.DBTX, v *voucher.Voucher) (*shared.VoucherSnapshot, error) {
	args := m.Called(ctx, db, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.VoucherSnapshot), args.Error(1)
}

func (m *MockVoucherRepository) FindByCodeForUpdate(ctx context.Context, db db.DBTX, code string) (*shared.VoucherSnapshot, error) {
	args := m.Called(ctx, db, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.VoucherSnapshot), args.Error(1)
}

func (m *MockVoucherRepository) DecrementQuota(ctx context.Context, db db.DBTX, id uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, db, id, now)
	return args.Bool(0), args.Error(1)
}

type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) FindByVoucherAndOrder(ctx context.Context, db db.DBTX, voucherID uuid.UUID, orderID string) (*shared.RedemptionSnapshot, error) {
	args := m.Called(ctx, db, voucherID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.RedemptionSnapshot), args.Error(1)
}

func (m *MockRedemptionRepository) Insert(ctx context.Context, db db.DBTX, r *voucher.Redemption) (shared.InsertRedemptionOutcome, error) {
	args := m.Called(ctx, db, r)
	return args.Get(0).(shared.InsertRedemptionOutcome), args.Error(1)
}

// stubTx hands the mocked repositories to the transactional closure.
type stubTx struct {
	vouchers    *MockVoucherRepository
	redemptions *MockRedemptionRepository
}

func (s *stubTx) Vouchers() shared.VoucherRepository       { return s.vouchers }
func (s *stubTx) Redemptions() shared.RedemptionRepository { return s.redemptions }
func (s *stubTx) DB() db.DBTX                              { return nil }

// stubUoW runs the closure directly without a real transaction.
type stubUoW struct {
	tx *stubTx
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type fixture struct {
	vouchers    *MockVoucherRepository
	redemptions *MockRedemptionRepository
	clock       *clock.MockClock
	commands    commands.VoucherCommands
}

func newFixture(now time.Time) *fixture {
	vouchers := new(MockVoucherRepository)
	redemptions := new(MockRedemptionRepository)
	clk := clock.NewMockClock(now)
	uow := &stubUoW{tx: &stubTx{vouchers: vouchers, redemptions: redemptions}}
	return &fixture{
		vouchers:    vouchers,
		redemptions: redemptions,
		clock:       clk,
		commands:    commands.NewVoucherCommands(uow, clk),
	}
}

func notFoundErr() error {
	return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
}

func TestClaim(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	orderAmount := decimal.RequireFromString("100.00")

	activeBuilder := func() *builder.VoucherBuilder {
		return builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.StartAt = now.Add(-time.Hour)
			b.EndAt = now.Add(time.Hour)
		})
	}

	t.Run("unknown code reports not found without error", func(t *testing.T) {
		f := newFixture(now)
		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, "NOPE").
			Return(nil, notFoundErr())

		result, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: "nope", OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "voucher not found", result.Message)
		assert.Equal(t, "NOPE", result.Code)
		f.redemptions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existing redemption short-circuits to the idempotent outcome", func(t *testing.T) {
		f := newFixture(now)
		snapshot := activeBuilder().BuildSnapshot()
		prior := &shared.RedemptionSnapshot{
			ID:              uuid.New(),
			VoucherID:       snapshot.ID,
			OrderID:         "order-1",
			OrderAmount:     decimal.RequireFromString("80.00"),
			DiscountApplied: decimal.RequireFromString("8.00"),
			ClaimedAt:       now.Add(-time.Minute),
		}

		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, snapshot.Code).
			Return(snapshot, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(prior, nil)

		result, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: snapshot.Code, OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.Idempotent)
		assert.Equal(t, "already claimed for this orderId", result.Message)
		// The first claim's amounts win over the retried request's.
		assert.Equal(t, "80.00", result.OrderAmount.StringFixed(2))
		assert.Equal(t, "8.00", result.DiscountApplied.StringFixed(2))
		require.NotNil(t, result.QuotaRemaining)
		assert.Equal(t, snapshot.QuotaRemaining, *result.QuotaRemaining)
		f.redemptions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
		f.vouchers.AssertNotCalled(t, "DecrementQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ineligible voucher reports the failed predicate and leaves no trace", func(t *testing.T) {
		f := newFixture(now)
		snapshot := activeBuilder().With(func(b *builder.VoucherBuilder) {
			b.QuotaRemaining = 0
		}).BuildSnapshot()

		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, snapshot.Code).
			Return(snapshot, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(nil, notFoundErr())

		result, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: snapshot.Code, OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "voucher quota exhausted", result.Message)
		require.NotNil(t, result.QuotaRemaining)
		assert.Equal(t, int32(0), *result.QuotaRemaining)
		assert.Nil(t, result.DiscountApplied)
		f.redemptions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("successful claim inserts the ledger row and decrements quota", func(t *testing.T) {
		f := newFixture(now)
		snapshot := activeBuilder().With(func(b *builder.VoucherBuilder) {
			b.QuotaRemaining = 5
		}).BuildSnapshot()

		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, snapshot.Code).
			Return(snapshot, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(nil, notFoundErr())
		f.redemptions.On("Insert", mock.Anything, mock.Anything, mock.MatchedBy(func(r *voucher.Redemption) bool {
			return r.VoucherID() == snapshot.ID && r.OrderID() == "order-1"
		})).Return(shared.InsertRedemptionOutcome{Inserted: true}, nil)
		f.vouchers.On("DecrementQuota", mock.Anything, mock.Anything, snapshot.ID, now).
			Return(true, nil)

		result, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: "  demo10  ", OrderID: " order-1 ", OrderAmount: orderAmount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.Idempotent)
		assert.Equal(t, "ok", result.Message)
		assert.Equal(t, "DEMO10", result.Code)
		assert.Equal(t, "order-1", result.OrderID)
		require.NotNil(t, result.DiscountApplied)
		assert.Equal(t, "10.00", result.DiscountApplied.StringFixed(2))
		require.NotNil(t, result.QuotaRemaining)
		assert.Equal(t, int32(4), *result.QuotaRemaining)
	})

	t.Run("lost insert race resolves to the winner's redemption", func(t *testing.T) {
		f := newFixture(now)
		snapshot := activeBuilder().BuildSnapshot()
		winner := &shared.RedemptionSnapshot{
			ID:              uuid.New(),
			VoucherID:       snapshot.ID,
			OrderID:         "order-1",
			OrderAmount:     orderAmount,
			DiscountApplied: decimal.RequireFromString("10.00"),
			ClaimedAt:       now,
		}

		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, snapshot.Code).
			Return(snapshot, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(nil, notFoundErr()).Once()
		f.redemptions.On("Insert", mock.Anything, mock.Anything, mock.Anything).
			Return(shared.InsertRedemptionOutcome{Inserted: false}, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(winner, nil).Once()

		result, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: snapshot.Code, OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.Idempotent)
		assert.Equal(t, "already claimed for this orderId", result.Message)
		f.vouchers.AssertNotCalled(t, "DecrementQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed quota write-back aborts the transaction", func(t *testing.T) {
		f := newFixture(now)
		snapshot := activeBuilder().BuildSnapshot()

		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, snapshot.Code).
			Return(snapshot, nil)
		f.redemptions.On("FindByVoucherAndOrder", mock.Anything, mock.Anything, snapshot.ID, "order-1").
			Return(nil, notFoundErr())
		f.redemptions.On("Insert", mock.Anything, mock.Anything, mock.Anything).
			Return(shared.InsertRedemptionOutcome{Inserted: true}, nil)
		f.vouchers.On("DecrementQuota", mock.Anything, mock.Anything, snapshot.ID, now).
			Return(false, nil)

		_, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: snapshot.Code, OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.ErrorIs(t, err, errs.ErrQuotaConflict)
	})

	t.Run("repository failure surfaces as a database error", func(t *testing.T) {
		f := newFixture(now)
		f.vouchers.On("FindByCodeForUpdate", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, infra.WrapRepoErr("query failed", assert.AnError))

		_, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: "DEMO10", OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})

	t.Run("blank code is rejected before touching the database", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.commands.Claim(context.Background(), commands.ClaimInput{
			Code: "   ", OrderID: "order-1", OrderAmount: orderAmount,
		})

		require.ErrorIs(t, err, voucher.ErrEmptyCode)
		f.vouchers.AssertNotCalled(t, "FindByCodeForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateVoucher(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	input := func(mutate func(*commands.CreateVoucherInput)) commands.CreateVoucherInput {
		in := commands.CreateVoucherInput{
			Code:          "summer2026",
			DiscountType:  "PERCENT",
			DiscountValue: decimal.NewFromInt(10),
			StartAt:       now,
			EndAt:         now.Add(24 * time.Hour),
			QuotaTotal:    100,
		}
		if mutate != nil {
			mutate(&in)
		}
		return in
	}

	t.Run("creates a voucher with the normalized code", func(t *testing.T) {
		f := newFixture(now)
		f.vouchers.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(v *voucher.Voucher) bool {
			return v.Code().String() == "SUMMER2026" && v.QuotaRemaining() == int32(100)
		})).Return(builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.Code = "SUMMER2026"
		}).BuildSnapshot(), nil)

		snapshot, err := f.commands.CreateVoucher(context.Background(), input(nil))

		require.NoError(t, err)
		assert.Equal(t, "SUMMER2026", snapshot.Code)
	})

	t.Run("inverted period maps to the range error", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.commands.CreateVoucher(context.Background(), input(func(in *commands.CreateVoucherInput) {
			in.EndAt = in.StartAt
		}))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
	})

	t.Run("percent above 100 maps to the discount error", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.commands.CreateVoucher(context.Background(), input(func(in *commands.CreateVoucherInput) {
			in.DiscountValue = decimal.NewFromInt(101)
		}))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidDiscount))
	})

	t.Run("duplicate key maps to the duplicate code error", func(t *testing.T) {
		f := newFixture(now)
		f.vouchers.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, infra.WrapRepoErr("duplicate voucher code", nil, infra.KindDuplicateKey))

		_, err := f.commands.CreateVoucher(context.Background(), input(nil))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDuplicateCode))
	})

	t.Run("unknown discount type is rejected", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.commands.CreateVoucher(context.Background(), input(func(in *commands.CreateVoucherInput) {
			in.DiscountType = "BOGO"
		}))

		require.ErrorIs(t, err, voucher.ErrInvalidDiscountType)
	})
}
