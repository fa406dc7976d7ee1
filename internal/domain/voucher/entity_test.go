//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.VoucherBuilder)
	errIs  error
}

func TestNewVoucher(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewVoucherBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "DEMO10", actual.Code().String())
		assert.Equal(t, voucher.StatusActive, actual.Status())
		assert.Equal(t, int32(100), actual.QuotaTotal())
		assert.Equal(t, actual.QuotaTotal(), actual.QuotaRemaining())
	})

	t.Run("period validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "endAt before startAt",
				mutate: func(b *builder.VoucherBuilder) {
					b.EndAt = b.StartAt.Add(-time.Hour)
				},
				errIs: voucher.ErrInvalidPeriod,
			},
			{
				name: "endAt equal to startAt",
				mutate: func(b *builder.VoucherBuilder) {
					b.EndAt = b.StartAt
				},
				errIs: voucher.ErrInvalidPeriod,
			},
			{
				name: "one second window",
				mutate: func(b *builder.VoucherBuilder) {
					b.EndAt = b.StartAt.Add(time.Second)
				},
			},
		})
	})

	t.Run("quota validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero quota",
				mutate: func(b *builder.VoucherBuilder) { b.QuotaTotal = 0 },
				errIs:  voucher.ErrInvalidQuota,
			},
			{
				name:   "negative quota",
				mutate: func(b *builder.VoucherBuilder) { b.QuotaTotal = -1 },
				errIs:  voucher.ErrInvalidQuota,
			},
			{
				name:   "quota of one",
				mutate: func(b *builder.VoucherBuilder) { b.QuotaTotal = 1 },
			},
		})
	})

	t.Run("min spend validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "negative min spend",
				mutate: func(b *builder.VoucherBuilder) {
					m := decimal.NewFromInt(-1)
					b.MinSpend = &m
				},
				errIs: voucher.ErrNegativeSpend,
			},
			{
				name: "zero min spend",
				mutate: func(b *builder.VoucherBuilder) {
					m := decimal.Zero
					b.MinSpend = &m
				},
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		v1, err1 := builder.NewVoucherBuilder().BuildDomain()
		v2, err2 := builder.NewVoucherBuilder().BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, v1.ID(), v2.ID())
	})
}

func TestCheckClaimable(t *testing.T) {
	order := decimal.RequireFromString("50.00")

	buildVoucher := func(t *testing.T, mutate func(*builder.VoucherBuilder)) (*voucher.Voucher, time.Time) {
		t.Helper()
		b := builder.NewVoucherBuilder().With(mutate)
		snapshot := b.BuildSnapshot()
		entity, err := snapshot.ToEntity()
		require.NoError(t, err)
		return entity, b.StartAt.Add(time.Minute)
	}

	t.Run("active voucher in window with quota passes", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) {})
		require.NoError(t, entity.CheckClaimable(now, order))
	})

	t.Run("inactive voucher fails", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) { b.Status = "INACTIVE" })
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrInactive)
	})

	t.Run("before the window fails", func(t *testing.T) {
		entity, _ := buildVoucher(t, func(b *builder.VoucherBuilder) {})
		now := entity.StartAt().Add(-time.Second)
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrNotInPeriod)
	})

	t.Run("after the window fails", func(t *testing.T) {
		entity, _ := buildVoucher(t, func(b *builder.VoucherBuilder) {})
		now := entity.EndAt().Add(time.Second)
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrNotInPeriod)
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		entity, _ := buildVoucher(t, func(b *builder.VoucherBuilder) {})
		require.NoError(t, entity.CheckClaimable(entity.StartAt(), order))
		require.NoError(t, entity.CheckClaimable(entity.EndAt(), order))
	})

	t.Run("exhausted quota fails", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) { b.QuotaRemaining = 0 })
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrQuotaExhausted)
	})

	t.Run("order below min spend fails", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) {
			m := decimal.RequireFromString("100.00")
			b.MinSpend = &m
		})
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrMinSpendNotMet)
	})

	t.Run("order equal to min spend passes", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) {
			m := decimal.RequireFromString("50.00")
			b.MinSpend = &m
		})
		require.NoError(t, entity.CheckClaimable(now, order))
	})

	t.Run("status wins over every later predicate", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) {
			b.Status = "INACTIVE"
			b.QuotaRemaining = 0
			m := decimal.RequireFromString("999.00")
			b.MinSpend = &m
		})
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrInactive)
	})

	t.Run("window wins over quota and min spend", func(t *testing.T) {
		entity, _ := buildVoucher(t, func(b *builder.VoucherBuilder) {
			b.QuotaRemaining = 0
		})
		now := entity.EndAt().Add(time.Hour)
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrNotInPeriod)
	})

	t.Run("quota wins over min spend", func(t *testing.T) {
		entity, now := buildVoucher(t, func(b *builder.VoucherBuilder) {
			b.QuotaRemaining = 0
			m := decimal.RequireFromString("999.00")
			b.MinSpend = &m
		})
		require.ErrorIs(t, entity.CheckClaimable(now, order), voucher.ErrQuotaExhausted)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewVoucherBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
