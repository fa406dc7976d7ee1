package shared

import (
	"context"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Vouchers() VoucherRepository
	Redemptions() RedemptionRepository
	DB() db.DBTX
}

type VoucherRepository interface {
	Create(ctx context.Context, db db.DBTX, v *voucher.Voucher) (*VoucherSnapshot, error)
	// FindByCodeForUpdate locks the voucher row for the rest of the enclosing
	// transaction; concurrent claims for the same code serialize here.
	FindByCodeForUpdate(ctx context.Context, db db.DBTX, code string) (*VoucherSnapshot, error)
	// DecrementQuota applies the conditional decrement and reports whether a
	// row was updated. The condition re-verifies status, window and quota so
	// the update stays safe even outside the row lock.
	DecrementQuota(ctx context.Context, db db.DBTX, id uuid.UUID, now time.Time) (bool, error)
}

// InsertRedemptionOutcome is the tagged result of a ledger insert: either the
// row went in, or the (voucher, order) key already existed and the caller must
// re-read the winning row.
type InsertRedemptionOutcome struct {
	Inserted   bool
	Redemption *RedemptionSnapshot
}

type RedemptionRepository interface {
	FindByVoucherAndOrder(ctx context.Context, db db.DBTX, voucherID uuid.UUID, orderID string) (*RedemptionSnapshot, error)
	Insert(ctx context.Context, db db.DBTX, r *voucher.Redemption) (InsertRedemptionOutcome, error)
}
