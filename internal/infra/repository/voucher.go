package repository

import (
	"context"
	"time"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra"
	"voucher-service/internal/infra/db"
	"voucher-service/internal/pkg/pgconv"
	"voucher-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherRepository struct{}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{}
}

const insertVoucherSQL = `
INSERT INTO vouchers (
	id, code, discount_type, discount_value,
	start_at, end_at, min_spend,
	quota_total, quota_remaining, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *VoucherRepository) Create(ctx context.Context, dbtx db.DBTX, v *voucher.Voucher) (*shared.VoucherSnapshot, error) {
	_, err := dbtx.Exec(ctx, insertVoucherSQL,
		pgconv.UUIDToPgtype(v.ID()),
		v.Code().String(),
		string(v.Discount().Type()),
		pgconv.DecimalToNumeric(v.Discount().Value()),
		pgconv.TimeToPgtype(v.StartAt()),
		pgconv.TimeToPgtype(v.EndAt()),
		pgconv.DecimalPtrToNumeric(v.MinSpend()),
		v.QuotaTotal(),
		v.QuotaRemaining(),
		string(v.Status()),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return nil, infra.WrapRepoErr("voucher code already exists", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to insert voucher", err)
	}

	return &shared.VoucherSnapshot{
		ID:             v.ID(),
		Code:           v.Code().String(),
		DiscountType:   string(v.Discount().Type()),
		DiscountValue:  v.Discount().Value(),
		StartAt:        v.StartAt(),
		EndAt:          v.EndAt(),
		MinSpend:       v.MinSpend(),
		QuotaTotal:     v.QuotaTotal(),
		QuotaRemaining: v.QuotaRemaining(),
		Status:         string(v.Status()),
	}, nil
}

const findVoucherForUpdateSQL = `
SELECT id, code, discount_type, discount_value,
       start_at, end_at, min_spend,
       quota_total, quota_remaining, status
FROM vouchers
WHERE code = $1
FOR UPDATE`

func (r *VoucherRepository) FindByCodeForUpdate(ctx context.Context, dbtx db.DBTX, code string) (*shared.VoucherSnapshot, error) {
	row := dbtx.QueryRow(ctx, findVoucherForUpdateSQL, code)

	snapshot, err := ScanVoucherRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher for update", err)
	}
	return snapshot, nil
}

// The WHERE clause re-verifies status, window and quota at update time, so the
// decrement can never drive quota_remaining below zero.
const decrementQuotaSQL = `
UPDATE vouchers
SET quota_remaining = quota_remaining - 1, updated_at = now()
WHERE id = $1
  AND status = 'ACTIVE'
  AND start_at <= $2 AND end_at >= $2
  AND quota_remaining > 0`

func (r *VoucherRepository) DecrementQuota(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) (bool, error) {
	tag, err := dbtx.Exec(ctx, decrementQuotaSQL, pgconv.UUIDToPgtype(id), pgconv.TimeToPgtype(now))
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement voucher quota", err)
	}
	return tag.RowsAffected() == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ScanVoucherRow converts one voucher row in the canonical column order into a
// snapshot. Shared with the read store, which issues the same projection.
func ScanVoucherRow(row rowScanner) (*shared.VoucherSnapshot, error) {
	var (
		id            pgtype.UUID
		discountValue pgtype.Numeric
		startAt       pgtype.Timestamptz
		endAt         pgtype.Timestamptz
		minSpend      pgtype.Numeric
		snapshot      shared.VoucherSnapshot
	)

	err := row.Scan(
		&id,
		&snapshot.Code,
		&snapshot.DiscountType,
		&discountValue,
		&startAt,
		&endAt,
		&minSpend,
		&snapshot.QuotaTotal,
		&snapshot.QuotaRemaining,
		&snapshot.Status,
	)
	if err != nil {
		return nil, err
	}

	snapshot.ID = pgconv.UUIDFromPgtype(id)
	snapshot.StartAt = pgconv.TimeFromPgtype(startAt)
	snapshot.EndAt = pgconv.TimeFromPgtype(endAt)

	if snapshot.DiscountValue, err = pgconv.DecimalFromNumeric(discountValue); err != nil {
		return nil, err
	}
	if snapshot.MinSpend, err = pgconv.DecimalPtrFromNumeric(minSpend); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
