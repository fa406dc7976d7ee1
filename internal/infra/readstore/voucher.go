package readstore

import (
	"context"
	"time"

	"voucher-service/internal/infra"
	"voucher-service/internal/infra/db"
	"voucher-service/internal/infra/repository"
	"voucher-service/internal/pkg/pgconv"
	"voucher-service/internal/usecase/shared"
)

// VoucherReadStore serves the non-locking read paths: validation and the
// public catalog. These reads never wait behind claim locks.
type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

const findVoucherByCodeSQL = `
SELECT id, code, discount_type, discount_value,
       start_at, end_at, min_spend,
       quota_total, quota_remaining, status
FROM vouchers
WHERE code = $1`

func (s *VoucherReadStore) FindByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	row := s.db.QueryRow(ctx, findVoucherByCodeSQL, code)

	snapshot, err := repository.ScanVoucherRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return snapshot, nil
}

const listActiveVouchersSQL = `
SELECT id, code, discount_type, discount_value,
       start_at, end_at, min_spend,
       quota_total, quota_remaining, status
FROM vouchers
WHERE status = 'ACTIVE'
  AND start_at <= $1 AND end_at >= $1
  AND quota_remaining > 0
ORDER BY end_at`

func (s *VoucherReadStore) ListActive(ctx context.Context, now time.Time) ([]shared.VoucherSnapshot, error) {
	rows, err := s.db.Query(ctx, listActiveVouchersSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active vouchers", err)
	}
	defer rows.Close()

	var snapshots []shared.VoucherSnapshot
	for rows.Next() {
		snapshot, err := repository.ScanVoucherRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read voucher rows", err)
	}

	return snapshots, nil
}
