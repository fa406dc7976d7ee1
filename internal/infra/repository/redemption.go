package repository

import (
	"context"

	"voucher-service/internal/domain/voucher"
	"voucher-service/internal/infra"
	"voucher-service/internal/infra/db"
	"voucher-service/internal/pkg/pgconv"
	"voucher-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RedemptionRepository struct{}

func NewRedemptionRepository() *RedemptionRepository {
	return &RedemptionRepository{}
}

const findRedemptionSQL = `
SELECT id, voucher_id, order_id, order_amount, discount_applied, claimed_at
FROM voucher_redemptions
WHERE voucher_id = $1 AND order_id = $2`

func (r *RedemptionRepository) FindByVoucherAndOrder(ctx context.Context, dbtx db.DBTX, voucherID uuid.UUID, orderID string) (*shared.RedemptionSnapshot, error) {
	row := dbtx.QueryRow(ctx, findRedemptionSQL, pgconv.UUIDToPgtype(voucherID), orderID)

	snapshot, err := scanRedemptionRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("redemption not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find redemption", err)
	}
	return snapshot, nil
}

// ON CONFLICT DO NOTHING keeps the enclosing transaction alive when the key
// already exists; a plain unique-violation error would abort it and make the
// re-read fallback impossible.
const insertRedemptionSQL = `
INSERT INTO voucher_redemptions (id, voucher_id, order_id, order_amount, discount_applied)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (voucher_id, order_id) DO NOTHING
RETURNING claimed_at`

// Insert appends one ledger row. The unique (voucher_id, order_id) constraint
// is the enforcement point: a conflicting key is reported through the outcome,
// never as an error.
func (r *RedemptionRepository) Insert(ctx context.Context, dbtx db.DBTX, red *voucher.Redemption) (shared.InsertRedemptionOutcome, error) {
	var claimedAt pgtype.Timestamptz

	err := dbtx.QueryRow(ctx, insertRedemptionSQL,
		pgconv.UUIDToPgtype(red.ID()),
		pgconv.UUIDToPgtype(red.VoucherID()),
		red.OrderID(),
		pgconv.DecimalToNumeric(red.OrderAmount()),
		pgconv.DecimalToNumeric(red.DiscountApplied()),
	).Scan(&claimedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return shared.InsertRedemptionOutcome{Inserted: false}, nil
		}
		return shared.InsertRedemptionOutcome{}, infra.WrapRepoErr("failed to insert redemption", err)
	}

	return shared.InsertRedemptionOutcome{
		Inserted: true,
		Redemption: &shared.RedemptionSnapshot{
			ID:              red.ID(),
			VoucherID:       red.VoucherID(),
			OrderID:         red.OrderID(),
			OrderAmount:     red.OrderAmount(),
			DiscountApplied: red.DiscountApplied(),
			ClaimedAt:       pgconv.TimeFromPgtype(claimedAt),
		},
	}, nil
}

func scanRedemptionRow(row rowScanner) (*shared.RedemptionSnapshot, error) {
	var (
		id          pgtype.UUID
		voucherID   pgtype.UUID
		orderAmount pgtype.Numeric
		discount    pgtype.Numeric
		claimedAt   pgtype.Timestamptz
		snapshot    shared.RedemptionSnapshot
	)

	err := row.Scan(&id, &voucherID, &snapshot.OrderID, &orderAmount, &discount, &claimedAt)
	if err != nil {
		return nil, err
	}

	snapshot.ID = pgconv.UUIDFromPgtype(id)
	snapshot.VoucherID = pgconv.UUIDFromPgtype(voucherID)
	snapshot.ClaimedAt = pgconv.TimeFromPgtype(claimedAt)

	if snapshot.OrderAmount, err = pgconv.DecimalFromNumeric(orderAmount); err != nil {
		return nil, err
	}
	if snapshot.DiscountApplied, err = pgconv.DecimalFromNumeric(discount); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
