//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// VoucherFixture describes a voucher row inserted directly, bypassing the
// admin API. Tests use this to set up states the API cannot create, such as
// inactive or expired vouchers.
type VoucherFixture struct {
	Code           string
	DiscountType   string
	DiscountValue  decimal.Decimal
	StartAt        time.Time
	EndAt          time.Time
	MinSpend       *decimal.Decimal
	QuotaTotal     int32
	QuotaRemaining int32
	Status         string
}

func CreateTestVoucher(t *testing.T, db DBLike, f VoucherFixture) uuid.UUID {
	t.Helper()

	voucherID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO vouchers (id, code, discount_type, discount_value, start_at, end_at, min_spend, quota_total, quota_remaining, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		voucherID, f.Code, f.DiscountType, f.DiscountValue, f.StartAt, f.EndAt, f.MinSpend, f.QuotaTotal, f.QuotaRemaining, f.Status)
	require.NoError(t, err)

	return voucherID
}

func CountRedemptions(t *testing.T, db DBLike, voucherID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM voucher_redemptions WHERE voucher_id = $1", voucherID).Scan(&count)
	require.NoError(t, err)
	return count
}

func GetQuotaRemaining(t *testing.T, db DBLike, voucherID uuid.UUID) int32 {
	t.Helper()

	var remaining int32
	err := db.QueryRow(context.Background(),
		"SELECT quota_remaining FROM vouchers WHERE id = $1", voucherID).Scan(&remaining)
	require.NoError(t, err)
	return remaining
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
