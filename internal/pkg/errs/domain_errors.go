package errs

import "errors"

// Domain-specific sentinel errors for usecase layers
var (
	// Voucher errors
	ErrDuplicateCode   = errors.New("voucher code already exists")
	ErrInvalidRange    = errors.New("endAt must be after startAt")
	ErrInvalidDiscount = errors.New("percent discount must be <= 100")

	// Redemption errors
	ErrQuotaConflict = errors.New("quota decrement did not apply")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
