package response

import (
	"time"

	"voucher-service/internal/usecase/commands"
	"voucher-service/internal/usecase/queries"
	"voucher-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type ClaimVoucherResponse struct {
	Success         bool   `json:"success"`
	Idempotent      bool   `json:"idempotent"`
	Code            string `json:"code"`
	OrderID         string `json:"orderId"`
	OrderAmount     Money  `json:"orderAmount"`
	DiscountApplied *Money `json:"discountApplied"`
	QuotaRemaining  *int32 `json:"quotaRemaining"`
	Message         string `json:"message"`
}

func FromClaimResult(r *commands.ClaimResult) *ClaimVoucherResponse {
	return &ClaimVoucherResponse{
		Success:         r.Success,
		Idempotent:      r.Idempotent,
		Code:            r.Code,
		OrderID:         r.OrderID,
		OrderAmount:     NewMoney(r.OrderAmount),
		DiscountApplied: NewMoneyPtr(r.DiscountApplied),
		QuotaRemaining:  r.QuotaRemaining,
		Message:         r.Message,
	}
}

type ValidateVoucherResponse struct {
	Valid          bool   `json:"valid"`
	Code           string `json:"code"`
	OrderAmount    Money  `json:"orderAmount"`
	DiscountAmount *Money `json:"discountAmount"`
	Message        string `json:"message"`
}

func FromValidationResult(r *queries.ValidationResult) *ValidateVoucherResponse {
	return &ValidateVoucherResponse{
		Valid:          r.Valid,
		Code:           r.Code,
		OrderAmount:    NewMoney(r.OrderAmount),
		DiscountAmount: NewMoneyPtr(r.DiscountAmount),
		Message:        r.Message,
	}
}

type VoucherPublicResponse struct {
	Code           string    `json:"code"`
	DiscountType   string    `json:"discountType"`
	DiscountValue  Money     `json:"discountValue"`
	MinSpend       *Money    `json:"minSpend"`
	QuotaRemaining int32     `json:"quotaRemaining"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
}

func FromPublicVoucherView(v *queries.PublicVoucherView) *VoucherPublicResponse {
	return &VoucherPublicResponse{
		Code:           v.Code,
		DiscountType:   v.DiscountType,
		DiscountValue:  NewMoney(v.DiscountValue),
		MinSpend:       NewMoneyPtr(v.MinSpend),
		QuotaRemaining: v.QuotaRemaining,
		StartAt:        v.StartAt,
		EndAt:          v.EndAt,
	}
}

type CreateVoucherResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	DiscountType   string    `json:"discountType"`
	DiscountValue  Money     `json:"discountValue"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	MinSpend       *Money    `json:"minSpend"`
	QuotaTotal     int32     `json:"quotaTotal"`
	QuotaRemaining int32     `json:"quotaRemaining"`
	Status         string    `json:"status"`
}

func FromVoucherSnapshot(s *shared.VoucherSnapshot) *CreateVoucherResponse {
	return &CreateVoucherResponse{
		ID:             s.ID,
		Code:           s.Code,
		DiscountType:   s.DiscountType,
		DiscountValue:  NewMoney(s.DiscountValue),
		StartAt:        s.StartAt,
		EndAt:          s.EndAt,
		MinSpend:       NewMoneyPtr(s.MinSpend),
		QuotaTotal:     s.QuotaTotal,
		QuotaRemaining: s.QuotaRemaining,
		Status:         s.Status,
	}
}
