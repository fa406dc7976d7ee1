package api

import (
	"net/http"

	"voucher-service/internal/domain/voucher"
	reqdto "voucher-service/internal/handler/dto/request"
	resdto "voucher-service/internal/handler/dto/response"
	"voucher-service/internal/handler/httperr"
	"voucher-service/internal/pkg/errs"
	"voucher-service/internal/usecase/commands"
	"voucher-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	voucherCommands commands.VoucherCommands
	voucherQueries  queries.VoucherQueries
}

func NewVoucherHandler(voucherCommands commands.VoucherCommands, voucherQueries queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{
		voucherCommands: voucherCommands,
		voucherQueries:  voucherQueries,
	}
}

// ListActive returns the public catalog of currently claimable vouchers.
func (h *VoucherHandler) ListActive(c *gin.Context) {
	views, err := h.voucherQueries.ListActive(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	response := make([]*resdto.VoucherPublicResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromPublicVoucherView(v)
	}
	c.JSON(http.StatusOK, response)
}

// Validate previews eligibility and discount without consuming quota.
func (h *VoucherHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}
	if validateErr := req.Validate(); validateErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, validateErr, validateErr.Error())
		return
	}

	result, err := h.voucherQueries.Validate(c.Request.Context(), req.Code, req.OrderAmount)
	if err != nil {
		if isCodeValidationError(err) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
			return
		}
		abortWithUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// Claim attempts to redeem one unit of quota for an order. Business outcomes
// (not found, ineligible, idempotent replay) are part of the 200 response
// body; only malformed input and infrastructure failures map to error codes.
func (h *VoucherHandler) Claim(c *gin.Context) {
	var req reqdto.ClaimVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}
	if validateErr := req.Validate(); validateErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, validateErr, validateErr.Error())
		return
	}

	result, err := h.voucherCommands.Claim(c.Request.Context(), commands.ClaimInput{
		Code:        req.Code,
		OrderID:     req.OrderID,
		OrderAmount: req.OrderAmount,
	})
	if err != nil {
		if isCodeValidationError(err) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
			return
		}
		abortWithUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

func isCodeValidationError(err error) bool {
	return errs.Is(err, voucher.ErrEmptyCode) || errs.Is(err, voucher.ErrCodeTooLong)
}

func abortWithUsecaseError(c *gin.Context, err error) {
	if errs.Is(err, errs.ErrDatabaseOperationFailed) {
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service unavailable")
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
}
