package api

import (
	"net/http"

	reqdto "voucher-service/internal/handler/dto/request"
	resdto "voucher-service/internal/handler/dto/response"
	"voucher-service/internal/handler/httperr"
	"voucher-service/internal/pkg/errs"
	"voucher-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminVoucherHandler struct {
	voucherCommands commands.VoucherCommands
}

func NewAdminVoucherHandler(voucherCommands commands.VoucherCommands) *AdminVoucherHandler {
	return &AdminVoucherHandler{voucherCommands: voucherCommands}
}

// Create registers a new voucher. Input problems (invalid window, percent over
// 100, duplicate code) come back as 400 with the reason.
func (h *AdminVoucherHandler) Create(c *gin.Context) {
	var req reqdto.CreateVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}
	if validateErr := req.Validate(); validateErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, validateErr, validateErr.Error())
		return
	}

	snapshot, err := h.voucherCommands.CreateVoucher(c.Request.Context(), commands.CreateVoucherInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		MinSpend:      req.MinSpend,
		QuotaTotal:    req.QuotaTotal,
	})
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrInvalidRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "endAt must be after startAt")
		case errs.Is(err, errs.ErrInvalidDiscount):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "percent discount must be <= 100")
		case errs.Is(err, errs.ErrDuplicateCode):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "voucher code already exists")
		case errs.Is(err, errs.ErrDatabaseOperationFailed):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service unavailable")
		default:
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromVoucherSnapshot(snapshot))
}
