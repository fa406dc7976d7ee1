package components

import (
	"voucher-service/internal/handler"
	"voucher-service/internal/handler/api"
	"voucher-service/internal/handler/middleware"
	"voucher-service/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewVoucherHandler,
		api.NewAdminVoucherHandler,
		NewAdminMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAdminMiddleware(cfg config.Config) *middleware.AdminMiddleware {
	return middleware.NewAdminMiddleware(cfg.Admin)
}
