package middleware

import (
	"crypto/subtle"
	"net/http"

	"voucher-service/internal/handler/httperr"
	"voucher-service/internal/pkg/config"
	"voucher-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const adminTokenHeader = "X-Admin-Token"

var errInvalidAdminToken = errs.New("invalid admin token")

// AdminMiddleware guards the admin surface with a static token header.
type AdminMiddleware struct {
	token string
}

func NewAdminMiddleware(cfg config.AdminConfig) *AdminMiddleware {
	return &AdminMiddleware{token: cfg.Token}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(adminTokenHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(m.token)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidAdminToken, errInvalidAdminToken.Error())
			return
		}
		c.Next()
	}
}
