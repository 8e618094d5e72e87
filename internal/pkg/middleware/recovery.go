package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// Recovery converts handler panics into a generic internal-error response.
// The panic detail goes to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("handler panic",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)
				httputils.WriteResponse(c, errors.ErrInternal, nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
