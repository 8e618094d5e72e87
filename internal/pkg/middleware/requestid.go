// Package middleware provides the gin middleware chain for the CaseGate HTTP
// server.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/utils/id"
)

// RequestID assigns each request a ULID correlation id unless the caller
// already supplied one. The id travels in the response header and ends up in
// both the access log and the audit entry for the request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(httputils.RequestIDHeader)
		if requestID == "" {
			requestID = id.NewULID()
		}
		c.Writer.Header().Set(httputils.RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the correlation id assigned to the request.
func GetRequestID(c *gin.Context) string {
	return c.Writer.Header().Get(httputils.RequestIDHeader)
}
