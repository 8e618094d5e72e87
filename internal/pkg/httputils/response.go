// Package httputils provides HTTP handler helpers.
package httputils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/pkg/utils/errors"
	"github.com/caseworks/casegate/pkg/utils/json"
	"github.com/caseworks/casegate/pkg/utils/response"
)

// RequestIDHeader carries the per-request correlation id, set by the request
// id middleware and echoed in every response body.
const RequestIDHeader = "X-Request-ID"

// WriteResponse writes err or data to the client in the unified envelope.
// data may be a prebuilt *response.Response (e.g. from response.Page) or a
// raw payload.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	requestID := c.Writer.Header().Get(RequestIDHeader)

	if err != nil {
		writeJSON(c, response.Err(errors.FromError(err)).WithRequestID(requestID))
		return
	}

	if resp, ok := data.(*response.Response); ok {
		writeJSON(c, resp.WithRequestID(requestID))
		return
	}

	writeJSON(c, response.Success(data).WithRequestID(requestID))
}

// writeJSON serializes through the sonic-backed codec rather than gin's
// default renderer.
func writeJSON(c *gin.Context, resp *response.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8",
			[]byte(`{"code":7001,"message":"Internal server error"}`))
		return
	}
	c.Data(resp.HTTPStatus(), "application/json; charset=utf-8", body)
}
