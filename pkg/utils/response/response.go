// Package response provides unified API response structures.
// This package defines standard response formats for HTTP APIs,
// ensuring consistent response structures across all endpoints.
package response

import (
	"net/http"
	"time"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

// Response is the unified API response structure.
// All API responses should use this format for consistency.
type Response struct {
	// Code is the business error code (0 = success)
	Code int `json:"code"`

	// Message is a human-readable message
	Message string `json:"message"`

	// Data contains the response payload (nil for errors)
	Data interface{} `json:"data,omitempty"`

	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is the response timestamp (Unix milliseconds)
	Timestamp int64 `json:"timestamp,omitempty"`

	httpStatus int
}

// PageData represents paginated data.
type PageData struct {
	// List contains the data items
	List interface{} `json:"list"`

	// Total is the total number of items
	Total int64 `json:"total"`

	// Page is the current page number (1-based)
	Page int `json:"page"`

	// PageSize is the number of items per page
	PageSize int `json:"page_size"`
}

// Success creates a successful response with data.
func Success(data interface{}) *Response {
	return &Response{
		Code:       0,
		Message:    "success",
		Data:       data,
		Timestamp:  time.Now().UnixMilli(),
		httpStatus: http.StatusOK,
	}
}

// Page creates a successful paginated response.
func Page(list interface{}, total int64, page, pageSize int) *Response {
	return Success(&PageData{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Err creates an error response from an Errno.
func Err(e *errors.Errno) *Response {
	return &Response{
		Code:       e.Code,
		Message:    e.Message,
		Timestamp:  time.Now().UnixMilli(),
		httpStatus: e.HTTPStatus(),
	}
}

// WithRequestID attaches a request ID to the response.
func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

// HTTPStatus returns the HTTP status code for the response.
func (r *Response) HTTPStatus() int {
	if r.httpStatus != 0 {
		return r.httpStatus
	}
	return http.StatusOK
}
