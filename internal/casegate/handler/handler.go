// Package handler implements the HTTP handlers for CaseGate. Handlers bind
// and validate input, build the access request for the principal, and call
// into biz services; they never consult the matrix or registries themselves.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/pkg/middleware"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/utils/errors"
	"github.com/caseworks/casegate/pkg/validator"
)

// bindAndValidate binds the JSON body into req and runs struct validation.
func bindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.ErrBadRequest.WithMessage(err.Error())
	}
	if err := validator.Struct(req); err != nil {
		return errors.ErrBadRequest.WithMessage(err.Error())
	}
	return nil
}

// accessRequest builds the engine request for the authenticated principal.
// The program context always comes from explicit handler input, never from a
// guess about the user's "main" program.
func accessRequest(c *gin.Context, programID string) authz.Request {
	return authz.Request{
		UserID:    middleware.Principal(c),
		SessionID: middleware.SessionID(c),
		ProgramID: programID,
		RequestID: middleware.GetRequestID(c),
	}
}

// pagination reads page/page_size query parameters with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}
