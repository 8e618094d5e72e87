package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/utils/errors"
	"github.com/caseworks/casegate/pkg/utils/response"
	"github.com/caseworks/casegate/pkg/validator"
)

// AuditHandler exposes the program-scoped audit read path.
type AuditHandler struct {
	svc *biz.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(svc *biz.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List handles listing one program's audit entries, newest first.
func (h *AuditHandler) List(c *gin.Context) {
	programID := c.Query("program_id")
	if err := validator.Global().Struct(&struct {
		ProgramID string `json:"program_id" validate:"required,slug"`
	}{programID}); err != nil {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	page, pageSize := pagination(c)
	count, list, err := h.svc.ListByProgram(c.Request.Context(),
		accessRequest(c, programID), (page-1)*pageSize, pageSize)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, response.Page(list, count, page, pageSize))
}
