package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/authz"
)

// AccessHandler exposes the UI-affordance permission check.
type AccessHandler struct {
	svc *biz.AccessService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(svc *biz.AccessService) *AccessHandler {
	return &AccessHandler{svc: svc}
}

// CheckRequest is the request body for a permission check.
type CheckRequest struct {
	Key       string `json:"key" validate:"required,permkey"`
	ProgramID string `json:"program_id" validate:"required,slug"`
	ClientID  string `json:"client_id" validate:"omitempty,slug"`
	Field     string `json:"field" validate:"omitempty,max=64"`
}

// CheckResponse reports whether the operation would be allowed. No reason is
// included; denials are indistinguishable by design of the engine, and this
// endpoint mirrors that.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// Check handles the affordance check used to show or hide UI actions. It runs
// the same decision path as enforcement, without an audit write.
func (h *AccessHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	r := accessRequest(c, req.ProgramID)
	r.Key = authz.Key(req.Key)
	r.ClientID = req.ClientID
	r.Field = req.Field

	httputils.WriteResponse(c, nil, &CheckResponse{
		Allowed: h.svc.HasPermission(c.Request.Context(), r),
	})
}
