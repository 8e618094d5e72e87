package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/internal/pkg/middleware"
)

// SessionHandler manages the session's confidentiality context selection.
type SessionHandler struct {
	svc *biz.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *biz.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// SelectContextRequest is the request body for selecting a context.
type SelectContextRequest struct {
	ProgramID string `json:"program_id" validate:"required,slug"`
}

// SelectedContextResponse reports the session's current selection.
type SelectedContextResponse struct {
	ProgramID string `json:"program_id"`
}

// Select handles selecting the session's confidentiality context.
func (h *SessionHandler) Select(c *gin.Context) {
	var req SelectContextRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	err := h.svc.Select(c.Request.Context(),
		middleware.Principal(c), middleware.SessionID(c), req.ProgramID)
	httputils.WriteResponse(c, err, nil)
}

// Clear handles clearing the session's selection.
func (h *SessionHandler) Clear(c *gin.Context) {
	err := h.svc.Clear(c.Request.Context(), middleware.SessionID(c))
	httputils.WriteResponse(c, err, nil)
}

// Get handles reading the session's current selection.
func (h *SessionHandler) Get(c *gin.Context) {
	selected, err := h.svc.Selected(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, &SelectedContextResponse{ProgramID: selected})
}
