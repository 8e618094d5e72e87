package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// FlagHandler exposes the two-person safety-flag cancellation workflow.
type FlagHandler struct {
	svc *biz.FlagService
}

// NewFlagHandler creates a new FlagHandler.
func NewFlagHandler(svc *biz.FlagService) *FlagHandler {
	return &FlagHandler{svc: svc}
}

// FlagActionRequest names the program context the flag belongs to.
type FlagActionRequest struct {
	ProgramID string `json:"program_id" validate:"required,slug"`
}

func (h *FlagHandler) act(c *gin.Context, fn func(*gin.Context, string, string) error) {
	flagID := c.Param("flag")
	if flagID == "" {
		httputils.WriteResponse(c, errors.ErrBadRequest.WithMessage("flag id is required"), nil)
		return
	}

	var req FlagActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, fn(c, req.ProgramID, flagID), nil)
}

// Recommend handles recommending cancellation of a safety flag.
func (h *FlagHandler) Recommend(c *gin.Context) {
	h.act(c, func(c *gin.Context, programID, flagID string) error {
		return h.svc.Recommend(c.Request.Context(), accessRequest(c, programID), flagID)
	})
}

// Approve handles approving a pending cancellation as a second actor.
func (h *FlagHandler) Approve(c *gin.Context) {
	h.act(c, func(c *gin.Context, programID, flagID string) error {
		return h.svc.Approve(c.Request.Context(), accessRequest(c, programID), flagID)
	})
}

// Reject handles rejecting a pending cancellation; the flag stays in force.
func (h *FlagHandler) Reject(c *gin.Context) {
	h.act(c, func(c *gin.Context, programID, flagID string) error {
		return h.svc.Reject(c.Request.Context(), accessRequest(c, programID), flagID)
	})
}
