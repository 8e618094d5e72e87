package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/internal/pkg/middleware"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/utils/errors"
	"github.com/caseworks/casegate/pkg/utils/response"
)

// RegistryHandler exposes the administrative write path for the registries
// the engine reads.
type RegistryHandler struct {
	svc *biz.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(svc *biz.RegistryService) *RegistryHandler {
	return &RegistryHandler{svc: svc}
}

// CreateProgramRequest is the request body for registering a program.
type CreateProgramRequest struct {
	ProgramID    string `json:"program_id" validate:"required,slug"`
	Name         string `json:"name" validate:"required,min=2,max=128"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	Confidential bool   `json:"confidential"`
}

// CreateProgram handles program registration.
func (h *RegistryHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	program := &model.Program{
		ProgramID:    req.ProgramID,
		Name:         req.Name,
		Description:  req.Description,
		Confidential: req.Confidential,
	}
	err := h.svc.CreateProgram(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), program)
	httputils.WriteResponse(c, err, program)
}

// UpdateProgramRequest is the request body for updating a program.
type UpdateProgramRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2,max=128"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	Confidential *bool  `json:"confidential"`
}

// UpdateProgram handles program updates.
func (h *RegistryHandler) UpdateProgram(c *gin.Context) {
	programID := c.Param("program")

	var req UpdateProgramRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	program, err := h.svc.GetProgram(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), programID)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	if req.Name != "" {
		program.Name = req.Name
	}
	if req.Description != "" {
		program.Description = req.Description
	}
	if req.Confidential != nil {
		program.Confidential = *req.Confidential
	}

	err = h.svc.UpdateProgram(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), program)
	httputils.WriteResponse(c, err, program)
}

// GetProgram handles reading one program.
func (h *RegistryHandler) GetProgram(c *gin.Context) {
	program, err := h.svc.GetProgram(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), c.Param("program"))
	httputils.WriteResponse(c, err, program)
}

// ListPrograms handles listing programs with pagination.
func (h *RegistryHandler) ListPrograms(c *gin.Context) {
	page, pageSize := pagination(c)
	count, list, err := h.svc.ListPrograms(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), (page-1)*pageSize, pageSize)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, response.Page(list, count, page, pageSize))
}

// AssignMembershipRequest is the request body for assigning a role.
type AssignMembershipRequest struct {
	UserID string `json:"user_id" validate:"required,slug"`
	Role   string `json:"role" validate:"required,role"`
}

// AssignMembership handles assigning or reactivating a role in a program.
// Roster changes are enforced in the target program's context, so program
// managers can administer their own roster while org-level administrators
// need an org-level assignment.
func (h *RegistryHandler) AssignMembership(c *gin.Context) {
	programID := c.Param("program")

	var req AssignMembershipRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	m := &model.ProgramMembership{
		UserID:    req.UserID,
		ProgramID: programID,
		Role:      req.Role,
	}
	err := h.svc.AssignMembership(c.Request.Context(), accessRequest(c, programID), m)
	httputils.WriteResponse(c, err, m)
}

// RemoveMembership handles removing a user's role in a program.
func (h *RegistryHandler) RemoveMembership(c *gin.Context) {
	programID := c.Param("program")
	userID := c.Param("user")

	err := h.svc.RemoveMembership(c.Request.Context(),
		accessRequest(c, programID), userID, programID)
	httputils.WriteResponse(c, err, nil)
}

// ListMemberships handles listing a program's roster.
func (h *RegistryHandler) ListMemberships(c *gin.Context) {
	programID := c.Param("program")

	page, pageSize := pagination(c)
	count, list, err := h.svc.ListMemberships(c.Request.Context(),
		accessRequest(c, programID), programID, (page-1)*pageSize, pageSize)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, response.Page(list, count, page, pageSize))
}

// CreateBlockRequest is the request body for installing a client access
// block.
type CreateBlockRequest struct {
	UserID   string `json:"user_id" validate:"required,slug"`
	ClientID string `json:"client_id" validate:"required,slug"`
	Reason   string `json:"reason" validate:"omitempty,max=255"`
}

// CreateBlock handles installing a client access block. The block applies on
// the next evaluation; no session invalidation is involved.
func (h *RegistryHandler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	block := &model.ClientAccessBlock{
		UserID:    req.UserID,
		ClientID:  req.ClientID,
		Reason:    req.Reason,
		CreatedBy: middleware.Principal(c),
	}
	err := h.svc.CreateBlock(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), block)
	httputils.WriteResponse(c, err, block)
}

// DeleteBlock handles lifting a client access block.
func (h *RegistryHandler) DeleteBlock(c *gin.Context) {
	userID := c.Param("user")
	clientID := c.Param("client")
	if userID == "" || clientID == "" {
		httputils.WriteResponse(c,
			errors.ErrBadRequest.WithMessage("user and client are required"), nil)
		return
	}

	err := h.svc.DeleteBlock(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), userID, clientID)
	httputils.WriteResponse(c, err, nil)
}

// UpsertFieldRuleRequest is the request body for a field-visibility rule.
type UpsertFieldRuleRequest struct {
	Role      string `json:"role" validate:"required,role"`
	ProgramID string `json:"program_id" validate:"required,slug"`
	FieldName string `json:"field_name" validate:"required,max=64"`
	Visible   bool   `json:"visible"`
}

// UpsertFieldRule handles creating or replacing a field-visibility rule.
func (h *RegistryHandler) UpsertFieldRule(c *gin.Context) {
	var req UpsertFieldRuleRequest
	if err := bindAndValidate(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	rule := &model.FieldVisibilityRule{
		Role:      req.Role,
		ProgramID: req.ProgramID,
		FieldName: req.FieldName,
		Visible:   req.Visible,
	}
	err := h.svc.UpsertFieldRule(c.Request.Context(),
		accessRequest(c, authz.GlobalContext), rule)
	httputils.WriteResponse(c, err, rule)
}
