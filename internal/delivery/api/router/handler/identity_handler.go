package handler

import (
	"log/slog"
	"net/http"

	"checklist/internal/delivery/api/middleware"
	"checklist/internal/delivery/api/response"
	deliverycontext "checklist/internal/delivery/context"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// IdentityHandlerParams holds dependencies for IdentityHandler, injected by Fx.
type IdentityHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// IdentityHandler serves the authenticated identity endpoints.
type IdentityHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewIdentityHandler is the constructor for IdentityHandler.
func NewIdentityHandler(params IdentityHandlerParams) *IdentityHandler {
	return &IdentityHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// ProvisionIdentityRequest is the body of POST /api/admin/identities.
type ProvisionIdentityRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	Name         string `json:"name" validate:"max=100"`
	Password     string `json:"password"`
	EmployeeCode string `json:"employee_code" validate:"max=64"`
	CompanyCode  string `json:"company_code" validate:"max=64"`
	Role         string `json:"role" validate:"omitempty,oneof=admin member"`
}

// ChangeRoleRequest is the body of PATCH /api/admin/identities/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

// Me returns the signed-in identity.
func (h *IdentityHandler) Me(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNoCredentials)
	}

	return response.Success(c, http.StatusOK, toIdentityResponse(identity))
}

// MemberPing answers only identities holding the member role.
func (h *IdentityHandler) MemberPing(c echo.Context) error {
	identityID, ok := middleware.GetIdentityID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNoCredentials)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"status":      "ok",
		"identity_id": identityID.String(),
	})
}

// ListIdentities returns every identity.
func (h *IdentityHandler) ListIdentities(c echo.Context) error {
	identities, err := h.adminUC.ListIdentities(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toIdentityResponses(identities))
}

// ProvisionIdentity creates an identity on someone else's behalf.
func (h *IdentityHandler) ProvisionIdentity(c echo.Context) error {
	var req ProvisionIdentityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid identity input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.adminUC.ProvisionIdentity(c.Request().Context(), usecase.ProvisionIdentityInput{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		EmployeeCode: req.EmployeeCode,
		CompanyCode:  req.CompanyCode,
		Role:         entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toIdentityResponse(identity))
}

// FindByEmployeeCode looks an identity up by its employee code.
func (h *IdentityHandler) FindByEmployeeCode(c echo.Context) error {
	identity, err := h.adminUC.FindByEmployeeCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toIdentityResponse(identity))
}

// ChangeRole promotes or demotes an identity.
func (h *IdentityHandler) ChangeRole(c echo.Context) error {
	actorID, ok := middleware.GetIdentityID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNoCredentials)
	}

	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.adminUC.ChangeRole(c.Request().Context(), actorID, identityID, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toIdentityResponse(identity))
}

// DeleteIdentity removes an identity permanently.
func (h *IdentityHandler) DeleteIdentity(c echo.Context) error {
	actorID, ok := middleware.GetIdentityID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNoCredentials)
	}

	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	if err := h.adminUC.DeleteIdentity(c.Request().Context(), actorID, identityID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
