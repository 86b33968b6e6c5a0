package invite

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teampulse/server/internal/module/auth"
	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
	"github.com/teampulse/server/internal/shared/middleware"
	"github.com/teampulse/server/internal/shared/response"
)

// Handler handles HTTP requests for invites.
type Handler struct {
	service *Service
	accept  *AcceptService
}

// NewHandler creates a new invite handler.
func NewHandler(service *Service, accept *AcceptService) *Handler {
	return &Handler{
		service: service,
		accept:  accept,
	}
}

// RegisterRoutes registers authenticated invite routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invites := r.Group("/invites")
	{
		invites.POST("/bulk", h.CreateBulk)
		invites.GET("", h.List)
		invites.POST("/resend", h.Resend)
		invites.POST("/organization-contact", h.CreateContactInvite)
	}
}

// RegisterPublicRoutes registers routes reachable without authentication:
// the acceptance page validates and completes invites before the invitee
// has an account.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	invites := r.Group("/invites")
	{
		invites.POST("/validate", h.Validate)
		invites.POST("/accept", h.Accept)
	}
}

// CreateBulk handles bulk invite issuance.
//
//	@Summary		Create invites
//	@Description	Issue invites for a batch of email addresses
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateBulkRequest	true	"Bulk invite request"
//	@Success		201		{object}	BulkResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		403		{object}	response.ErrorResponse
//	@Router			/invites/bulk [post]
func (h *Handler) CreateBulk(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBulk(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List handles invite listing.
//
//	@Summary		List invites
//	@Description	List the tenant's invites with pagination
//	@Tags			Invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			organization_id	query		string	false	"Filter by organization"
//	@Param			roles			query		[]string	false	"Filter by role names"
//	@Param			with_employees	query		bool	false	"Include employee invites"
//	@Param			skip			query		int		false	"Page number (1-based)"
//	@Param			take			query		int		false	"Page size"
//	@Success		200	{object}	ListResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Router			/invites [get]
func (h *Handler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, &req)
	if err != nil {
		// Listing failures surface as bad requests: the usual cause is an
		// unusable filter combination, not a server fault.
		response.BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Resend handles invite email resends.
//
//	@Summary		Resend invite email
//	@Description	Send an invite's email again
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ResendRequest	true	"Resend request"
//	@Success		200		{object}	ResendResult
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/invites/resend [post]
func (h *Handler) Resend(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Resend(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateContactInvite handles organization contact invites.
//
//	@Summary		Invite organization contact
//	@Description	Invite an organization contact to collaborate
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ContactInviteRequest	true	"Contact invite request"
//	@Success		201		{object}	Invite
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/invites/organization-contact [post]
func (h *Handler) CreateContactInvite(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req ContactInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, err := h.service.CreateContactInvite(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// Validate handles invite validation from the acceptance page.
//
//	@Summary		Validate invite
//	@Description	Check whether an email/token pair identifies a live invite
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateRequest	true	"Validate request"
//	@Success		200		{object}	ValidatedInvite
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/invites/validate [post]
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Accept handles invite acceptance.
//
//	@Summary		Accept invite
//	@Description	Complete an invite and create the invitee's account
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AcceptRequest	true	"Accept request"
//	@Success		201		{object}	user.User
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/invites/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	registered, err := h.accept.Accept(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registered)
}

func (h *Handler) identity(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	tid, ok1 := middleware.CurrentTenantID(c)
	uid, ok2 := middleware.CurrentUserID(c)
	if !ok1 || !ok2 {
		response.Unauthorized(c, "")
		return tid, uid, false
	}
	return tid, uid, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, []response.ErrorMapping{
		{Err: ErrInvalidInvite, Status: http.StatusBadRequest},
		{Err: ErrInvalidKind, Status: http.StatusBadRequest},
		{Err: ErrUnauthorizedRole, Status: http.StatusForbidden},
		{Err: ErrInviteNotFound, Status: http.StatusNotFound},
		{Err: ErrResendThrottled, Status: http.StatusConflict},
		{Err: ErrSigningFailed, Status: http.StatusInternalServerError, Message: "internal error"},
		{Err: auth.ErrEmailTaken, Status: http.StatusConflict},
		{Err: organization.ErrOrganizationNotFound, Status: http.StatusNotFound},
		{Err: tenant.ErrRoleNotFound, Status: http.StatusNotFound},
		{Err: user.ErrUserNotFound, Status: http.StatusNotFound},
	})
}
