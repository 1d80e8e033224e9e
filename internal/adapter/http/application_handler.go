package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/application"
	appuc "loan-origination/internal/usecase/application"
)

type ApplicationHandler struct {
	uc *appuc.Usecase
}

func NewApplicationHandler(uc *appuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type transitionReq struct {
	Action         string           `json:"action" validate:"required"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount" validate:"omitempty,dec2"`
	InterestRate   *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	Notes          string           `json:"notes" validate:"max=2000"`
	Reason         string           `json:"reason" validate:"max=2000"`
}

// POST /applications
func (h *ApplicationHandler) Create(c echo.Context) error {
	var req application.Fields
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	a, err := h.uc.CreateDraft(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GET /applications?status=&page=&limit=
func (h *ApplicationHandler) List(c echo.Context) error {
	var in appuc.ListInput
	err := echo.QueryParamsBinder(c).
		String("status", &in.Status).
		Int("page", &in.Page).
		Int("limit", &in.Limit).
		BindError()
	if err != nil {
		return badRequest(c, "page and limit must be integers")
	}
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /applications/:application_id
func (h *ApplicationHandler) Get(c echo.Context) error {
	a, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// PUT /applications/:application_id/steps/:step
func (h *ApplicationHandler) SaveStep(c echo.Context) error {
	step, err := application.ParseStep(c.Param("step"))
	if err != nil {
		return respondError(c, err)
	}
	var req application.Fields
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	a, err := h.uc.SaveStep(c.Request().Context(), c.Param("application_id"), step, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// POST /applications/:application_id/submit
func (h *ApplicationHandler) Submit(c echo.Context) error {
	a, err := h.uc.Submit(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// POST /applications/:application_id/transitions
func (h *ApplicationHandler) Transition(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return invalidRequest(c, err)
	}
	a, err := h.uc.Transition(c.Request().Context(), c.Param("application_id"), appuc.TransitionRequest{
		Action:         req.Action,
		ApprovedAmount: req.ApprovedAmount,
		InterestRate:   req.InterestRate,
		Notes:          req.Notes,
		Reason:         req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// GET /applications/:application_id/audit
func (h *ApplicationHandler) AuditTrail(c echo.Context) error {
	entries, err := h.uc.AuditTrail(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": entries})
}

// POST /wizard/steps/:step/validate
//
// Stateless; nothing is persisted.
func (h *ApplicationHandler) ValidateStep(c echo.Context) error {
	step, err := application.ParseStep(c.Param("step"))
	if err != nil {
		return respondError(c, err)
	}
	var req application.Fields
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	return c.JSON(http.StatusOK, h.uc.ValidateStep(step, req))
}

// GET /dashboard/stats
func (h *ApplicationHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
