package http

import (
	"errors"
	"net/http"

	"seatime-backend/internal/infrastructure/metrics"
	ucSignoff "seatime-backend/internal/usecase/signoff"

	"github.com/labstack/echo/v4"
)

type SignoffHandler struct {
	uc *ucSignoff.Usecase
}

func NewSignoffHandler(uc *ucSignoff.Usecase) *SignoffHandler { return &SignoffHandler{uc: uc} }

type validateTokenReq struct {
	Token string `query:"token" validate:"required,notblank,max=256"`
	Email string `query:"email" validate:"required,notblank,max=320"`
}

type signoffReq struct {
	Token           string `json:"token"                     validate:"required,notblank,max=256"`
	Email           string `json:"email"                     validate:"required,notblank,max=320"`
	Action          string `json:"action"                    validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason,omitempty" validate:"required_if=Action reject,max=2000"`
}

type validateTokenResp struct {
	Testimonial  ucSignoff.TestimonialView `json:"testimonial"`
	CaptainEmail string                    `json:"captain_email"`
}

type signoffResp struct {
	Success     bool                    `json:"success"`
	Testimonial ucSignoff.ConsumeResult `json:"testimonial"`
}

// ValidateToken: GET /testimonials/validate-token?token=&email=
func (h *SignoffHandler) ValidateToken(c echo.Context) error {
	var req validateTokenReq
	if err := c.Bind(&req); err != nil {
		metrics.RecordSignoff("validate", "invalid_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RecordSignoff("validate", "invalid_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Validate(c.Request().Context(), ucSignoff.ValidateInput{Token: req.Token, Email: req.Email})
	if err != nil {
		return writeSignoffError(c, "validate", err)
	}
	metrics.RecordSignoff("validate", "ok")
	return c.JSON(http.StatusOK, validateTokenResp{Testimonial: res.Testimonial, CaptainEmail: res.CaptainEmail})
}

// Signoff: POST /testimonials/signoff
func (h *SignoffHandler) Signoff(c echo.Context) error {
	var req signoffReq
	if err := c.Bind(&req); err != nil {
		metrics.RecordSignoff("consume", "invalid_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RecordSignoff("consume", "invalid_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Consume(c.Request().Context(), ucSignoff.ConsumeInput{
		Token:           req.Token,
		Email:           req.Email,
		Action:          ucSignoff.Action(req.Action),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return writeSignoffError(c, "consume", err)
	}
	metrics.RecordSignoff("consume", "ok")
	return c.JSON(http.StatusOK, signoffResp{Success: true, Testimonial: *res})
}

// Map usecase error kinds → HTTP codes
func writeSignoffError(c echo.Context, op string, err error) error {
	code, outcome := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, ucSignoff.ErrInvalidRequest):
		code, outcome = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ucSignoff.ErrNotFound):
		code, outcome = http.StatusNotFound, "not_found"
	case errors.Is(err, ucSignoff.ErrForbidden):
		code, outcome = http.StatusForbidden, "forbidden"
	}
	metrics.RecordSignoff(op, outcome)
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
