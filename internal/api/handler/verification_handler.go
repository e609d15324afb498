package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// VerificationHandler handles PAN/Aadhaar attestation. Document numbers are
// validated and discarded; only the boolean outcome is stored.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// SubmitPAN handles POST /v1/verification/pan.
//
// @Summary      Submit PAN for verification
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      panRequest  true  "PAN number"
// @Success      200   {object}  verificationStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/verification/pan [post]
func (h *VerificationHandler) SubmitPAN(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req panRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	status, err := h.service.SubmitPAN(c.Request().Context(), userID, req.PANNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVerificationResponse(status))
}

// SubmitAadhaar handles POST /v1/verification/aadhaar.
//
// @Summary      Submit Aadhaar for verification
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      aadhaarRequest  true  "Aadhaar number"
// @Success      200   {object}  verificationStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/verification/aadhaar [post]
func (h *VerificationHandler) SubmitAadhaar(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req aadhaarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	status, err := h.service.SubmitAadhaar(c.Request().Context(), userID, req.AadhaarNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVerificationResponse(status))
}

// Status handles GET /v1/verification/status.
//
// @Summary      Get verification status
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verificationStatusResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/verification/status [get]
func (h *VerificationHandler) Status(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	status, err := h.service.Status(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVerificationResponse(status))
}

func toVerificationResponse(s *ports.VerificationStatus) verificationStatusResponse {
	return verificationStatusResponse{
		PANVerified:     s.PANVerified,
		AadhaarVerified: s.AadhaarVerified,
		Verified:        s.Verified,
	}
}
