package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// SOSHandler handles safety alerts.
type SOSHandler struct {
	service ports.SOSService
}

func NewSOSHandler(service ports.SOSService) *SOSHandler {
	return &SOSHandler{service: service}
}

// Raise handles POST /v1/sos: persists the alert, enqueues fanout, 202.
//
// @Summary      Raise an SOS alert
// @Tags         sos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sosRequest  true  "Caller location and optional message"
// @Success      202   {object}  sosResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/sos [post]
func (h *SOSHandler) Raise(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req sosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	alert, err := h.service.Raise(c.Request().Context(), ports.SOSInput{
		UserID:  userID,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, sosResponse{
		AlertID:   alert.ID,
		CreatedAt: alert.CreatedAt,
	})
}

// List handles GET /v1/sos: recent alerts for panchayat and admin review.
//
// @Summary      List recent SOS alerts
// @Tags         sos
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {object}  listSOSResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/sos [get]
func (h *SOSHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	alerts, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listSOSResponse{Data: alerts})
}
