package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// WalletHandler handles HTTP requests for the points wallet.
type WalletHandler struct {
	service ports.WalletService
}

func NewWalletHandler(service ports.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

// Get handles GET /v1/wallet: the caller's balances.
//
// @Summary      Get wallet balances
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  walletResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/wallet [get]
func (h *WalletHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, walletResponse{
		Balance:    summary.Balance,
		PinkTokens: summary.PinkTokens,
		PINSet:     summary.PINSet,
		Membership: summary.Membership,
	})
}

// SetPIN handles POST /v1/wallet/pin. Setting the first PIN needs no current
// PIN; changing an existing one does.
//
// @Summary      Set or change the wallet PIN
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setPINRequest  true  "New PIN (and current PIN when changing)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/wallet/pin [post]
func (h *WalletHandler) SetPIN(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req setPINRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetPIN(c.Request().Context(), userID, req.CurrentPIN, req.NewPIN); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "pin updated"})
}

// Pay handles POST /v1/wallet/pay. It pays a worker-assigned job from the
// caller's balance.
//
// @Summary      Pay for a job
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string      false  "Idempotency key to prevent double charging"
// @Param        body             body      payRequest  true   "Job reference and wallet PIN"
// @Success      200              {object}  payResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      429              {object}  errorResponse
// @Router       /v1/wallet/pay [post]
func (h *WalletHandler) Pay(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req payRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Pay(c.Request().Context(), ports.PayInput{
		UserID:         userID,
		JobReference:   req.JobReference,
		PIN:            req.PIN,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payResponse{
		JobReference: result.JobReference,
		AmountPaid:   result.AmountPaid,
		TokensEarned: result.TokensEarned,
		Balance:      result.Balance,
		PinkTokens:   result.PinkTokens,
		AlreadyPaid:  result.AlreadyPaid,
	})
}

// Redeem handles POST /v1/wallet/redeem: spends pink tokens on a reward.
//
// @Summary      Redeem pink tokens for a reward
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      redeemRequest  true  "Reward id and trip booking details"
// @Success      200   {object}  redeemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/wallet/redeem [post]
func (h *WalletHandler) Redeem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Redeem(c.Request().Context(), ports.RedeemInput{
		UserID:   userID,
		RewardID: req.RewardID,
		Location: req.Location,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, redeemResponse{
		RewardName:  result.RewardName,
		TokensSpent: result.TokensSpent,
		PinkTokens:  result.PinkTokens,
	})
}

// Rewards handles GET /v1/wallet/rewards: the static redemption catalog.
//
// @Summary      List redeemable rewards
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rewardsResponse
// @Router       /v1/wallet/rewards [get]
func (h *WalletHandler) Rewards(c echo.Context) error {
	return c.JSON(http.StatusOK, rewardsResponse{Data: domain.Rewards})
}

// Transactions handles GET /v1/wallet/transactions: the caller's ledger.
//
// @Summary      List recent wallet transactions
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 20)"
// @Success      200    {object}  transactionsResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/wallet/transactions [get]
func (h *WalletHandler) Transactions(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	txns, err := h.service.Transactions(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Data: txns})
}
