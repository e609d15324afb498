package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// VerificationChecker answers whether a user has cleared the PAN + Aadhaar
// document gate.
type VerificationChecker interface {
	IsVerified(ctx context.Context, userID string) (bool, error)
}

// VerificationCheckerFunc adapts a plain function to VerificationChecker.
type VerificationCheckerFunc func(ctx context.Context, userID string) (bool, error)

func (f VerificationCheckerFunc) IsVerified(ctx context.Context, userID string) (bool, error) {
	return f(ctx, userID)
}

// Verified blocks users who have not completed document verification.
// Routes behind this gate (posting jobs, paying) return 403 until both PAN
// and Aadhaar are attested.
func Verified(checker VerificationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			ok, err := checker.IsVerified(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "document verification required")
			}
			return next(c)
		}
	}
}
