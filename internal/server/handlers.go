package server

import (
	"errors"
	"net/http"
	"strconv"

	"veilon-dashboard-go/internal/accounts"
	"veilon-dashboard-go/internal/catalog"
	"veilon-dashboard-go/internal/checkout"
	"veilon-dashboard-go/internal/identity"
	"veilon-dashboard-go/internal/ledger"
	"veilon-dashboard-go/internal/models"
	"veilon-dashboard-go/internal/payments"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler holds dependencies for the dashboard API endpoints.
type Handler struct {
	log       *zap.Logger
	resolver  *identity.Resolver
	directory *accounts.Directory
	catalog   *catalog.Catalog
	ledger    *ledger.Reader
	workflow  *checkout.Workflow
	payments  payments.ClientInterface // nil when no provider key is configured
}

// NewHandler creates a new Handler.
func NewHandler(
	log *zap.Logger,
	resolver *identity.Resolver,
	directory *accounts.Directory,
	cat *catalog.Catalog,
	reader *ledger.Reader,
	workflow *checkout.Workflow,
	paymentsClient payments.ClientInterface,
) *Handler {
	return &Handler{
		log:       log,
		resolver:  resolver,
		directory: directory,
		catalog:   cat,
		ledger:    reader,
		workflow:  workflow,
		payments:  paymentsClient,
	}
}

// RegisterRoutes mounts the API under the given group. The group must be
// wrapped with IdentityMiddleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.Dashboard)
	g.GET("/accounts/:id/trades", h.AccountTrades)
	g.GET("/accounts/:id/statistics", h.AccountStatistics)
	g.GET("/plans", h.PlanByAccountSize)
	g.GET("/coupons/:code", h.CouponByCode)
	g.POST("/checkout", h.Checkout)
}

// resolveUser turns the request's identity claims into a durable user row.
func (h *Handler) resolveUser(c echo.Context) (*models.User, error) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no identity on request")
	}
	user, err := h.resolver.ResolveOrCreateUser(c.Request().Context(), claims)
	if err != nil {
		h.log.Error("Failed to resolve user", zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve user")
	}
	return user, nil
}

// DashboardResponse is the payload for the member dashboard view.
type DashboardResponse struct {
	User     *models.User     `json:"user"`
	Accounts []models.Account `json:"accounts"`
}

// Dashboard returns the resolved user and their active accounts. A member
// with no accounts gets an empty list, which the UI renders as a disabled
// account selector.
func (h *Handler) Dashboard(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	list, err := h.directory.ListActiveAccounts(c.Request().Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to list accounts", zap.Uint("user_id", user.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list accounts")
	}

	return c.JSON(http.StatusOK, DashboardResponse{User: user, Accounts: list})
}

// ownedAccountID parses the :id param and checks the account belongs to
// the caller. Foreign accounts are indistinguishable from missing ones.
func (h *Handler) ownedAccountID(c echo.Context, user *models.User) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}
	if _, err := h.directory.GetOwnedAccount(c.Request().Context(), uint(id), user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "account not found")
		}
		h.log.Error("Failed to load account", zap.Uint64("account_id", id), zap.Error(err))
		return 0, echo.NewHTTPError(http.StatusInternalServerError, "failed to load account")
	}
	return uint(id), nil
}

// AccountTrades returns the account's trade history, oldest first.
func (h *Handler) AccountTrades(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}
	accountID, err := h.ownedAccountID(c, user)
	if err != nil {
		return err
	}

	trades, err := h.ledger.ListTrades(c.Request().Context(), accountID)
	if err != nil {
		h.log.Error("Failed to list trades", zap.Uint("account_id", accountID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list trades")
	}
	return c.JSON(http.StatusOK, trades)
}

// AccountStatistics returns aggregated trade statistics for the account.
func (h *Handler) AccountStatistics(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}
	accountID, err := h.ownedAccountID(c, user)
	if err != nil {
		return err
	}

	stats, err := h.ledger.Statistics(c.Request().Context(), accountID)
	if err != nil {
		h.log.Error("Failed to calculate statistics", zap.Uint("account_id", accountID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to calculate statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

// PlanByAccountSize returns the active plan for ?account_size=N, or 404
// when the tier has no active plan. The UI renders the 404 as "no plan
// available", not as a failure.
func (h *Handler) PlanByAccountSize(c echo.Context) error {
	size, err := strconv.ParseInt(c.QueryParam("account_size"), 10, 64)
	if err != nil || size <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid account_size")
	}

	plan, err := h.catalog.GetPlanByAccountSize(c.Request().Context(), size)
	if errors.Is(err, catalog.ErrPlanNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no plan for this account size")
	}
	if err != nil {
		h.log.Error("Failed to look up plan", zap.Int64("account_size", size), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up plan")
	}
	return c.JSON(http.StatusOK, plan)
}

// CouponByCode returns the coupon when it is active and inside its
// validity window; every other state is a 404. When a provider client is
// configured the coupon's upstream counterpart is cross-checked
// best-effort: a vanished or invalidated provider coupon is logged for
// catalog maintenance but does not change the response.
func (h *Handler) CouponByCode(c echo.Context) error {
	coupon, err := h.catalog.GetActiveCoupon(c.Request().Context(), c.Param("code"))
	if errors.Is(err, catalog.ErrCouponNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no active coupon for this code")
	}
	if err != nil {
		h.log.Error("Failed to look up coupon", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up coupon")
	}

	if h.payments != nil && coupon.StripeCouponID != nil {
		pc, err := h.payments.GetCoupon(c.Request().Context(), *coupon.StripeCouponID)
		switch {
		case errors.Is(err, payments.ErrCouponNotFound):
			h.log.Warn("Coupon has no provider counterpart",
				zap.String("code", coupon.Code),
				zap.String("stripe_coupon_id", *coupon.StripeCouponID))
		case err != nil:
			h.log.Warn("Provider coupon check failed", zap.String("code", coupon.Code), zap.Error(err))
		case !pc.Valid:
			h.log.Warn("Provider coupon is no longer valid",
				zap.String("code", coupon.Code),
				zap.String("stripe_coupon_id", pc.ID))
		}
	}

	return c.JSON(http.StatusOK, coupon)
}

// CheckoutRequest is the body for POST /checkout.
type CheckoutRequest struct {
	AccountSize int64 `json:"account_size"`
}

// Checkout provisions a new evaluation account for the caller: one paid
// order and one linked skeleton account, created atomically.
func (h *Handler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil || req.AccountSize <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid account_size")
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	result, err := h.workflow.ProvisionAccount(c.Request().Context(), user.ID, req.AccountSize)
	if errors.Is(err, catalog.ErrPlanNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no plan for this account size")
	}
	if err != nil {
		h.log.Error("Checkout failed",
			zap.Uint("user_id", user.ID),
			zap.Int64("account_size", req.AccountSize),
			zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "checkout failed")
	}

	return c.JSON(http.StatusCreated, result)
}
