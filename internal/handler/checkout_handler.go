package handler

import (
	"net/http"

	"github.com/ozgunabanoz/shopping-site-project/internal/config"
	"github.com/ozgunabanoz/shopping-site-project/internal/middleware"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.start)
	//決済プロバイダからの戻り先
	g.GET("/success", h.success)
	g.GET("/cancel", h.cancel)
}

func (h *CheckoutHandler) start(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.StartCheckout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) success(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	sessionID := c.QueryParam("session_id")

	out, err := h.uc.CompleteCheckout(c.Request().Context(), userID, sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	sessionID := c.QueryParam("session_id")

	if err := h.uc.CancelCheckout(c.Request().Context(), userID, sessionID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "canceled"})
}
