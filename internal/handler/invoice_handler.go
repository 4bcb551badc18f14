package handler

import (
	"net/http"
	"strconv"

	"github.com/ozgunabanoz/shopping-site-project/internal/config"
	"github.com/ozgunabanoz/shopping-site-project/internal/middleware"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	uc *usecase.InvoiceUsecase
}

func NewInvoiceHandler(uc *usecase.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func (h *InvoiceHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/:id/invoice", h.invoice)
}

// 請求書PDFをインラインで返す。保存と返却は同じバイト列。
func (h *InvoiceHandler) invoice(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GenerateInvoice(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+out.Key+`"`)
	return c.Blob(http.StatusOK, "application/pdf", out.Data)
}
