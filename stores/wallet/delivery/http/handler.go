package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
	"github.com/bidhaus/goapi/middleware"
)

type handler struct {
	wallet         wallet.UseCase
	defaultChainId domain.ChainId
}

// New registers the wallet read endpoints.
func New(e *echo.Echo, wu wallet.UseCase, defaultChainId domain.ChainId) {
	h := &handler{
		wallet:         wu,
		defaultChainId: defaultChainId,
	}
	g := e.Group("/wallet")
	g.GET("/:address/balances", h.getBalances, middleware.IsValidAddress("address"))
}

func (h *handler) getBalances(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := domain.Address(c.Param("address")).ToLower()

	chainId := h.defaultChainId
	if raw := c.QueryParam("chainId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidChainId)
		}
		chainId = domain.ChainId(parsed)
	}

	snap, err := h.wallet.GetBalances(ctx, chainId, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, snap)
}
