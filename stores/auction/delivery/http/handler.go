package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

type handler struct {
	auction        auction.UseCase
	defaultChainId domain.ChainId
}

// New registers the auction read endpoints.
func New(e *echo.Echo, au auction.UseCase, defaultChainId domain.ChainId) {
	h := &handler{
		auction:        au,
		defaultChainId: defaultChainId,
	}
	g := e.Group("/auction")
	g.GET("/:proposalId", h.getSnapshot)
}

func (h *handler) getSnapshot(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := strconv.ParseUint(c.Param("proposalId"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	chainId := h.defaultChainId
	if raw := c.QueryParam("chainId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidChainId)
		}
		chainId = domain.ChainId(parsed)
	}

	snap, err := h.auction.GetSnapshot(ctx, chainId, domain.ProposalId(id))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, snap)
}
