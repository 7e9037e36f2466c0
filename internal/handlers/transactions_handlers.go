package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/api"
)

// GetTransactions serves the stored history of an address, newest first.
func GetTransactions(c *gin.Context) {
	address, err := api.GetAddress(c)
	if err != nil {
		api.BadRequestErrorHandler(c, err)
		return
	}

	queryParams, err := api.ParseQueryParams(c.Request)
	if err != nil {
		api.BadRequestErrorHandler(c, err)
		return
	}

	store, err := getHistoryStorage()
	if err != nil {
		log.Error().Err(err).Msg("Error getting history storage")
		api.InternalErrorHandler(c)
		return
	}

	txs, err := store.GetTransactions(address)
	if err != nil {
		log.Error().Err(err).Str("address", address.String()).Msg("Error querying transactions")
		api.InternalErrorHandler(c)
		return
	}

	c.JSON(http.StatusOK, api.QueryResponse{
		Meta: api.Meta{
			Address:    address.String(),
			Limit:      queryParams.Limit,
			Offset:     queryParams.Offset,
			TotalItems: len(txs),
		},
		Data: api.Paginate(txs, queryParams),
	})
}
