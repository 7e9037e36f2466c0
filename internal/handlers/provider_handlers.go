package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/api"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

// GetProviderState reports the provider's network and permissions.
func GetProviderState(c *gin.Context) {
	providerApi, err := getProviderApi()
	if err != nil {
		log.Error().Err(err).Msg("Error getting provider api")
		api.InternalErrorHandler(c)
		return
	}

	state, err := providerApi.GetProviderState(c.Request.Context())
	if err != nil {
		handleProviderError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.QueryResponse{Data: state})
}

// GetContractState serves the full state of an account straight from the provider.
func GetContractState(c *gin.Context) {
	address, err := api.GetAddress(c)
	if err != nil {
		api.BadRequestErrorHandler(c, err)
		return
	}

	providerApi, err := getProviderApi()
	if err != nil {
		log.Error().Err(err).Msg("Error getting provider api")
		api.InternalErrorHandler(c)
		return
	}

	state, err := providerApi.GetFullContractState(c.Request.Context(), address)
	if err != nil {
		handleProviderError(c, err)
		return
	}
	if state == nil {
		api.NotFoundErrorHandler(c, fmt.Errorf("account %s is not deployed", address))
		return
	}
	c.JSON(http.StatusOK, api.QueryResponse{
		Meta: api.Meta{Address: address.String()},
		Data: state,
	})
}

func handleProviderError(c *gin.Context, err error) {
	if errors.Is(err, provider.ErrProviderNotFound) {
		api.ServiceUnavailableErrorHandler(c, err)
		return
	}
	log.Error().Err(err).Msg("Provider request failed")
	api.InternalErrorHandler(c)
}
