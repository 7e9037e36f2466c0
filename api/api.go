package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	SupportId string `json:"support_id"`
}

type QueryParams struct {
	Limit  int `schema:"limit"`
	Offset int `schema:"offset"`
}

type Meta struct {
	Address    string `json:"address,omitempty"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	TotalItems int    `json:"total_items"`
}

type QueryResponse struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

func writeError(c *gin.Context, message string, code int) {
	resp := Error{
		Code:      code,
		Message:   message,
		SupportId: c.GetHeader("X-Request-Id"),
	}
	c.JSON(code, resp)
}

var (
	BadRequestErrorHandler = func(c *gin.Context, err error) {
		writeError(c, err.Error(), http.StatusBadRequest)
	}
	NotFoundErrorHandler = func(c *gin.Context, err error) {
		writeError(c, err.Error(), http.StatusNotFound)
	}
	InternalErrorHandler = func(c *gin.Context) {
		writeError(c, "An unexpected error occurred.", http.StatusInternalServerError)
	}
	UnauthorizedErrorHandler = func(c *gin.Context, err error) {
		writeError(c, err.Error(), http.StatusUnauthorized)
	}
	ServiceUnavailableErrorHandler = func(c *gin.Context, err error) {
		writeError(c, err.Error(), http.StatusServiceUnavailable)
	}
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// ParseQueryParams decodes paging parameters, defaulting and clamping the limit.
func ParseQueryParams(r *http.Request) (QueryParams, error) {
	var params QueryParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		log.Error().Err(err).Msg("Error parsing query params")
		return QueryParams{}, err
	}
	if params.Limit < 0 || params.Offset < 0 {
		return QueryParams{}, fmt.Errorf("limit and offset must not be negative")
	}
	if params.Limit == 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	return params, nil
}

// GetAddress reads the address path parameter. Only the workchain separator
// is checked, the canonical form is owned by the provider.
func GetAddress(c *gin.Context) (common.Address, error) {
	raw := strings.TrimSpace(c.Param("address"))
	if raw == "" || !strings.Contains(raw, ":") {
		return common.Address{}, fmt.Errorf("invalid address '%s'", raw)
	}
	return common.NewAddress(raw), nil
}

// Paginate returns the window of items selected by params.
func Paginate[T any](items []T, params QueryParams) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := min(params.Offset+params.Limit, len(items))
	return items[params.Offset:end]
}
