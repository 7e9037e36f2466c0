package middleware

import (
	"crypto/subtle"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/api"
	config "github.com/thirdweb-dev/walletbridge/configs"
)

var ErrUnauthorized = fmt.Errorf("invalid username or password")

// Authorization enforces basic auth with the given credentials. An empty
// username disables the check.
func Authorization(cfg config.BasicAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Username == "" {
			c.Next()
			return
		}
		username, password, ok := c.Request.BasicAuth()
		if !ok || !validateCredentials(cfg, username, password) {
			log.Warn().Str("ip", c.ClientIP()).Msg(ErrUnauthorized.Error())
			api.UnauthorizedErrorHandler(c, ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func validateCredentials(cfg config.BasicAuthConfig, username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	return userMatch && passMatch
}
