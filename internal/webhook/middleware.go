package webhook

import (
	"crypto/subtle"
	"net/http"

	"conectaleads_backend/platform/config"

	"github.com/gin-gonic/gin"
)

const (
	sharedSecretHeader   = "X-Webhook-Secret"
	telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"
)

// sharedSecret rejects relay calls that do not carry the configured secret.
// With no secret configured the relay is open, which is only acceptable in
// development.
func sharedSecret(cfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.GetWebhookSecret()
		if secret == "" {
			c.Next()
			return
		}
		provided := c.GetHeader(sharedSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
			return
		}
		c.Next()
	}
}

// telegramSecret validates the secret token Telegram echoes back when the
// webhook was registered with one.
func telegramSecret(cfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.GetTelegramSecretToken()
		if secret == "" {
			c.Next()
			return
		}
		provided := c.GetHeader(telegramSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram secret token"})
			return
		}
		c.Next()
	}
}
