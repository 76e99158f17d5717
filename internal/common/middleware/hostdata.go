package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// Context keys for host-derived fields.
const (
	InMiniHostCtxParam   = "in_mini_host"
	HostUserIDCtxParam   = "host_user_id"
	HostNicknameCtxParam = "host_nickname"
	HostAvatarCtxParam   = "host_avatar"
)

// HostInitData validates the signed init-data the mini-program host
// injects and marks the request as running inside the host. Browser
// requests simply carry no init-data and pass through unmarked.
//
// Init-data is expected in the "X-Host-Init-Data" header. An invalid
// signature is rejected outright: a request that claims a host
// identity must prove it.
func HostInitData(secret string, expIn time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Host-Init-Data")
		if raw == "" {
			c.Set(InMiniHostCtxParam, false)
			c.Next()
			return
		}

		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "host init-data validation is not configured"})
			return
		}

		if err := initdata.Validate(raw, secret, expIn); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid host init data"})
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid host init data format"})
			return
		}

		c.Set(InMiniHostCtxParam, true)
		if parsed.User.ID != 0 {
			c.Set(HostUserIDCtxParam, strconv.FormatInt(parsed.User.ID, 10))
			c.Set(HostNicknameCtxParam, parsed.User.FirstName)
			c.Set(HostAvatarCtxParam, parsed.User.PhotoURL)
		}

		c.Next()
	}
}

// InMiniHost reports whether the request was validated as coming from
// the mini-program host.
func InMiniHost(c *gin.Context) bool {
	v, exists := c.Get(InMiniHostCtxParam)
	if !exists {
		return false
	}
	inHost, ok := v.(bool)
	return ok && inHost
}
