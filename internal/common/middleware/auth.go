package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FBSocial/subway2-team-activities/internal/features/auth"
)

const (
	AuthStatusCtxParam = "auth_status"
	TokenCtxParam      = "token"
	IdentityCtxParam   = "identity"
)

// ClassifyAuth derives the viewer's auth status from the host flag set
// by HostInitData and the bearer token, and stores both in context.
// It never rejects: classification is total, and public pages render
// in every state.
func ClassifyAuth(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		hasToken := sessions.HasToken(c.Request.Context(), token)

		// Inside the host a validated init-data identity registers the
		// session on the spot, so the viewer never sees a login screen.
		if !hasToken && token != "" && InMiniHost(c) {
			if userID := c.GetString(HostUserIDCtxParam); userID != "" {
				id := auth.Identity{
					UserID:   userID,
					Nickname: c.GetString(HostNicknameCtxParam),
					Avatar:   c.GetString(HostAvatarCtxParam),
				}
				if err := sessions.Init(c.Request.Context(), token, id); err == nil {
					hasToken = true
				}
			}
		}

		status := auth.Classify(InMiniHost(c), hasToken)

		c.Set(TokenCtxParam, token)
		c.Set(AuthStatusCtxParam, status)
		if hasToken {
			if id, ok := sessions.Identity(c.Request.Context(), token); ok {
				c.Set(IdentityCtxParam, id)
			}
		}

		c.Next()
	}
}

// RequireIdentity guards identity-gated entry points. It answers with
// a redirect hint instead of a bare 401 so the front-end knows which
// flow to open.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := AuthStatus(c)
		if auth.RequiresLogin(status) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":       "login required",
				"auth_status": status,
				"redirect":    "login",
			})
			return
		}

		c.Next()
	}
}

// AuthStatus returns the status stored by ClassifyAuth.
func AuthStatus(c *gin.Context) auth.Status {
	v, exists := c.Get(AuthStatusCtxParam)
	if !exists {
		return auth.StatusNoTokenNotInHost
	}
	status, ok := v.(auth.Status)
	if !ok {
		return auth.StatusNoTokenNotInHost
	}
	return status
}

// Token returns the bearer token stored by ClassifyAuth.
func Token(c *gin.Context) string {
	v, exists := c.Get(TokenCtxParam)
	if !exists {
		return ""
	}
	token, _ := v.(string)
	return token
}

// CurrentIdentity returns the cached identity, if any.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(IdentityCtxParam)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return h
}
