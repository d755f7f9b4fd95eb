package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	// ctxUserID holds the authenticated user id in the gin context.
	ctxUserID = "userId"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// requireUser rejects requests without a valid bearer token.
func (h *Handler) requireUser(c *gin.Context) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		unauthorized(c, "missing Authorization header")
		return
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		unauthorized(c, "invalid Authorization header format")
		return
	}

	userID, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		h.log.Debugw("auth_token_rejected", "err", err)
		unauthorized(c, "invalid or expired token")
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}
