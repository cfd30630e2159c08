// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the admin gate: a single shared-secret bearer check
// applied uniformly to every admin operation. There is no per-resource or
// per-role distinction; access is all-or-nothing.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth returns a Gin middleware that rejects any request whose
// Authorization header is not exactly "Bearer <token>".
//
// The token comparison is constant-time, and any mismatch, including
// case-variants or substrings of the real token, yields 401 with the
// standard error envelope. The middleware never logs the presented
// credential.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":    false,
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "Unauthorized. Admin access required.",
			})
			return
		}
		c.Next()
	}
}
