package middleware

import (
	"net/http"
	"strings"

	"caller_id_server/pkg/constants"
	"caller_id_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth gates protected routes.
// No Authorization header yields 401; a header carrying anything but a valid
// access token yields 403. Both "Bearer <token>" and a bare token are accepted.
// On success the caller's id and phone are stored in the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Access denied. No token provided")
			return
		}

		tokenString := authHeader
		if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenString = strings.TrimSpace(rest)
		}

		claims, err := jwt.ParseToken(tokenString)
		if err != nil {
			abortWithError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}
		if claims.Subject != jwt.SubjectAccessToken || claims.UserID == 0 {
			abortWithError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		c.Set(constants.CtxUserID, claims.UserID)
		c.Set(constants.CtxPhone, claims.Phone)
		c.Next()
	}
}

// abortWithError writes the error envelope and stops the chain.
func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    msg,
		"success":    false,
		"errors":     []string{},
		"data":       nil,
	})
}
