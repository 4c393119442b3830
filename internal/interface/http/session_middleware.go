package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/belaycheck/internal/domain/session"
	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

const sessionClaimsKey = "session_claims"

func sessionMiddleware(svc session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, codeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, codeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := svc.Validate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			status := http.StatusForbidden
			code := apperrors.CodeInvalidToken
			if !apperrors.IsCode(err, apperrors.CodeInvalidToken) {
				status = http.StatusInternalServerError
				code = codeSessionFailed
			}
			abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
			return
		}
		c.Set(sessionClaimsKey, claims)
		c.Next()
	}
}

func getClaims(c *gin.Context) (session.Claims, bool) {
	value, ok := c.Get(sessionClaimsKey)
	if !ok {
		return session.Claims{}, false
	}
	claims, ok := value.(session.Claims)
	return claims, ok
}
