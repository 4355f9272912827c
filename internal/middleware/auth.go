package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/pkg/utils/tokens"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID  = "auth_user_id"
	CtxIsAdmin = "auth_is_admin"
	CtxRawTok  = "auth_raw_token"
)

// Auth authenticates requests with a bearer access token. The token is
// verified against the signing secret and the blacklist; role and identity
// come from the token claims alone, never from request headers.
func Auth(cfg *config.Config, blacklist repo.BlacklistRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims, err := tokens.ParseAccessToken(cfg.Auth.Secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		revoked, err := blacklist.IsBlacklisted(ctx, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		// Tag the request span so traces can be filtered by user.
		span := trace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.SetAttributes(
				attribute.String("user_id", userID.String()),
				attribute.Bool("is_admin", claims.IsAdmin),
			)
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxRawTok, raw)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin claim.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("Admin privileges required"))
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows the request only when the user_id path parameter
// matches the token subject, or the token carries the admin claim.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(CtxIsAdmin) {
			c.Next()
			return
		}

		pathID, err := uuid.Parse(c.Param(param))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
			return
		}
		if userID, ok := UserID(c); !ok || userID != pathID {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("Forbidden"))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
